package persistent

import (
	"strings"

	"blog-app/internal/entity"
	"blog-app/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SortOrder int

const (
	// SortPublishedAt orders by publish time, falling back to creation
	// time for rows that were never published.
	SortPublishedAt SortOrder = iota
	SortCreatedAt
)

// ListFilter composes optional predicates with AND semantics.
type ListFilter struct {
	Status   string // exact status, empty matches any
	Tag      string // case-insensitive tag membership
	Search   string // full-text constraint (no relevance ordering)
	AuthorID string
	Sort     SortOrder
	Limit    int
	Offset   int
}

type PostRepository interface {
	Create(post *entity.Post) error
	GetBySlug(slug string) (*entity.Post, error)
	SlugExists(slug string, excludeID string) (bool, error)
	List(f ListFilter) ([]*entity.Post, int64, error)
	Search(query string, limit, offset int) ([]*entity.Post, int64, error)
	Update(post *entity.Post) error
	Delete(id string) error
	IncrementViews(id string) error
	IncrementLikes(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetBySlug(slug string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Preload("Author").Where("slug = ?", slug).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) SlugExists(slug string, excludeID string) (bool, error) {
	query := r.db.Model(&model.PostModel{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) filtered(f ListFilter) *gorm.DB {
	query := r.db.Model(&model.PostModel{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.AuthorID != "" {
		query = query.Where("author_id = ?", f.AuthorID)
	}
	if f.Tag != "" {
		query = query.Where("? = ANY(tags)", strings.ToLower(f.Tag))
	}
	if f.Search != "" {
		query = query.Where("search_vector @@ plainto_tsquery('english', ?)", f.Search)
	}
	return query
}

func (r *postRepository) List(f ListFilter) ([]*entity.Post, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(f).Preload("Author")
	switch f.Sort {
	case SortCreatedAt:
		query = query.Order("created_at DESC")
	default:
		query = query.Order("COALESCE(published_at, created_at) DESC")
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit).Offset(f.Offset)
	}

	var postModels []model.PostModel
	if err := query.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

// Search matches published posts against the text index and orders them by
// relevance, breaking ties by id for a stable order.
func (r *postRepository) Search(query string, limit, offset int) ([]*entity.Post, int64, error) {
	f := ListFilter{Status: string(entity.StatusPublished), Search: query}

	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ranked := r.filtered(f).Preload("Author").Clauses(clause.OrderBy{
		Expression: clause.Expr{
			SQL:                "ts_rank(search_vector, plainto_tsquery('english', ?)) DESC, id ASC",
			Vars:               []interface{}{query},
			WithoutParentheses: true,
		},
	})
	if limit > 0 {
		ranked = ranked.Limit(limit).Offset(offset)
	}

	var postModels []model.PostModel
	if err := ranked.Find(&postModels).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, total, nil
}

// Update persists the editable columns only. The counters are excluded:
// views and likes move through their own single-UPDATE statements, and
// writing back the values loaded with the post would undo any increments
// that landed in between.
func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	err := r.db.Model(postModel).
		Select("slug", "title", "content", "excerpt", "tags", "featured_image",
			"status", "reading_time", "published_at", "updated_at").
		Updates(postModel).Error
	if err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) Delete(id string) error {
	return r.db.Delete(&model.PostModel{}, "id = ?", id).Error
}

// IncrementViews bumps the counter in a single UPDATE so concurrent reads
// never lose increments; the counter is never read-modified in memory.
func (r *postRepository) IncrementViews(id string) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

func (r *postRepository) IncrementLikes(id string) error {
	return r.db.Model(&model.PostModel{}).Where("id = ?", id).
		UpdateColumn("likes", clause.Expr{SQL: "likes + ?", Vars: []interface{}{1}}).Error
}
