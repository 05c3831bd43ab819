package usecase

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"blog-app/internal/entity"
	"blog-app/internal/metrics"
	"blog-app/internal/repo/persistent"
	"blog-app/pkg/logger"
	"blog-app/pkg/queue"

	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	maxTitleLen   = 200
	maxExcerptLen = 500

	wordsPerMinute = 200
)

type CreatePostInput struct {
	Title         string
	Content       string
	Excerpt       string
	Tags          []string
	FeaturedImage string
	Status        entity.PostStatus
	ReadingTime   int
}

// UpdatePostInput carries a partial update; nil fields are left untouched.
type UpdatePostInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Tags          []string
	FeaturedImage *string
	Status        *entity.PostStatus
	ReadingTime   *int
}

type ListQuery struct {
	Page   int
	Limit  int
	Tag    string
	Search string
	Status string // own listing only: draft, published, all or empty
}

type PostPage struct {
	Posts       []*entity.Post
	Total       int64
	CurrentPage int
	TotalPages  int
}

type PostUseCase interface {
	CreatePost(authorID string, in CreatePostInput) (*entity.Post, error)
	GetPostBySlug(slug string) (*entity.Post, error)
	ListPublished(q ListQuery) (*PostPage, error)
	ListOwn(authorID string, q ListQuery) (*PostPage, error)
	SearchPosts(query string, page, limit int) (*PostPage, error)
	ListByTag(tag string, page, limit int) (*PostPage, error)
	UpdatePost(slug, actorID string, in UpdatePostInput) (*entity.Post, error)
	DeletePost(slug, actorID string) error
	LikePost(slug string) (*entity.Post, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, queueClient *queue.Client, log *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		queueClient: queueClient,
		logger:      log,
	}
}

func (uc *postUseCase) CreatePost(authorID string, in CreatePostInput) (*entity.Post, error) {
	if err := validateCreateInput(&in); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	slug := GenerateSlug(title)
	if slug == "" {
		return nil, &ValidationError{Fields: []string{"title"}}
	}

	// Fast-path collision check; the unique index on posts.slug is the
	// authoritative guard for concurrent creates.
	taken, err := uc.postRepo.SlugExists(slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlugTaken
	}

	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}

	post := &entity.Post{
		Slug:          slug,
		Title:         title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Tags:          normalizeTags(in.Tags),
		FeaturedImage: in.FeaturedImage,
		Status:        status,
		AuthorID:      authorID,
		ReadingTime:   in.ReadingTime,
	}
	if post.ReadingTime <= 0 {
		post.ReadingTime = estimateReadingTime(in.Content)
	}
	if post.Status == entity.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := uc.postRepo.Create(post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race against a concurrent create with a
			// colliding title; same outcome as the fast-path check.
			return nil, ErrSlugTaken
		}
		uc.logger.Error("Failed to create post: %v", err)
		return nil, err
	}

	metrics.IncPostCreated(string(post.Status))
	if post.Status == entity.StatusPublished {
		uc.notifyPublished(post)
	}

	return post, nil
}

func (uc *postUseCase) GetPostBySlug(slug string) (*entity.Post, error) {
	post, err := uc.postRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// Only published reads count; a failed increment never fails the read.
	if post.Status == entity.StatusPublished {
		if err := uc.postRepo.IncrementViews(post.ID); err != nil {
			uc.logger.Warn("Failed to increment views for post %s: %v", post.ID, err)
		} else {
			post.Views++
			metrics.IncPostView()
		}
	}

	return post, nil
}

func (uc *postUseCase) ListPublished(q ListQuery) (*PostPage, error) {
	page, limit, offset := normalizePaging(q.Page, q.Limit)

	posts, total, err := uc.postRepo.List(persistent.ListFilter{
		Status: string(entity.StatusPublished),
		Tag:    q.Tag,
		Search: strings.TrimSpace(q.Search),
		Sort:   persistent.SortPublishedAt,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return newPostPage(posts, total, page, limit), nil
}

func (uc *postUseCase) ListOwn(authorID string, q ListQuery) (*PostPage, error) {
	page, limit, offset := normalizePaging(q.Page, q.Limit)

	status := q.Status
	if status == "all" {
		status = ""
	}
	if status != "" && !entity.PostStatus(status).Valid() {
		return nil, &ValidationError{Fields: []string{"status"}}
	}

	posts, total, err := uc.postRepo.List(persistent.ListFilter{
		Status:   status,
		AuthorID: authorID,
		Search:   strings.TrimSpace(q.Search),
		Sort:     persistent.SortCreatedAt,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return newPostPage(posts, total, page, limit), nil
}

func (uc *postUseCase) SearchPosts(query string, page, limit int) (*PostPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrSearchQueryRequired
	}

	page, limit, offset := normalizePaging(page, limit)

	posts, total, err := uc.postRepo.Search(query, limit, offset)
	if err != nil {
		return nil, err
	}

	return newPostPage(posts, total, page, limit), nil
}

func (uc *postUseCase) ListByTag(tag string, page, limit int) (*PostPage, error) {
	page, limit, offset := normalizePaging(page, limit)

	posts, total, err := uc.postRepo.List(persistent.ListFilter{
		Status: string(entity.StatusPublished),
		Tag:    tag,
		Sort:   persistent.SortPublishedAt,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return newPostPage(posts, total, page, limit), nil
}

func (uc *postUseCase) UpdatePost(slug, actorID string, in UpdatePostInput) (*entity.Post, error) {
	post, err := uc.postRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.AuthorID != actorID {
		return nil, ErrNotPostOwner
	}

	if err := validateUpdateInput(&in); err != nil {
		return nil, err
	}

	wasPublished := post.Status == entity.StatusPublished

	// Resolve the rename before applying anything else so a slug conflict
	// rejects the update in full and the previous slug is retained.
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		newSlug := GenerateSlug(title)
		if newSlug == "" {
			return nil, &ValidationError{Fields: []string{"title"}}
		}
		if newSlug != post.Slug {
			taken, err := uc.postRepo.SlugExists(newSlug, post.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrSlugTaken
			}
			post.Slug = newSlug
		}
		post.Title = title
	}

	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Tags != nil {
		post.Tags = normalizeTags(in.Tags)
	}
	if in.FeaturedImage != nil {
		post.FeaturedImage = *in.FeaturedImage
	}
	if in.ReadingTime != nil && *in.ReadingTime > 0 {
		post.ReadingTime = *in.ReadingTime
	}
	if in.Status != nil {
		post.Status = *in.Status
		if post.Status == entity.StatusPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	if err := uc.postRepo.Update(post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		uc.logger.Error("Failed to update post %s: %v", post.ID, err)
		return nil, err
	}

	if !wasPublished && post.Status == entity.StatusPublished {
		uc.notifyPublished(post)
	}

	return post, nil
}

func (uc *postUseCase) DeletePost(slug, actorID string) error {
	post, err := uc.postRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.AuthorID != actorID {
		return ErrNotPostOwner
	}

	return uc.postRepo.Delete(post.ID)
}

func (uc *postUseCase) LikePost(slug string) (*entity.Post, error) {
	post, err := uc.postRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := uc.postRepo.IncrementLikes(post.ID); err != nil {
		return nil, err
	}
	post.Likes++

	return post, nil
}

func (uc *postUseCase) notifyPublished(post *entity.Post) {
	if uc.queueClient == nil {
		return
	}

	task := map[string]interface{}{
		"type":      "post_published",
		"post_id":   post.ID,
		"slug":      post.Slug,
		"title":     post.Title,
		"author_id": post.AuthorID,
	}

	go func() {
		if err := uc.queueClient.PublishPostNotification(task); err != nil {
			uc.logger.Error("Failed to publish notification for post %s: %v", post.ID, err)
		}
	}()
}

func validateCreateInput(in *CreatePostInput) error {
	var fields []string

	title := strings.TrimSpace(in.Title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLen {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(in.Content) == "" {
		fields = append(fields, "content")
	}
	excerpt := strings.TrimSpace(in.Excerpt)
	if excerpt == "" || utf8.RuneCountInString(excerpt) > maxExcerptLen {
		fields = append(fields, "excerpt")
	}
	if in.Status != "" && !in.Status.Valid() {
		fields = append(fields, "status")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateUpdateInput(in *UpdatePostInput) error {
	var fields []string

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" || utf8.RuneCountInString(title) > maxTitleLen {
			fields = append(fields, "title")
		}
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		fields = append(fields, "content")
	}
	if in.Excerpt != nil {
		excerpt := strings.TrimSpace(*in.Excerpt)
		if excerpt == "" || utf8.RuneCountInString(excerpt) > maxExcerptLen {
			fields = append(fields, "excerpt")
		}
	}
	if in.Status != nil && !in.Status.Valid() {
		fields = append(fields, "status")
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func normalizePaging(page, limit int) (int, int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

func newPostPage(posts []*entity.Post, total int64, page, limit int) *PostPage {
	return &PostPage{
		Posts:       posts,
		Total:       total,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
	}
}

func normalizeTags(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
