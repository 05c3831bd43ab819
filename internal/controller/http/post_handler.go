package http

import (
	"errors"
	"net/http"
	"strconv"

	"blog-app/internal/entity"
	"blog-app/internal/usecase"
	"blog-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, log *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      log,
	}
}

type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Content       string   `json:"content" binding:"required"`
	Excerpt       string   `json:"excerpt" binding:"required,max=500"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featuredImage"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft published"`
	ReadingTime   int      `json:"readingTime"`
}

type UpdatePostRequest struct {
	Title         *string  `json:"title" binding:"omitempty,max=200"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt" binding:"omitempty,max=500"`
	Tags          []string `json:"tags"`
	FeaturedImage *string  `json:"featuredImage"`
	Status        *string  `json:"status" binding:"omitempty,oneof=draft published"`
	ReadingTime   *int     `json:"readingTime"`
}

func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

func listResponse(page *usecase.PostPage) gin.H {
	return gin.H{
		"posts":       page.Posts,
		"total":       page.Total,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
	}
}

func (h *PostHandler) respondError(c *gin.Context, err error) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": validationErr.Fields})
	case errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
	case errors.Is(err, usecase.ErrNotPostOwner):
		// Deliberately generic: never reveals whether the post exists.
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	case errors.Is(err, usecase.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "A post with this title already exists"})
	case errors.Is(err, usecase.ErrSearchQueryRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Search query is required"})
	default:
		h.logger.Error("Post request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// ListPosts godoc
// @Summary      List published posts
// @Description  Get published posts with optional tag and search filters, sorted by publish date
// @Tags         posts
// @Produce      json
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Param        tag query string false "Filter by tag (case-insensitive)"
// @Param        search query string false "Full-text filter"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, limit := pageQuery(c)

	result, err := h.postUseCase.ListPublished(usecase.ListQuery{
		Page:   page,
		Limit:  limit,
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(result))
}

// ListOwnPosts godoc
// @Summary      List caller's posts
// @Description  Get the authenticated user's posts in any status, sorted by creation date
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Param        status query string false "Filter by status (draft, published or all)"
// @Param        search query string false "Full-text filter"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /posts/all [get]
func (h *PostHandler) ListOwnPosts(c *gin.Context) {
	page, limit := pageQuery(c)

	result, err := h.postUseCase.ListOwn(c.GetString("user_id"), usecase.ListQuery{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(result))
}

// SearchPosts godoc
// @Summary      Search posts
// @Description  Full-text search over published posts, sorted by relevance
// @Tags         posts
// @Produce      json
// @Param        q query string true "Search query"
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /posts/search [get]
func (h *PostHandler) SearchPosts(c *gin.Context) {
	page, limit := pageQuery(c)
	query := c.Query("q")

	result, err := h.postUseCase.SearchPosts(query, page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := listResponse(result)
	response["query"] = query
	c.JSON(http.StatusOK, response)
}

// GetPostsByTag godoc
// @Summary      List posts by tag
// @Description  Get published posts carrying the given tag (case-insensitive)
// @Tags         posts
// @Produce      json
// @Param        tag path string true "Tag"
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts/tag/{tag} [get]
func (h *PostHandler) GetPostsByTag(c *gin.Context) {
	page, limit := pageQuery(c)
	tag := c.Param("tag")

	result, err := h.postUseCase.ListByTag(tag, page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := listResponse(result)
	response["tag"] = tag
	c.JSON(http.StatusOK, response)
}

// GetPost godoc
// @Summary      Get post by slug
// @Description  Get a single post; reading a published post increments its view counter
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{slug} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPostBySlug(c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post; the slug is derived from the title and must be unique
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	post, err := h.postUseCase.CreatePost(c.GetString("user_id"), usecase.CreatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		Status:        entity.PostStatus(req.Status),
		ReadingTime:   req.ReadingTime,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Partial update; only the author may update, and a title change regenerates the slug
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug path string true "Post slug"
// @Param        request body UpdatePostRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /posts/{slug} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	var status *entity.PostStatus
	if req.Status != nil {
		s := entity.PostStatus(*req.Status)
		status = &s
	}

	post, err := h.postUseCase.UpdatePost(c.Param("slug"), c.GetString("user_id"), usecase.UpdatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		Status:        status,
		ReadingTime:   req.ReadingTime,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Irrevocably delete a post; only the author may delete
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        slug path string true "Post slug"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{slug} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUseCase.DeletePost(c.Param("slug"), c.GetString("user_id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// LikePost godoc
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        slug path string true "Post slug"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{slug}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	post, err := h.postUseCase.LikePost(c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": post.Likes})
}
