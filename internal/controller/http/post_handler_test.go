package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-app/internal/entity"
	"blog-app/internal/usecase"
	"blog-app/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(authorID string, in usecase.CreatePostInput) (*entity.Post, error) {
	args := m.Called(authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPostBySlug(slug string) (*entity.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPublished(q usecase.ListQuery) (*usecase.PostPage, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostPage), args.Error(1)
}

func (m *MockPostUseCase) ListOwn(authorID string, q usecase.ListQuery) (*usecase.PostPage, error) {
	args := m.Called(authorID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostPage), args.Error(1)
}

func (m *MockPostUseCase) SearchPosts(query string, page, limit int) (*usecase.PostPage, error) {
	args := m.Called(query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostPage), args.Error(1)
}

func (m *MockPostUseCase) ListByTag(tag string, page, limit int) (*usecase.PostPage, error) {
	args := m.Called(tag, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostPage), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(slug, actorID string, in usecase.UpdatePostInput) (*entity.Post, error) {
	args := m.Called(slug, actorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(slug, actorID string) error {
	args := m.Called(slug, actorID)
	return args.Error(0)
}

func (m *MockPostUseCase) LikePost(slug string) (*entity.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetPost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:slug", handler.GetPost)

	mockUseCase.On("GetPostBySlug", "my-first-post").Return(&entity.Post{
		ID:    "post-123",
		Slug:  "my-first-post",
		Title: "My First Post",
		Views: 42,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/my-first-post", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	post := response["post"].(map[string]interface{})
	assert.Equal(t, "my-first-post", post["slug"])
	assert.Equal(t, float64(42), post["views"])

	mockUseCase.AssertExpectations(t)
}

func TestGetPost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:slug", handler.GetPost)

	mockUseCase.On("GetPostBySlug", "missing").Return(nil, usecase.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post not found", response["message"])
}

func TestListPosts_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	mockUseCase.On("ListPublished", usecase.ListQuery{Page: 2, Limit: 5, Tag: "go"}).Return(&usecase.PostPage{
		Posts:       []*entity.Post{{ID: "post-1"}, {ID: "post-2"}},
		Total:       12,
		CurrentPage: 2,
		TotalPages:  3,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?page=2&limit=5&tag=go", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(12), response["total"])
	assert.Equal(t, float64(2), response["currentPage"])
	assert.Equal(t, float64(3), response["totalPages"])
	assert.Len(t, response["posts"], 2)

	mockUseCase.AssertExpectations(t)
}

func TestSearchPosts_EchoesQuery(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/search", handler.SearchPosts)

	mockUseCase.On("SearchPosts", "golang", 1, 10).Return(&usecase.PostPage{
		Posts:       []*entity.Post{{ID: "post-1"}},
		Total:       1,
		CurrentPage: 1,
		TotalPages:  1,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/search?q=golang", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "golang", response["query"])

	mockUseCase.AssertExpectations(t)
}

func TestSearchPosts_MissingQuery(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/search", handler.SearchPosts)

	mockUseCase.On("SearchPosts", "", 1, 10).Return(nil, usecase.ErrSearchQueryRequired)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/search", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Search query is required", response["message"])
}

func TestGetPostsByTag_EchoesTag(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/tag/:tag", handler.GetPostsByTag)

	mockUseCase.On("ListByTag", "golang", 1, 10).Return(&usecase.PostPage{
		Posts:       []*entity.Post{},
		Total:       0,
		CurrentPage: 1,
		TotalPages:  0,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/tag/golang", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "golang", response["tag"])
}

func TestCreatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "author-123")
		handler.CreatePost(c)
	})

	in := usecase.CreatePostInput{
		Title:   "My First Post",
		Content: "Content.",
		Excerpt: "Excerpt.",
	}
	mockUseCase.On("CreatePost", "author-123", in).Return(&entity.Post{
		ID:    "post-123",
		Slug:  "my-first-post",
		Title: "My First Post",
	}, nil)

	body := `{"title":"My First Post","content":"Content.","excerpt":"Excerpt."}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post created successfully", response["message"])
	post := response["post"].(map[string]interface{})
	assert.Equal(t, "my-first-post", post["slug"])

	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_DuplicateTitle(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "author-123")
		handler.CreatePost(c)
	})

	mockUseCase.On("CreatePost", "author-123", mock.AnythingOfType("usecase.CreatePostInput")).
		Return(nil, usecase.ErrSlugTaken)

	body := `{"title":"My First Post","content":"Content.","excerpt":"Excerpt."}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "A post with this title already exists", response["message"])
}

func TestCreatePost_MissingFields(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", handler.CreatePost)

	body := `{"title":"No content or excerpt"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestCreatePost_ValidationErrorListsFields(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", handler.CreatePost)

	mockUseCase.On("CreatePost", "", mock.AnythingOfType("usecase.CreatePostInput")).
		Return(nil, &usecase.ValidationError{Fields: []string{"title"}})

	body := `{"title":"!!!","content":"Content.","excerpt":"Excerpt."}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Validation failed", response["message"])
	assert.Equal(t, []interface{}{"title"}, response["errors"])
}

func TestUpdatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/posts/:slug", func(c *gin.Context) {
		c.Set("user_id", "author-123")
		handler.UpdatePost(c)
	})

	title := "New Title"
	in := usecase.UpdatePostInput{Title: &title}
	mockUseCase.On("UpdatePost", "old-title", "author-123", in).Return(&entity.Post{
		ID:    "post-123",
		Slug:  "new-title",
		Title: "New Title",
	}, nil)

	body := `{"title":"New Title"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/old-title", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post updated successfully", response["message"])
	post := response["post"].(map[string]interface{})
	assert.Equal(t, "new-title", post["slug"])

	mockUseCase.AssertExpectations(t)
}

func TestUpdatePost_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/posts/:slug", func(c *gin.Context) {
		c.Set("user_id", "intruder")
		handler.UpdatePost(c)
	})

	mockUseCase.On("UpdatePost", "my-post", "intruder", mock.AnythingOfType("usecase.UpdatePostInput")).
		Return(nil, usecase.ErrNotPostOwner)

	body := `{"content":"hijacked"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/posts/my-post", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Access denied", response["message"])
}

func TestDeletePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:slug", func(c *gin.Context) {
		c.Set("user_id", "author-123")
		handler.DeletePost(c)
	})

	mockUseCase.On("DeletePost", "my-post", "author-123").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/my-post", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post deleted successfully", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestDeletePost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/posts/:slug", handler.DeletePost)

	mockUseCase.On("DeletePost", "missing", "").Return(usecase.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/posts/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:slug/like", handler.LikePost)

	mockUseCase.On("LikePost", "my-post").Return(&entity.Post{ID: "post-123", Likes: 10}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/my-post/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(10), response["likes"])
}

func TestListPosts_ServerError(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	mockUseCase.On("ListPublished", mock.AnythingOfType("usecase.ListQuery")).
		Return(nil, errors.New("connection refused"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Server error", response["message"])
}
