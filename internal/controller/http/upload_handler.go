package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"blog-app/pkg/logger"
	"blog-app/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadHandler struct {
	storageClient *storage.Client
	logger        *logger.Logger
}

func NewUploadHandler(storageClient *storage.Client, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		storageClient: storageClient,
		logger:        log,
	}
}

// UploadFeaturedImage godoc
// @Summary      Upload a featured image
// @Description  Upload an image to S3 and return its public URL for use as a post's featured image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image formData file true "Image file (jpg/jpeg/png/gif/webp)"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /uploads/featured-image [post]
func (h *UploadHandler) UploadFeaturedImage(c *gin.Context) {
	if h.storageClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Uploads are not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported image format"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to read file"})
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("featured/%s/%s%s", c.GetString("user_id"), uuid.New().String(), ext)
	url, err := h.storageClient.UploadFile(key, src, contentType)
	if err != nil {
		h.logger.Error("Failed to upload featured image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
