package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ImageUploader is implemented by services.ImageStore.
type ImageUploader interface {
	Upload(ctx context.Context, folder, contentType string, size int64, body io.Reader) (string, error)
}

// ImageHandler 图片处理 Handler
type ImageHandler struct {
	store ImageUploader
}

// NewImageHandler 创建 ImageHandler 实例，store 为 nil 时上传接口返回 503
func NewImageHandler(store ImageUploader) *ImageHandler {
	return &ImageHandler{store: store}
}

// Upload 处理图片上传请求 (POST /api/admin/uploads)
func (h *ImageHandler) Upload(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	url, err := h.store.Upload(c.Request.Context(), c.DefaultPostForm("folder", "misc"),
		header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}
