package handler

import (
	"errors"
	"net/http"

	"github.com/advisorsite/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadImage 处理图片上传请求，返回可直接写入 imageUrl 字段的地址。
func (a *API) UploadImage(c *gin.Context) {
	if a.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured", "success": 0})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image found in the upload", "success": 0})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read the upload", "success": 0})
		return
	}
	defer src.Close()

	object, err := a.images.Save(c.Request.Context(), src)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": 0})
		case errors.Is(err, storage.ErrTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error(), "success": 0})
		default:
			a.logger.Error("store upload failed", zap.String("filename", file.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store the image", "success": 0})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": 1,
		"message": "uploaded",
		"data": gin.H{
			"filePath": object.URL,
			"url":      object.URL,
			"key":      object.Key,
			"width":    object.Width,
			"height":   object.Height,
		},
	})
}
