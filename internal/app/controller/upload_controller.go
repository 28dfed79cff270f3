package controller

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/errors"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/internal/middleware"
)

const maxImageSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Uploader is the storage backend for product images
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type UploadController struct {
	uploader Uploader
}

func NewUploadController(uploader Uploader) *UploadController {
	return &UploadController{
		uploader: uploader,
	}
}

// UploadProductImage stores a product image. When the storage backend is
// unreachable the image comes back as an inline data URI so the admin can
// still save the product.
// POST /api/v1/admin/products/images
func (ctrl *UploadController) UploadProductImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Image file is required")
		return
	}

	if fileHeader.Size > maxImageSize {
		apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Image exceeds the 5 MB limit")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG, WebP and GIF images are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err)
		apperrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("Failed to read uploaded file", err)
		apperrors.InternalError(c, "Failed to read uploaded file")
		return
	}

	if ctrl.uploader != nil {
		url, err := ctrl.uploader.Upload(c.Request.Context(), fileHeader.Filename, contentType, data)
		if err == nil {
			log.Info("Product image uploaded", map[string]interface{}{
				"filename": fileHeader.Filename,
				"size":     fileHeader.Size,
			})
			c.JSON(http.StatusCreated, gin.H{
				"url":    url,
				"inline": false,
			})
			return
		}
		log.Warn("Storage upload failed, falling back to inline image", map[string]interface{}{
			"filename": fileHeader.Filename,
			"error":    err.Error(),
		})
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	c.JSON(http.StatusCreated, gin.H{
		"url":    dataURI,
		"inline": true,
	})
}
