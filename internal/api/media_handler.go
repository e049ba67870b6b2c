package api

import (
	"fmt"
	"net/http"

	"fitcoach/coaching-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaHandler issues presigned URLs for direct-to-storage uploads and
// downloads of workout GIFs and meal images.
type MediaHandler struct {
	fileStorage storage.FileStorage
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(fileStorage storage.FileStorage) *MediaHandler {
	return &MediaHandler{fileStorage: fileStorage}
}

// --- DTOs ---

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
	// Kind scopes the object key prefix so media types stay separated in
	// the bucket.
	Kind string `json:"kind" binding:"required,oneof=workout-gif meal-image"`
}

type UploadURLResponse struct {
	ObjectKey string `json:"objectKey"`
	UploadURL string `json:"uploadUrl"`
}

// --- Handler Methods ---

// CreateUploadURL handles POST /media/upload-url. The object key is a
// random UUID under the kind prefix; the client must PUT with the same
// Content-Type it declared here.
func (h *MediaHandler) CreateUploadURL(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	objectKey := fmt.Sprintf("%s/%s/%s", req.Kind, actor.ID.Hex(), uuid.NewString())
	url, err := h.fileStorage.GeneratePresignedUploadURL(c.Request.Context(), objectKey, req.ContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, UploadURLResponse{
		ObjectKey: objectKey,
		UploadURL: url,
	})
}

// GetDownloadURL handles GET /media/download-url?key=...
func (h *MediaHandler) GetDownloadURL(c *gin.Context) {
	if _, err := actorFromContext(c); err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'key' is required.")
		return
	}

	url, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"objectKey":   objectKey,
		"downloadUrl": url,
	})
}
