package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

type UploadHandler struct {
	BaseHandler
	uploads services.UploadService
}

func NewUploadHandler(uploads services.UploadService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		uploads:     uploads,
	}
}

// Presign issues a one-shot upload URL. The browser uploads directly
// to storage; the API only ever sees the resulting key.
func (h *UploadHandler) Presign(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "storage_unavailable",
			"message": "file storage is not configured",
		})
		return
	}

	var req services.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	response, err := h.uploads.PresignUpload(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete removes an uploaded object owned by the caller.
func (h *UploadHandler) Delete(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "storage_unavailable",
			"message": "file storage is not configured",
		})
		return
	}

	var req services.DeleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	if err := h.uploads.DeleteUpload(c.Request.Context(), CurrentUserID(c), &req); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondOK(c, "upload deleted", nil)
}
