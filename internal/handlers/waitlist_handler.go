package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

type WaitlistHandler struct {
	BaseHandler
	waitlist services.WaitlistService
}

func NewWaitlistHandler(waitlist services.WaitlistService, logger utils.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		BaseHandler: NewBaseHandler(logger),
		waitlist:    waitlist,
	}
}

// Join is the public pre-launch signup endpoint.
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req services.WaitlistJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	entry, err := h.waitlist.Join(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondCreated(c, "you're on the list", gin.H{"email": entry.Email})
}

// Count powers the landing page counter.
func (h *WaitlistHandler) Count(c *gin.Context) {
	count, err := h.waitlist.Count(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.WaitlistCountResponse{Count: count})
}

// List is the admin view over the waitlist.
func (h *WaitlistHandler) List(c *gin.Context) {
	filters := repositories.WaitlistFilters{
		InvitedOnly: c.Query("invited") == "true",
		PendingOnly: c.Query("pending") == "true",
		Limit:       200,
	}

	entries, total, err := h.waitlist.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
	})
}

// Invite sends the signup email to one waitlist entry.
func (h *WaitlistHandler) Invite(c *gin.Context) {
	entryID := c.Param("id")
	h.LogRequest(c, "Inviting waitlist entry", "entry_id", entryID)

	if err := h.waitlist.Invite(c.Request.Context(), entryID); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondOK(c, "invitation sent", nil)
}

// Export streams the waitlist as a spreadsheet download.
func (h *WaitlistHandler) Export(c *gin.Context) {
	data, err := h.waitlist.ExportXLSX(c.Request.Context())
	if err != nil {
		h.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("waitlist-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
