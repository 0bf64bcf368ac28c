package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

type ApplicationHandler struct {
	BaseHandler
	applications services.ApplicationService
}

func NewApplicationHandler(applications services.ApplicationService, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:  NewBaseHandler(logger),
		applications: applications,
	}
}

// Apply submits a student application to a job.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req services.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	application, err := h.applications.Apply(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondCreated(c, "application submitted", application)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	application, err := h.applications.GetByID(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

// UpdateStatus records a company's review decision.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req services.ApplicationStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	if err := h.applications.UpdateStatus(c.Request.Context(), CurrentUserID(c), c.Param("id"), &req); err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondOK(c, "application status updated", nil)
}

// ListMine returns the caller's applications.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	response, err := h.applications.ListMine(c.Request.Context(), CurrentUserID(c), h.parseApplicationFilters(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ListForJob returns applications for one of the caller's postings.
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	response, err := h.applications.ListForJob(c.Request.Context(), CurrentUserID(c), c.Param("id"), h.parseApplicationFilters(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *ApplicationHandler) parseApplicationFilters(c *gin.Context) repositories.ApplicationFilters {
	var filters repositories.ApplicationFilters

	if status := c.Query("status"); status != "" {
		s := models.ApplicationStatus(status)
		filters.Status = &s
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	filters.Limit = size
	filters.Offset = (page - 1) * size

	return filters
}
