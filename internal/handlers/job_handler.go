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

type JobHandler struct {
	BaseHandler
	jobs services.JobService
}

func NewJobHandler(jobs services.JobService, logger utils.Logger) *JobHandler {
	return &JobHandler{
		BaseHandler: NewBaseHandler(logger),
		jobs:        jobs,
	}
}

// ListJobs is the public browse endpoint.
func (h *JobHandler) ListJobs(c *gin.Context) {
	filters := h.parseJobFilters(c)

	response, err := h.jobs.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req services.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondCreated(c, "job created", job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req services.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), CurrentUserID(c), c.Param("id"), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.jobs.Delete(c.Request.Context(), CurrentUserID(c), c.Param("id")); err != nil {
		h.RespondError(c, err)
		return
	}
	h.RespondOK(c, "job deleted", nil)
}

// ListMyJobs returns the caller's company postings, inactive included.
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	filters := h.parseJobFilters(c)

	response, err := h.jobs.ListByCompany(c.Request.Context(), CurrentUserID(c), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *JobHandler) parseJobFilters(c *gin.Context) repositories.JobFilters {
	filters := repositories.JobFilters{
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if jobType := c.Query("type"); jobType != "" {
		t := models.JobType(jobType)
		filters.Type = &t
	}
	if location := c.Query("location"); location != "" {
		filters.Location = &location
	}
	if remote := c.Query("remote"); remote != "" {
		value := remote == "true"
		filters.Remote = &value
	}
	if featured := c.Query("featured"); featured != "" {
		value := featured == "true"
		filters.Featured = &value
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
