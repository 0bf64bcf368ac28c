package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

type OnboardingHandler struct {
	BaseHandler
	onboarding services.OnboardingService
	accounts   services.AccountService
	profiles   services.ProfileService
}

func NewOnboardingHandler(onboarding services.OnboardingService, accounts services.AccountService, profiles services.ProfileService, logger utils.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler: NewBaseHandler(logger),
		onboarding:  onboarding,
		accounts:    accounts,
		profiles:    profiles,
	}
}

// Status returns the resolved stage and canonical path for the
// authenticated user. Every consumer reads the stage from here instead
// of re-deriving it.
func (h *OnboardingHandler) Status(c *gin.Context) {
	status, err := h.onboarding.Status(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// SelectRole sets the account role, once.
func (h *OnboardingHandler) SelectRole(c *gin.Context) {
	var req services.RoleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	userID := CurrentUserID(c)
	h.LogRequest(c, "Role selection", "user_id", userID, "role", req.Role)

	if err := h.accounts.SelectRole(c.Request.Context(), userID, &req); err != nil {
		h.RespondError(c, err)
		return
	}

	status, err := h.onboarding.Status(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondOK(c, "role selected", status)
}

// CreateStudentProfile handles the student onboarding form.
func (h *OnboardingHandler) CreateStudentProfile(c *gin.Context) {
	var req services.StudentProfileSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	profile, err := h.profiles.CreateStudentProfile(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondCreated(c, "student profile created", profile)
}

// CreateCompanyProfile handles the company onboarding form.
func (h *OnboardingHandler) CreateCompanyProfile(c *gin.Context) {
	var req services.CompanyProfileSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	profile, err := h.profiles.CreateCompanyProfile(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondCreated(c, "company profile created", profile)
}

// Complete marks the role-appropriate profile as completed, moving the
// stage to Done.
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID := CurrentUserID(c)

	if err := h.profiles.CompleteProfile(c.Request.Context(), userID); err != nil {
		h.RespondError(c, err)
		return
	}

	status, err := h.onboarding.Status(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	h.RespondOK(c, "profile completed", status)
}

// GetStudentProfile returns the caller's student profile.
func (h *OnboardingHandler) GetStudentProfile(c *gin.Context) {
	profile, err := h.profiles.GetStudentProfile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetCompanyProfile returns the caller's company profile.
func (h *OnboardingHandler) GetCompanyProfile(c *gin.Context) {
	profile, err := h.profiles.GetCompanyProfile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateStudentProfile replaces the caller's student profile fields.
func (h *OnboardingHandler) UpdateStudentProfile(c *gin.Context) {
	var req services.StudentProfileSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	profile, err := h.profiles.UpdateStudentProfile(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateCompanyProfile replaces the caller's company profile fields.
func (h *OnboardingHandler) UpdateCompanyProfile(c *gin.Context) {
	var req services.CompanyProfileSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "invalid request body",
		})
		return
	}

	profile, err := h.profiles.UpdateCompanyProfile(c.Request.Context(), CurrentUserID(c), &req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
