package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

type ErrorResponse = models.ErrorResponse
type SuccessResponse = models.SuccessResponse

// BaseHandler carries the shared handler plumbing: logging and the
// mapping from service errors to HTTP responses.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c, h.logger).Error(msg, args...)
}

// RespondError maps the service error taxonomy onto HTTP statuses.
// Stage-lookup failures are the one retryable case and are never
// disguised as a normal response.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "validation_failed",
			Message:   verrs.Error(),
			Details:   verrs,
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrStageLookup):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:     "lookup_failed",
			Message:   "could not determine onboarding status, please retry",
			Retryable: true,
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return

	case errors.Is(err, services.ErrDuplicateProfile):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:     "duplicate_profile",
			Message:   "profile already exists",
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return

	case errors.Is(err, services.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:     "duplicate_application",
			Message:   "you have already applied for this job",
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return

	case errors.Is(err, services.ErrRoleAlreadySet):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:     "role_already_set",
			Message:   "account role has already been selected",
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return

	case errors.Is(err, services.ErrInvalidRoleTransition):
		// Integration error, not user-recoverable.
		h.LogError(c, err, "Role mismatch")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "invalid_role_transition",
			Message:   "request does not match the account role",
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	var serviceErr *services.ServiceError
	if errors.As(err, &serviceErr) {
		status := http.StatusInternalServerError
		switch serviceErr.Kind {
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindPermission:
			status = http.StatusForbidden
		case services.KindConflict:
			status = http.StatusConflict
		case services.KindValidation:
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{
			Error:     serviceErr.Kind,
			Message:   serviceErr.Error(),
			Timestamp: time.Now().UTC(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.LogError(c, err, "Unhandled service error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:     "internal_error",
		Message:   "an unexpected error occurred",
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}

func (h *BaseHandler) RespondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func (h *BaseHandler) RespondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// CurrentUserID extracts the authenticated subject set by the auth
// middleware. Empty string means unauthenticated.
func CurrentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
