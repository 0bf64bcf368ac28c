package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	provider       repositories.IdentityProvider
	accountService services.AccountService
	onboarding     services.OnboardingService
}

func NewAuthHandler(provider repositories.IdentityProvider, accountService services.AccountService, onboarding services.OnboardingService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:    NewBaseHandler(logger),
		provider:       provider,
		accountService: accountService,
		onboarding:     onboarding,
	}
}

type callbackResponse struct {
	AccessToken   string                 `json:"access_token"`
	User          *models.User           `json:"user"`
	Stage         models.OnboardingStage `json:"stage"`
	CanonicalPath string                 `json:"canonical_path"`
}

// Callback completes the OAuth authorization-code flow: the code is
// exchanged at the provider, the account is upserted, and the client
// gets the token plus the onboarding destination in one round trip.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "bad_request",
			"message": "missing authorization code",
		})
		return
	}

	h.LogRequest(c, "Processing login callback")

	assertion, err := h.provider.ExchangeCode(c.Request.Context(), code, state)
	if err != nil {
		h.LogError(c, err, "Code exchange failed")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "authorization code exchange failed",
		})
		return
	}

	account, stage, err := h.accountService.Login(c.Request.Context(), assertion)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, callbackResponse{
		AccessToken:   assertion.AccessToken,
		User:          account,
		Stage:         stage,
		CanonicalPath: services.CanonicalPath(stage),
	})
}

// ListAccounts is the admin view over registered accounts.
func (h *AuthHandler) ListAccounts(c *gin.Context) {
	filters := repositories.AccountFilters{
		Query: c.Query("q"),
		Limit: 100,
	}
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filters.Role = &r
	}

	accounts, total, err := h.accountService.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts": accounts,
		"total":    total,
	})
}

// Me returns the session shape the frontend consumes: account, stage
// and profile flags, resolved fresh on every call.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "not authenticated",
		})
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	stage, err := h.onboarding.ResolveForAccount(c.Request.Context(), account)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CurrentUserResponse{
		User:             account,
		Stage:            stage,
		HasProfile:       stage.Step == models.StepNeedsCompletion || stage.Step == models.StepDone,
		ProfileCompleted: stage.Step == models.StepDone,
	})
}
