package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

// OnboardingGuard enforces that every navigation request matches the
// user's resolved onboarding stage. It sits on the page routes only;
// API routes, static assets and the public allow-list bypass it inside
// DecideRoute.
type OnboardingGuard struct {
	BaseHandler
	onboarding services.OnboardingService
}

func NewOnboardingGuard(onboarding services.OnboardingService, logger utils.Logger) *OnboardingGuard {
	return &OnboardingGuard{
		BaseHandler: NewBaseHandler(logger),
		onboarding:  onboarding,
	}
}

// Guard resolves the stage once per request and either passes the
// request through or redirects to the canonical path for the stage.
// A failed lookup is surfaced once as a retryable error, never as a
// redirect, so no redirect storm can follow a store outage.
func (g *OnboardingGuard) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if services.PathExempt(path) {
			c.Next()
			return
		}

		stage, err := g.onboarding.Resolve(c.Request.Context(), CurrentUserID(c))
		if err != nil {
			g.LogError(c, err, "Stage resolution failed", "path", path)
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error:     "lookup_failed",
				Message:   "could not determine onboarding status, please retry",
				Retryable: true,
				Timestamp: time.Now().UTC(),
				Path:      path,
			})
			c.Abort()
			return
		}

		decision := services.DecideRoute(path, stage)
		if decision.Proceed {
			c.Next()
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, decision.RedirectTo)
		c.Abort()
	}
}
