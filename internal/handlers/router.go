package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/services"
	"github.com/GenzHireHub/platform-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	onboardingHandler   *OnboardingHandler
	jobHandler          *JobHandler
	applicationHandler  *ApplicationHandler
	waitlistHandler     *WaitlistHandler
	uploadHandler       *UploadHandler
	notificationHandler *NotificationHandler

	authMiddleware  *AuthMiddleware
	onboardingGuard *OnboardingGuard

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	provider repositories.IdentityProvider,
	accountRepo repositories.AccountRepository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(provider, serviceManager.Account(), serviceManager.Onboarding(), logger),
		onboardingHandler:   NewOnboardingHandler(serviceManager.Onboarding(), serviceManager.Account(), serviceManager.Profile(), logger),
		jobHandler:          NewJobHandler(serviceManager.Job(), logger),
		applicationHandler:  NewApplicationHandler(serviceManager.Application(), logger),
		waitlistHandler:     NewWaitlistHandler(serviceManager.Waitlist(), logger),
		uploadHandler:       NewUploadHandler(serviceManager.Upload(), logger),
		notificationHandler: NewNotificationHandler(serviceManager.Notification(), logger),
		authMiddleware:      NewAuthMiddleware(provider, accountRepo),
		onboardingGuard:     NewOnboardingGuard(serviceManager.Onboarding(), logger),
		serviceManager:      serviceManager,
	}
}

// SetupRoutes wires every endpoint. Page navigation goes through the
// onboarding guard; /api routes carry explicit auth middleware instead.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	// Public pre-launch endpoints
	router.POST("/api/waitlist", hm.waitlistHandler.Join)
	router.GET("/api/waitlist/count", hm.waitlistHandler.Count)

	// OAuth callback completes the login handshake
	router.GET("/api/auth/callback", hm.authHandler.Callback)

	// Authenticated API
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.Authenticate())
	{
		v1.GET("/auth/me", hm.authHandler.Me)

		onboarding := v1.Group("/onboarding")
		{
			onboarding.GET("/status", hm.onboardingHandler.Status)
			onboarding.POST("/role", hm.onboardingHandler.SelectRole)
			onboarding.POST("/student-profile", hm.onboardingHandler.CreateStudentProfile)
			onboarding.POST("/company-profile", hm.onboardingHandler.CreateCompanyProfile)
			onboarding.POST("/complete", hm.onboardingHandler.Complete)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("/student", hm.authMiddleware.RequireRole(models.RoleStudent), hm.onboardingHandler.GetStudentProfile)
			profiles.PUT("/student", hm.authMiddleware.RequireRole(models.RoleStudent), hm.onboardingHandler.UpdateStudentProfile)
			profiles.GET("/company", hm.authMiddleware.RequireRole(models.RoleCompany), hm.onboardingHandler.GetCompanyProfile)
			profiles.PUT("/company", hm.authMiddleware.RequireRole(models.RoleCompany), hm.onboardingHandler.UpdateCompanyProfile)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.GET("", hm.jobHandler.ListJobs)
			jobs.GET("/:id", hm.jobHandler.GetJob)
			jobs.POST("", hm.authMiddleware.RequireRole(models.RoleCompany), hm.jobHandler.CreateJob)
			jobs.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleCompany), hm.jobHandler.UpdateJob)
			jobs.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleCompany), hm.jobHandler.DeleteJob)
			jobs.GET("/:id/applications", hm.authMiddleware.RequireRole(models.RoleCompany), hm.applicationHandler.ListForJob)
		}

		company := v1.Group("/company")
		company.Use(hm.authMiddleware.RequireRole(models.RoleCompany))
		{
			company.GET("/jobs", hm.jobHandler.ListMyJobs)
		}

		applications := v1.Group("/applications")
		{
			applications.POST("", hm.authMiddleware.RequireRole(models.RoleStudent), hm.applicationHandler.Apply)
			applications.GET("/mine", hm.authMiddleware.RequireRole(models.RoleStudent), hm.applicationHandler.ListMine)
			applications.GET("/:id", hm.applicationHandler.GetApplication)
			applications.PUT("/:id/status", hm.authMiddleware.RequireRole(models.RoleCompany), hm.applicationHandler.UpdateStatus)
		}

		uploads := v1.Group("/uploads")
		{
			uploads.POST("/presign", hm.uploadHandler.Presign)
			uploads.DELETE("", hm.uploadHandler.Delete)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.List)
			notifications.PUT("/:id/read", hm.notificationHandler.MarkRead)
		}

		admin := v1.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/accounts", hm.authHandler.ListAccounts)
			admin.GET("/waitlist", hm.waitlistHandler.List)
			admin.POST("/waitlist/:id/invite", hm.waitlistHandler.Invite)
			admin.GET("/waitlist/export", hm.waitlistHandler.Export)
			admin.POST("/notifications/broadcast", hm.notificationHandler.Broadcast)
		}
	}

	// Page navigation: optional auth identifies the user, the guard
	// redirects to the canonical onboarding step, then the SPA shell
	// is served.
	router.NoRoute(hm.authMiddleware.OptionalAuthenticate(), hm.onboardingGuard.Guard(), hm.renderPage)
}

// renderPage stands in for the frontend: once the guard lets a path
// through, the SPA shell is served.
func (hm *HandlerManager) renderPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"path":      c.Request.URL.Path,
		"timestamp": time.Now().UTC(),
	})
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "platform-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
