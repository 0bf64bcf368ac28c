package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/events"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

// ServiceManagerConfig carries the external collaborators the services
// need beyond the repository.
type ServiceManagerConfig struct {
	EventPublisher EventPublisherProvider
	Mailer         InviteMailer
	S3Client       *s3.Client
	Storage        StorageConfig
}

// EventPublisherProvider lets the manager defer publisher construction
// until Initialize, matching the repository lifecycle.
type EventPublisherProvider func() (events.EventPublisher, error)

type serviceManager struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    ServiceManagerConfig

	eventPublisher events.EventPublisher

	accountService      AccountService
	onboardingService   OnboardingService
	profileService      ProfileService
	jobService          JobService
	applicationService  ApplicationService
	waitlistService     WaitlistService
	notificationService NotificationEventService
	uploadService       UploadService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: v,
		config:    config,
	}
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	publisher, err := sm.config.EventPublisher()
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	sm.eventPublisher = publisher

	sm.onboardingService = NewOnboardingService(sm.repo, sm.logger)
	sm.accountService = NewAccountService(sm.repo, sm.onboardingService, sm.eventPublisher, sm.logger, sm.validator)
	sm.profileService = NewProfileService(sm.repo, sm.eventPublisher, sm.logger, sm.validator)
	sm.jobService = NewJobService(sm.repo, sm.logger, sm.validator)
	sm.applicationService = NewApplicationService(sm.repo, sm.eventPublisher, sm.logger, sm.validator)
	sm.waitlistService = NewWaitlistService(sm.repo, sm.config.Mailer, sm.eventPublisher, sm.logger, sm.validator)
	sm.notificationService = NewNotificationEventService(sm.repo, sm.eventPublisher, sm.logger, sm.validator)

	if sm.config.S3Client != nil {
		sm.uploadService = NewUploadService(sm.config.S3Client, sm.config.Storage, sm.logger, sm.validator)
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")
	return nil
}

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.accountService
}

func (sm *serviceManager) Onboarding() OnboardingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.onboardingService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.profileService
}

func (sm *serviceManager) Job() JobService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.jobService
}

func (sm *serviceManager) Application() ApplicationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.applicationService
}

func (sm *serviceManager) Waitlist() WaitlistService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.waitlistService
}

func (sm *serviceManager) Notification() NotificationEventService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.notificationService
}

func (sm *serviceManager) Upload() UploadService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.uploadService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.eventPublisher != nil {
		if err := sm.eventPublisher.Close(); err != nil {
			sm.logger.Warn("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	return nil
}
