package services

import (
	"context"
	"time"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type RoleSelectionRequest = validator.RoleSelectionRequest
type StudentProfileSubmission = validator.StudentProfileSubmission
type CompanyProfileSubmission = validator.CompanyProfileSubmission
type JobCreateRequest = validator.JobCreateRequest
type JobUpdateRequest = validator.JobUpdateRequest
type ApplicationCreateRequest = validator.ApplicationCreateRequest
type ApplicationStatusUpdateRequest = validator.ApplicationStatusUpdateRequest
type WaitlistJoinRequest = validator.WaitlistJoinRequest
type PresignUploadRequest = validator.PresignUploadRequest
type DeleteUploadRequest = validator.DeleteUploadRequest

type JobListResponse struct {
	Jobs  []*models.Job `json:"jobs"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

type ApplicationListResponse struct {
	Applications []*models.Application `json:"applications"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Size         int                   `json:"size"`
}

type NotificationListResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	Total         int64                  `json:"total"`
	Unread        int64                  `json:"unread"`
}

type NotificationRequest struct {
	Type     models.NotificationType     `json:"type" validate:"required"`
	Title    string                      `json:"title" validate:"required,max=200"`
	Message  string                      `json:"message" validate:"required,max=1000"`
	Priority models.NotificationPriority `json:"priority"`
	Data     map[string]interface{}      `json:"data,omitempty"`
}

// ===== SERVICE INTERFACES =====

// AccountService owns the account lifecycle around external login.
type AccountService interface {
	// Login upserts the account from a fresh identity assertion and
	// returns it together with the resolved onboarding stage.
	Login(ctx context.Context, assertion *repositories.IdentityAssertion) (*models.User, models.OnboardingStage, error)

	GetByID(ctx context.Context, id string) (*models.User, error)

	// SelectRole persists the one-time role choice.
	SelectRole(ctx context.Context, userID string, req *RoleSelectionRequest) error

	List(ctx context.Context, filters repositories.AccountFilters) ([]*models.User, int64, error)
}

// OnboardingService computes stages and routing decisions. Resolution
// is a read-only operation with no side effects.
type OnboardingService interface {
	// Resolve loads the account (nil ID means unauthenticated) and the
	// role-appropriate profile, then computes the stage. A failed read
	// surfaces ErrStageLookup, never a default stage.
	Resolve(ctx context.Context, userID string) (models.OnboardingStage, error)

	// ResolveForAccount computes the stage for an already-loaded
	// account, reading only the profile.
	ResolveForAccount(ctx context.Context, account *models.User) (models.OnboardingStage, error)

	// Status bundles stage and canonical path for the status endpoint.
	Status(ctx context.Context, userID string) (*models.OnboardingStatusResponse, error)
}

// ProfileService owns profile creation and completion.
type ProfileService interface {
	CreateStudentProfile(ctx context.Context, userID string, req *StudentProfileSubmission) (*models.StudentProfile, error)
	CreateCompanyProfile(ctx context.Context, userID string, req *CompanyProfileSubmission) (*models.CompanyProfile, error)

	GetStudentProfile(ctx context.Context, userID string) (*models.StudentProfile, error)
	GetCompanyProfile(ctx context.Context, userID string) (*models.CompanyProfile, error)

	UpdateStudentProfile(ctx context.Context, userID string, req *StudentProfileSubmission) (*models.StudentProfile, error)
	UpdateCompanyProfile(ctx context.Context, userID string, req *CompanyProfileSubmission) (*models.CompanyProfile, error)

	// CompleteProfile flips the completion flag for the account's role.
	CompleteProfile(ctx context.Context, userID string) error
}

// JobService owns the job-posting lifecycle for companies and browsing
// for everyone.
type JobService interface {
	Create(ctx context.Context, userID string, req *JobCreateRequest) (*models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, userID, id string, req *JobUpdateRequest) (*models.Job, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, filters repositories.JobFilters) (*JobListResponse, error)
	ListByCompany(ctx context.Context, userID string, filters repositories.JobFilters) (*JobListResponse, error)
}

// ApplicationService owns student applications and company reviews.
type ApplicationService interface {
	Apply(ctx context.Context, userID string, req *ApplicationCreateRequest) (*models.Application, error)
	GetByID(ctx context.Context, userID, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, userID, id string, req *ApplicationStatusUpdateRequest) error
	ListMine(ctx context.Context, userID string, filters repositories.ApplicationFilters) (*ApplicationListResponse, error)
	ListForJob(ctx context.Context, userID, jobID string, filters repositories.ApplicationFilters) (*ApplicationListResponse, error)
}

// WaitlistService owns the pre-launch signup flow.
type WaitlistService interface {
	Join(ctx context.Context, req *WaitlistJoinRequest) (*models.WaitlistEntry, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, filters repositories.WaitlistFilters) ([]*models.WaitlistEntry, int64, error)
	Invite(ctx context.Context, entryID string) error
	ExportXLSX(ctx context.Context) ([]byte, error)
}

// NotificationEventService persists notifications and fans them out to
// the event topic.
type NotificationEventService interface {
	Notify(ctx context.Context, userID string, req *NotificationRequest) error
	SendBulkNotification(ctx context.Context, userIDs []string, req *NotificationRequest) error
	ListByUser(ctx context.Context, userID string, filters repositories.NotificationFilters) (*NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}

// UploadService issues presigned upload URLs and deletes owned objects.
// Bytes never pass through this service.
type UploadService interface {
	PresignUpload(ctx context.Context, userID string, req *PresignUploadRequest) (*models.PresignedUploadResponse, error)
	DeleteUpload(ctx context.Context, userID string, req *DeleteUploadRequest) error
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Account() AccountService
	Onboarding() OnboardingService
	Profile() ProfileService
	Job() JobService
	Application() ApplicationService
	Waitlist() WaitlistService
	Notification() NotificationEventService
	Upload() UploadService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// timeoutForRead bounds stage-resolution reads; the guard treats an
// expired context as a lookup failure.
const timeoutForRead = 5 * time.Second
