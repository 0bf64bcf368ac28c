package repositories

import (
	"context"
	"time"

	"github.com/GenzHireHub/platform-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type JobFilters struct {
	Type      *models.JobType `json:"type"`
	Location  *string         `json:"location"`
	CompanyID *string         `json:"company_id"`
	Remote    *bool           `json:"remote"`
	Featured  *bool           `json:"featured"`
	Active    *bool           `json:"active"`
	Query     string          `json:"query"`
	Limit     int             `json:"limit"`
	Offset    int             `json:"offset"`
	SortBy    string          `json:"sort_by"`    // "created_at", "deadline", "title"
	SortOrder string          `json:"sort_order"` // "asc", "desc"
}

type ApplicationFilters struct {
	Status    *models.ApplicationStatus `json:"status"`
	JobID     *string                   `json:"job_id"`
	StudentID *string                   `json:"student_id"`
	DateFrom  *time.Time                `json:"date_from"`
	DateTo    *time.Time                `json:"date_to"`
	Limit     int                       `json:"limit"`
	Offset    int                       `json:"offset"`
}

type WaitlistFilters struct {
	Role        *models.UserRole `json:"role"`
	InvitedOnly bool             `json:"invited_only"`
	PendingOnly bool             `json:"pending_only"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
}

type NotificationFilters struct {
	UnreadOnly bool `json:"unread_only"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}

// ===== DOMAIN REPOSITORIES =====

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters JobFilters) ([]*models.Job, int64, error)
	GetByCompany(ctx context.Context, companyID string, filters JobFilters) ([]*models.Job, int64, error)
}

type ApplicationRepository interface {
	// Create inserts the application; the unique (job_id, student_id)
	// index rejects duplicates at the storage layer.
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string, interviewDate *time.Time) error
	ListByStudent(ctx context.Context, studentID string, filters ApplicationFilters) ([]*models.Application, int64, error)
	ListByJob(ctx context.Context, jobID string, filters ApplicationFilters) ([]*models.Application, int64, error)
	ExistsByJobAndStudent(ctx context.Context, jobID, studentID string) (bool, error)
}

type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	GetByID(ctx context.Context, id string) (*models.WaitlistEntry, error)
	GetByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, filters WaitlistFilters) ([]*models.WaitlistEntry, int64, error)
	MarkInvited(ctx context.Context, id string, at time.Time) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	CreateBatch(ctx context.Context, notifications []*models.Notification) error
	ListByUser(ctx context.Context, userID string, filters NotificationFilters) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
