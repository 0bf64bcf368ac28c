package repositories

import (
	"context"

	"github.com/GenzHireHub/platform-service/internal/models"
)

// StudentProfileRepository owns the student variant of the onboarding
// payload. At most one row per account, enforced by the unique user_id
// index; concurrent duplicate creates surface the constraint violation.
type StudentProfileRepository interface {
	Create(ctx context.Context, profile *models.StudentProfile) error
	GetByID(ctx context.Context, id string) (*models.StudentProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
	Update(ctx context.Context, profile *models.StudentProfile) error
	MarkCompleted(ctx context.Context, userID string) error
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
}

// CompanyProfileRepository owns the company variant.
type CompanyProfileRepository interface {
	Create(ctx context.Context, profile *models.CompanyProfile) error
	GetByID(ctx context.Context, id string) (*models.CompanyProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.CompanyProfile, error)
	Update(ctx context.Context, profile *models.CompanyProfile) error
	MarkCompleted(ctx context.Context, userID string) error
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
}
