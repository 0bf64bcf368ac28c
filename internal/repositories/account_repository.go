package repositories

import (
	"context"

	"github.com/GenzHireHub/platform-service/internal/models"
)

// AccountFilters defines filters for account queries.
type AccountFilters struct {
	Query  string // Search query for name or email
	Role   *models.UserRole
	Limit  int
	Offset int
}

// AccountRepository owns the users table. Accounts are created on first
// successful external authentication and never deleted here.
type AccountRepository interface {
	// CreateOrUpdate upserts the account from an identity assertion,
	// matching by email first (the unique constraint), then by ID.
	CreateOrUpdate(ctx context.Context, user *models.User) (*models.User, error)

	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// SetRole persists role selection. Implementations must only update
	// accounts whose role is currently unset; a zero rows-affected
	// result means the role was already chosen.
	SetRole(ctx context.Context, id string, role models.UserRole) error

	List(ctx context.Context, filters AccountFilters) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
