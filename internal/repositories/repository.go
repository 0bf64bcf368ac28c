package repositories

import "context"

// Repository aggregates all data-store access behind one seam.
type Repository interface {
	// Identity and onboarding domain
	Account() AccountRepository
	StudentProfile() StudentProfileRepository
	CompanyProfile() CompanyProfileRepository

	// Job board domain
	Job() JobRepository
	Application() ApplicationRepository

	// Pre-launch domain
	Waitlist() WaitlistRepository
	Notification() NotificationRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
