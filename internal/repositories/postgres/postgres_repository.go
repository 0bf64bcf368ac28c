package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/cache"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	account        repositories.AccountRepository
	studentProfile repositories.StudentProfileRepository
	companyProfile repositories.CompanyProfileRepository
	job            repositories.JobRepository
	application    repositories.ApplicationRepository
	waitlist       repositories.WaitlistRepository
	notification   repositories.NotificationRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository wires all sub-repositories over one gorm
// handle and one cache manager.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}

	repo.account = NewAccountPostgreSQL(config.DB, cacheManager)
	repo.studentProfile = NewStudentProfilePostgreSQL(config.DB, cacheManager)
	repo.companyProfile = NewCompanyProfilePostgreSQL(config.DB, cacheManager)
	repo.job = NewJobPostgreSQL(config.DB, cacheManager)
	repo.application = NewApplicationPostgreSQL(config.DB)
	repo.waitlist = NewWaitlistPostgreSQL(config.DB, cacheManager)
	repo.notification = NewNotificationPostgreSQL(config.DB)

	return repo
}

func (r *PostgreSQLRepository) Account() repositories.AccountRepository {
	return r.account
}

func (r *PostgreSQLRepository) StudentProfile() repositories.StudentProfileRepository {
	return r.studentProfile
}

func (r *PostgreSQLRepository) CompanyProfile() repositories.CompanyProfileRepository {
	return r.companyProfile
}

func (r *PostgreSQLRepository) Job() repositories.JobRepository {
	return r.job
}

func (r *PostgreSQLRepository) Application() repositories.ApplicationRepository {
	return r.application
}

func (r *PostgreSQLRepository) Waitlist() repositories.WaitlistRepository {
	return r.waitlist
}

func (r *PostgreSQLRepository) Notification() repositories.NotificationRepository {
	return r.notification
}

// WithTransaction executes fn within a database transaction; every
// repository handed to fn is bound to the transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}

		txRepo.account = NewAccountPostgreSQL(tx, r.cacheManager)
		txRepo.studentProfile = NewStudentProfilePostgreSQL(tx, r.cacheManager)
		txRepo.companyProfile = NewCompanyProfilePostgreSQL(tx, r.cacheManager)
		txRepo.job = NewJobPostgreSQL(tx, r.cacheManager)
		txRepo.application = NewApplicationPostgreSQL(tx)
		txRepo.waitlist = NewWaitlistPostgreSQL(tx, r.cacheManager)
		txRepo.notification = NewNotificationPostgreSQL(tx)

		return fn(txRepo)
	})
}

// Ping checks the health of database and cache connections.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}

	return nil
}

// Close closes database and cache connections.
func (r *PostgreSQLRepository) Close() error {
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// Manager implements repositories.RepositoryManager.
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) *Manager {
	return &Manager{config: config}
}

func (m *Manager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database handle is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(_ context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
