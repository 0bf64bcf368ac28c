package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GenzHireHub/platform-service/internal/cache"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

type AccountPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAccountPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AccountRepository {
	return &AccountPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// CreateOrUpdate upserts the account from an identity assertion. Email
// is the primary unique constraint, so match by it first and fall back
// to the subject ID; the role column is never touched here.
func (a *AccountPostgreSQL) CreateOrUpdate(ctx context.Context, user *models.User) (*models.User, error) {
	var existing models.User
	err := a.db.WithContext(ctx).Where("email = ?", user.Email).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up account by email: %w", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = a.db.WithContext(ctx).Where("id = ?", user.ID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up account by id: %w", err)
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if createErr := a.db.WithContext(ctx).Create(user).Error; createErr != nil {
			return nil, fmt.Errorf("failed to create account: %w", createErr)
		}
		return user, nil
	}

	updates := map[string]interface{}{
		"id":             user.ID,
		"name":           user.Name,
		"email":          user.Email,
		"avatar_url":     user.AvatarURL,
		"email_verified": user.EmailVerified,
	}
	if updateErr := a.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR id = ?", existing.Email, existing.ID).
		Updates(updates).Error; updateErr != nil {
		return nil, fmt.Errorf("failed to update account: %w", updateErr)
	}

	cache.InvalidateAccountCache(ctx, a.cacheManager, user.ID)

	refreshed, err := a.fetchByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

func (a *AccountPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var user models.User

	err := a.cacheManager.Account.CacheOrExecute(ctx, cacheKey, &user, cache.AccountCacheConfig.TTL, func() (interface{}, error) {
		return a.fetchByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *AccountPostgreSQL) fetchByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := a.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &user, nil
}

func (a *AccountPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := a.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account with email %s: %w", email, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &user, nil
}

// SetRole persists role selection. The WHERE role IS NULL clause makes
// the mutation set-once: a second selection matches zero rows.
func (a *AccountPostgreSQL) SetRole(ctx context.Context, id string, role models.UserRole) error {
	result := a.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND role IS NULL", id).
		Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("failed to set account role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateAccountCache(ctx, a.cacheManager, id)
	return nil
}

func (a *AccountPostgreSQL) List(ctx context.Context, filters repositories.AccountFilters) ([]*models.User, int64, error) {
	query := a.db.WithContext(ctx).Model(&models.User{})

	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	var users []*models.User
	if err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Limit(limit).Offset(filters.Offset).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	return users, total, nil
}

func (a *AccountPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return count > 0, nil
}
