package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/cache"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

type CompanyProfilePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCompanyProfilePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CompanyProfileRepository {
	return &CompanyProfilePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (c *CompanyProfilePostgreSQL) Create(ctx context.Context, profile *models.CompanyProfile) error {
	if err := c.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create company profile: %w", err)
	}
	cache.InvalidateAccountCache(ctx, c.cacheManager, profile.UserID)
	return nil
}

func (c *CompanyProfilePostgreSQL) GetByID(ctx context.Context, id string) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	if err := c.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("company profile %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}
	return &profile, nil
}

func (c *CompanyProfilePostgreSQL) GetByUserID(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	cacheKey := fmt.Sprintf("user:%s:company", userID)
	var profile models.CompanyProfile

	err := c.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &profile, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbProfile models.CompanyProfile
		if err := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProfile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("company profile for user %s: %w", userID, gorm.ErrRecordNotFound)
			}
			return nil, fmt.Errorf("failed to get company profile: %w", err)
		}
		return &dbProfile, nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (c *CompanyProfilePostgreSQL) Update(ctx context.Context, profile *models.CompanyProfile) error {
	if err := c.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update company profile: %w", err)
	}
	cache.InvalidateAccountCache(ctx, c.cacheManager, profile.UserID)
	return nil
}

func (c *CompanyProfilePostgreSQL) MarkCompleted(ctx context.Context, userID string) error {
	result := c.db.WithContext(ctx).Model(&models.CompanyProfile{}).
		Where("user_id = ?", userID).
		Update("profile_completed", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark company profile completed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateAccountCache(ctx, c.cacheManager, userID)
	return nil
}

func (c *CompanyProfilePostgreSQL) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.CompanyProfile{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check company profile existence: %w", err)
	}
	return count > 0, nil
}
