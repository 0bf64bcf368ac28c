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

type StudentProfilePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentProfilePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.StudentProfileRepository {
	return &StudentProfilePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

// Create inserts the profile. A duplicate user_id surfaces as
// gorm.ErrDuplicatedKey via the driver's error translation; callers map
// it to the duplicate-profile error.
func (s *StudentProfilePostgreSQL) Create(ctx context.Context, profile *models.StudentProfile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create student profile: %w", err)
	}
	cache.InvalidateAccountCache(ctx, s.cacheManager, profile.UserID)
	return nil
}

func (s *StudentProfilePostgreSQL) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student profile %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}
	return &profile, nil
}

func (s *StudentProfilePostgreSQL) GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	cacheKey := fmt.Sprintf("user:%s:student", userID)
	var profile models.StudentProfile

	err := s.cacheManager.Profile.CacheOrExecute(ctx, cacheKey, &profile, cache.ProfileCacheConfig.TTL, func() (interface{}, error) {
		var dbProfile models.StudentProfile
		if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&dbProfile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("student profile for user %s: %w", userID, gorm.ErrRecordNotFound)
			}
			return nil, fmt.Errorf("failed to get student profile: %w", err)
		}
		return &dbProfile, nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (s *StudentProfilePostgreSQL) Update(ctx context.Context, profile *models.StudentProfile) error {
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update student profile: %w", err)
	}
	cache.InvalidateAccountCache(ctx, s.cacheManager, profile.UserID)
	return nil
}

func (s *StudentProfilePostgreSQL) MarkCompleted(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Model(&models.StudentProfile{}).
		Where("user_id = ?", userID).
		Update("profile_completed", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark student profile completed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.InvalidateAccountCache(ctx, s.cacheManager, userID)
	return nil
}

func (s *StudentProfilePostgreSQL) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.StudentProfile{}).
		Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check student profile existence: %w", err)
	}
	return count > 0, nil
}
