package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/cache"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

type WaitlistPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewWaitlistPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.WaitlistRepository {
	return &WaitlistPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (w *WaitlistPostgreSQL) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	if err := w.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	cache.InvalidateWaitlistCache(ctx, w.cacheManager)
	return nil
}

func (w *WaitlistPostgreSQL) GetByID(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := w.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("waitlist entry %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}
	return &entry, nil
}

func (w *WaitlistPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry
	if err := w.db.WithContext(ctx).Where("email = ?", email).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("waitlist entry for %s: %w", email, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get waitlist entry: %w", err)
	}
	return &entry, nil
}

// Count serves the landing page, so it is cached with a short TTL.
func (w *WaitlistPostgreSQL) Count(ctx context.Context) (int64, error) {
	if cached, err := w.cacheManager.Waitlist.GetString(ctx, "count"); err == nil {
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return count, nil
		}
	}

	var count int64
	if err := w.db.WithContext(ctx).Model(&models.WaitlistEntry{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}

	if err := w.cacheManager.Waitlist.SetString(ctx, "count",
		strconv.FormatInt(count, 10), cache.WaitlistCacheConfig.TTL); err != nil {
		// Cache failures never block the count
		_ = err
	}

	return count, nil
}

func (w *WaitlistPostgreSQL) List(ctx context.Context, filters repositories.WaitlistFilters) ([]*models.WaitlistEntry, int64, error) {
	query := w.db.WithContext(ctx).Model(&models.WaitlistEntry{})

	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.InvitedOnly {
		query = query.Where("invited_at IS NOT NULL")
	}
	if filters.PendingOnly {
		query = query.Where("invited_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count waitlist entries: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	var entries []*models.WaitlistEntry
	if err := query.Order("created_at ASC").
		Limit(limit).Offset(filters.Offset).
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list waitlist entries: %w", err)
	}

	return entries, total, nil
}

func (w *WaitlistPostgreSQL) MarkInvited(ctx context.Context, id string, at time.Time) error {
	result := w.db.WithContext(ctx).Model(&models.WaitlistEntry{}).
		Where("id = ? AND invited_at IS NULL", id).
		Update("invited_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to mark waitlist entry invited: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
