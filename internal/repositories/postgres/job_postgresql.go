package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/cache"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

type JobPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewJobPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.JobRepository {
	return &JobPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (j *JobPostgreSQL) Create(ctx context.Context, job *models.Job) error {
	if err := j.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	cache.InvalidateJobCache(ctx, j.cacheManager, job.ID, job.CompanyID)
	return nil
}

func (j *JobPostgreSQL) GetByID(ctx context.Context, id string) (*models.Job, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var job models.Job

	err := j.cacheManager.Job.CacheOrExecute(ctx, cacheKey, &job, cache.JobCacheConfig.TTL, func() (interface{}, error) {
		var dbJob models.Job
		if err := j.db.WithContext(ctx).Preload("Company").First(&dbJob, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("job %s: %w", id, gorm.ErrRecordNotFound)
			}
			return nil, fmt.Errorf("failed to get job: %w", err)
		}
		return &dbJob, nil
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

func (j *JobPostgreSQL) Update(ctx context.Context, job *models.Job) error {
	if err := j.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	cache.InvalidateJobCache(ctx, j.cacheManager, job.ID, job.CompanyID)
	return nil
}

func (j *JobPostgreSQL) Delete(ctx context.Context, id string) error {
	var job models.Job
	if err := j.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("job %s: %w", id, gorm.ErrRecordNotFound)
		}
		return fmt.Errorf("failed to get job for deletion: %w", err)
	}

	if err := j.db.WithContext(ctx).Delete(&job).Error; err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	cache.InvalidateJobCache(ctx, j.cacheManager, job.ID, job.CompanyID)
	return nil
}

func (j *JobPostgreSQL) List(ctx context.Context, filters repositories.JobFilters) ([]*models.Job, int64, error) {
	query := j.applyFilters(j.db.WithContext(ctx).Model(&models.Job{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	var jobs []*models.Job
	if err := query.Preload("Company").
		Order(j.sortClause(filters)).
		Limit(j.limit(filters)).Offset(filters.Offset).
		Find(&jobs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, total, nil
}

func (j *JobPostgreSQL) GetByCompany(ctx context.Context, companyID string, filters repositories.JobFilters) ([]*models.Job, int64, error) {
	filters.CompanyID = &companyID
	return j.List(ctx, filters)
}

func (j *JobPostgreSQL) applyFilters(query *gorm.DB, filters repositories.JobFilters) *gorm.DB {
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Location != nil {
		query = query.Where("location ILIKE ?", "%"+*filters.Location+"%")
	}
	if filters.CompanyID != nil {
		query = query.Where("company_id = ?", *filters.CompanyID)
	}
	if filters.Remote != nil {
		query = query.Where("remote = ?", *filters.Remote)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.Active != nil {
		query = query.Where("is_active = ?", *filters.Active)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return query
}

func (j *JobPostgreSQL) sortClause(filters repositories.JobFilters) string {
	column := "created_at"
	switch filters.SortBy {
	case "deadline", "title", "created_at":
		column = filters.SortBy
	}

	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	return fmt.Sprintf("%s %s", column, order)
}

func (j *JobPostgreSQL) limit(filters repositories.JobFilters) int {
	if filters.Limit <= 0 {
		return 20
	}
	if filters.Limit > 100 {
		return 100
	}
	return filters.Limit
}
