package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

type ApplicationPostgreSQL struct {
	db *gorm.DB
}

func NewApplicationPostgreSQL(db *gorm.DB) repositories.ApplicationRepository {
	return &ApplicationPostgreSQL{db: db}
}

// Create inserts the application. Concurrent duplicate submissions for
// the same (job, student) pair are adjudicated by the composite unique
// index, not here; the loser sees gorm.ErrDuplicatedKey.
func (a *ApplicationPostgreSQL) Create(ctx context.Context, application *models.Application) error {
	if err := a.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (a *ApplicationPostgreSQL) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var application models.Application
	if err := a.db.WithContext(ctx).
		Preload("Job").Preload("Job.Company").Preload("Student").
		First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &application, nil
}

func (a *ApplicationPostgreSQL) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string, interviewDate *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if interviewDate != nil {
		updates["interview_date"] = *interviewDate
	}
	if status == models.ApplicationReviewed {
		now := time.Now()
		updates["reviewed_at"] = now
	}

	result := a.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *ApplicationPostgreSQL) ListByStudent(ctx context.Context, studentID string, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	filters.StudentID = &studentID
	return a.list(ctx, filters)
}

func (a *ApplicationPostgreSQL) ListByJob(ctx context.Context, jobID string, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	filters.JobID = &jobID
	return a.list(ctx, filters)
}

func (a *ApplicationPostgreSQL) list(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	query := a.db.WithContext(ctx).Model(&models.Application{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.JobID != nil {
		query = query.Where("job_id = ?", *filters.JobID)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.DateFrom != nil {
		query = query.Where("applied_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("applied_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}

	var applications []*models.Application
	if err := query.Preload("Job").Preload("Student").
		Order("applied_at DESC").
		Limit(limit).Offset(filters.Offset).
		Find(&applications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, total, nil
}

func (a *ApplicationPostgreSQL) ExistsByJobAndStudent(ctx context.Context, jobID, studentID string) (bool, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND student_id = ?", jobID, studentID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return count > 0, nil
}
