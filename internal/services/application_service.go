package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/events"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

type applicationService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewApplicationService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ApplicationService {
	return &applicationService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

func (s *applicationService) Apply(ctx context.Context, userID string, req *ApplicationCreateRequest) (*models.Application, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	student, err := s.repo.StudentProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewPermissionError(userID, req.JobID, "application", "create", "no student profile")
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	job, err := s.repo.Job().GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("job", req.JobID)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if !job.IsActive {
		return nil, NewPermissionError(userID, job.ID, "application", "create", "job is no longer active")
	}
	if job.Deadline != nil && job.Deadline.Before(time.Now()) {
		return nil, NewPermissionError(userID, job.ID, "application", "create", "application deadline has passed")
	}

	s.logger.Info("Submitting application", "user_id", userID, "job_id", job.ID, "student_id", student.ID)

	application := &models.Application{
		ID:          uuid.New().String(),
		JobID:       job.ID,
		StudentID:   student.ID,
		CoverLetter: &req.CoverLetter,
		CustomCVURL: req.CustomCVURL,
		Status:      models.ApplicationPending,
	}

	// The composite unique index adjudicates the race between two
	// submissions for the same pair; the loser gets the duplicate error.
	if err := s.repo.Application().Create(ctx, application); err != nil {
		if IsDuplicateKey(err) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.notifyCompany(ctx, job, student)

	s.logger.Info("Application submitted", "application_id", application.ID, "job_id", job.ID)
	return application, nil
}

func (s *applicationService) GetByID(ctx context.Context, userID, id string) (*models.Application, error) {
	application, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("application", id)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	// Visible to the applicant and the posting company only.
	if application.Student.UserID != userID && application.Job.Company.UserID != userID {
		return nil, NewPermissionError(userID, id, "application", "get", "not a party to this application")
	}

	return application, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, userID, id string, req *ApplicationStatusUpdateRequest) error {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return errs
	}

	application, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("application", id)
		}
		return fmt.Errorf("failed to get application: %w", err)
	}

	if application.Job.Company.UserID != userID {
		return NewPermissionError(userID, id, "application", "update_status", "application belongs to another company's job")
	}

	s.logger.Info("Updating application status",
		"application_id", id, "user_id", userID,
		"from", application.Status, "to", req.Status)

	// The status write and the student's notification land together.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Application().UpdateStatus(ctx, id, req.Status, req.Notes, req.InterviewDate); err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}
		return tx.Notification().Create(ctx, &models.Notification{
			ID:      uuid.New().String(),
			UserID:  application.Student.UserID,
			Type:    models.NotificationApplicationUpdate,
			Title:   "Application status updated",
			Message: fmt.Sprintf("Your application for %s is now %s", application.Job.Title, req.Status),
		})
	})
	if err != nil {
		return err
	}

	s.publishStatusEvent(ctx, application, req.Status)
	return nil
}

func (s *applicationService) ListMine(ctx context.Context, userID string, filters repositories.ApplicationFilters) (*ApplicationListResponse, error) {
	student, err := s.repo.StudentProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("student profile", userID)
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	applications, total, err := s.repo.Application().ListByStudent(ctx, student.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return s.listResponse(applications, total, filters), nil
}

func (s *applicationService) ListForJob(ctx context.Context, userID, jobID string, filters repositories.ApplicationFilters) (*ApplicationListResponse, error) {
	job, err := s.repo.Job().GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("job", jobID)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	company, err := s.repo.CompanyProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewPermissionError(userID, jobID, "application", "list", "no company profile")
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}
	if company.ID != job.CompanyID {
		return nil, NewPermissionError(userID, jobID, "application", "list", "job belongs to another company")
	}

	applications, total, err := s.repo.Application().ListByJob(ctx, jobID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return s.listResponse(applications, total, filters), nil
}

func (s *applicationService) notifyCompany(ctx context.Context, job *models.Job, student *models.StudentProfile) {
	notification := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  job.Company.UserID,
		Type:    models.NotificationNewApplication,
		Title:   "New application received",
		Message: fmt.Sprintf("%s applied for %s", student.FullName, job.Title),
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		s.logger.Warn("Failed to persist application notification", "job_id", job.ID, "error", err)
	}

	event := &events.Event{
		ID:     uuid.New().String(),
		Type:   events.TypeApplicationReceived,
		UserID: job.Company.UserID,
		Data: map[string]interface{}{
			"job_id":     job.ID,
			"student_id": student.ID,
		},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish application event", "job_id", job.ID, "error", err)
	}
}

func (s *applicationService) publishStatusEvent(ctx context.Context, application *models.Application, status models.ApplicationStatus) {
	event := &events.Event{
		ID:     uuid.New().String(),
		Type:   events.TypeApplicationUpdated,
		UserID: application.Student.UserID,
		Data: map[string]interface{}{
			"application_id": application.ID,
			"status":         status,
		},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish status event", "application_id", application.ID, "error", err)
	}
}

func (s *applicationService) listResponse(applications []*models.Application, total int64, filters repositories.ApplicationFilters) *ApplicationListResponse {
	size := filters.Limit
	if size <= 0 {
		size = 20
	}
	return &ApplicationListResponse{
		Applications: applications,
		Total:        total,
		Page:         filters.Offset/size + 1,
		Size:         size,
	}
}
