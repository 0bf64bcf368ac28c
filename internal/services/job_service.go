package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

type jobService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewJobService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) JobService {
	return &jobService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *jobService) Create(ctx context.Context, userID string, req *JobCreateRequest) (*models.Job, error) {
	if errs := s.validator.GetBusinessValidator().ValidateJobCreate(req); len(errs) > 0 {
		return nil, errs
	}

	company, err := s.repo.CompanyProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewPermissionError(userID, "", "job", "create", "no company profile")
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}

	s.logger.Info("Creating job", "user_id", userID, "company_id", company.ID, "title", req.Title)

	job := &models.Job{
		ID:             uuid.New().String(),
		CompanyID:      company.ID,
		Title:          req.Title,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       req.Location,
		Type:           req.Type,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Currency:       req.Currency,
		Skills:         mustJSON(req.Skills),
		Tags:           mustJSON(req.Tags),
		Deadline:       req.Deadline,
		Remote:         req.Remote,
		ApplicationURL: req.ApplicationURL,
		IsActive:       true,
	}

	if err := s.repo.Job().Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Info("Job created", "job_id", job.ID, "company_id", company.ID)
	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.Job().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("job", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (s *jobService) Update(ctx context.Context, userID, id string, req *JobUpdateRequest) (*models.Job, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwnership(ctx, userID, job, "update"); err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Requirements != nil {
		job.Requirements = req.Requirements
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.Skills != nil {
		job.Skills = mustJSON(req.Skills)
	}
	if req.Tags != nil {
		job.Tags = mustJSON(req.Tags)
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if req.Remote != nil {
		job.Remote = *req.Remote
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}

	if err := s.repo.Job().Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.logger.Info("Job updated", "job_id", job.ID, "user_id", userID)
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, userID, id string) error {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireOwnership(ctx, userID, job, "delete"); err != nil {
		return err
	}

	if err := s.repo.Job().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.logger.Info("Job deleted", "job_id", id, "user_id", userID)
	return nil
}

func (s *jobService) List(ctx context.Context, filters repositories.JobFilters) (*JobListResponse, error) {
	// Public browsing only ever sees active postings.
	if filters.Active == nil {
		active := true
		filters.Active = &active
	}

	jobs, total, err := s.repo.Job().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return s.listResponse(jobs, total, filters), nil
}

func (s *jobService) ListByCompany(ctx context.Context, userID string, filters repositories.JobFilters) (*JobListResponse, error) {
	company, err := s.repo.CompanyProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("company profile", userID)
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}

	jobs, total, err := s.repo.Job().GetByCompany(ctx, company.ID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}

	return s.listResponse(jobs, total, filters), nil
}

func (s *jobService) requireOwnership(ctx context.Context, userID string, job *models.Job, action string) error {
	company, err := s.repo.CompanyProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewPermissionError(userID, job.ID, "job", action, "no company profile")
		}
		return fmt.Errorf("failed to get company profile: %w", err)
	}
	if company.ID != job.CompanyID {
		return NewPermissionError(userID, job.ID, "job", action, "job belongs to another company")
	}
	return nil
}

func (s *jobService) listResponse(jobs []*models.Job, total int64, filters repositories.JobFilters) *JobListResponse {
	size := filters.Limit
	if size <= 0 {
		size = 20
	}
	page := 1
	if size > 0 {
		page = filters.Offset/size + 1
	}
	return &JobListResponse{
		Jobs:  jobs,
		Total: total,
		Page:  page,
		Size:  size,
	}
}
