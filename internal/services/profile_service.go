package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/events"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

type profileService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewProfileService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ProfileService {
	return &profileService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

// Completion is two-phase: creation alone never marks the profile
// complete unless the submission already carries the optional
// completion fields. The wizard's final step calls CompleteProfile.

func studentSubmissionComplete(req *StudentProfileSubmission) bool {
	return req.Bio != nil && req.CVURL != nil
}

func companySubmissionComplete(req *CompanyProfileSubmission) bool {
	return req.Description != nil && req.Website != nil
}

func (s *profileService) CreateStudentProfile(ctx context.Context, userID string, req *StudentProfileSubmission) (*models.StudentProfile, error) {
	if errs := s.validator.GetBusinessValidator().ValidateStudentProfile(req); len(errs) > 0 {
		return nil, errs
	}

	if err := s.requireRole(ctx, userID, models.RoleStudent); err != nil {
		return nil, err
	}

	s.logger.Info("Creating student profile", "user_id", userID)

	profile := &models.StudentProfile{
		ID:               uuid.New().String(),
		UserID:           userID,
		FullName:         req.FullName,
		Course:           req.Course,
		University:       req.University,
		YearOfStudy:      req.YearOfStudy,
		Skills:           mustJSON(req.Skills),
		Interests:        mustJSON(req.Interests),
		LinkedinURL:      req.LinkedinURL,
		CVURL:            req.CVURL,
		Bio:              req.Bio,
		Phone:            req.Phone,
		Location:         req.Location,
		PortfolioURL:     req.PortfolioURL,
		GithubURL:        req.GithubURL,
		ProfileCompleted: studentSubmissionComplete(req),
	}

	// The unique index on user_id adjudicates concurrent duplicate
	// submissions; exactly one insert wins.
	if err := s.repo.StudentProfile().Create(ctx, profile); err != nil {
		if IsDuplicateKey(err) {
			return nil, ErrDuplicateProfile
		}
		return nil, fmt.Errorf("failed to create student profile: %w", err)
	}

	if profile.ProfileCompleted {
		s.publishProfileCompleted(ctx, userID, models.RoleStudent)
	}

	s.logger.Info("Student profile created", "user_id", userID, "profile_id", profile.ID, "completed", profile.ProfileCompleted)
	return profile, nil
}

func (s *profileService) CreateCompanyProfile(ctx context.Context, userID string, req *CompanyProfileSubmission) (*models.CompanyProfile, error) {
	if errs := s.validator.GetBusinessValidator().ValidateCompanyProfile(req); len(errs) > 0 {
		return nil, errs
	}

	if err := s.requireRole(ctx, userID, models.RoleCompany); err != nil {
		return nil, err
	}

	s.logger.Info("Creating company profile", "user_id", userID)

	profile := &models.CompanyProfile{
		ID:               uuid.New().String(),
		UserID:           userID,
		CompanyName:      req.CompanyName,
		Industry:         req.Industry,
		Description:      req.Description,
		Website:          req.Website,
		LogoURL:          req.LogoURL,
		Location:         req.Location,
		Size:             req.Size,
		Founded:          req.Founded,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		ProfileCompleted: companySubmissionComplete(req),
	}

	if err := s.repo.CompanyProfile().Create(ctx, profile); err != nil {
		if IsDuplicateKey(err) {
			return nil, ErrDuplicateProfile
		}
		return nil, fmt.Errorf("failed to create company profile: %w", err)
	}

	if profile.ProfileCompleted {
		s.publishProfileCompleted(ctx, userID, models.RoleCompany)
	}

	s.logger.Info("Company profile created", "user_id", userID, "profile_id", profile.ID, "completed", profile.ProfileCompleted)
	return profile, nil
}

func (s *profileService) GetStudentProfile(ctx context.Context, userID string) (*models.StudentProfile, error) {
	profile, err := s.repo.StudentProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("student profile", userID)
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetCompanyProfile(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	profile, err := s.repo.CompanyProfile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("company profile", userID)
		}
		return nil, fmt.Errorf("failed to get company profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateStudentProfile(ctx context.Context, userID string, req *StudentProfileSubmission) (*models.StudentProfile, error) {
	if errs := s.validator.GetBusinessValidator().ValidateStudentProfile(req); len(errs) > 0 {
		return nil, errs
	}

	profile, err := s.GetStudentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.FullName = req.FullName
	profile.Course = req.Course
	profile.University = req.University
	profile.YearOfStudy = req.YearOfStudy
	profile.Skills = mustJSON(req.Skills)
	profile.Interests = mustJSON(req.Interests)
	profile.LinkedinURL = req.LinkedinURL
	profile.CVURL = req.CVURL
	profile.Bio = req.Bio
	profile.Phone = req.Phone
	profile.Location = req.Location
	profile.PortfolioURL = req.PortfolioURL
	profile.GithubURL = req.GithubURL

	if err := s.repo.StudentProfile().Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update student profile: %w", err)
	}

	return profile, nil
}

func (s *profileService) UpdateCompanyProfile(ctx context.Context, userID string, req *CompanyProfileSubmission) (*models.CompanyProfile, error) {
	if errs := s.validator.GetBusinessValidator().ValidateCompanyProfile(req); len(errs) > 0 {
		return nil, errs
	}

	profile, err := s.GetCompanyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.CompanyName = req.CompanyName
	profile.Industry = req.Industry
	profile.Description = req.Description
	profile.Website = req.Website
	profile.LogoURL = req.LogoURL
	profile.Location = req.Location
	profile.Size = req.Size
	profile.Founded = req.Founded
	profile.ContactEmail = req.ContactEmail
	profile.ContactPhone = req.ContactPhone

	if err := s.repo.CompanyProfile().Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update company profile: %w", err)
	}

	return profile, nil
}

func (s *profileService) CompleteProfile(ctx context.Context, userID string) error {
	account, err := s.repo.Account().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("account", userID)
		}
		return fmt.Errorf("failed to get account: %w", err)
	}
	if !account.HasRole() {
		return fmt.Errorf("%w: account %s has no role", ErrInvalidRoleTransition, userID)
	}

	s.logger.Info("Completing profile", "user_id", userID, "role", *account.Role)

	switch *account.Role {
	case models.RoleStudent:
		err = s.repo.StudentProfile().MarkCompleted(ctx, userID)
	case models.RoleCompany:
		err = s.repo.CompanyProfile().MarkCompleted(ctx, userID)
	default:
		return fmt.Errorf("%w: role %s has no profile variant", ErrInvalidRoleTransition, *account.Role)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("profile", userID)
		}
		return fmt.Errorf("failed to mark profile completed: %w", err)
	}

	s.publishProfileCompleted(ctx, userID, *account.Role)
	return nil
}

// requireRole rejects submissions whose variant does not match the
// account's persisted role.
func (s *profileService) requireRole(ctx context.Context, userID string, role models.UserRole) error {
	account, err := s.repo.Account().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("account", userID)
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	if !account.HasRole() || *account.Role != role {
		return fmt.Errorf("%w: account %s cannot submit a %s profile", ErrInvalidRoleTransition, userID, role)
	}
	return nil
}

func (s *profileService) publishProfileCompleted(ctx context.Context, userID string, role models.UserRole) {
	event := &events.Event{
		ID:     uuid.New().String(),
		Type:   events.TypeProfileCompleted,
		UserID: userID,
		Data:   map[string]interface{}{"role": role},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish profile completion event", "user_id", userID, "error", err)
	}
}

func mustJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}
