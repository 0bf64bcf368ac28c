package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/events"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

type accountService struct {
	repo           repositories.Repository
	onboarding     OnboardingService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewAccountService(repo repositories.Repository, onboarding OnboardingService, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AccountService {
	return &accountService{
		repo:           repo,
		onboarding:     onboarding,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

func (s *accountService) Login(ctx context.Context, assertion *repositories.IdentityAssertion) (*models.User, models.OnboardingStage, error) {
	if assertion == nil || assertion.Subject == "" {
		return nil, models.Unauthenticated(), nil
	}

	s.logger.Info("Processing login", "subject", assertion.Subject, "email", assertion.Email)

	account, err := s.repo.Account().CreateOrUpdate(ctx, assertion.AccountSeed())
	if err != nil {
		return nil, models.OnboardingStage{}, fmt.Errorf("failed to upsert account: %w", err)
	}

	stage, err := s.onboarding.ResolveForAccount(ctx, account)
	if err != nil {
		return nil, models.OnboardingStage{}, err
	}

	s.logger.Info("Login resolved", "user_id", account.ID, "stage", stage.String())
	return account, stage, nil
}

func (s *accountService) GetByID(ctx context.Context, id string) (*models.User, error) {
	account, err := s.repo.Account().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("account", id)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// SelectRole is the one mutation of Account.role. The repository only
// updates rows whose role is still unset, so a lost race or a repeat
// submission both surface as ErrRoleAlreadySet.
func (s *accountService) SelectRole(ctx context.Context, userID string, req *RoleSelectionRequest) error {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return errs
	}

	account, err := s.repo.Account().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("account", userID)
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	if errs := s.validator.GetBusinessValidator().ValidateRoleSelection(req, account); len(errs) > 0 {
		return errs
	}

	s.logger.Info("Selecting role", "user_id", userID, "role", req.Role)

	if err := s.repo.Account().SetRole(ctx, userID, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleAlreadySet
		}
		return fmt.Errorf("failed to set role: %w", err)
	}

	event := &events.Event{
		ID:     uuid.New().String(),
		Type:   events.TypeRoleSelected,
		UserID: userID,
		Data:   map[string]interface{}{"role": req.Role},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		// Role is already persisted; event delivery is best effort.
		s.logger.Warn("Failed to publish role selection event", "user_id", userID, "error", err)
	}

	return nil
}

func (s *accountService) List(ctx context.Context, filters repositories.AccountFilters) ([]*models.User, int64, error) {
	return s.repo.Account().List(ctx, filters)
}
