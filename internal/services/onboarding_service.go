package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

// ProfileState is what stage resolution needs to know about the
// role-appropriate profile row.
type ProfileState struct {
	Exists    bool
	Completed bool
}

// ResolveStage computes the onboarding stage from persisted state.
// Pure function, no side effects; every consumer in the codebase calls
// this instead of re-deriving the chain locally.
//
// The checks form a strict priority chain, first match wins:
//
//  1. no account            -> Unauthenticated
//  2. role unset            -> NeedsRole (stray profile data is ignored)
//  3. no profile row        -> NeedsProfile(role)
//  4. profile not completed -> NeedsCompletion(role)
//  5. otherwise             -> Done
func ResolveStage(account *models.User, profile ProfileState) models.OnboardingStage {
	if account == nil {
		return models.Unauthenticated()
	}
	if !account.HasRole() {
		return models.NeedsRole()
	}

	role := *account.Role

	// Admin accounts have no profile variant; once the role is set
	// they are fully onboarded.
	if role == models.RoleAdmin {
		return models.Done()
	}

	if !profile.Exists {
		return models.NeedsProfile(role)
	}
	if !profile.Completed {
		return models.NeedsCompletion(role)
	}
	return models.Done()
}

// CanonicalPath maps a stage to the path the client must be on to make
// progress. For Done it is the main application entry.
func CanonicalPath(stage models.OnboardingStage) string {
	switch stage.Step {
	case models.StepUnauthenticated:
		return "/login"
	case models.StepNeedsRole:
		return "/onboarding/role"
	case models.StepNeedsProfile, models.StepNeedsCompletion:
		if stage.Role == models.RoleCompany {
			return "/onboarding/company-profile"
		}
		return "/onboarding/student-profile"
	default:
		return "/dashboard"
	}
}

// RouteDecision is the guard's verdict for one navigation request.
type RouteDecision struct {
	Proceed    bool
	RedirectTo string
}

func proceed() RouteDecision           { return RouteDecision{Proceed: true} }
func redirect(to string) RouteDecision { return RouteDecision{RedirectTo: to} }

// publicPaths bypass the guard entirely, whatever the stage.
var publicPaths = map[string]bool{
	"/":               true,
	"/login":          true,
	"/login/callback": true,
	"/waitlist":       true,
	"/health":         true,
}

// PathExempt reports whether the guard ignores this path: API routes,
// static assets, and the public allow-list.
func PathExempt(path string) bool {
	if publicPaths[path] {
		return true
	}
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/assets/") {
		return true
	}
	// Asset requests carry a file extension in the last segment.
	if idx := strings.LastIndex(path, "/"); idx >= 0 && strings.Contains(path[idx:], ".") {
		return true
	}
	return false
}

func isOnboardingPath(path string) bool {
	return path == "/onboarding" || strings.HasPrefix(path, "/onboarding/")
}

// DecideRoute enforces the canonical-path table. Redirecting to the
// canonical path for a stage and deciding again always yields proceed,
// so no redirect loop is possible.
func DecideRoute(path string, stage models.OnboardingStage) RouteDecision {
	if PathExempt(path) {
		return proceed()
	}

	if stage.Step == models.StepDone {
		if isOnboardingPath(path) && path != "/onboarding/success" {
			return redirect("/onboarding/success")
		}
		return proceed()
	}

	canonical := CanonicalPath(stage)
	if path == canonical {
		return proceed()
	}
	return redirect(canonical)
}

// ===== SERVICE =====

type onboardingService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewOnboardingService(repo repositories.Repository, logger *slog.Logger) OnboardingService {
	return &onboardingService{
		repo:   repo,
		logger: logger,
	}
}

func (s *onboardingService) Resolve(ctx context.Context, userID string) (models.OnboardingStage, error) {
	if userID == "" {
		return models.Unauthenticated(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutForRead)
	defer cancel()

	account, err := s.repo.Account().GetByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return models.Unauthenticated(), nil
		}
		s.logger.Error("Account lookup failed during stage resolution", "user_id", userID, "error", err)
		return models.OnboardingStage{}, fmt.Errorf("%w: account read: %v", ErrStageLookup, err)
	}

	return s.ResolveForAccount(ctx, account)
}

func (s *onboardingService) ResolveForAccount(ctx context.Context, account *models.User) (models.OnboardingStage, error) {
	if account == nil || !account.HasRole() {
		return ResolveStage(account, ProfileState{}), nil
	}

	profile, err := s.profileState(ctx, account)
	if err != nil {
		// Never guess a stage on a failed read; the caller must see a
		// retryable failure instead.
		s.logger.Error("Profile lookup failed during stage resolution",
			"user_id", account.ID, "role", *account.Role, "error", err)
		return models.OnboardingStage{}, fmt.Errorf("%w: profile read: %v", ErrStageLookup, err)
	}

	return ResolveStage(account, profile), nil
}

func (s *onboardingService) profileState(ctx context.Context, account *models.User) (ProfileState, error) {
	switch *account.Role {
	case models.RoleStudent:
		profile, err := s.repo.StudentProfile().GetByUserID(ctx, account.ID)
		if err != nil {
			if IsNotFound(err) {
				return ProfileState{}, nil
			}
			return ProfileState{}, err
		}
		return ProfileState{Exists: true, Completed: profile.ProfileCompleted}, nil

	case models.RoleCompany:
		profile, err := s.repo.CompanyProfile().GetByUserID(ctx, account.ID)
		if err != nil {
			if IsNotFound(err) {
				return ProfileState{}, nil
			}
			return ProfileState{}, err
		}
		return ProfileState{Exists: true, Completed: profile.ProfileCompleted}, nil

	case models.RoleAdmin:
		return ProfileState{}, nil

	default:
		return ProfileState{}, fmt.Errorf("%w: account %s has role %q", ErrInvalidRoleTransition, account.ID, *account.Role)
	}
}

func (s *onboardingService) Status(ctx context.Context, userID string) (*models.OnboardingStatusResponse, error) {
	stage, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.OnboardingStatusResponse{
		Stage:         stage,
		CanonicalPath: CanonicalPath(stage),
		HasProfile:    stage.Step == models.StepNeedsCompletion || stage.Step == models.StepDone,
	}, nil
}
