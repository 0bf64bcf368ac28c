package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/GenzHireHub/platform-service/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rolePtr(r models.UserRole) *models.UserRole { return &r }

func TestResolveStage(t *testing.T) {
	tests := []struct {
		name    string
		account *models.User
		profile ProfileState
		want    models.OnboardingStage
	}{
		{
			name: "no account",
			want: models.Unauthenticated(),
		},
		{
			name:    "role unset",
			account: &models.User{ID: "u1"},
			want:    models.NeedsRole(),
		},
		{
			// Stray profile data must never override the role check.
			name:    "role unset with stray profile",
			account: &models.User{ID: "u1"},
			profile: ProfileState{Exists: true, Completed: true},
			want:    models.NeedsRole(),
		},
		{
			name:    "student without profile",
			account: &models.User{ID: "u1", Role: rolePtr(models.RoleStudent)},
			want:    models.NeedsProfile(models.RoleStudent),
		},
		{
			name:    "company without profile",
			account: &models.User{ID: "u1", Role: rolePtr(models.RoleCompany)},
			want:    models.NeedsProfile(models.RoleCompany),
		},
		{
			name:    "student with incomplete profile",
			account: &models.User{ID: "u1", Role: rolePtr(models.RoleStudent)},
			profile: ProfileState{Exists: true},
			want:    models.NeedsCompletion(models.RoleStudent),
		},
		{
			name:    "company with completed profile",
			account: &models.User{ID: "u1", Role: rolePtr(models.RoleCompany)},
			profile: ProfileState{Exists: true, Completed: true},
			want:    models.Done(),
		},
		{
			name:    "admin needs no profile",
			account: &models.User{ID: "u1", Role: rolePtr(models.RoleAdmin)},
			want:    models.Done(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStage(tt.account, tt.profile)
			if got != tt.want {
				t.Errorf("ResolveStage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveStage_IncompleteNeverDone(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleStudent, models.RoleCompany} {
		account := &models.User{ID: "u1", Role: rolePtr(role)}
		got := ResolveStage(account, ProfileState{Exists: true, Completed: false})
		if got.Step == models.StepDone {
			t.Errorf("role %s: incomplete profile resolved to Done", role)
		}
	}
}

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		stage models.OnboardingStage
		want  string
	}{
		{models.Unauthenticated(), "/login"},
		{models.NeedsRole(), "/onboarding/role"},
		{models.NeedsProfile(models.RoleStudent), "/onboarding/student-profile"},
		{models.NeedsProfile(models.RoleCompany), "/onboarding/company-profile"},
		{models.NeedsCompletion(models.RoleStudent), "/onboarding/student-profile"},
		{models.NeedsCompletion(models.RoleCompany), "/onboarding/company-profile"},
		{models.Done(), "/dashboard"},
	}
	for _, tt := range tests {
		if got := CanonicalPath(tt.stage); got != tt.want {
			t.Errorf("CanonicalPath(%v) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

// Redirecting to the canonical path and deciding again must always
// proceed; verified for every stage.
func TestDecideRoute_Idempotence(t *testing.T) {
	stages := []models.OnboardingStage{
		models.Unauthenticated(),
		models.NeedsRole(),
		models.NeedsProfile(models.RoleStudent),
		models.NeedsProfile(models.RoleCompany),
		models.NeedsCompletion(models.RoleStudent),
		models.NeedsCompletion(models.RoleCompany),
		models.Done(),
	}

	for _, stage := range stages {
		t.Run(stage.String(), func(t *testing.T) {
			first := DecideRoute("/some/protected/page", stage)
			target := "/some/protected/page"
			if !first.Proceed {
				target = first.RedirectTo
			}

			second := DecideRoute(target, stage)
			if !second.Proceed {
				t.Errorf("redirect loop: stage %v redirected %q to %q", stage, target, second.RedirectTo)
			}
		})
	}
}

func TestDecideRoute_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		stage      models.OnboardingStage
		wantGo     bool
		wantTarget string
	}{
		{
			name:       "role unset redirects home to role selection",
			path:       "/jobs",
			stage:      models.NeedsRole(),
			wantTarget: "/onboarding/role",
		},
		{
			name:       "student without profile redirects any protected path",
			path:       "/dashboard",
			stage:      models.NeedsProfile(models.RoleStudent),
			wantTarget: "/onboarding/student-profile",
		},
		{
			name:   "completed company may reach the dashboard",
			path:   "/dashboard",
			stage:  models.Done(),
			wantGo: true,
		},
		{
			name:       "completed company is pushed off the onboarding wizard",
			path:       "/onboarding/role",
			stage:      models.Done(),
			wantTarget: "/onboarding/success",
		},
		{
			name:   "done proceeds on the success page",
			path:   "/onboarding/success",
			stage:  models.Done(),
			wantGo: true,
		},
		{
			name:       "unauthenticated request to the wizard goes to login",
			path:       "/onboarding/student-profile",
			stage:      models.Unauthenticated(),
			wantTarget: "/login",
		},
		{
			name:   "public landing page bypasses the guard",
			path:   "/",
			stage:  models.NeedsRole(),
			wantGo: true,
		},
		{
			name:   "waitlist page is public for everyone",
			path:   "/waitlist",
			stage:  models.Unauthenticated(),
			wantGo: true,
		},
		{
			name:   "api routes are exempt",
			path:   "/api/v1/jobs",
			stage:  models.Unauthenticated(),
			wantGo: true,
		},
		{
			name:   "static assets are exempt",
			path:   "/assets/logo.svg",
			stage:  models.NeedsRole(),
			wantGo: true,
		},
		{
			name:   "favicon is exempt",
			path:   "/favicon.ico",
			stage:  models.Unauthenticated(),
			wantGo: true,
		},
		{
			name:   "canonical wizard page proceeds for its own stage",
			path:   "/onboarding/company-profile",
			stage:  models.NeedsCompletion(models.RoleCompany),
			wantGo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideRoute(tt.path, tt.stage)
			if got.Proceed != tt.wantGo {
				t.Fatalf("DecideRoute(%q, %v).Proceed = %v, want %v", tt.path, tt.stage, got.Proceed, tt.wantGo)
			}
			if !tt.wantGo && got.RedirectTo != tt.wantTarget {
				t.Errorf("DecideRoute(%q, %v) redirected to %q, want %q", tt.path, tt.stage, got.RedirectTo, tt.wantTarget)
			}
		})
	}
}

func TestOnboardingService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user is unauthenticated", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewOnboardingService(repo, testLogger())

		stage, err := svc.Resolve(ctx, "missing")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if stage != models.Unauthenticated() {
			t.Errorf("Resolve() = %v, want Unauthenticated", stage)
		}
	})

	t.Run("empty user id is unauthenticated", func(t *testing.T) {
		repo := newMockRepository()
		svc := NewOnboardingService(repo, testLogger())

		stage, err := svc.Resolve(ctx, "")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if stage.Step != models.StepUnauthenticated {
			t.Errorf("Resolve() = %v, want Unauthenticated", stage)
		}
	})

	t.Run("account lookup failure surfaces distinctly", func(t *testing.T) {
		repo := newMockRepository()
		repo.account.failWith = errors.New("connection refused")
		svc := NewOnboardingService(repo, testLogger())

		_, err := svc.Resolve(ctx, "u1")
		if !errors.Is(err, ErrStageLookup) {
			t.Fatalf("Resolve() error = %v, want ErrStageLookup", err)
		}
	})

	t.Run("profile lookup failure is never mapped to a stage", func(t *testing.T) {
		repo := newMockRepository()
		repo.account.accounts["u1"] = &models.User{ID: "u1", Role: rolePtr(models.RoleStudent)}
		repo.students.failWith = errors.New("read timeout")
		svc := NewOnboardingService(repo, testLogger())

		stage, err := svc.Resolve(ctx, "u1")
		if !errors.Is(err, ErrStageLookup) {
			t.Fatalf("Resolve() error = %v, want ErrStageLookup", err)
		}
		if stage.Step != "" {
			t.Errorf("Resolve() returned stage %v alongside the lookup failure", stage)
		}
	})

	t.Run("stage progression for a student account", func(t *testing.T) {
		repo := newMockRepository()
		repo.account.accounts["u1"] = &models.User{ID: "u1", Email: "s@uni.edu"}
		svc := NewOnboardingService(repo, testLogger())

		stage, err := svc.Resolve(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if stage != models.NeedsRole() {
			t.Fatalf("fresh account: got %v, want NeedsRole", stage)
		}

		repo.account.accounts["u1"].Role = rolePtr(models.RoleStudent)
		stage, err = svc.Resolve(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if stage != models.NeedsProfile(models.RoleStudent) {
			t.Fatalf("role chosen: got %v, want NeedsProfile(student)", stage)
		}

		repo.students.profiles["u1"] = &models.StudentProfile{ID: "p1", UserID: "u1"}
		stage, err = svc.Resolve(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if stage != models.NeedsCompletion(models.RoleStudent) {
			t.Fatalf("profile created: got %v, want NeedsCompletion(student)", stage)
		}

		repo.students.profiles["u1"].ProfileCompleted = true
		stage, err = svc.Resolve(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if stage != models.Done() {
			t.Fatalf("profile completed: got %v, want Done", stage)
		}
	})
}

func TestOnboardingService_Status(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	repo.account.accounts["u1"] = &models.User{ID: "u1", Role: rolePtr(models.RoleCompany)}
	svc := NewOnboardingService(repo, testLogger())

	status, err := svc.Status(ctx, "u1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Stage != models.NeedsProfile(models.RoleCompany) {
		t.Errorf("Status().Stage = %v, want NeedsProfile(company)", status.Stage)
	}
	if status.CanonicalPath != "/onboarding/company-profile" {
		t.Errorf("Status().CanonicalPath = %q", status.CanonicalPath)
	}
	if status.HasProfile {
		t.Error("Status().HasProfile = true before any profile exists")
	}
}
