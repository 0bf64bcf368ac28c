package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

func jobRequest() *JobCreateRequest {
	return &JobCreateRequest{
		Title:       "Backend Engineering Intern",
		Description: strings.Repeat("Build and run Go services for the hiring platform. ", 3),
		Location:    "Nairobi",
		Type:        models.JobInternship,
		Skills:      []string{"go", "postgres"},
	}
}

func newJobFixture(t *testing.T) (*mockRepository, JobService) {
	t.Helper()
	repo := newMockRepository()
	svc := NewJobService(repo, testLogger(), validator.New())
	return repo, svc
}

func seedCompany(repo *mockRepository, userID, companyID string) *models.CompanyProfile {
	company := &models.CompanyProfile{ID: companyID, UserID: userID, CompanyName: "Acme"}
	repo.company.profiles[userID] = company
	return company
}

func TestJobService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active posting for the caller's company", func(t *testing.T) {
		repo, svc := newJobFixture(t)
		company := seedCompany(repo, "company-user", "comp-1")

		job, err := svc.Create(ctx, "company-user", jobRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !job.IsActive {
			t.Error("new posting must start active")
		}
		if job.CompanyID != company.ID {
			t.Errorf("job company = %s, want %s", job.CompanyID, company.ID)
		}
	})

	t.Run("requires a company profile", func(t *testing.T) {
		_, svc := newJobFixture(t)

		_, err := svc.Create(ctx, "profileless-user", jobRequest())
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("Create() without company profile error = %v, want permission_denied", err)
		}
	})

	t.Run("rejects an invalid salary range", func(t *testing.T) {
		repo, svc := newJobFixture(t)
		seedCompany(repo, "company-user", "comp-1")

		req := jobRequest()
		low, high := 500, 1000
		req.SalaryMin = &high
		req.SalaryMax = &low

		_, err := svc.Create(ctx, "company-user", req)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("Create() with inverted salary error = %v, want ValidationErrors", err)
		}
	})
}

func TestJobService_OwnershipChecks(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*mockRepository, JobService, *models.Job) {
		repo, svc := newJobFixture(t)
		seedCompany(repo, "owner-user", "comp-1")
		seedCompany(repo, "rival-user", "comp-2")

		job, err := svc.Create(ctx, "owner-user", jobRequest())
		if err != nil {
			t.Fatalf("seed Create() error = %v", err)
		}
		return repo, svc, job
	}

	t.Run("only the owner may update", func(t *testing.T) {
		_, svc, job := setup(t)

		title := "Senior Backend Engineering Intern"
		_, err := svc.Update(ctx, "rival-user", job.ID, &JobUpdateRequest{Title: &title})
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("Update() by rival error = %v, want permission_denied", err)
		}

		if _, err := svc.Update(ctx, "owner-user", job.ID, &JobUpdateRequest{Title: &title}); err != nil {
			t.Errorf("Update() by owner error = %v", err)
		}
	})

	t.Run("only the owner may delete", func(t *testing.T) {
		repo, svc, job := setup(t)

		err := svc.Delete(ctx, "rival-user", job.ID)
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("Delete() by rival error = %v, want permission_denied", err)
		}

		if err := svc.Delete(ctx, "owner-user", job.ID); err != nil {
			t.Errorf("Delete() by owner error = %v", err)
		}
		if len(repo.jobs.deleted) != 1 {
			t.Errorf("deleted jobs = %v, want exactly the seeded posting", repo.jobs.deleted)
		}
	})
}

func TestJobService_List(t *testing.T) {
	ctx := context.Background()
	repo, svc := newJobFixture(t)
	seedCompany(repo, "company-user", "comp-1")

	active, err := svc.Create(ctx, "company-user", jobRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	closed, err := svc.Create(ctx, "company-user", jobRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	inactive := false
	if _, err := svc.Update(ctx, "company-user", closed.ID, &JobUpdateRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	t.Run("public listing hides inactive postings", func(t *testing.T) {
		response, err := svc.List(ctx, repositories.JobFilters{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(response.Jobs) != 1 || response.Jobs[0].ID != active.ID {
			t.Errorf("List() returned %d jobs, want only the active posting", len(response.Jobs))
		}
	})

	t.Run("the company sees all of its postings", func(t *testing.T) {
		response, err := svc.ListByCompany(ctx, "company-user", repositories.JobFilters{})
		if err != nil {
			t.Fatalf("ListByCompany() error = %v", err)
		}
		if len(response.Jobs) != 2 {
			t.Errorf("ListByCompany() returned %d jobs, want 2", len(response.Jobs))
		}
	})
}
