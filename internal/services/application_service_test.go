package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GenzHireHub/platform-service/internal/events"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

func applicationRequest(jobID string) *ApplicationCreateRequest {
	return &ApplicationCreateRequest{
		JobID:       jobID,
		CoverLetter: strings.Repeat("I am a strong fit for this role. ", 5),
	}
}

func newApplicationFixture(t *testing.T) (*mockRepository, *events.MockEventPublisher, ApplicationService) {
	t.Helper()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	svc := NewApplicationService(repo, publisher, testLogger(), validator.New())
	return repo, publisher, svc
}

func seedJobWithCompany(repo *mockRepository, jobID string) *models.Job {
	company := &models.CompanyProfile{ID: "comp-1", UserID: "company-user", CompanyName: "Acme"}
	repo.company.profiles[company.UserID] = company

	job := &models.Job{
		ID:        jobID,
		CompanyID: company.ID,
		Title:     "Backend Intern",
		IsActive:  true,
		Company:   *company,
	}
	repo.jobs.jobs[job.ID] = job
	return job
}

func seedStudent(repo *mockRepository, userID string) *models.StudentProfile {
	student := &models.StudentProfile{ID: "stu-" + userID, UserID: userID, FullName: "Linh Tran"}
	repo.students.profiles[userID] = student
	return student
}

func TestApplicationService_Apply(t *testing.T) {
	ctx := context.Background()
	const jobID = "7b8a4a3e-9f0d-4f4e-9f5a-0a1b2c3d4e5f"

	t.Run("submits and notifies the company", func(t *testing.T) {
		repo, publisher, svc := newApplicationFixture(t)
		job := seedJobWithCompany(repo, jobID)
		seedStudent(repo, "student-user")

		application, err := svc.Apply(ctx, "student-user", applicationRequest(jobID))
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if application.Status != models.ApplicationPending {
			t.Errorf("new application status = %v, want pending", application.Status)
		}

		if len(repo.notifications.created) != 1 {
			t.Fatalf("company notification rows = %d, want 1", len(repo.notifications.created))
		}
		if got := repo.notifications.created[0].UserID; got != job.Company.UserID {
			t.Errorf("notification addressed to %s, want %s", got, job.Company.UserID)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeApplicationReceived {
			t.Errorf("published events = %+v, want one application.received", published)
		}
	})

	t.Run("second application for the same job is rejected", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		seedJobWithCompany(repo, jobID)
		seedStudent(repo, "student-user")

		if _, err := svc.Apply(ctx, "student-user", applicationRequest(jobID)); err != nil {
			t.Fatalf("first Apply() error = %v", err)
		}
		_, err := svc.Apply(ctx, "student-user", applicationRequest(jobID))
		if !errors.Is(err, ErrDuplicateApplication) {
			t.Errorf("second Apply() error = %v, want ErrDuplicateApplication", err)
		}
	})

	t.Run("rejects applicants without a student profile", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		seedJobWithCompany(repo, jobID)

		_, err := svc.Apply(ctx, "profileless-user", applicationRequest(jobID))
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("Apply() without profile error = %v, want permission_denied", err)
		}
	})

	t.Run("rejects inactive jobs", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		job := seedJobWithCompany(repo, jobID)
		job.IsActive = false
		seedStudent(repo, "student-user")

		_, err := svc.Apply(ctx, "student-user", applicationRequest(jobID))
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("Apply() to inactive job error = %v, want permission_denied", err)
		}
	})

	t.Run("rejects past-deadline jobs", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		job := seedJobWithCompany(repo, jobID)
		yesterday := time.Now().Add(-24 * time.Hour)
		job.Deadline = &yesterday
		seedStudent(repo, "student-user")

		_, err := svc.Apply(ctx, "student-user", applicationRequest(jobID))
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("Apply() past deadline error = %v, want permission_denied", err)
		}
	})

	t.Run("unknown job is not found", func(t *testing.T) {
		repo, _, svc := newApplicationFixture(t)
		seedStudent(repo, "student-user")

		_, err := svc.Apply(ctx, "student-user", applicationRequest("b54dd289-1c43-4a94-9f0d-2f8e6a7b5c31"))
		if !IsNotFound(err) {
			t.Errorf("Apply() to unknown job error = %v, want not found", err)
		}
	})
}

func TestApplicationService_GetByID(t *testing.T) {
	ctx := context.Background()
	const jobID = "7b8a4a3e-9f0d-4f4e-9f5a-0a1b2c3d4e5f"

	repo, _, svc := newApplicationFixture(t)
	job := seedJobWithCompany(repo, jobID)
	student := seedStudent(repo, "student-user")

	application := &models.Application{
		ID:        "app-1",
		JobID:     job.ID,
		StudentID: student.ID,
		Status:    models.ApplicationPending,
		Job:       *job,
		Student:   *student,
	}
	repo.applications.applications[application.ID] = application

	t.Run("visible to the applicant", func(t *testing.T) {
		if _, err := svc.GetByID(ctx, "student-user", "app-1"); err != nil {
			t.Errorf("GetByID() as applicant error = %v", err)
		}
	})

	t.Run("visible to the posting company", func(t *testing.T) {
		if _, err := svc.GetByID(ctx, "company-user", "app-1"); err != nil {
			t.Errorf("GetByID() as company error = %v", err)
		}
	})

	t.Run("hidden from third parties", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "someone-else", "app-1")
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("GetByID() as stranger error = %v, want permission_denied", err)
		}
	})
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	const jobID = "7b8a4a3e-9f0d-4f4e-9f5a-0a1b2c3d4e5f"

	setup := func(t *testing.T) (*mockRepository, *events.MockEventPublisher, ApplicationService) {
		repo, publisher, svc := newApplicationFixture(t)
		job := seedJobWithCompany(repo, jobID)
		student := seedStudent(repo, "student-user")
		repo.applications.applications["app-1"] = &models.Application{
			ID:        "app-1",
			JobID:     job.ID,
			StudentID: student.ID,
			Status:    models.ApplicationPending,
			Job:       *job,
			Student:   *student,
		}
		return repo, publisher, svc
	}

	t.Run("company updates status and the student is notified", func(t *testing.T) {
		repo, publisher, svc := setup(t)

		req := &ApplicationStatusUpdateRequest{Status: models.ApplicationReviewed}
		if err := svc.UpdateStatus(ctx, "company-user", "app-1", req); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}

		if got := repo.applications.applications["app-1"].Status; got != models.ApplicationReviewed {
			t.Errorf("stored status = %v, want reviewed", got)
		}
		if len(repo.notifications.created) != 1 {
			t.Errorf("student notification rows = %d, want 1", len(repo.notifications.created))
		}
		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.TypeApplicationUpdated {
			t.Errorf("published events = %+v, want one application.status_updated", published)
		}
	})

	t.Run("only the posting company may update", func(t *testing.T) {
		_, _, svc := setup(t)

		err := svc.UpdateStatus(ctx, "other-company", "app-1", &ApplicationStatusUpdateRequest{Status: models.ApplicationReviewed})
		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindPermission {
			t.Errorf("UpdateStatus() as stranger error = %v, want permission_denied", err)
		}
	})

	t.Run("unknown status is rejected before any read", func(t *testing.T) {
		_, _, svc := setup(t)

		err := svc.UpdateStatus(ctx, "company-user", "app-1", &ApplicationStatusUpdateRequest{Status: "archived"})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("UpdateStatus() with bad status error = %v, want ValidationErrors", err)
		}
	})
}
