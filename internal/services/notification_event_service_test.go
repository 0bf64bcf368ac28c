package services

import (
	"context"
	"testing"

	"github.com/GenzHireHub/platform-service/internal/events"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

func TestNotificationEventService_PublishEvents(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := &notificationEventService{
		repo:           repo,
		eventPublisher: publisher,
		logger:         testLogger(),
		validator:      validator.New(),
	}

	ctx := context.Background()

	t.Run("Notify persists and publishes", func(t *testing.T) {
		req := &NotificationRequest{
			Type:     models.NotificationNewJob,
			Title:    "New internship posted",
			Message:  "A company in your field posted an internship",
			Priority: models.PriorityNormal,
		}

		if err := service.Notify(ctx, "u1", req); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}

		if len(repo.notifications.created) != 1 {
			t.Fatalf("persisted %d notifications, want 1", len(repo.notifications.created))
		}
		if repo.notifications.created[0].UserID != "u1" {
			t.Errorf("notification user = %s", repo.notifications.created[0].UserID)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("published %d events, want 1", len(published))
		}
		if published[0].Type != string(models.NotificationNewJob) {
			t.Errorf("event type = %s", published[0].Type)
		}
		if published[0].ID == "" {
			t.Error("event ID should not be empty")
		}
	})

	t.Run("SendBulkNotification fans out one event", func(t *testing.T) {
		publisher.ClearEvents()
		repo.notifications.created = nil

		req := &NotificationRequest{
			Type:     models.NotificationWaitlistInvite,
			Title:    "You are invited",
			Message:  "Your waitlist spot is ready",
			Priority: models.PriorityHigh,
		}

		userIDs := []string{"u1", "u2", "u3"}
		if err := service.SendBulkNotification(ctx, userIDs, req); err != nil {
			t.Fatalf("SendBulkNotification() error = %v", err)
		}

		if len(repo.notifications.created) != 3 {
			t.Errorf("persisted %d notifications, want 3", len(repo.notifications.created))
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("published %d events, want 1", len(published))
		}
		if published[0].Type != events.TypeBulkNotification {
			t.Errorf("event type = %s, want %s", published[0].Type, events.TypeBulkNotification)
		}
	})

	t.Run("empty recipient list is a no-op", func(t *testing.T) {
		publisher.ClearEvents()
		repo.notifications.created = nil

		req := &NotificationRequest{
			Type:    models.NotificationNewJob,
			Title:   "t",
			Message: "m",
		}
		if err := service.SendBulkNotification(ctx, nil, req); err != nil {
			t.Fatalf("SendBulkNotification() error = %v", err)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("no events expected for an empty recipient list")
		}
	})

	t.Run("invalid request is rejected", func(t *testing.T) {
		if err := service.Notify(ctx, "u1", &NotificationRequest{}); err == nil {
			t.Fatal("Notify() accepted an empty request")
		}
	})
}

func TestNotificationEventService_ListAndMarkRead(t *testing.T) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	service := NewNotificationEventService(repo, publisher, testLogger(), validator.New())

	ctx := context.Background()

	req := &NotificationRequest{
		Type:    models.NotificationApplicationUpdate,
		Title:   "Status changed",
		Message: "Your application moved to interview",
	}
	if err := service.Notify(ctx, "u1", req); err != nil {
		t.Fatal(err)
	}

	list, err := service.ListByUser(ctx, "u1", repositories.NotificationFilters{})
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if list.Total != 1 || list.Unread != 1 {
		t.Fatalf("list = %d total, %d unread", list.Total, list.Unread)
	}

	if err := service.MarkRead(ctx, "u1", list.Notifications[0].ID); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}

	list, err = service.ListByUser(ctx, "u1", repositories.NotificationFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if list.Unread != 0 {
		t.Errorf("unread = %d after MarkRead", list.Unread)
	}

	if err := service.MarkRead(ctx, "u1", "missing"); !IsNotFound(err) {
		t.Errorf("MarkRead(missing) error = %v, want not-found", err)
	}
}
