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

type notificationEventService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNotificationEventService(repo repositories.Repository, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) NotificationEventService {
	return &notificationEventService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

func (s *notificationEventService) Notify(ctx context.Context, userID string, req *NotificationRequest) error {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return errs
	}

	notification := s.toModel(userID, req)
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	s.publish(ctx, string(req.Type), userID, req)
	return nil
}

// SendBulkNotification persists one row per recipient and publishes a
// single fan-out event for downstream consumers.
func (s *notificationEventService) SendBulkNotification(ctx context.Context, userIDs []string, req *NotificationRequest) error {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return errs
	}
	if len(userIDs) == 0 {
		return nil
	}

	notifications := make([]*models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, s.toModel(userID, req))
	}

	if err := s.repo.Notification().CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("failed to persist notifications: %w", err)
	}

	event := &events.Event{
		ID:   uuid.New().String(),
		Type: events.TypeBulkNotification,
		Data: map[string]interface{}{
			"user_ids": userIDs,
			"type":     req.Type,
			"title":    req.Title,
		},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish bulk notification event", "recipients", len(userIDs), "error", err)
	}

	s.logger.Info("Bulk notification sent", "recipients", len(userIDs), "type", req.Type)
	return nil
}

func (s *notificationEventService) ListByUser(ctx context.Context, userID string, filters repositories.NotificationFilters) (*NotificationListResponse, error) {
	notifications, total, err := s.repo.Notification().ListByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.repo.Notification().UnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &NotificationListResponse{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
	}, nil
}

func (s *notificationEventService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.repo.Notification().MarkRead(ctx, notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("notification", notificationID)
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationEventService) toModel(userID string, req *NotificationRequest) *models.Notification {
	data := datatypes.JSON([]byte("{}"))
	if req.Data != nil {
		if raw, err := json.Marshal(req.Data); err == nil {
			data = datatypes.JSON(raw)
		}
	}

	return &models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Data:    data,
	}
}

func (s *notificationEventService) publish(ctx context.Context, eventType, userID string, req *NotificationRequest) {
	event := &events.Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		UserID: userID,
		Data: map[string]interface{}{
			"title":    req.Title,
			"message":  req.Message,
			"priority": req.Priority,
		},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish notification event", "user_id", userID, "error", err)
	}
}
