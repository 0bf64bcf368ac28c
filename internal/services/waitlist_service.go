package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/events"
	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
	"github.com/GenzHireHub/platform-service/internal/validator"
)

// InviteMailer delivers waitlist invitations. Implementations must not
// block longer than the request context allows.
type InviteMailer interface {
	SendInvite(ctx context.Context, entry *models.WaitlistEntry) error
}

// ResendMailer sends invites through the Resend API.
type ResendMailer struct {
	client    *resend.Client
	fromEmail string
	appURL    string
	logger    *slog.Logger
}

func NewResendMailer(apiKey, fromEmail, appURL string, logger *slog.Logger) *ResendMailer {
	var client *resend.Client
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	}
	return &ResendMailer{
		client:    client,
		fromEmail: fromEmail,
		appURL:    appURL,
		logger:    logger,
	}
}

func (m *ResendMailer) SendInvite(ctx context.Context, entry *models.WaitlistEntry) error {
	if m.client == nil {
		// No API key configured; log the invite instead of failing.
		m.logger.Info("Mailer not configured, skipping invite email", "email", entry.Email)
		return nil
	}

	name := "there"
	if entry.FullName != nil && *entry.FullName != "" {
		name = *entry.FullName
	}

	params := &resend.SendEmailRequest{
		From:    m.fromEmail,
		To:      []string{entry.Email},
		Subject: "You're off the GenzHireHub waitlist",
		Html: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
				<h2>Hi %s, your spot is ready</h2>
				<p>You can now sign in and finish setting up your profile:</p>
				<a href="%s/login" style="display: inline-block; background: #6366f1; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">
					Get started
				</a>
			</div>
		`, name, m.appURL),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}

	m.logger.Info("Invite email sent", "email", entry.Email, "message_id", sent.Id)
	return nil
}

type waitlistService struct {
	repo           repositories.Repository
	mailer         InviteMailer
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewWaitlistService(repo repositories.Repository, mailer InviteMailer, eventPublisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) WaitlistService {
	return &waitlistService{
		repo:           repo,
		mailer:         mailer,
		eventPublisher: eventPublisher,
		logger:         logger,
		validator:      v,
	}
}

func (s *waitlistService) Join(ctx context.Context, req *WaitlistJoinRequest) (*models.WaitlistEntry, error) {
	if errs := s.validator.Struct(req); len(errs) > 0 {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	entry := &models.WaitlistEntry{
		ID:          uuid.New().String(),
		Email:       email,
		Role:        role,
		FullName:    req.FullName,
		Course:      req.Course,
		CompanyName: req.CompanyName,
	}

	if err := s.repo.Waitlist().Create(ctx, entry); err != nil {
		if IsDuplicateKey(err) {
			// Joining twice is a no-op from the user's point of view.
			existing, getErr := s.repo.Waitlist().GetByEmail(ctx, email)
			if getErr == nil {
				return existing, nil
			}
			return nil, fmt.Errorf("failed to load existing waitlist entry: %w", getErr)
		}
		return nil, fmt.Errorf("failed to join waitlist: %w", err)
	}

	event := &events.Event{
		ID:   uuid.New().String(),
		Type: events.TypeWaitlistJoined,
		Data: map[string]interface{}{"email": email, "role": role},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish waitlist event", "email", email, "error", err)
	}

	s.logger.Info("Waitlist entry created", "email", email, "role", role)
	return entry, nil
}

func (s *waitlistService) Count(ctx context.Context) (int64, error) {
	return s.repo.Waitlist().Count(ctx)
}

func (s *waitlistService) List(ctx context.Context, filters repositories.WaitlistFilters) ([]*models.WaitlistEntry, int64, error) {
	return s.repo.Waitlist().List(ctx, filters)
}

// Invite marks the entry invited and emails the signup link. Marking
// happens first so a crashed send never re-invites on retry by another
// admin; a failed send is reported to the caller for a manual resend.
func (s *waitlistService) Invite(ctx context.Context, entryID string) error {
	entry, err := s.repo.Waitlist().GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("waitlist entry", entryID)
		}
		return fmt.Errorf("failed to get waitlist entry: %w", err)
	}

	if err := s.repo.Waitlist().MarkInvited(ctx, entryID, time.Now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("waitlist entry", entryID)
		}
		return fmt.Errorf("failed to mark entry invited: %w", err)
	}

	if err := s.mailer.SendInvite(ctx, entry); err != nil {
		return err
	}

	event := &events.Event{
		ID:   uuid.New().String(),
		Type: events.TypeWaitlistInvited,
		Data: map[string]interface{}{"email": entry.Email},
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish invite event", "email", entry.Email, "error", err)
	}

	s.logger.Info("Waitlist entry invited", "entry_id", entryID, "email", entry.Email)
	return nil
}

// ExportXLSX renders the full waitlist as a spreadsheet for the admin
// dashboard.
func (s *waitlistService) ExportXLSX(ctx context.Context) ([]byte, error) {
	entries, _, err := s.repo.Waitlist().List(ctx, repositories.WaitlistFilters{Limit: 10000})
	if err != nil {
		return nil, fmt.Errorf("failed to load waitlist: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Waitlist"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{"Email", "Role", "Full Name", "Course", "Company", "Joined", "Invited"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.Email,
			string(entry.Role),
			deref(entry.FullName),
			deref(entry.Course),
			deref(entry.CompanyName),
			entry.CreatedAt.Format(time.RFC3339),
			"",
		}
		if entry.InvitedAt != nil {
			values[6] = entry.InvitedAt.Format(time.RFC3339)
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}

	s.logger.Info("Waitlist exported", "entries", len(entries))
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
