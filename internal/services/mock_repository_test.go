package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/GenzHireHub/platform-service/internal/models"
	"github.com/GenzHireHub/platform-service/internal/repositories"
)

// mockRepository is a hand-written configurable fake for service tests.
// Only the sub-repositories a test exercises need to be populated.
type mockRepository struct {
	account       *mockAccountRepo
	students      *mockStudentProfileRepo
	company       *mockCompanyProfileRepo
	jobs          *mockJobRepo
	applications  *mockApplicationRepo
	waitlist      *mockWaitlistRepo
	notifications *mockNotificationRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		account:       &mockAccountRepo{accounts: map[string]*models.User{}},
		students:      &mockStudentProfileRepo{profiles: map[string]*models.StudentProfile{}},
		company:       &mockCompanyProfileRepo{profiles: map[string]*models.CompanyProfile{}},
		jobs:          &mockJobRepo{jobs: map[string]*models.Job{}},
		applications:  &mockApplicationRepo{applications: map[string]*models.Application{}},
		waitlist:      &mockWaitlistRepo{entries: map[string]*models.WaitlistEntry{}},
		notifications: &mockNotificationRepo{},
	}
}

func (m *mockRepository) Account() repositories.AccountRepository               { return m.account }
func (m *mockRepository) StudentProfile() repositories.StudentProfileRepository { return m.students }
func (m *mockRepository) CompanyProfile() repositories.CompanyProfileRepository { return m.company }
func (m *mockRepository) Job() repositories.JobRepository                       { return m.jobs }
func (m *mockRepository) Application() repositories.ApplicationRepository       { return m.applications }
func (m *mockRepository) Waitlist() repositories.WaitlistRepository             { return m.waitlist }
func (m *mockRepository) Notification() repositories.NotificationRepository     { return m.notifications }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== ACCOUNT =====

type mockAccountRepo struct {
	accounts map[string]*models.User
	failWith error
	setRoles []models.UserRole
}

func (m *mockAccountRepo) CreateOrUpdate(ctx context.Context, user *models.User) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if existing, ok := m.accounts[user.ID]; ok {
		existing.Name = user.Name
		existing.Email = user.Email
		return existing, nil
	}
	m.accounts[user.ID] = user
	return user, nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, user := range m.accounts {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) SetRole(ctx context.Context, id string, role models.UserRole) error {
	if m.failWith != nil {
		return m.failWith
	}
	user, ok := m.accounts[id]
	if !ok || user.Role != nil {
		return gorm.ErrRecordNotFound
	}
	user.Role = &role
	m.setRoles = append(m.setRoles, role)
	return nil
}

func (m *mockAccountRepo) List(ctx context.Context, filters repositories.AccountFilters) ([]*models.User, int64, error) {
	out := make([]*models.User, 0, len(m.accounts))
	for _, user := range m.accounts {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

func (m *mockAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ===== STUDENT PROFILE =====

type mockStudentProfileRepo struct {
	profiles map[string]*models.StudentProfile // keyed by user ID
	failWith error
}

func (m *mockStudentProfileRepo) Create(ctx context.Context, profile *models.StudentProfile) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.profiles[profile.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockStudentProfileRepo) GetByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	for _, profile := range m.profiles {
		if profile.ID == id {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *mockStudentProfileRepo) Update(ctx context.Context, profile *models.StudentProfile) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockStudentProfileRepo) MarkCompleted(ctx context.Context, userID string) error {
	profile, ok := m.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	profile.ProfileCompleted = true
	return nil
}

func (m *mockStudentProfileRepo) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.profiles[userID]
	return ok, nil
}

// ===== COMPANY PROFILE =====

type mockCompanyProfileRepo struct {
	profiles map[string]*models.CompanyProfile
	failWith error
}

func (m *mockCompanyProfileRepo) Create(ctx context.Context, profile *models.CompanyProfile) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.profiles[profile.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockCompanyProfileRepo) GetByID(ctx context.Context, id string) (*models.CompanyProfile, error) {
	for _, profile := range m.profiles {
		if profile.ID == id {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCompanyProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *mockCompanyProfileRepo) Update(ctx context.Context, profile *models.CompanyProfile) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockCompanyProfileRepo) MarkCompleted(ctx context.Context, userID string) error {
	profile, ok := m.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	profile.ProfileCompleted = true
	return nil
}

func (m *mockCompanyProfileRepo) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	_, ok := m.profiles[userID]
	return ok, nil
}

// ===== JOBS =====

type mockJobRepo struct {
	jobs     map[string]*models.Job
	failWith error
	deleted  []string
}

func (m *mockJobRepo) Create(ctx context.Context, job *models.Job) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	job, ok := m.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return job, nil
}

func (m *mockJobRepo) Update(ctx context.Context, job *models.Job) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.jobs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.jobs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockJobRepo) List(ctx context.Context, filters repositories.JobFilters) ([]*models.Job, int64, error) {
	var out []*models.Job
	for _, job := range m.jobs {
		if filters.Active != nil && job.IsActive != *filters.Active {
			continue
		}
		out = append(out, job)
	}
	return out, int64(len(out)), nil
}

func (m *mockJobRepo) GetByCompany(ctx context.Context, companyID string, filters repositories.JobFilters) ([]*models.Job, int64, error) {
	var out []*models.Job
	for _, job := range m.jobs {
		if job.CompanyID == companyID {
			out = append(out, job)
		}
	}
	return out, int64(len(out)), nil
}

// ===== APPLICATIONS =====

type mockApplicationRepo struct {
	applications map[string]*models.Application
	failWith     error
}

func (m *mockApplicationRepo) Create(ctx context.Context, application *models.Application) error {
	if m.failWith != nil {
		return m.failWith
	}
	for _, existing := range m.applications {
		if existing.JobID == application.JobID && existing.StudentID == application.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.applications[application.ID] = application
	return nil
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	application, ok := m.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return application, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, notes *string, interviewDate *time.Time) error {
	application, ok := m.applications[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	application.Status = status
	application.Notes = notes
	application.InterviewDate = interviewDate
	return nil
}

func (m *mockApplicationRepo) ListByStudent(ctx context.Context, studentID string, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	var out []*models.Application
	for _, application := range m.applications {
		if application.StudentID == studentID {
			out = append(out, application)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockApplicationRepo) ListByJob(ctx context.Context, jobID string, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	var out []*models.Application
	for _, application := range m.applications {
		if application.JobID == jobID {
			out = append(out, application)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockApplicationRepo) ExistsByJobAndStudent(ctx context.Context, jobID, studentID string) (bool, error) {
	for _, application := range m.applications {
		if application.JobID == jobID && application.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// ===== NOTIFICATIONS =====

type mockNotificationRepo struct {
	created []*models.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	m.created = append(m.created, notification)
	return nil
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	m.created = append(m.created, notifications...)
	return nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string, filters repositories.NotificationFilters) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, n := range m.created {
		if n.UserID != userID {
			continue
		}
		if filters.UnreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	for _, n := range m.created {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.created {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// ===== WAITLIST =====

type mockWaitlistRepo struct {
	entries map[string]*models.WaitlistEntry // keyed by email
	invited []string
}

func (m *mockWaitlistRepo) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	if _, ok := m.entries[entry.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	if entry.ID == "" {
		entry.ID = entry.Email
	}
	m.entries[entry.Email] = entry
	return nil
}

func (m *mockWaitlistRepo) GetByID(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	for _, entry := range m.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWaitlistRepo) GetByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	entry, ok := m.entries[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (m *mockWaitlistRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *mockWaitlistRepo) List(ctx context.Context, filters repositories.WaitlistFilters) ([]*models.WaitlistEntry, int64, error) {
	out := make([]*models.WaitlistEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func (m *mockWaitlistRepo) MarkInvited(ctx context.Context, id string, at time.Time) error {
	for _, entry := range m.entries {
		if entry.ID == id {
			if entry.InvitedAt != nil {
				return gorm.ErrRecordNotFound
			}
			when := at
			entry.InvitedAt = &when
			m.invited = append(m.invited, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
