package validator

import (
	"time"

	"github.com/GenzHireHub/platform-service/internal/models"
)

// Tagged per-role submission types. Onboarding forms arrive as one of
// these validated structs, never as loose key/value bundles.

// RoleSelectionRequest sets the account role, once.
type RoleSelectionRequest struct {
	Role models.UserRole `json:"role" validate:"required,user_role"`
}

// StudentProfileSubmission creates the student variant of the profile.
type StudentProfileSubmission struct {
	FullName    string   `json:"full_name" validate:"required,min=2,max=100"`
	Course      string   `json:"course" validate:"required,min=2,max=100"`
	University  *string  `json:"university" validate:"omitempty,max=150"`
	YearOfStudy string   `json:"year_of_study" validate:"required,year_of_study"`
	Skills      []string `json:"skills" validate:"max=20,dive,min=1,max=50"`
	Interests   []string `json:"interests" validate:"max=10,dive,min=1,max=50"`

	Bio          *string `json:"bio" validate:"omitempty,max=500"`
	LinkedinURL  *string `json:"linkedin_url" validate:"omitempty,url"`
	PortfolioURL *string `json:"portfolio_url" validate:"omitempty,url"`
	GithubURL    *string `json:"github_url" validate:"omitempty,url"`
	CVURL        *string `json:"cv_url" validate:"omitempty,url"`
	Phone        *string `json:"phone" validate:"omitempty,e164_loose"`
	Location     *string `json:"location" validate:"omitempty,max=100"`
}

// CompanyProfileSubmission creates the company variant of the profile.
type CompanyProfileSubmission struct {
	CompanyName string  `json:"company_name" validate:"required,min=2,max=100"`
	Industry    string  `json:"industry" validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Website     *string `json:"website" validate:"omitempty,url"`
	LogoURL     *string `json:"logo_url" validate:"omitempty,url"`
	Location    *string `json:"location" validate:"omitempty,max=100"`

	Size         *string `json:"size" validate:"omitempty,company_size"`
	Founded      *int    `json:"founded" validate:"omitempty,founded_year"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,e164_loose"`
}

// JobCreateRequest is a company's job posting.
type JobCreateRequest struct {
	Title        string         `json:"title" validate:"required,min=5,max=100"`
	Description  string         `json:"description" validate:"required,min=50,max=2000"`
	Requirements *string        `json:"requirements" validate:"omitempty,max=1000"`
	Location     string         `json:"location" validate:"required,min=2,max=100"`
	Type         models.JobType `json:"type" validate:"required,job_type"`

	SalaryMin *int   `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax *int   `json:"salary_max" validate:"omitempty,min=0,gtefield=SalaryMin"`
	Currency  string `json:"currency" validate:"omitempty,max=10"`

	Skills []string `json:"skills" validate:"max=15,dive,min=1,max=50"`
	Tags   []string `json:"tags" validate:"max=10,dive,min=1,max=30"`

	Deadline       *time.Time `json:"deadline" validate:"omitempty,future_date"`
	Remote         bool       `json:"remote"`
	ApplicationURL *string    `json:"application_url" validate:"omitempty,url"`
}

type JobUpdateRequest struct {
	Title        *string         `json:"title" validate:"omitempty,min=5,max=100"`
	Description  *string         `json:"description" validate:"omitempty,min=50,max=2000"`
	Requirements *string         `json:"requirements" validate:"omitempty,max=1000"`
	Location     *string         `json:"location" validate:"omitempty,min=2,max=100"`
	Type         *models.JobType `json:"type" validate:"omitempty,job_type"`
	SalaryMin    *int            `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax    *int            `json:"salary_max" validate:"omitempty,min=0"`
	Skills       []string        `json:"skills" validate:"omitempty,max=15,dive,min=1,max=50"`
	Tags         []string        `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	Deadline     *time.Time      `json:"deadline" validate:"omitempty,future_date"`
	Remote       *bool           `json:"remote"`
	IsActive     *bool           `json:"is_active"`
}

// ApplicationCreateRequest is a student's application to a job.
type ApplicationCreateRequest struct {
	JobID       string  `json:"job_id" validate:"required,uuid"`
	CoverLetter string  `json:"cover_letter" validate:"required,min=100,max=1000"`
	CustomCVURL *string `json:"custom_cv_url" validate:"omitempty,url"`
}

// ApplicationStatusUpdateRequest is a company's review decision.
type ApplicationStatusUpdateRequest struct {
	Status        models.ApplicationStatus `json:"status" validate:"required,application_status"`
	Notes         *string                  `json:"notes" validate:"omitempty,max=500"`
	InterviewDate *time.Time               `json:"interview_date" validate:"omitempty,future_date"`
}

// WaitlistJoinRequest is the pre-launch signup form.
type WaitlistJoinRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Role        models.UserRole `json:"role" validate:"omitempty,oneof=student company"`
	FullName    *string         `json:"full_name" validate:"omitempty,min=2,max=100"`
	Course      *string         `json:"course" validate:"omitempty,min=2,max=100"`
	CompanyName *string         `json:"company_name" validate:"omitempty,min=2,max=100"`
}

// PresignUploadRequest asks for a one-shot upload URL; only the
// resulting key/URL reference is ever stored on a profile.
type PresignUploadRequest struct {
	FileName   string `json:"file_name" validate:"required,min=1,max=255"`
	FileType   string `json:"file_type" validate:"required"`
	FileSize   int64  `json:"file_size" validate:"required,min=1"`
	UploadType string `json:"upload_type" validate:"omitempty,oneof=cv logo document"`
}

type DeleteUploadRequest struct {
	FileURL string `json:"file_url" validate:"required,url"`
}
