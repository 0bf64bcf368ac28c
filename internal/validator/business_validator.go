package validator

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GenzHireHub/platform-service/internal/models"
)

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// BusinessValidator handles struct and business rule validation.
type BusinessValidator struct {
	validate *validator.Validate
}

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// NewBusinessValidator creates a validator with the domain rules
// registered.
func NewBusinessValidator() *BusinessValidator {
	validate := validator.New()

	bv := &BusinessValidator{validate: validate}
	bv.registerBusinessRules()

	return bv
}

// Validate validates any struct against its tags.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	var errs ValidationErrors

	err := bv.validate.Struct(s)
	if err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = append(errs, ValidationError{
				Field:   fe.Field(),
				Message: bv.getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return errs
}

// ValidateStudentProfile validates a student profile submission.
func (bv *BusinessValidator) ValidateStudentProfile(req *StudentProfileSubmission) ValidationErrors {
	return bv.Validate(req)
}

// ValidateCompanyProfile validates a company profile submission.
func (bv *BusinessValidator) ValidateCompanyProfile(req *CompanyProfileSubmission) ValidationErrors {
	return bv.Validate(req)
}

// ValidateJobCreate validates a job posting and its salary range.
func (bv *BusinessValidator) ValidateJobCreate(req *JobCreateRequest) ValidationErrors {
	errs := bv.Validate(req)

	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		errs = append(errs, ValidationError{
			Field:   "salary_max",
			Message: "maximum salary must be greater than or equal to minimum salary",
			Value:   *req.SalaryMax,
			Rule:    "salary_range",
		})
	}

	return errs
}

// ValidateRoleSelection validates the role form and the set-once rule.
func (bv *BusinessValidator) ValidateRoleSelection(req *RoleSelectionRequest, existing *models.User) ValidationErrors {
	errs := bv.Validate(req)

	if existing != nil && existing.HasRole() && *existing.Role != req.Role {
		errs = append(errs, ValidationError{
			Field:   "role",
			Message: fmt.Sprintf("role already set to %s and cannot be changed", *existing.Role),
			Value:   req.Role,
			Rule:    "role_immutable",
		})
	}

	return errs
}

func (bv *BusinessValidator) registerBusinessRules() {
	bv.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return models.ValidRole(models.UserRole(fl.Field().String()))
	})

	bv.validate.RegisterValidation("year_of_study", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "1", "2", "3", "4", "5":
			return true
		}
		return false
	})

	bv.validate.RegisterValidation("company_size", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "1-10", "11-50", "51-200", "201-500", "500+":
			return true
		}
		return false
	})

	bv.validate.RegisterValidation("founded_year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1800 && year <= int64(time.Now().Year())
	})

	bv.validate.RegisterValidation("job_type", func(fl validator.FieldLevel) bool {
		switch models.JobType(fl.Field().String()) {
		case models.JobInternship, models.JobPartTime, models.JobFullTime:
			return true
		}
		return false
	})

	bv.validate.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
		switch models.ApplicationStatus(fl.Field().String()) {
		case models.ApplicationPending, models.ApplicationReviewed, models.ApplicationInterview,
			models.ApplicationAccepted, models.ApplicationRejected:
			return true
		}
		return false
	})

	// E.164-ish, matching the frontend pattern
	bv.validate.RegisterValidation("e164_loose", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	bv.validate.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		date, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return date.After(time.Now())
	})
}

func (bv *BusinessValidator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "user_role":
		return "must be one of student, company, admin"
	case "year_of_study":
		return "must be a year between 1 and 5"
	case "company_size":
		return "must be one of 1-10, 11-50, 51-200, 201-500, 500+"
	case "job_type":
		return "must be one of internship, part-time, full-time"
	case "application_status":
		return "must be a valid application status"
	case "e164_loose":
		return "must be a valid phone number"
	case "future_date":
		return "must be in the future"
	case "founded_year":
		return "must be a plausible founding year"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
