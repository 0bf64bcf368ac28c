package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors for the onboarding contract.
var (
	// ErrStageLookup means the profile or account read failed during
	// stage resolution. It must surface to the caller distinctly and is
	// never mapped to an onboarding stage.
	ErrStageLookup = errors.New("onboarding stage lookup failed")

	// ErrDuplicateProfile is the recoverable rejection of a second
	// profile for an account that already has one.
	ErrDuplicateProfile = errors.New("profile already exists for this account")

	// ErrInvalidRoleTransition marks an attempt to act for a role that
	// does not match the account's persisted role. Programming error,
	// not user-recoverable.
	ErrInvalidRoleTransition = errors.New("role does not match account role")

	// ErrDuplicateApplication rejects a second application to the same
	// job by the same student.
	ErrDuplicateApplication = errors.New("application already submitted for this job")

	// ErrRoleAlreadySet rejects a second role selection.
	ErrRoleAlreadySet = errors.New("account role has already been selected")
)

// ServiceError is a structured error with an HTTP-mappable kind.
type ServiceError struct {
	Kind     string
	Resource string
	ID       string
	Action   string
	Reason   string
}

func (e *ServiceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s %s %s: %s", e.Kind, e.Action, e.Resource, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s: %s", e.Kind, e.Action, e.Resource, e.Reason)
}

const (
	KindPermission = "permission_denied"
	KindNotFound   = "not_found"
	KindConflict   = "conflict"
	KindValidation = "validation_failed"
)

func NewPermissionError(userID, resourceID, resource, action, reason string) *ServiceError {
	return &ServiceError{
		Kind:     KindPermission,
		Resource: resource,
		ID:       resourceID,
		Action:   action,
		Reason:   fmt.Sprintf("user %s: %s", userID, reason),
	}
}

func NewNotFoundError(resource, id string) *ServiceError {
	return &ServiceError{
		Kind:     KindNotFound,
		Resource: resource,
		ID:       id,
		Action:   "get",
		Reason:   "record does not exist",
	}
}

// IsNotFound reports whether err is a missing-record error from either
// the store or the service layer.
func IsNotFound(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true
	}
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindNotFound
}

// IsDuplicateKey reports whether err is a unique-constraint violation
// surfaced by the driver's error translation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
