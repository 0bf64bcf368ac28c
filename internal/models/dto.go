package models

import "time"

// ===== SHARED API RESPONSES =====

type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Code      string      `json:"code,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Path      string      `json:"path,omitempty"`
}

type SuccessResponse struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// OnboardingStatusResponse is what /onboarding/status returns: the
// resolved stage plus the canonical path the client should render.
type OnboardingStatusResponse struct {
	Stage         OnboardingStage `json:"stage"`
	CanonicalPath string          `json:"canonical_path"`
	HasProfile    bool            `json:"has_profile"`
}

// CurrentUserResponse mirrors the session shape the frontend consumes.
type CurrentUserResponse struct {
	User             *User           `json:"user"`
	Stage            OnboardingStage `json:"stage"`
	HasProfile       bool            `json:"has_profile"`
	ProfileCompleted bool            `json:"profile_completed"`
}

type WaitlistCountResponse struct {
	Count int64 `json:"count"`
}

type PresignedUploadResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int    `json:"expires_in"`
}
