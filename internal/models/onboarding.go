package models

import "fmt"

// OnboardingStep is the coarse step a user must complete next. Derived
// from persisted state on every request, never stored.
type OnboardingStep string

const (
	StepUnauthenticated OnboardingStep = "unauthenticated"
	StepNeedsRole       OnboardingStep = "needs_role"
	StepNeedsProfile    OnboardingStep = "needs_profile"
	StepNeedsCompletion OnboardingStep = "needs_completion"
	StepDone            OnboardingStep = "done"
)

// OnboardingStage pairs the step with the role it applies to. Role is
// only meaningful for the profile-related steps.
type OnboardingStage struct {
	Step OnboardingStep `json:"step"`
	Role UserRole       `json:"role,omitempty"`
}

func Unauthenticated() OnboardingStage { return OnboardingStage{Step: StepUnauthenticated} }
func NeedsRole() OnboardingStage       { return OnboardingStage{Step: StepNeedsRole} }
func Done() OnboardingStage            { return OnboardingStage{Step: StepDone} }

func NeedsProfile(role UserRole) OnboardingStage {
	return OnboardingStage{Step: StepNeedsProfile, Role: role}
}

func NeedsCompletion(role UserRole) OnboardingStage {
	return OnboardingStage{Step: StepNeedsCompletion, Role: role}
}

func (s OnboardingStage) String() string {
	if s.Role != "" {
		return fmt.Sprintf("%s(%s)", s.Step, s.Role)
	}
	return string(s.Step)
}
