package errors

import (
	stdErrors "errors"
	"fmt"
)

// Onboarding stages a session can be sent back to.
const (
	StageLogin       = "login"
	StagePreferences = "preferences"
)

// OnboardingError means the session cannot activate until the user finishes
// an earlier onboarding stage.
type OnboardingError struct {
	Stage string
}

func (e *OnboardingError) Error() string {
	switch e.Stage {
	case StageLogin:
		return "no user profile found, run `readlog setup` first"
	case StagePreferences:
		return "reading preferences are incomplete, run `readlog setup` to finish them"
	default:
		return fmt.Sprintf("onboarding incomplete (%s)", e.Stage)
	}
}

// NewOnboardingError creates an OnboardingError for the given stage.
func NewOnboardingError(stage string) *OnboardingError {
	return &OnboardingError{Stage: stage}
}

// IsOnboardingError reports whether err is an OnboardingError and returns it.
func IsOnboardingError(err error) (*OnboardingError, bool) {
	var onboardingErr *OnboardingError
	if stdErrors.As(err, &onboardingErr) {
		return onboardingErr, true
	}
	return nil, false
}
