package forms

import (
	"time"

	"Backend-FormCraft/src/models"
)

// GateError is a policy rejection of a submission, independent of the
// answers themselves. Gate errors are fatal: the submission is refused with
// a single reason and is never retried automatically.
type GateError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *GateError) Error() string { return e.Message }

var (
	ErrFormNotFound   = &GateError{"form_not_found", "Form not found"}
	ErrNotAccepting   = &GateError{"form_not_accepting", "Form is not accepting responses"}
	ErrDeadlinePassed = &GateError{"deadline_passed", "Form submission deadline has passed"}
	ErrQuotaExceeded  = &GateError{"quota_exceeded", "Form has reached maximum responses"}
	ErrAuthRequired   = &GateError{"auth_required", "Authentication required for this form"}

	// ErrStorageUnavailable is not a policy decision; it signals that the
	// atomic quota reservation could not be executed and the caller may
	// retry.
	ErrStorageUnavailable = &GateError{"storage_unavailable", "Storage unavailable, try again"}
)

// CheckSubmittable runs the policy checks that must pass before any answer
// validation happens. Checks run cheapest-first and short-circuit, each with
// its own error code:
//
//	status not active      -> form_not_accepting
//	deadline passed        -> deadline_passed
//	response quota reached -> quota_exceeded
//	anonymous not allowed  -> auth_required
//
// The quota check here is advisory; the authoritative check is the atomic
// counter reservation done at persist time.
func CheckSubmittable(form *models.Form, identity models.SubmitterIdentity, now time.Time) *GateError {
	if form.Status != models.FormStatusActive {
		return ErrNotAccepting
	}
	if form.Settings.CloseAt != nil && !now.Before(*form.Settings.CloseAt) {
		return ErrDeadlinePassed
	}
	if form.Settings.MaxResponses != nil && form.ResponseCount >= *form.Settings.MaxResponses {
		return ErrQuotaExceeded
	}
	if identity.Anonymous() && !form.Settings.AllowAnonymous {
		return ErrAuthRequired
	}
	return nil
}
