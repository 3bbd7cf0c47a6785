package models

// Field-level validation error kinds. All violations in a submission are
// collected and reported together so the submitter can fix everything in one
// round trip.
const (
	ErrRequiredMissing = "required_missing"
	ErrInvalidFormat   = "invalid_format"
	ErrOutOfRange      = "out_of_range"
	ErrInvalidOption   = "invalid_option"
	ErrDuplicateOption = "duplicate_option"
)

type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
