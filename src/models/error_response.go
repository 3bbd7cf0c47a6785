package models

// ErrorResponse is the standard error body for non-validation failures.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
