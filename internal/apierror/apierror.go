// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ConflictError carries a recoverable validation conflict that the client can
// resolve and resubmit (e.g. duplicated recipe ingredients: modificar o fusionar).
type ConflictError struct {
	Detail     string   `json:"detail"`
	Duplicados []string `json:"duplicados,omitempty"`
}

func NewConflict(msg string, duplicados []string) *ConflictError {
	return &ConflictError{Detail: msg, Duplicados: duplicados}
}

// Error lets services return a *ConflictError through plain error values;
// handlers recover the typed conflict with errors.As.
func (e *ConflictError) Error() string { return e.Detail }
