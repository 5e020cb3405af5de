package models

// ErrorResponse is the standard JSON error body returned by the HTTP API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes used in ErrorResponse.Code.
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeDuplicateUser = "DUPLICATE_USER"
	ErrCodeUserNotFound  = "USER_NOT_FOUND"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeSelfFollow    = "SELF_FOLLOW"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternal      = "INTERNAL_ERROR"
)
