// Package errs defines the error taxonomy surfaced by the API layer.
// Handlers map these types to HTTP statuses; anything else is treated as an
// internal error and returned with a generic message.
package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError indicates a malformed or incomplete request.
type ValidationError struct {
	ErrorMessage
}

// AuthError indicates a missing, invalid or expired credential, or a token
// that resolves to an inactive user.
type AuthError struct {
	ErrorMessage
}

// NotFoundError indicates the referenced entity does not exist within the
// caller's family account.
type NotFoundError struct {
	ErrorMessage
}

// ConflictError indicates a uniqueness or referential conflict, such as a
// duplicate email or deleting a category that still has transactions.
type ConflictError struct {
	ErrorMessage
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewAuthError(message string) *AuthError {
	return &AuthError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{ErrorMessage: ErrorMessage{Message: message}}
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{ErrorMessage: ErrorMessage{Message: message}}
}
