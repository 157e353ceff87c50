package domain

import "errors"

// Error kinds. Every Error unwraps to exactly one of these, so callers can
// branch on the kind with errors.Is without caring about the message.
var (
	ErrValidation           = errors.New("validation error")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrConflict             = errors.New("conflict")
	ErrNotFound             = errors.New("not found")
)

// Error is a failure with a stable kind and a client-safe message.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NewValidationError reports bad input for a single field.
func NewValidationError(field, msg string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: msg}
}

var (
	ErrInvalidCredentials = &Error{Kind: ErrAuthenticationFailed, Message: "invalid credentials"}
	ErrInvalidTokenHeader = &Error{Kind: ErrAuthenticationFailed, Message: "invalid token header"}
	ErrInvalidToken       = &Error{Kind: ErrAuthenticationFailed, Message: "invalid token"}
	ErrNotAuthenticated   = &Error{Kind: ErrAuthenticationFailed, Message: "authentication credentials were not provided"}

	ErrUsernameTaken  = &Error{Kind: ErrConflict, Field: "username", Message: "username is already taken"}
	ErrTokenKeyExists = &Error{Kind: ErrConflict, Field: "key", Message: "token key already exists"}

	ErrAccountNotFound = &Error{Kind: ErrNotFound, Message: "account not found"}
	ErrTokenNotFound   = &Error{Kind: ErrNotFound, Message: "token not found"}

	ErrNilAccount = &Error{Kind: ErrInvalidArgument, Message: "account must not be nil"}
)
