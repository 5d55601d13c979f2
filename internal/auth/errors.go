package auth

import "errors"

// Provider error kinds, mapped to user-facing messages by Message.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("account already exists")
	ErrUserDisabled       = errors.New("account disabled")
	ErrUnavailable        = errors.New("identity provider unavailable")
)

// Message returns the human-readable message for a sign-in error. Errors
// without a known kind get a generic message.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrAccountExists):
		return "An account already exists with this email."
	case errors.Is(err, ErrUserDisabled):
		return "This account has been disabled. Please contact support."
	case errors.Is(err, ErrUnavailable):
		return "Network error. Please check your internet connection."
	default:
		return "Authentication failed. Please try again."
	}
}
