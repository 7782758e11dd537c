package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested item no longer exists remotely
	ErrNotFound = errors.New("item not found")

	// ErrServerOffline indicates the remote catalog is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrAuthFailed indicates authentication was rejected
	ErrAuthFailed = errors.New("authentication failed")
)

// ValidationError rejects a mutation payload before (or instead of) the
// remote store. The message is suitable for direct user display.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
