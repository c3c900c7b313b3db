package mailbox

import (
	"errors"
	"fmt"
)

// AuthError indicates the mail server rejected the login. It is fatal
// to a run and is surfaced to the caller; no retry is attempted.
type AuthError struct {
	Address string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Address, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// FetchError indicates one specific message could not be retrieved.
// It is isolated to that message; the run substitutes placeholders
// and continues with the rest of the batch.
type FetchError struct {
	UID uint32
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching message UID %d: %v", e.UID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err (or any error in its chain) is a FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}
