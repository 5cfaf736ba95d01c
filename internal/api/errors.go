package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates an expired or invalid credential (401).
// The transport layer reacts globally (session wipe + login redirect);
// callers see it as a failed call like any other.
type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Error() string {
	return "session expired, please log in again"
}

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// ErrForbidden indicates the caller is authenticated but lacks the role
// for this resource (403). Credentials are kept.
type ErrForbidden struct {
	Err error
}

func (e *ErrForbidden) Error() string {
	return "you do not have permission to access this resource"
}

func (e *ErrForbidden) Unwrap() error { return e.Err }

// ErrTransport indicates a network failure or a non-2xx status outside
// the auth classes.
type ErrTransport struct {
	Status int
	Body   string
	Err    error
}

func (e *ErrTransport) Error() string {
	if e.Status > 0 {
		if e.Body != "" {
			return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
		}
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *ErrTransport) Unwrap() error { return e.Err }

// ErrBadResponse indicates the server replied 2xx but the body could
// not be decoded or failed schema validation. Treated like a transport
// error by callers.
type ErrBadResponse struct {
	Err error
}

func (e *ErrBadResponse) Error() string {
	return fmt.Sprintf("unexpected response from server: %v", e.Err)
}

func (e *ErrBadResponse) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool {
	var ue *ErrUnauthorized
	return errors.As(err, &ue)
}

// IsForbidden reports whether err is an authorization (role) failure.
func IsForbidden(err error) bool {
	var fe *ErrForbidden
	return errors.As(err, &fe)
}
