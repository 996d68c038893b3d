package auth

import (
	"errors"

	"github.com/solasystems/crewdesk/meta"
)

// FailedOp identifies which user-initiated operation rejected.
type FailedOp string

const (
	OpLogin     FailedOp = "login"
	OpSignup    FailedOp = "signup"
	OpBiometric FailedOp = "biometric"
)

// OpError is returned by the user-initiated Engine operations. Message is
// always suitable for direct display to the user; the underlying typed API
// error remains reachable through Unwrap for callers that match on kind.
type OpError struct {
	Op      FailedOp
	Message string
	cause   error
}

func (e *OpError) Error() string {
	return e.Message
}

func (e *OpError) Unwrap() error {
	return e.cause
}

// newOpError builds an OpError, preferring the server-supplied message over
// the fallback when one is available.
func newOpError(op FailedOp, fallback string, cause error) *OpError {
	message := fallback
	if serverMsg := serverMessage(cause); serverMsg != "" {
		message = serverMsg
	}
	return &OpError{
		Op:      op,
		Message: message,
		cause:   cause,
	}
}

// serverMessage extracts the server-supplied message from a typed API
// error, if there is one.
func serverMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		errAuthentication *meta.ErrAuthentication
		errAuthorization  *meta.ErrAuthorization
		errBadRequest     *meta.ErrBadRequest
		errNotFound       *meta.ErrNotFound
		errConflict       *meta.ErrConflict
		errInternal       *meta.ErrInternalServer
		errUnexpected     *meta.ErrUnexpectedResponse
	)
	switch {
	case errors.As(err, &errAuthentication):
		return errAuthentication.Message
	case errors.As(err, &errAuthorization):
		return errAuthorization.Message
	case errors.As(err, &errBadRequest):
		return errBadRequest.Message
	case errors.As(err, &errNotFound):
		return errNotFound.Message
	case errors.As(err, &errConflict):
		return errConflict.Message
	case errors.As(err, &errInternal):
		return errInternal.Message
	case errors.As(err, &errUnexpected):
		return errUnexpected.Message
	}
	return ""
}

// Outcome is the result of a best-effort operation. Callers are permitted
// to discard it; failures have already been logged by the time it is
// returned.
type Outcome struct {
	OK  bool
	Err error
}
