package meta

import "fmt"

// The error types in this package form a closed taxonomy for remote call
// failures. The API server reports failures as a JSON body of the form
// {"message": "..."}; the gateway unmarshals that body directly into the
// error type selected by the response status so that the server-supplied
// message survives to the caller.

type ErrAuthentication struct {
	Message string `json:"message"`
}

func (e *ErrAuthentication) Error() string {
	if e.Message == "" {
		return "Could not authenticate the request."
	}
	return e.Message
}

type ErrAuthorization struct {
	Message string `json:"message"`
}

func (e *ErrAuthorization) Error() string {
	if e.Message == "" {
		return "The request is not authorized."
	}
	return e.Message
}

type ErrBadRequest struct {
	Message string `json:"message"`
}

func (e *ErrBadRequest) Error() string {
	if e.Message == "" {
		return "Bad request."
	}
	return e.Message
}

type ErrNotFound struct {
	Message string `json:"message"`
}

func (e *ErrNotFound) Error() string {
	if e.Message == "" {
		return "Not found."
	}
	return e.Message
}

type ErrConflict struct {
	Message string `json:"message"`
}

func (e *ErrConflict) Error() string {
	if e.Message == "" {
		return "Conflict."
	}
	return e.Message
}

type ErrInternalServer struct {
	Message string `json:"message"`
}

func (e *ErrInternalServer) Error() string {
	if e.Message == "" {
		return "An internal server error occurred."
	}
	return e.Message
}

// ErrUnexpectedResponse covers response statuses outside the taxonomy above.
type ErrUnexpectedResponse struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *ErrUnexpectedResponse) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("received %d from API server", e.StatusCode)
	}
	return e.Message
}
