package meta

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testErrorMessage = "i don't have to answer to you"

func TestErrAuthentication(t *testing.T) {
	err := &ErrAuthentication{
		Message: testErrorMessage,
	}
	require.Contains(t, err.Error(), testErrorMessage)
	err = &ErrAuthentication{}
	require.Contains(t, err.Error(), "authenticate")
}

func TestErrAuthorization(t *testing.T) {
	err := &ErrAuthorization{}
	require.Contains(t, err.Error(), "not authorized")
}

func TestErrBadRequest(t *testing.T) {
	err := &ErrBadRequest{
		Message: testErrorMessage,
	}
	require.Contains(t, err.Error(), testErrorMessage)
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{}
	require.Contains(t, err.Error(), "Not found")
}

func TestErrConflict(t *testing.T) {
	err := &ErrConflict{
		Message: testErrorMessage,
	}
	require.Contains(t, err.Error(), testErrorMessage)
}

func TestErrInternalServer(t *testing.T) {
	err := &ErrInternalServer{}
	require.Contains(t, err.Error(), "internal server error")
}

func TestErrUnexpectedResponse(t *testing.T) {
	err := &ErrUnexpectedResponse{
		StatusCode: 418,
	}
	require.Contains(t, err.Error(), "418")
	err = &ErrUnexpectedResponse{
		StatusCode: 418,
		Message:    testErrorMessage,
	}
	require.Equal(t, testErrorMessage, err.Error())
}
