package auth

import (
	"context"

	"github.com/pkg/errors"
)

// Authenticator is the device authentication capability consulted before
// biometric re-entry. It is not implemented here; platforms supply their
// own.
type Authenticator interface {
	HasHardware() bool
	IsEnrolled() bool
	// Challenge prompts the user to authenticate with the device. A nil
	// error means the challenge succeeded.
	Challenge(ctx context.Context) error
}

// NoDeviceAuthenticator reports that no device authentication capability is
// present. It is the default on platforms without one.
type NoDeviceAuthenticator struct{}

func (NoDeviceAuthenticator) HasHardware() bool {
	return false
}

func (NoDeviceAuthenticator) IsEnrolled() bool {
	return false
}

func (NoDeviceAuthenticator) Challenge(context.Context) error {
	return errors.New("no device authentication capability")
}

// BiometricAvailable reports whether biometric re-entry can be offered:
// the device has enrolled biometric hardware, the user opted in, and both
// tokens survived in storage.
func (e *Engine) BiometricAvailable() bool {
	if e.authenticator == nil {
		return false
	}
	return e.authenticator.HasHardware() &&
		e.authenticator.IsEnrolled() &&
		e.store.BiometricEnabled() &&
		e.store.HasTokens()
}

// BiometricLogin runs the device challenge and, on success, re-runs
// Initialize so the stored tokens are validated or refreshed exactly as at
// cold start. The challenge only gates local access to already-issued
// tokens; it does not authenticate by itself.
func (e *Engine) BiometricLogin(ctx context.Context) error {
	if !e.BiometricAvailable() {
		return &OpError{
			Op: OpBiometric,
			Message: "Please login with your email and password first to " +
				"enable biometric authentication.",
		}
	}
	if err := e.authenticator.Challenge(ctx); err != nil {
		return newOpError(
			OpBiometric,
			"Biometric authentication was not successful.",
			err,
		)
	}
	e.Initialize(ctx)
	if !e.Current().Authenticated {
		return &OpError{
			Op:      OpBiometric,
			Message: "Your session has expired. Please login again.",
		}
	}
	return nil
}
