package storage

import "fmt"

// Keys under which session artifacts are persisted.
const (
	KeyAccessToken      = "access_token"
	KeyRefreshToken     = "refresh_token"
	KeyUserData         = "user_data"
	KeyBiometricEnabled = "biometric_enabled"
)

// SecureStore is an opaque, persistent key-value capability with per-key
// confidentiality. A missing key is not an error-- Get returns an empty
// string for keys that have never been set or have been deleted.
type SecureStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Error represents a failure reading from or writing to a SecureStore.
type Error struct {
	Op    string
	Key   string
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: error on %s of key %q: %s", e.Op, e.Key, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}
