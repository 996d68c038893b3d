package storage

import (
	"encoding/json"

	"github.com/golang/glog"

	"github.com/solasystems/crewdesk"
)

// SessionStore wraps a SecureStore with the four session artifacts this
// client persists (access token, refresh token, cached user snapshot,
// biometric opt-in flag) and the retention policy applied when a session
// ends.
//
// Reads degrade gracefully: a storage failure on read is logged and treated
// as "artifact absent". Write failures are surfaced to the caller.
type SessionStore struct {
	store SecureStore
}

func NewSessionStore(store SecureStore) *SessionStore {
	return &SessionStore{
		store: store,
	}
}

func (s *SessionStore) AccessToken() string {
	return s.read(KeyAccessToken)
}

func (s *SessionStore) RefreshToken() string {
	return s.read(KeyRefreshToken)
}

// HasTokens returns true only when both tokens are present.
func (s *SessionStore) HasTokens() bool {
	return s.AccessToken() != "" && s.RefreshToken() != ""
}

// StoreTokens persists a newly issued token pair.
func (s *SessionStore) StoreTokens(accessToken, refreshToken string) error {
	if err := s.store.Set(KeyAccessToken, accessToken); err != nil {
		return err
	}
	return s.store.Set(KeyRefreshToken, refreshToken)
}

// PersistLogin persists the token pair issued by a successful password login
// and enables the biometric opt-in flag, which defaults to on. It runs before
// the user snapshot is hydrated, so the freshly issued credential is already
// readable by anything that fetches on the session's behalf; the snapshot is
// stored separately once it exists.
func (s *SessionStore) PersistLogin(accessToken, refreshToken string) error {
	if err := s.StoreTokens(accessToken, refreshToken); err != nil {
		return err
	}
	return s.store.Set(KeyBiometricEnabled, "true")
}

// User returns the cached user snapshot, if one is present and parseable.
func (s *SessionStore) User() (crewdesk.User, bool) {
	user := crewdesk.User{}
	userJSON := s.read(KeyUserData)
	if userJSON == "" {
		return user, false
	}
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		glog.Warningf("error parsing cached user data: %s", err)
		return crewdesk.User{}, false
	}
	return user, true
}

func (s *SessionStore) StoreUser(user crewdesk.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return &Error{Op: "set", Key: KeyUserData, cause: err}
	}
	return s.store.Set(KeyUserData, string(userJSON))
}

func (s *SessionStore) BiometricEnabled() bool {
	return s.read(KeyBiometricEnabled) == "true"
}

func (s *SessionStore) SetBiometricEnabled(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return s.store.Set(KeyBiometricEnabled, value)
}

// DropTokens removes both tokens, leaving the cached user snapshot and the
// biometric flag alone. Used when a mid-call token refresh fails.
func (s *SessionStore) DropTokens() error {
	return s.deleteAll(KeyAccessToken, KeyRefreshToken)
}

// ClearSession applies the logout retention policy. With the biometric
// opt-in flag enabled, tokens (and the flag) survive so a later biometric
// challenge can re-enter the authenticated state without a password; only
// the cached user snapshot is removed. With the flag disabled, tokens and
// the snapshot are removed and the flag is left untouched.
func (s *SessionStore) ClearSession() error {
	if s.BiometricEnabled() {
		return s.store.Delete(KeyUserData)
	}
	return s.deleteAll(KeyAccessToken, KeyRefreshToken, KeyUserData)
}

// ClearAll unconditionally removes every persisted artifact, the biometric
// flag included. Used when a session proves unrecoverable-- stale, unusable
// tokens must not be left behind.
func (s *SessionStore) ClearAll() error {
	return s.deleteAll(
		KeyAccessToken,
		KeyRefreshToken,
		KeyUserData,
		KeyBiometricEnabled,
	)
}

func (s *SessionStore) read(key string) string {
	value, err := s.store.Get(key)
	if err != nil {
		glog.Warningf("error reading key %q; treating as absent: %s", key, err)
		return ""
	}
	return value
}

// deleteAll attempts every deletion even if one fails and reports the first
// failure.
func (s *SessionStore) deleteAll(keys ...string) error {
	var firstErr error
	for _, key := range keys {
		if err := s.store.Delete(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
