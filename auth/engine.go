package auth

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"github.com/solasystems/crewdesk"
	"github.com/solasystems/crewdesk/claims"
	"github.com/solasystems/crewdesk/storage"
)

// Engine owns the single in-memory Session and is its sole writer. All
// transitions are serialized: no observer ever sees two overlapping
// operations or a half-applied state.
type Engine struct {
	client        crewdesk.Client
	store         *storage.SessionStore
	authenticator Authenticator

	// opMu serializes the public operations end to end; mu guards the
	// session value and observer list for the brief moment of a transition.
	opMu sync.Mutex
	mu   sync.Mutex

	session   Session
	observers []func(Session)
}

// NewEngine returns an Engine in the unauthenticated, loading state. Call
// Initialize once at process start to settle it. A nil authenticator means
// biometric re-entry is never available.
func NewEngine(
	client crewdesk.Client,
	store *storage.SessionStore,
	authenticator Authenticator,
) *Engine {
	return &Engine{
		client:        client,
		store:         store,
		authenticator: authenticator,
		session: Session{
			Loading: true,
		},
	}
}

// Current returns a copy of the session state.
func (e *Engine) Current() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Subscribe registers an observer notified synchronously on every
// transition. Observers must not block.
func (e *Engine) Subscribe(fn func(Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// Initialize settles the session state from whatever is persisted. It runs
// at process start and again after a successful biometric challenge. It
// never fails to its caller; every failure resolves to the unauthenticated
// state.
func (e *Engine) Initialize(ctx context.Context) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.setLoading(true)

	accessToken := e.store.AccessToken()
	refreshToken := e.store.RefreshToken()
	if accessToken == "" || refreshToken == "" {
		e.transition(Session{})
		return
	}

	if claims.IsExpired(accessToken) {
		tokens, err := e.client.Auth().Refresh(ctx, refreshToken)
		if err != nil {
			glog.Warningf("error refreshing session at initialization: %s", err)
			if err := e.store.ClearAll(); err != nil {
				glog.Warningf("error purging session state: %s", err)
			}
			e.transition(Session{})
			return
		}
		if err := e.store.StoreTokens(
			tokens.AccessToken,
			tokens.RefreshToken,
		); err != nil {
			glog.Warningf("error persisting refreshed tokens: %s", err)
		}
		accessToken = tokens.AccessToken
		refreshToken = tokens.RefreshToken
	}

	user, partial, err := e.userFromToken(ctx, accessToken)
	if err != nil {
		if err := e.store.ClearAll(); err != nil {
			glog.Warningf("error purging session state: %s", err)
		}
		e.transition(Session{})
		return
	}
	e.transition(
		Session{
			User:           &user,
			AccessToken:    accessToken,
			RefreshToken:   refreshToken,
			Authenticated:  true,
			PartialProfile: partial,
		},
	)
}

// Login authenticates with the given credentials. On success the issued
// token pair is persisted and the biometric opt-in flag enabled before the
// user is hydrated: the profile fetch goes through the gateway, which reads
// its bearer credential from the store, so persisting first is what
// credentials that fetch (and evicts any previous session's leftover
// tokens). On failure the session reverts to its prior status and the
// returned OpError carries a displayable message.
func (e *Engine) Login(ctx context.Context, email, password string) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	prior := e.Current()
	e.setLoading(true)

	tokens, err := e.client.Auth().Login(ctx, email, password)
	if err != nil {
		prior.Loading = false
		e.transition(prior)
		return newOpError(OpLogin, "Login failed", err)
	}

	if err := e.store.PersistLogin(
		tokens.AccessToken,
		tokens.RefreshToken,
	); err != nil {
		// The hydration below would go out uncredentialed, so this is worth
		// surfacing rather than just logging.
		prior.Loading = false
		e.transition(prior)
		return newOpError(OpLogin, "Login failed", err)
	}

	user, partial, err := e.userFromToken(ctx, tokens.AccessToken)
	if err != nil {
		// The just-persisted pair belongs to a session that never came to
		// be; don't leave it behind.
		if err := e.store.ClearAll(); err != nil {
			glog.Warningf("error purging session state: %s", err)
		}
		prior.Loading = false
		e.transition(prior)
		return newOpError(OpLogin, "Login failed", err)
	}

	if err := e.store.StoreUser(user); err != nil {
		// The session is still usable in memory; persistence failure only
		// costs re-entry after the process exits.
		glog.Warningf("error persisting user snapshot: %s", err)
	}

	e.transition(
		Session{
			User:           &user,
			AccessToken:    tokens.AccessToken,
			RefreshToken:   tokens.RefreshToken,
			Authenticated:  true,
			PartialProfile: partial,
		},
	)
	return nil
}

// Signup registers a new account. It does not authenticate it; the session
// remains as it was and an explicit login must follow.
func (e *Engine) Signup(ctx context.Context, signup crewdesk.SignupRequest) error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.setLoading(true)
	_, err := e.client.Auth().Signup(ctx, signup)
	e.setLoading(false)
	if err != nil {
		return newOpError(OpSignup, "Signup failed", err)
	}
	return nil
}

// Logout tears down the session. Remote revocation is best effort: its
// Outcome is returned for callers that care, but local teardown and the
// transition to the unauthenticated state happen unconditionally. Calling
// Logout when already unauthenticated is a no-op.
func (e *Engine) Logout(ctx context.Context) Outcome {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.setLoading(true)

	outcome := Outcome{OK: true}
	if refreshToken := e.store.RefreshToken(); refreshToken != "" {
		if err := e.client.Auth().Logout(ctx, refreshToken); err != nil {
			glog.Warningf("error revoking session with the API server: %s", err)
			outcome = Outcome{Err: err}
		}
	}

	if err := e.store.ClearSession(); err != nil {
		glog.Warningf("error clearing persisted session: %s", err)
	}
	e.transition(Session{})
	return outcome
}

// RefreshUser re-fetches the profile and replaces the cached user in place.
// Best effort: failures are logged and leave the session unchanged.
func (e *Engine) RefreshUser(ctx context.Context) Outcome {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	current := e.Current()
	if !current.Authenticated {
		return Outcome{OK: true}
	}
	user, err := e.client.Users().Profile(ctx)
	if err != nil {
		glog.Warningf("error refreshing cached user: %s", err)
		return Outcome{Err: err}
	}
	if err := e.store.StoreUser(user); err != nil {
		glog.Warningf("error persisting refreshed user: %s", err)
	}
	current.User = &user
	current.PartialProfile = false
	e.transition(current)
	return Outcome{OK: true}
}

// UpdateUser replaces the in-memory user, typically after a profile edit
// has already been accepted by the server. It does not persist anything.
// Without an authenticated session there is no user to replace, so it is a
// no-op.
func (e *Engine) UpdateUser(user crewdesk.User) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	current := e.Current()
	if !current.Authenticated {
		return
	}
	current.User = &user
	current.PartialProfile = false
	e.transition(current)
}

// userFromToken hydrates a User for the given access token. The live
// profile is preferred; if that fetch fails, a partial user is
// reconstructed from token claims and flagged as such. An undecodable
// token is an error.
func (e *Engine) userFromToken(
	ctx context.Context,
	token string,
) (crewdesk.User, bool, error) {
	decoded, err := claims.Decode(token)
	if err != nil {
		return crewdesk.User{}, false, err
	}
	user, err := e.client.Users().Profile(ctx)
	if err == nil {
		return user, false, nil
	}
	glog.Warningf("error fetching profile; falling back to token claims: %s", err)
	return crewdesk.User{
		ID:    decoded.UserID,
		Email: decoded.Email,
		Role:  crewdesk.Role(decoded.Role),
	}, true, nil
}

// transition atomically replaces the session and notifies observers with a
// copy of the new state.
func (e *Engine) transition(session Session) {
	e.mu.Lock()
	e.session = session
	observers := make([]func(Session), len(e.observers))
	copy(observers, e.observers)
	e.mu.Unlock()
	for _, fn := range observers {
		fn(session)
	}
}

// setLoading overlays the loading flag on the current status.
func (e *Engine) setLoading(loading bool) {
	current := e.Current()
	current.Loading = loading
	e.transition(current)
}
