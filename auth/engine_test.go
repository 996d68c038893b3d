package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/solasystems/crewdesk"
	"github.com/solasystems/crewdesk/storage"
)

var testUser = crewdesk.User{
	ID:        "u1",
	Email:     "a@b.com",
	Fullname:  "Ann",
	Gender:    "FEMALE",
	Role:      crewdesk.RoleUser,
	CreatedAt: "2024-01-01T00:00:00Z",
	UpdatedAt: "2024-01-01T00:00:00Z",
}

func mintToken(t *testing.T, expiresAt time.Time) string {
	token, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"userId": testUser.ID,
			"email":  testUser.Email,
			"role":   string(testUser.Role),
			"iat":    time.Now().Unix(),
			"exp":    expiresAt.Unix(),
		},
	).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func writeJSON(t *testing.T, w http.ResponseWriter, statusCode int, obj interface{}) {
	w.WriteHeader(statusCode)
	require.NoError(t, json.NewEncoder(w).Encode(obj))
}

// profileHandler serves the test user's profile. Like the real endpoint it
// rejects uncredentialed requests.
func profileHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(
				t,
				w,
				http.StatusUnauthorized,
				map[string]string{"message": "missing credentials"},
			)
			return
		}
		writeJSON(
			t,
			w,
			http.StatusOK,
			map[string]interface{}{"data": testUser},
		)
	}
}

// newEngine wires an Engine to the given fake API server over an in-memory
// store.
func newEngine(
	server *httptest.Server,
	authenticator Authenticator,
) (*Engine, *storage.SessionStore) {
	store := storage.NewSessionStore(storage.NewMemoryStore())
	client := crewdesk.NewClient(server.URL, store, false)
	return NewEngine(client, store, authenticator), store
}

// requireInvariant asserts that authenticated sessions carry a user and
// both tokens, and unauthenticated ones carry none of them.
func requireInvariant(t *testing.T, session Session) {
	if session.Authenticated {
		require.NotNil(t, session.User)
		require.NotEmpty(t, session.AccessToken)
		require.NotEmpty(t, session.RefreshToken)
	} else {
		require.Nil(t, session.User)
		require.Empty(t, session.AccessToken)
		require.Empty(t, session.RefreshToken)
	}
}

func TestInitializeFreshInstall(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected API call to %s", r.URL.Path)
			},
		),
	)
	defer server.Close()
	engine, _ := newEngine(server, nil)

	var observed []Session
	engine.Subscribe(func(s Session) {
		observed = append(observed, s)
	})

	engine.Initialize(context.Background())

	session := engine.Current()
	require.False(t, session.Authenticated)
	require.False(t, session.Loading)
	requireInvariant(t, session)
	// Every observed transition honors the session invariant.
	for _, s := range observed {
		requireInvariant(t, s)
	}
}

func TestInitializeValidTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", profileHandler(t))
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	accessToken := mintToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.StoreTokens(accessToken, "refresh"))

	engine.Initialize(context.Background())

	session := engine.Current()
	require.True(t, session.Authenticated)
	require.False(t, session.Loading)
	require.False(t, session.PartialProfile)
	require.Equal(t, testUser, *session.User)
	require.Equal(t, accessToken, session.AccessToken)
}

func TestInitializeExpiredTokenRefreshes(t *testing.T) {
	newAccessToken := mintToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	refreshCalls := 0
	mux.HandleFunc(
		"/auth/refresh-token",
		func(w http.ResponseWriter, r *http.Request) {
			refreshCalls++
			body := map[string]string{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "old-refresh", body["refreshToken"])
			writeJSON(
				t,
				w,
				http.StatusOK,
				crewdesk.TokenPair{
					AccessToken:  newAccessToken,
					RefreshToken: "new-refresh",
				},
			)
		},
	)
	mux.HandleFunc("/users/profile", profileHandler(t))
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	expired := mintToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, store.StoreTokens(expired, "old-refresh"))

	engine.Initialize(context.Background())

	session := engine.Current()
	require.True(t, session.Authenticated)
	require.Equal(t, 1, refreshCalls)
	// The new pair was persisted.
	require.Equal(t, newAccessToken, store.AccessToken())
	require.Equal(t, "new-refresh", store.RefreshToken())
}

func TestInitializeRefreshRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/refresh-token",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusUnauthorized,
				map[string]string{"message": "refresh token revoked"},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	expired := mintToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, store.StoreTokens(expired, "revoked-refresh"))
	require.NoError(t, store.SetBiometricEnabled(true))
	require.NoError(t, store.StoreUser(testUser))

	engine.Initialize(context.Background())

	session := engine.Current()
	require.False(t, session.Authenticated)
	require.False(t, session.Loading)
	// Storage was purged entirely, the biometric flag included.
	require.False(t, store.HasTokens())
	require.False(t, store.BiometricEnabled())
	_, ok := store.User()
	require.False(t, ok)
}

func TestInitializeProfileFetchFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/users/profile",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusInternalServerError,
				map[string]string{"message": "database on fire"},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	accessToken := mintToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.StoreTokens(accessToken, "refresh"))

	engine.Initialize(context.Background())

	session := engine.Current()
	require.True(t, session.Authenticated)
	// The user was reconstructed from token claims and flagged as partial.
	require.True(t, session.PartialProfile)
	require.Equal(t, testUser.ID, session.User.ID)
	require.Equal(t, testUser.Email, session.User.Email)
	require.Equal(t, testUser.Role, session.User.Role)
	require.Empty(t, session.User.Fullname)
}

func TestLogin(t *testing.T) {
	accessToken := mintToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/login",
		func(w http.ResponseWriter, r *http.Request) {
			require.Empty(t, r.Header.Get("Authorization"))
			body := map[string]string{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "a@b.com", body["email"])
			require.Equal(t, "secret1", body["password"])
			writeJSON(
				t,
				w,
				http.StatusOK,
				crewdesk.TokenPair{
					AccessToken:  accessToken,
					RefreshToken: "refresh",
				},
			)
		},
	)
	mux.HandleFunc("/users/profile", profileHandler(t))
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	require.NoError(t, engine.Login(context.Background(), "a@b.com", "secret1"))

	session := engine.Current()
	require.True(t, session.Authenticated)
	require.False(t, session.Loading)
	require.Equal(t, testUser, *session.User)
	requireInvariant(t, session)
	// Tokens, snapshot, and the biometric opt-in were all persisted.
	require.True(t, store.HasTokens())
	require.True(t, store.BiometricEnabled())
	cached, ok := store.User()
	require.True(t, ok)
	require.Equal(t, testUser, cached)
}

func TestLoginHydratesWithIssuedCredential(t *testing.T) {
	issuedToken := mintToken(t, time.Now().Add(time.Hour))
	previousToken, err := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"userId": "u0",
			"email":  "old@b.com",
			"role":   "USER",
			"exp":    time.Now().Add(time.Hour).Unix(),
		},
	).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/login",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusOK,
				crewdesk.TokenPair{
					AccessToken:  issuedToken,
					RefreshToken: "new-refresh",
				},
			)
		},
	)
	mux.HandleFunc(
		"/users/profile",
		func(w http.ResponseWriter, r *http.Request) {
			// Only the just-issued credential identifies the new session.
			if r.Header.Get("Authorization") != "Bearer "+issuedToken {
				writeJSON(
					t,
					w,
					http.StatusUnauthorized,
					map[string]string{"message": "wrong credentials"},
				)
				return
			}
			writeJSON(
				t,
				w,
				http.StatusOK,
				map[string]interface{}{"data": testUser},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	// A previous user's still-valid tokens survived a biometric-retained
	// logout. They must not leak into the new session's hydration.
	require.NoError(t, store.StoreTokens(previousToken, "old-refresh"))
	require.NoError(t, store.SetBiometricEnabled(true))

	require.NoError(t, engine.Login(context.Background(), "a@b.com", "secret1"))

	session := engine.Current()
	require.True(t, session.Authenticated)
	require.False(t, session.PartialProfile)
	require.Equal(t, testUser, *session.User)
	require.Equal(t, "Ann", session.User.Fullname)
	// The issued pair displaced the leftovers and the full snapshot was
	// persisted.
	require.Equal(t, issuedToken, store.AccessToken())
	require.Equal(t, "new-refresh", store.RefreshToken())
	cached, ok := store.User()
	require.True(t, ok)
	require.Equal(t, testUser, cached)
}

func TestLoginFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/login",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusUnauthorized,
				map[string]string{"message": "Invalid credentials"},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, _ := newEngine(server, nil)

	err := engine.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	opErr := &OpError{}
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, OpLogin, opErr.Op)
	// The server-supplied message survives for display.
	require.Equal(t, "Invalid credentials", opErr.Message)

	session := engine.Current()
	require.False(t, session.Authenticated)
	require.False(t, session.Loading)
}

func TestSignup(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/signup",
		func(w http.ResponseWriter, r *http.Request) {
			require.Empty(t, r.Header.Get("Authorization"))
			writeJSON(
				t,
				w,
				http.StatusCreated,
				map[string]interface{}{"data": testUser},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, _ := newEngine(server, nil)

	require.NoError(
		t,
		engine.Signup(
			context.Background(),
			crewdesk.SignupRequest{
				Email:    "a@b.com",
				Password: "secret1",
				Fullname: "Ann",
				Gender:   "FEMALE",
			},
		),
	)

	// Signup does not authenticate; an explicit login must follow.
	session := engine.Current()
	require.False(t, session.Authenticated)
	require.False(t, session.Loading)
}

func TestSignupFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/signup",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusConflict,
				map[string]string{"message": "Email already registered"},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, _ := newEngine(server, nil)

	err := engine.Signup(
		context.Background(),
		crewdesk.SignupRequest{Email: "a@b.com"},
	)
	require.Error(t, err)
	opErr := &OpError{}
	require.ErrorAs(t, err, &opErr)
	require.Equal(t, OpSignup, opErr.Op)
	require.Equal(t, "Email already registered", opErr.Message)
}

func TestLogoutRetainsTokensForBiometricReentry(t *testing.T) {
	accessToken := mintToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/login",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusOK,
				crewdesk.TokenPair{
					AccessToken:  accessToken,
					RefreshToken: "refresh",
				},
			)
		},
	)
	mux.HandleFunc("/users/profile", profileHandler(t))
	logoutCalls := 0
	mux.HandleFunc(
		"/auth/logout",
		func(w http.ResponseWriter, r *http.Request) {
			logoutCalls++
			writeJSON(t, w, http.StatusOK, map[string]string{})
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	require.NoError(t, engine.Login(context.Background(), "a@b.com", "secret1"))
	outcome := engine.Logout(context.Background())
	require.True(t, outcome.OK)
	require.Equal(t, 1, logoutCalls)

	session := engine.Current()
	require.False(t, session.Authenticated)
	require.False(t, session.Loading)
	// Tokens and the opt-in flag survive a logout for biometric re-entry;
	// only the cached snapshot is removed.
	require.True(t, store.HasTokens())
	require.True(t, store.BiometricEnabled())
	_, ok := store.User()
	require.False(t, ok)
}

func TestLogoutRemoteFailureStillTearsDown(t *testing.T) {
	accessToken := mintToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", profileHandler(t))
	mux.HandleFunc(
		"/auth/logout",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusInternalServerError,
				map[string]string{"message": "nope"},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	require.NoError(t, store.StoreTokens(accessToken, "refresh"))
	engine.Initialize(context.Background())
	require.True(t, engine.Current().Authenticated)

	outcome := engine.Logout(context.Background())
	require.False(t, outcome.OK)
	require.Error(t, outcome.Err)
	// Local teardown happened regardless.
	require.False(t, engine.Current().Authenticated)
}

func TestLogoutIdempotent(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected API call to %s", r.URL.Path)
			},
		),
	)
	defer server.Close()
	engine, _ := newEngine(server, nil)

	engine.Initialize(context.Background())
	require.False(t, engine.Current().Authenticated)

	outcome := engine.Logout(context.Background())
	require.True(t, outcome.OK)
	require.False(t, engine.Current().Authenticated)
	require.False(t, engine.Current().Loading)
}

func TestRefreshUserBestEffort(t *testing.T) {
	accessToken := mintToken(t, time.Now().Add(time.Hour))
	profileFails := false
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/users/profile",
		func(w http.ResponseWriter, r *http.Request) {
			if profileFails {
				writeJSON(
					t,
					w,
					http.StatusInternalServerError,
					map[string]string{"message": "nope"},
				)
				return
			}
			writeJSON(
				t,
				w,
				http.StatusOK,
				map[string]interface{}{"data": testUser},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	require.NoError(t, store.StoreTokens(accessToken, "refresh"))
	engine.Initialize(context.Background())
	require.True(t, engine.Current().Authenticated)

	profileFails = true
	outcome := engine.RefreshUser(context.Background())
	require.False(t, outcome.OK)
	// State unchanged on failure.
	require.True(t, engine.Current().Authenticated)
	require.Equal(t, testUser, *engine.Current().User)

	profileFails = false
	outcome = engine.RefreshUser(context.Background())
	require.True(t, outcome.OK)
}

func TestRefreshUserWhenUnauthenticated(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected API call to %s", r.URL.Path)
			},
		),
	)
	defer server.Close()
	engine, _ := newEngine(server, nil)
	engine.Initialize(context.Background())

	outcome := engine.RefreshUser(context.Background())
	require.True(t, outcome.OK)
}

func TestUpdateUser(t *testing.T) {
	accessToken := mintToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", profileHandler(t))
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)

	require.NoError(t, store.StoreTokens(accessToken, "refresh"))
	engine.Initialize(context.Background())

	edited := testUser
	edited.Fullname = "Ann Edited"
	engine.UpdateUser(edited)
	require.Equal(t, "Ann Edited", engine.Current().User.Fullname)
}

func TestUpdateUserWhenUnauthenticated(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				t.Errorf("unexpected API call to %s", r.URL.Path)
			},
		),
	)
	defer server.Close()
	engine, _ := newEngine(server, nil)
	engine.Initialize(context.Background())

	engine.UpdateUser(testUser)

	// No user appears on an unauthenticated session.
	session := engine.Current()
	require.False(t, session.Authenticated)
	require.Nil(t, session.User)
	requireInvariant(t, session)
}

func TestObserversSeeSerializedTransitions(t *testing.T) {
	accessToken := mintToken(t, time.Now().Add(time.Hour))
	mux := http.NewServeMux()
	mux.HandleFunc("/users/profile", profileHandler(t))
	mux.HandleFunc(
		"/auth/logout",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]string{})
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, store := newEngine(server, nil)
	require.NoError(t, store.StoreTokens(accessToken, "refresh"))

	var observed []Session
	engine.Subscribe(func(s Session) {
		observed = append(observed, s)
	})

	engine.Initialize(context.Background())
	engine.Logout(context.Background())

	require.NotEmpty(t, observed)
	for _, s := range observed {
		requireInvariant(t, s)
	}
	final := observed[len(observed)-1]
	require.False(t, final.Authenticated)
	require.False(t, final.Loading)
}

func TestOpErrorKindMatching(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/auth/login",
		func(w http.ResponseWriter, r *http.Request) {
			writeJSON(
				t,
				w,
				http.StatusUnauthorized,
				map[string]string{"message": "Invalid credentials"},
			)
		},
	)
	server := httptest.NewServer(mux)
	defer server.Close()
	engine, _ := newEngine(server, nil)

	err := engine.Login(context.Background(), "a@b.com", "wrong")
	// Callers can still match on the underlying API error kind.
	opErr := &OpError{}
	require.ErrorAs(t, err, &opErr)
	require.NotNil(t, opErr.Unwrap())
}
