package auth

import "github.com/solasystems/crewdesk"

// Session is the live, in-memory authentication state the rest of the
// application observes. Observers receive value copies; the User pointer
// they carry must be treated as read-only.
//
// Invariant: Authenticated is true only when User, AccessToken, and
// RefreshToken are all present.
type Session struct {
	User          *crewdesk.User
	AccessToken   string
	RefreshToken  string
	Authenticated bool
	// Loading is true while an initialize/login/signup/logout transition is
	// in flight. It overlays the last-known status rather than being a
	// resting state of its own.
	Loading bool
	// PartialProfile is true when User was reconstructed from token claims
	// because the profile endpoint could not be reached. Such a snapshot has
	// empty profile fields; consumers can detect this and prompt a retry
	// rather than treating it as a complete profile.
	PartialProfile bool
}
