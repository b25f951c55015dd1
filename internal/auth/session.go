package auth

// Session identifies the user an interaction is authenticated as.
//
// The zero value is unauthenticated.
type Session struct {
	username      string
	authenticated bool
}

// NewSession returns a session for a username the caller has already authenticated,
// e.g. when restoring one from a session store.
func NewSession(username string) Session {
	return Session{username: username, authenticated: true}
}

// Username returns the authenticated username.
func (s Session) Username() string { return s.username }

// Authenticated reports whether s came from a successful login.
func (s Session) Authenticated() bool { return s.authenticated }
