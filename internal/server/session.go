package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/mymusic/internal/auth"
	"github.com/desertthunder/mymusic/internal/shared"
)

// SessionCookie is the name of the cookie carrying the session id.
const SessionCookie = "mymusic_session"

const defaultSessionTTL = 24 * time.Hour

type sessionEntry struct {
	session auth.Session
	expires time.Time
}

// SessionStore maps opaque random ids to authenticated sessions. It lives in process memory,
// so a restart logs everyone out.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	now      func() time.Time
	sweepAt  time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl (24h when ttl <= 0).
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores s and returns its new id. Unauthenticated sessions are rejected.
//
// At most once per TTL, Create also drops every expired session, so ids that are never
// presented again do not accumulate.
func (st *SessionStore) Create(s auth.Session) (string, error) {
	if !s.Authenticated() {
		return "", shared.ErrNotAuthenticated
	}

	id := shared.GenerateID()
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	if !now.Before(st.sweepAt) {
		st.sweep(now)
		st.sweepAt = now.Add(st.ttl)
	}
	st.sessions[id] = sessionEntry{session: s, expires: now.Add(st.ttl)}
	return id, nil
}

// sweep deletes sessions expired at now. Callers hold mu.
func (st *SessionStore) sweep(now time.Time) {
	for id, entry := range st.sessions {
		if now.After(entry.expires) {
			delete(st.sessions, id)
		}
	}
}

// Get returns the session stored under id if it has not expired.
func (st *SessionStore) Get(id string) (auth.Session, bool) {
	st.mu.RLock()
	entry, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return auth.Session{}, false
	}
	if st.now().After(entry.expires) {
		st.Delete(id)
		return auth.Session{}, false
	}
	return entry.session, true
}

// Delete forgets id.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of stored sessions, expired ones included.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Require rejects requests without a live session cookie with 401 and otherwise
// makes the session available through [SessionFrom].
func (st *SessionStore) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "login required")
			return
		}

		s, ok := st.Get(cookie.Value)
		if !ok {
			writeError(w, http.StatusUnauthorized, "session expired, please log in again")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, s)))
	})
}

type sessionKey struct{}

// SessionFrom returns the session [SessionStore.Require] attached to ctx, or the zero Session.
func SessionFrom(ctx context.Context) auth.Session {
	s, _ := ctx.Value(sessionKey{}).(auth.Session)
	return s
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, id string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}
