// Package session models the authentication lifecycle as an explicit state
// machine. Callers hold a Session value instead of consulting ambient
// globals, and every transition is guarded so an out-of-order call surfaces
// as an error rather than silently corrupting the state.
package session

import (
	"fmt"
	"sync"
)

// State is the position of a session in its lifecycle.
type State int

const (
	// Anonymous is the initial state, before any sign-in attempt.
	Anonymous State = iota
	// Authenticating means a sign-in attempt is in flight.
	Authenticating
	// Authenticated means a sign-in attempt succeeded.
	Authenticated
	// Failed means the last sign-in attempt was rejected.
	Failed
)

// String returns the lowercase state name used in logs.
func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// User identifies the authenticated principal.
type User struct {
	ID    string
	Name  string
	Email string
}

// Session is a mutex-guarded auth state machine.
type Session struct {
	mu    sync.Mutex
	state State
	user  User
	err   error
}

// New returns a session in the Anonymous state.
func New() *Session {
	return &Session{state: Anonymous}
}

// Begin marks the start of a sign-in attempt. Valid from Anonymous and
// Failed; retrying from Failed clears the previous error.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Anonymous && s.state != Failed {
		return fmt.Errorf("cannot begin authentication from state %s", s.state)
	}
	s.state = Authenticating
	s.err = nil
	return nil
}

// Succeed completes the in-flight attempt with the signed-in user.
func (s *Session) Succeed(user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Authenticating {
		return fmt.Errorf("cannot succeed from state %s", s.state)
	}
	if user.ID == "" {
		return fmt.Errorf("authenticated user must have an ID")
	}
	s.state = Authenticated
	s.user = user
	return nil
}

// Fail completes the in-flight attempt with the rejection reason.
func (s *Session) Fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Authenticating {
		return fmt.Errorf("cannot fail from state %s", s.state)
	}
	if err == nil {
		return fmt.Errorf("failing a sign-in attempt requires a reason")
	}
	s.state = Failed
	s.err = err
	return nil
}

// Reset signs out and returns the session to Anonymous. Valid from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Anonymous
	s.user = User{}
	s.err = nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the signed-in user. The second result is false unless the
// session is Authenticated.
func (s *Session) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Authenticated {
		return User{}, false
	}
	return s.user, true
}

// Err returns the rejection reason of the last failed attempt, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Failed {
		return nil
	}
	return s.err
}
