package migration

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"synclayer/internal/domain"
)

// TransitionFunc observes a state change. It runs outside the session lock.
type TransitionFunc func(from, to domain.Status)

// transitions lists the legal successor states per role.
var transitions = map[domain.Role]map[domain.Status][]domain.Status{
	domain.RoleDestination: {
		domain.StatusIdle:                 {domain.StatusKeyGenerated, domain.StatusFailed},
		domain.StatusKeyGenerated:         {domain.StatusRendezvousRegistered, domain.StatusFailed},
		domain.StatusRendezvousRegistered: {domain.StatusPolling, domain.StatusExpired, domain.StatusFailed},
		domain.StatusPolling:              {domain.StatusDecrypting, domain.StatusExpired, domain.StatusFailed},
		domain.StatusDecrypting:           {domain.StatusComplete, domain.StatusExpired, domain.StatusFailed},
	},
	domain.RoleSource: {
		domain.StatusIdle:            {domain.StatusFetchingPeerKey, domain.StatusFailed},
		domain.StatusFetchingPeerKey: {domain.StatusEncrypting, domain.StatusFailed},
		domain.StatusEncrypting:      {domain.StatusSubmitting, domain.StatusFailed},
		domain.StatusSubmitting:      {domain.StatusSent, domain.StatusEncrypting, domain.StatusFailed},
	},
}

// Session is one migration attempt in a single role.
type Session struct {
	ID       uuid.UUID
	Role     domain.Role
	Username domain.Username

	mu        sync.Mutex
	status    domain.Status
	pin       domain.PIN
	err       error
	deadline  time.Time
	expiry    domain.ExpiryHandle
	observers []TransitionFunc
}

func newSession(role domain.Role, username domain.Username) *Session {
	return &Session{
		ID:       uuid.New(),
		Role:     role,
		Username: username,
		status:   domain.StatusIdle,
	}
}

// Status returns the current state.
func (s *Session) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PIN returns the rendezvous PIN, empty until registered (destination) or set
// by the caller (source).
func (s *Session) PIN() domain.PIN {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pin
}

// Deadline returns the key deadline of a destination session.
func (s *Session) Deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deadline
}

// Err returns the error that ended the session, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done reports whether the session is in a terminal state.
func (s *Session) Done() bool { return s.Status().Terminal() }

// OnTransition registers fn to be called after every state change.
func (s *Session) OnTransition(fn TransitionFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// transition moves the session to next. Terminal states record cause, stop
// the key timer and are final.
func (s *Session) transition(next domain.Status, cause error) (domain.Status, error) {
	s.mu.Lock()
	prev := s.status
	if prev.Terminal() {
		s.mu.Unlock()
		return prev, domain.ErrSessionTerminal
	}
	if !allowed(s.Role, prev, next) {
		s.mu.Unlock()
		return prev, &TransitionError{Role: s.Role, From: prev, To: next}
	}
	s.status = next
	if next.Terminal() {
		s.err = cause
		if s.expiry != nil {
			s.expiry.Stop()
		}
	}
	observers := append([]TransitionFunc(nil), s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(prev, next)
	}
	return prev, nil
}

func (s *Session) setPIN(pin domain.PIN) {
	s.mu.Lock()
	s.pin = pin
	s.mu.Unlock()
}

func (s *Session) setExpiry(h domain.ExpiryHandle) {
	s.mu.Lock()
	s.expiry = h
	s.deadline = h.Deadline()
	s.mu.Unlock()
}

// expiredSignal returns the key expiry channel, or nil before a key exists.
func (s *Session) expiredSignal() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expiry == nil {
		return nil
	}
	return s.expiry.Expired()
}

func allowed(role domain.Role, from, to domain.Status) bool {
	for _, st := range transitions[role][from] {
		if st == to {
			return true
		}
	}
	return false
}

// TransitionError reports an illegal state change.
type TransitionError struct {
	Role     domain.Role
	From, To domain.Status
}

func (e *TransitionError) Error() string {
	return e.Role.String() + " session cannot move from " + e.From.String() + " to " + e.To.String()
}
