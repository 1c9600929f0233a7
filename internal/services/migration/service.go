package migration

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"synclayer/internal/domain"
)

// Defaults used when a Config field is zero.
const (
	DefaultPollInterval   = 10 * time.Second
	DefaultKeyTTL         = 5 * time.Minute
	DefaultSubmitAttempts = 3

	submitBackoff = time.Second
)

// Config tunes the migration flows.
type Config struct {
	PollInterval   time.Duration
	KeyTTL         time.Duration
	SubmitAttempts int
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.KeyTTL <= 0 {
		c.KeyTTL = DefaultKeyTTL
	}
	if c.SubmitAttempts <= 0 {
		c.SubmitAttempts = DefaultSubmitAttempts
	}
	return c
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option { return func(s *Service) { s.clock = c } }

// WithSleeper replaces the wait between polls and submit attempts.
func WithSleeper(fn Sleeper) Option { return func(s *Service) { s.sleep = fn } }

// WithLogger sets the logger used for transitions and retries.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// Service runs destination and source sessions.
type Service struct {
	secrets domain.SecretService
	keys    domain.EphemeralKeyStore
	relay   domain.RendezvousClient
	cfg     Config

	clock clock.Clock
	sleep Sleeper
	log   zerolog.Logger
}

// New returns a migration service.
func New(
	secrets domain.SecretService,
	keys domain.EphemeralKeyStore,
	relay domain.RendezvousClient,
	cfg Config,
	opts ...Option,
) *Service {
	s := &Service{
		secrets: secrets,
		keys:    keys,
		relay:   relay,
		cfg:     cfg.withDefaults(),
		clock:   clock.New(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sleep == nil {
		s.sleep = clockSleeper(s.clock)
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

func clockSleeper(c clock.Clock) Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		t := c.Timer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
}

// Cancel abandons a session. A destination session's stored key is deleted.
// Canceling a finished session is a no-op.
func (s *Service) Cancel(sess *Session) error {
	if sess.Done() {
		return nil
	}
	var cleanupErr error
	if sess.Role == domain.RoleDestination {
		cleanupErr = s.keys.Delete()
	}
	s.move(sess, domain.StatusFailed, domain.ErrMigrationCanceled)
	return cleanupErr
}

// move performs a transition and logs it. Illegal transitions are logged and
// otherwise ignored; they indicate a bug, not a runtime condition.
func (s *Service) move(sess *Session, to domain.Status, cause error) {
	from, err := sess.transition(to, cause)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionTerminal) {
			s.log.Error().Err(err).Str("session", sess.ID.String()).Msg("illegal transition")
		}
		return
	}

	ev := s.log.Info()
	if to == domain.StatusFailed || to == domain.StatusExpired {
		ev = s.log.Warn()
	}
	ev = ev.
		Str("session", sess.ID.String()).
		Stringer("role", sess.Role).
		Str("username", sess.Username.String()).
		Stringer("from", from).
		Stringer("to", to)
	if cause != nil {
		ev = ev.AnErr("cause", cause)
	}
	ev.Msg("migration transition")
}

// fail ends sess with cause and returns cause for convenience.
func (s *Service) fail(sess *Session, cause error) error {
	s.move(sess, domain.StatusFailed, cause)
	return cause
}
