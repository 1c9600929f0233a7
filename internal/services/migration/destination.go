package migration

import (
	"context"
	"errors"
	"fmt"

	"synclayer/internal/crypto"
	"synclayer/internal/domain"
	wire "synclayer/internal/protocol/migration"
	"synclayer/internal/util/memzero"
)

// StartDestination generates an ephemeral key, stores it with the configured
// TTL and registers its public half. The returned session is
// RendezvousRegistered with a PIN, or Failed with the stored key removed.
func (s *Service) StartDestination(ctx context.Context, username domain.Username) (*Session, error) {
	sess := newSession(domain.RoleDestination, username)

	kp, err := crypto.GenerateP256()
	if err != nil {
		return sess, s.fail(sess, err)
	}
	h, err := s.keys.Store(kp.Private, s.cfg.KeyTTL)
	memzero.Zero(kp.Private)
	if err != nil {
		return sess, s.fail(sess, fmt.Errorf("store ephemeral key: %w", err))
	}
	sess.setExpiry(h)
	s.move(sess, domain.StatusKeyGenerated, nil)

	pin, err := s.relay.StartMigration(ctx, username, kp.Public)
	if err != nil {
		return sess, s.failDestination(sess, err)
	}
	sess.setPIN(pin)
	s.move(sess, domain.StatusRendezvousRegistered, nil)
	return sess, nil
}

// Poll performs one polling step. It reports done once the session is
// terminal; a non-nil error with done false leaves the session Polling and
// the caller may poll again.
func (s *Service) Poll(ctx context.Context, sess *Session) (bool, error) {
	if sess.Role != domain.RoleDestination {
		return false, domain.ErrWrongRole
	}
	if sess.Done() {
		return true, domain.ErrSessionTerminal
	}
	if sess.Status() == domain.StatusRendezvousRegistered {
		s.move(sess, domain.StatusPolling, nil)
	}
	if s.keyExpired(sess) {
		return true, s.expire(sess)
	}

	frame, err := s.relay.FetchPayload(ctx, sess.Username, sess.PIN())
	switch {
	case err == nil:
		return true, s.receive(sess, frame)
	case errors.Is(err, domain.ErrNotYetAvailable):
		s.log.Debug().Str("session", sess.ID.String()).Msg("payload not yet available")
		return false, nil
	case errors.Is(err, domain.ErrPinNotFound):
		return true, s.failDestination(sess, err)
	case ctx.Err() != nil:
		return false, ctx.Err()
	default:
		// Only an unknown PIN ends the session; anything else is retried
		// until the key deadline.
		return false, err
	}
}

// AwaitPayload polls until the session is terminal or ctx is done. A done
// context cancels the session.
func (s *Service) AwaitPayload(ctx context.Context, sess *Session) error {
	for {
		done, err := s.Poll(ctx, sess)
		if done {
			if errors.Is(err, domain.ErrSessionTerminal) {
				return sess.Err()
			}
			return err
		}
		if err != nil {
			if ctx.Err() != nil {
				return s.abandon(sess, ctx.Err())
			}
			s.log.Warn().Err(err).Str("session", sess.ID.String()).Msg("poll failed; retrying")
		}

		wait := s.cfg.PollInterval
		if left := sess.Deadline().Sub(s.clock.Now()); left < wait {
			wait = max(left, 0)
		}
		if err := s.sleep(ctx, wait); err != nil {
			return s.abandon(sess, err)
		}
	}
}

// receive decrypts a delivered frame and installs the recovered secret.
func (s *Service) receive(sess *Session, frame string) error {
	s.move(sess, domain.StatusDecrypting, nil)

	wf, err := wire.Unframe(frame)
	if err != nil {
		return s.failDestination(sess, err)
	}

	priv, err := s.keys.Consume()
	if errors.Is(err, domain.ErrKeyExpiredOrMissing) {
		return s.expire(sess)
	}
	if err != nil {
		return s.failDestination(sess, err)
	}

	secret, err := wire.OpenFromPeer(priv, wf)
	memzero.Zero(priv)
	if err != nil {
		return s.failDestination(sess, err)
	}

	fp, err := s.secrets.ImportSecret(secret)
	memzero.Zero(secret)
	if err != nil {
		return s.failDestination(sess, fmt.Errorf("save migrated secret: %w", err))
	}
	if err := s.keys.Delete(); err != nil {
		return s.fail(sess, fmt.Errorf("delete ephemeral key: %w", err))
	}

	s.log.Info().
		Str("session", sess.ID.String()).
		Str("fingerprint", fp.String()).
		Msg("secret migrated")
	s.move(sess, domain.StatusComplete, nil)
	return nil
}

func (s *Service) keyExpired(sess *Session) bool {
	select {
	case <-sess.expiredSignal():
		return true
	default:
	}
	return !s.clock.Now().Before(sess.Deadline())
}

// expire ends sess as Expired and makes sure the key is gone.
func (s *Service) expire(sess *Session) error {
	if err := s.keys.Delete(); err != nil {
		s.log.Error().Err(err).Str("session", sess.ID.String()).Msg("delete expired key")
	}
	s.move(sess, domain.StatusExpired, domain.ErrKeyExpiredOrMissing)
	return domain.ErrKeyExpiredOrMissing
}

// failDestination ends sess as Failed after removing the stored key.
func (s *Service) failDestination(sess *Session, cause error) error {
	if err := s.keys.Delete(); err != nil {
		cause = errors.Join(cause, fmt.Errorf("delete ephemeral key: %w", err))
	}
	return s.fail(sess, cause)
}

func (s *Service) abandon(sess *Session, cause error) error {
	if err := s.Cancel(sess); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}
