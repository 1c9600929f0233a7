package migration

import (
	"context"
	"errors"
	"time"

	"synclayer/internal/domain"
	wire "synclayer/internal/protocol/migration"
	"synclayer/internal/util/memzero"
)

// CompleteMigration runs the source role: fetch the destination key for pin,
// seal the local secret to it and submit the frame. The source key pair is
// generated per attempt and never stored.
func (s *Service) CompleteMigration(
	ctx context.Context,
	username domain.Username,
	pin domain.PIN,
) (*Session, error) {
	sess := newSession(domain.RoleSource, username)
	sess.setPIN(pin)

	s.move(sess, domain.StatusFetchingPeerKey, nil)
	peer, err := s.relay.FetchPublicKey(ctx, pin)
	if err != nil {
		return sess, s.fail(sess, err)
	}

	s.move(sess, domain.StatusEncrypting, nil)
	blob, err := s.secrets.LoadSecret()
	if err != nil {
		return sess, s.fail(sess, err)
	}
	defer memzero.Zero(blob)

	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			s.move(sess, domain.StatusEncrypting, nil)
		}
		frame, err := wire.SealForPeer(peer, blob)
		if err != nil {
			return sess, s.fail(sess, err)
		}

		s.move(sess, domain.StatusSubmitting, nil)
		err = s.relay.SubmitPayload(ctx, username, pin, frame)
		if err == nil {
			s.move(sess, domain.StatusSent, nil)
			return sess, nil
		}
		if !errors.Is(err, domain.ErrRendezvousUnavailable) || attempt >= s.cfg.SubmitAttempts {
			return sess, s.fail(sess, err)
		}

		s.log.Warn().
			Err(err).
			Str("session", sess.ID.String()).
			Int("attempt", attempt).
			Msg("submit failed; retrying with a fresh key")
		if err := s.sleep(ctx, time.Duration(attempt)*submitBackoff); err != nil {
			return sess, s.fail(sess, err)
		}
	}
}
