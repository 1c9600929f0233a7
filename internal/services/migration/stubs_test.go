package migration_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"synclayer/internal/domain"
	"synclayer/internal/services/ephemeral"
	"synclayer/internal/services/migration"
	"synclayer/internal/services/secret"
	"synclayer/internal/store"
)

type stubRelay struct{ mock.Mock }

func (r *stubRelay) StartMigration(
	ctx context.Context,
	username domain.Username,
	pub domain.P256Public,
) (domain.PIN, error) {
	ret := r.Called(ctx, username, pub)
	return ret.Get(0).(domain.PIN), ret.Error(1)
}

func (r *stubRelay) FetchPublicKey(ctx context.Context, pin domain.PIN) (domain.P256Public, error) {
	ret := r.Called(ctx, pin)
	return ret.Get(0).(domain.P256Public), ret.Error(1)
}

func (r *stubRelay) SubmitPayload(
	ctx context.Context,
	username domain.Username,
	pin domain.PIN,
	frame string,
) error {
	return r.Called(ctx, username, pin, frame).Error(0)
}

func (r *stubRelay) FetchPayload(
	ctx context.Context,
	username domain.Username,
	pin domain.PIN,
) (string, error) {
	ret := r.Called(ctx, username, pin)
	return ret.String(0), ret.Error(1)
}

var _ domain.RendezvousClient = (*stubRelay)(nil)

// device bundles one side of a migration over in-memory storage.
type device struct {
	kv      *store.MemoryKV
	secrets *secret.Service
	keys    *ephemeral.Lifecycle
	svc     *migration.Service
	slept   []time.Duration
}

func newDevice(t *testing.T, relay domain.RendezvousClient, clk *clock.Mock) *device {
	t.Helper()
	d := &device{kv: store.NewMemoryKV()}
	d.secrets = secret.New(d.kv)
	d.keys = ephemeral.New(d.kv, clk, zerolog.Nop())
	d.svc = migration.New(
		d.secrets,
		d.keys,
		relay,
		migration.Config{PollInterval: 10 * time.Second, KeyTTL: 5 * time.Minute, SubmitAttempts: 3},
		migration.WithClock(clk),
		migration.WithSleeper(func(ctx context.Context, dur time.Duration) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d.slept = append(d.slept, dur)
			clk.Add(dur)
			return nil
		}),
	)
	return d
}

func (d *device) hasEphemeralKey(t *testing.T) bool {
	t.Helper()
	_, ok, err := d.kv.Get(domain.SlotEphemeralKey)
	require.NoError(t, err)
	return ok
}

func secretBlob(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}
