package ephemeral

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"synclayer/internal/domain"
	"synclayer/internal/util/memzero"
)

// DefaultTTL is the window in which a destination may complete a migration.
const DefaultTTL = 5 * time.Minute

// Lease is the expiry handle returned by Store.
type Lease struct {
	id       uuid.UUID
	deadline time.Time
	timer    *clock.Timer
	expired  chan struct{}
	once     sync.Once
}

// ID identifies the stored key record.
func (l *Lease) ID() uuid.UUID { return l.id }

// Deadline is the instant after which the key is no longer usable.
func (l *Lease) Deadline() time.Time { return l.deadline }

// Expired is closed once the key has been removed because its TTL elapsed.
func (l *Lease) Expired() <-chan struct{} { return l.expired }

// Stop cancels the expiry timer. It does not delete the key.
func (l *Lease) Stop() bool { return l.timer.Stop() }

func (l *Lease) markExpired() { l.once.Do(func() { close(l.expired) }) }

// Lifecycle implements domain.EphemeralKeyStore on top of a slot store.
type Lifecycle struct {
	store domain.KeyValueStore
	clock clock.Clock
	log   zerolog.Logger

	mu      sync.Mutex
	gen     uint64
	current *Lease
}

// New returns a Lifecycle. A nil clk uses the wall clock.
func New(store domain.KeyValueStore, clk clock.Clock, log zerolog.Logger) *Lifecycle {
	if clk == nil {
		clk = clock.New()
	}
	return &Lifecycle{store: store, clock: clk, log: log}
}

// Store persists key, replacing any earlier key, and schedules its deletion
// after ttl. A non-positive ttl selects DefaultTTL.
func (l *Lifecycle) Store(key domain.P256Private, ttl time.Duration) (domain.ExpiryHandle, error) {
	if len(key) == 0 {
		return nil, domain.ErrInvalidLocalKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.retireLocked()

	lease := &Lease{
		id:       uuid.New(),
		deadline: l.clock.Now().Add(ttl),
		expired:  make(chan struct{}),
	}
	b, err := encodeRecord(record{
		ID:       lease.id.String(),
		Key:      key.Slice(),
		NotAfter: lease.deadline.UnixNano(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode key record: %w", err)
	}
	err = l.store.Put(domain.SlotEphemeralKey, b)
	memzero.Zero(b)
	if err != nil {
		return nil, err
	}

	l.gen++
	gen := l.gen
	lease.timer = l.clock.AfterFunc(ttl, func() { l.expire(gen) })
	l.current = lease

	l.log.Debug().
		Str("key_id", lease.id.String()).
		Time("not_after", lease.deadline).
		Msg("ephemeral key stored")
	return lease, nil
}

// Consume returns the stored key. It fails with domain.ErrKeyExpiredOrMissing
// when the slot is empty or the record is past its deadline; in the latter
// case the record is deleted. The caller deletes the key after use.
func (l *Lifecycle) Consume() (domain.P256Private, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok, err := l.store.Get(domain.SlotEphemeralKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrKeyExpiredOrMissing
	}
	rec, err := decodeRecord(b)
	memzero.Zero(b)
	if err != nil {
		// An unreadable record can never be used; clear the slot.
		_ = l.store.Delete(domain.SlotEphemeralKey)
		return nil, fmt.Errorf("%w: unreadable key record", domain.ErrKeyExpiredOrMissing)
	}

	if !l.clock.Now().Before(time.Unix(0, rec.NotAfter)) {
		if err := l.expireLocked(); err != nil {
			return nil, err
		}
		return nil, domain.ErrKeyExpiredOrMissing
	}
	return domain.P256Private(rec.Key), nil
}

// Delete removes the stored key and cancels its timer. Deleting an absent key
// is not an error.
func (l *Lifecycle) Delete() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(domain.SlotEphemeralKey); err != nil {
		return err
	}
	l.retireLocked()
	return nil
}

// expire runs on the timer goroutine. A stale generation belongs to a key
// that was already replaced or deleted.
func (l *Lifecycle) expire(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen || l.current == nil {
		return
	}
	if err := l.expireLocked(); err != nil {
		l.log.Error().Err(err).Msg("delete expired ephemeral key")
	}
}

func (l *Lifecycle) expireLocked() error {
	if err := l.store.Delete(domain.SlotEphemeralKey); err != nil {
		return err
	}
	if lease := l.current; lease != nil {
		lease.timer.Stop()
		lease.markExpired()
		l.log.Info().Str("key_id", lease.id.String()).Msg("ephemeral key expired")
	}
	l.current = nil
	l.gen++
	return nil
}

// retireLocked cancels the timer of the current lease without expiring it.
func (l *Lifecycle) retireLocked() {
	if l.current != nil {
		l.current.timer.Stop()
		l.current = nil
	}
	l.gen++
}

// Compile-time assertion that Lifecycle implements domain.EphemeralKeyStore.
var _ domain.EphemeralKeyStore = (*Lifecycle)(nil)
