package store

import (
	"sync"

	"synclayer/internal/domain"
)

// MemoryKV keeps slots in process memory. It backs tests and short-lived
// sessions that must not touch disk.
type MemoryKV struct {
	mu    sync.Mutex
	slots map[domain.Slot][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[domain.Slot][]byte)}
}

// Get returns a copy of the slot value.
func (s *MemoryKV) Get(slot domain.Slot) ([]byte, bool, error) {
	if err := checkSlot(slot); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put stores a copy of value.
func (s *MemoryKV) Put(slot domain.Slot, value []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[slot] = append([]byte(nil), value...)
	return nil
}

// Delete removes slot.
func (s *MemoryKV) Delete(slot domain.Slot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, slot)
	return nil
}

var _ domain.KeyValueStore = (*MemoryKV)(nil)
