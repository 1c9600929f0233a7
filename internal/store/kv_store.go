package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"synclayer/internal/domain"
)

// FileKV persists each slot as its own passphrase-sealed file under dir.
type FileKV struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewFileKV returns a FileKV rooted at dir. Every slot is sealed with a key
// derived from passphrase.
func NewFileKV(dir, passphrase string) *FileKV {
	return &FileKV{dir: dir, passphrase: passphrase}
}

// Get reads and unseals slot. The boolean is false when the slot is empty.
func (s *FileKV) Get(slot domain.Slot) ([]byte, bool, error) {
	if err := checkSlot(slot); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.path(slot))
	if err != nil {
		return nil, false, err
	}
	if b == nil {
		return nil, false, nil
	}
	raw, err := unseal(s.passphrase, slot, b)
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Put seals value and replaces slot atomically.
func (s *FileKV) Put(slot domain.Slot, value []byte) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := seal(s.passphrase, slot, value)
	if err != nil {
		return err
	}
	return writeFile(s.path(slot), b, 0o600)
}

// Delete removes slot; an empty slot is not an error.
func (s *FileKV) Delete(slot domain.Slot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(s.path(slot))
}

func (s *FileKV) path(slot domain.Slot) string {
	return filepath.Join(s.dir, slot.String()+".enc")
}

// checkSlot rejects names outside the fixed slot set.
func checkSlot(slot domain.Slot) error {
	switch slot {
	case domain.SlotSecretBlob, domain.SlotEphemeralKey:
		return nil
	}
	return fmt.Errorf("unknown store slot %q", slot)
}

// Compile-time assertion that FileKV implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileKV)(nil)
