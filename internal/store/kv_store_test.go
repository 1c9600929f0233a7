package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synclayer/internal/domain"
	"synclayer/internal/store"
)

func TestFileKV_PutGetDelete(t *testing.T) {
	home := t.TempDir()
	var kv domain.KeyValueStore = store.NewFileKV(home, "pass")

	_, ok, err := kv.Get(domain.SlotSecretBlob)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(domain.SlotSecretBlob, []byte("blob-1")))
	require.NoError(t, kv.Put(domain.SlotSecretBlob, []byte("blob-2")))

	got, ok, err := kv.Get(domain.SlotSecretBlob)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("blob-2"), got)

	require.NoError(t, kv.Delete(domain.SlotSecretBlob))
	require.NoError(t, kv.Delete(domain.SlotSecretBlob), "deleting an empty slot is not an error")

	_, ok, err = kv.Get(domain.SlotSecretBlob)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileKV_SealedAtRest(t *testing.T) {
	home := t.TempDir()
	kv := store.NewFileKV(home, "pass")
	require.NoError(t, kv.Put(domain.SlotSecretBlob, []byte("very-recognisable-plaintext")))

	b, err := os.ReadFile(filepath.Join(home, "secret_blob.enc"))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "very-recognisable-plaintext")

	info, err := os.Stat(filepath.Join(home, "secret_blob.enc"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileKV_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, store.NewFileKV(home, "correct").Put(domain.SlotSecretBlob, []byte("x")))

	_, _, err := store.NewFileKV(home, "wrong").Get(domain.SlotSecretBlob)
	assert.Error(t, err)
}

func TestFileKV_SlotSwapDetected(t *testing.T) {
	home := t.TempDir()
	kv := store.NewFileKV(home, "pass")
	require.NoError(t, kv.Put(domain.SlotSecretBlob, []byte("x")))

	require.NoError(t, os.Rename(
		filepath.Join(home, "secret_blob.enc"),
		filepath.Join(home, "migration_ephemeral_key.enc"),
	))
	_, _, err := kv.Get(domain.SlotEphemeralKey)
	assert.Error(t, err)
}

func TestStores_RejectUnknownSlot(t *testing.T) {
	for name, kv := range map[string]domain.KeyValueStore{
		"file":   store.NewFileKV(t.TempDir(), "pass"),
		"memory": store.NewMemoryKV(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, kv.Put(domain.Slot("other"), []byte("x")))
			_, _, err := kv.Get(domain.Slot("other"))
			assert.Error(t, err)
			assert.Error(t, kv.Delete(domain.Slot("other")))
		})
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := store.NewMemoryKV()
	v := []byte("abc")
	require.NoError(t, kv.Put(domain.SlotEphemeralKey, v))
	v[0] = 'z'

	got, ok, err := kv.Get(domain.SlotEphemeralKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'q'
	again, _, _ := kv.Get(domain.SlotEphemeralKey)
	assert.Equal(t, []byte("abc"), again)
}
