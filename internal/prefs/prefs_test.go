package prefs

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ajramos/bucketui/internal/db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingBackend) Load(context.Context, string) (string, bool, error) {
	return "", false, f.loadErr
}

func (f *failingBackend) Save(context.Context, string, string) error {
	f.saves++
	return f.saveErr
}

// flakyBackend is a Memory whose reads can be switched to fail
type flakyBackend struct {
	*Memory
	failLoads bool
}

func (f *flakyBackend) Load(ctx context.Context, key string) (string, bool, error) {
	if f.failLoads {
		return "", false, errors.New("database is locked")
	}
	return f.Memory.Load(ctx, key)
}

func TestBoolFlag_DefaultsToFalse(t *testing.T) {
	flag := NewBoolFlag(NewMemory(), PreviewKey, zerolog.Nop())
	assert.False(t, flag.Get())
}

func TestBoolFlag_RoundTrip(t *testing.T) {
	backend := NewMemory()

	NewBoolFlag(backend, PreviewKey, zerolog.Nop()).Set(true)

	raw, found, err := backend.Load(context.Background(), PreviewKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", raw)

	// A new flag over the same backend is a fresh page load
	assert.True(t, NewBoolFlag(backend, PreviewKey, zerolog.Nop()).Get())

	NewBoolFlag(backend, PreviewKey, zerolog.Nop()).Set(false)
	raw, _, _ = backend.Load(context.Background(), PreviewKey)
	assert.Equal(t, "false", raw)
	assert.False(t, NewBoolFlag(backend, PreviewKey, zerolog.Nop()).Get())
}

func TestBoolFlag_UnrecognisedValueReadsFalse(t *testing.T) {
	backend := NewMemory()
	require.NoError(t, backend.Save(context.Background(), PreviewKey, "yes"))

	assert.False(t, NewBoolFlag(backend, PreviewKey, zerolog.Nop()).Get())
}

func TestBoolFlag_ReadErrorDefaultsToFalse(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	flag := NewBoolFlag(&failingBackend{loadErr: errors.New("disk gone")}, PreviewKey, logger)

	assert.NotPanics(t, func() {
		assert.False(t, flag.Get())
	})
	assert.Contains(t, buf.String(), "failed to read preference")
	assert.Contains(t, buf.String(), "disk gone")
}

func TestBoolFlag_WriteErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	backend := &failingBackend{loadErr: errors.New("unavailable"), saveErr: errors.New("read-only")}
	flag := NewBoolFlag(backend, PreviewKey, zerolog.New(&buf))

	flag.Set(true)

	assert.Equal(t, 1, backend.saves)
	assert.Contains(t, buf.String(), "failed to persist preference")
	assert.False(t, flag.Get(), "unreadable value on the next page load is false")
}

func TestBoolFlag_ReadErrorAfterSuccessfulWrite(t *testing.T) {
	backend := &flakyBackend{Memory: NewMemory()}
	flag := NewBoolFlag(backend, PreviewKey, zerolog.Nop())

	flag.Set(true)
	require.True(t, flag.Get())

	backend.failLoads = true
	assert.False(t, flag.Get())
}

func TestBoolFlag_NilBackend(t *testing.T) {
	flag := NewBoolFlag(nil, PreviewKey, zerolog.Nop())
	assert.False(t, flag.Get())
	flag.Set(true)
	assert.True(t, flag.Get())
}

func TestBoolFlag_SQLiteBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.sqlite3")

	store, err := db.Open(ctx, path)
	require.NoError(t, err)
	NewBoolFlag(db.NewPreferenceStore(store), PreviewKey, zerolog.Nop()).Set(true)
	require.NoError(t, store.Close())

	reopened, err := db.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.True(t, NewBoolFlag(db.NewPreferenceStore(reopened), PreviewKey, zerolog.Nop()).Get())
}
