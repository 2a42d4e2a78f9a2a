// Package prefs holds the durable on/off preferences of the browsing screen.
//
// Reads and writes never fail from the caller's point of view: a backend error
// is logged as a warning, and a value that cannot be read is false.
package prefs

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PreviewKey is the preference key of the thumbnail preview mode.
const PreviewKey = "bucketui-previews"

const opTimeout = 2 * time.Second

// Backend is a durable string key/value store.
type Backend interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
}

// Flag is a boolean preference that fails soft.
type Flag interface {
	Get() bool
	Set(enabled bool)
}

// BoolFlag is a Flag stored under one key of a Backend as "true" or "false".
type BoolFlag struct {
	backend Backend
	key     string
	logger  zerolog.Logger

	mu     sync.Mutex
	memory bool // only used without a backend
}

// NewBoolFlag creates a flag bound to key. A nil backend keeps the value in memory only.
func NewBoolFlag(backend Backend, key string, logger zerolog.Logger) *BoolFlag {
	return &BoolFlag{backend: backend, key: key, logger: logger}
}

// Get returns the stored value. Missing, unreadable or unrecognised values read as false.
func (f *BoolFlag) Get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.backend == nil {
		return f.memory
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	raw, found, err := f.backend.Load(ctx, f.key)
	if err != nil {
		f.logger.Warn().Err(err).Str("key", f.key).Msg("failed to read preference")
		return false
	}
	return found && raw == "true"
}

// Set stores the value. A failed write is logged and otherwise ignored.
func (f *BoolFlag) Set(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.backend == nil {
		f.memory = enabled
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := f.backend.Save(ctx, f.key, encode(enabled)); err != nil {
		f.logger.Warn().Err(err).Str("key", f.key).Bool("value", enabled).Msg("failed to persist preference")
	}
}

func encode(enabled bool) string {
	if enabled {
		return "true"
	}
	return "false"
}

// Memory is an in-process Backend.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
