package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bucketui.log")

	l, err := Open(path, false)
	require.NoError(t, err)

	l.Info().Str("bucket", "assets").Msg("listing loaded")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "listing loaded")
	assert.Contains(t, string(data), "bucket=assets")
}

func TestOpen_EmptyPath(t *testing.T) {
	l, err := Open("", false)
	assert.Nil(t, l)
	assert.ErrorContains(t, err, "empty log path")
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, false).Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	New(&buf, true).Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	log := l.Component("preview")
	log.Warn().Msg("persist failed")
	assert.Contains(t, buf.String(), "component=preview")

	var nilLogger *Logger
	nop := nilLogger.Component("x")
	nop.Warn().Msg("dropped")
}

func TestClose_Idempotent(t *testing.T) {
	assert.NoError(t, Nop().Close())

	l, err := Open(filepath.Join(t.TempDir(), "a.log"), false)
	require.NoError(t, err)
	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}
