package storage

import (
	"context"
	"testing"

	"github.com/ajramos/bucketui/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceManagerFrom(t *testing.T) {
	primary := &Source{Name: "primary", DefaultBucket: "media"}
	archive := &Source{Name: "archive", DefaultBucket: "cold"}

	m, err := NewSourceManagerFrom([]*Source{primary, archive}, "")
	require.NoError(t, err)
	assert.Equal(t, "primary", m.DefaultName())
	assert.Equal(t, []*Source{primary, archive}, m.Sources())

	got, ok := m.Resolve("")
	assert.True(t, ok)
	assert.Same(t, primary, got)

	got, ok = m.Resolve(" archive ")
	assert.True(t, ok)
	assert.Same(t, archive, got)

	_, ok = m.Resolve("missing")
	assert.False(t, ok)
}

func TestNewSourceManagerFrom_Errors(t *testing.T) {
	_, err := NewSourceManagerFrom(nil, "")
	assert.ErrorContains(t, err, "no storage sources")

	_, err = NewSourceManagerFrom([]*Source{{Name: "a"}, {Name: "a"}}, "")
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewSourceManagerFrom([]*Source{{Name: ""}}, "")
	assert.ErrorContains(t, err, "without a name")

	_, err = NewSourceManagerFrom([]*Source{{Name: "a"}}, "b")
	assert.ErrorContains(t, err, "not configured")
}

func TestNewSourceManager_BuildsClients(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

	cfg := config.DefaultConfig()
	cfg.Sources = []config.SourceConfig{
		{Name: "local-minio", Endpoint: "http://127.0.0.1:9000", PathStyle: true, AccessKey: "minio", SecretKey: "minio123", DefaultBucket: "media"},
		{Name: "aws", Region: "eu-west-1", DefaultBucket: "archive"},
	}
	cfg.DefaultSource = "aws"

	m, err := NewSourceManager(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "aws", m.DefaultName())

	src, ok := m.Resolve("local-minio")
	require.True(t, ok)
	assert.Equal(t, "local minio", src.Label)
	assert.NotNil(t, src.Client)
	assert.NotNil(t, src.Presigner)
}

func TestNewSourceManager_NilConfig(t *testing.T) {
	_, err := NewSourceManager(context.Background(), nil)
	assert.Error(t, err)
}
