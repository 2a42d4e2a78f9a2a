package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajramos/bucketui/internal/config"
	"github.com/ajramos/bucketui/internal/services"
)

// sourceStub answers source lookups; every other StorageService method is unused
type sourceStub struct {
	services.StorageService
	sources []services.SourceInfo
}

func (s sourceStub) ListSources() []services.SourceInfo { return s.sources }

func (s sourceStub) ResolveSource(name string) (services.SourceInfo, error) {
	for _, src := range s.sources {
		if src.Name == name {
			return src, nil
		}
	}
	return services.SourceInfo{}, fmt.Errorf("%w: %s", services.ErrSourceNotFound, name)
}

func TestCheckSource(t *testing.T) {
	svc := sourceStub{sources: []services.SourceInfo{{Name: "aws"}, {Name: "local-minio"}}}

	assert.NoError(t, checkSource(svc, ""))
	assert.NoError(t, checkSource(svc, "local-minio"))

	err := checkSource(svc, "locl-minio")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrSourceNotFound)
	assert.Contains(t, err.Error(), "configured: aws, local-minio")
}

func TestGetConfigPath_Priority(t *testing.T) {
	// CLI flag takes precedence
	t.Setenv(configEnv, "/env/config.json")
	assert.Equal(t, "/custom/config.json", getConfigPath("/custom/config.json"))

	// Environment variable when no flag
	assert.Equal(t, "/env/config.json", getConfigPath(""))

	// Default when neither flag nor env
	t.Setenv(configEnv, "")
	assert.Contains(t, getConfigPath(""), "config.json")
}

func TestRunInit_WritesConfigAndTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	var out bytes.Buffer

	require.NoError(t, runInit(&out, path, false))
	assert.Contains(t, out.String(), "Created configuration file")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "aws", cfg.DefaultSourceName())
	assert.FileExists(t, filepath.Join(dir, "themes", "default.yaml"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRunInit_KeepsExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"page_size": 5}`), 0o600))

	var out bytes.Buffer
	require.NoError(t, runInit(&out, path, false))
	assert.Contains(t, out.String(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"page_size": 5}`, string(data))
}

func TestSourcesCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.DefaultConfig()
	cfg.Sources = []config.SourceConfig{
		{Name: "aws", DefaultBucket: "photos"},
		{Name: "local-minio", Endpoint: "http://localhost:9000", PathStyle: true, DefaultBucket: "dev"},
	}
	cfg.DefaultSource = "local-minio"
	require.NoError(t, cfg.SaveConfig(path))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"sources", "--config", path})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  aws"))
	assert.Contains(t, lines[0], "endpoint=aws")
	assert.True(t, strings.HasPrefix(lines[1], "* local-minio"))
	assert.Contains(t, lines[1], "local minio")
	assert.Contains(t, lines[1], "bucket=dev")
}

func TestSourcesCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sources": []}`), 0o600))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"sources", "--config", path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucketui init")
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "BucketUI")
	assert.Contains(t, out.String(), "Go version")
}
