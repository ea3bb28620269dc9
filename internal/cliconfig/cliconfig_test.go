package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, "output: prefix\nworkers: 4\npretty: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, OutputPrefix, cfg.Output)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Pretty)
}

func TestLoadDefaultsOutput(t *testing.T) {
	path := writeConfig(t, "workers: 2\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, OutputFull, cfg.Output)
}

func TestLoadRejectsUnknownOutputMode(t *testing.T) {
	path := writeConfig(t, "output: bogus\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeWorkers(t *testing.T) {
	path := writeConfig(t, "workers: -1\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
