package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScanLineProducesValidJSONLine(t *testing.T) {
	path := filepath.Join("..", "..", "testdata", "s1_rsa.der")
	line, err := renderScanLine(path)
	require.NoError(t, err)
	require.True(t, len(line) > 0 && line[len(line)-1] == '\n')

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(line[:len(line)-1], &out))
	assert.Contains(t, out, "serial_number")
	assert.Contains(t, out, "issuer")
}

func TestRenderScanLineMissingFile(t *testing.T) {
	_, err := renderScanLine("/nonexistent/file.der")
	assert.Error(t, err)
}
