package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveValue_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveValue(path, "site_url", "https://workcity.example"))
	require.NoError(t, SaveValue(path, "server.addr", ":9000"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# Public origin used to build stylesheet URIs")
	require.Contains(t, content, "site_url: https://workcity.example")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Equal(t, ":9000", parsed["server"].(map[string]any)["addr"])
}

func TestSaveValue_NewFileAndNestedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveValue(path, "cache.ttl", "1m"))

	var parsed map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Equal(t, "1m", parsed["cache"].(map[string]any)["ttl"])
}

func TestSaveValue_RejectsScalarParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site_url: http://x\n"), 0o600))

	err := SaveValue(path, "site_url.host", "y")
	require.ErrorContains(t, err, "site_url is not a mapping")
}

func TestSaveValue_EmptyKey(t *testing.T) {
	require.Error(t, SaveValue(filepath.Join(t.TempDir(), "c.yaml"), "", "v"))
}
