package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_ValidConfig(t *testing.T) {
	p := writeConfig(t, `storage:
  backend: file
  dir: /tmp/lists
  key: groceries
default_list_name: Groceries
theme: neon
log_level: debug
`)
	c, err := Load(p, true)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, c.Storage.Backend)
	assert.Equal(t, "/tmp/lists", c.Storage.Dir)
	assert.Equal(t, "groceries", c.Storage.Key)
	assert.Equal(t, "Groceries", c.DefaultListName)
	assert.Equal(t, "Neue Liste", c.NewListName)
	assert.Equal(t, "neon", c.Theme)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(writeConfig(t, "{}\n"), true)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, c.Storage.Backend)
	assert.Equal(t, "shopping-app-v1", c.Storage.Key)
	assert.Equal(t, "Meine Liste", c.DefaultListName)
	assert.Equal(t, "classic", c.Theme)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoad_MemoryBackendHasNoDir(t *testing.T) {
	c, err := Load(writeConfig(t, "storage:\n  backend: memory\n"), true)
	require.NoError(t, err)
	assert.Empty(t, c.Storage.Dir)
}

func TestLoad_FileNotFound(t *testing.T) {
	c, err := Load("/nonexistent/shoplist.yml", false)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c, err = Load("/nonexistent/shoplist.yml", true)
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	c, err := Load(writeConfig(t, "storage: [unclosed\n"), true)
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"storage.backend": "storage:\n  backend: redis\n",
		"theme":           "theme: rainbow\n",
		"log_level":       "log_level: chatty\n",
	}
	for field, body := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestDefaultPath_Env(t *testing.T) {
	t.Setenv(EnvVar, "/etc/shoplist.yml")
	assert.Equal(t, "/etc/shoplist.yml", DefaultPath())
}
