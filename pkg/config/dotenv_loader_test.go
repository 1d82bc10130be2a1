package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDotenvLoader_Load(t *testing.T) {
	path := writeConfigFile(t, ".env", `# database settings
APP_DATABASE__DRIVER=sqlite3
APP_DATABASE__DSN="file::memory:"
APP_DEBUG=true
APP_PORT=8080
OTHER_KEY=ignored
`)

	config, err := NewDotenvLoader("APP_", path).Load()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"database": map[string]any{
			"driver": "sqlite3",
			"dsn":    "file::memory:",
		},
		"debug": true,
		"port":  8080,
	}, config)
}

func TestDotenvLoader_Load_NoPrefix(t *testing.T) {
	path := writeConfigFile(t, ".env", "DB_HOST=localhost\nDB_NAME=app\n")

	config, err := NewDotenvLoader("", path).Load()
	require.NoError(t, err)

	cfg := NewMapConfig(config)
	assert.Equal(t, "localhost", cfg.GetString("db_host"))
	assert.Equal(t, "app", cfg.GetString("db_name"))
}

func TestDotenvLoader_Load_Errors(t *testing.T) {
	_, err := NewDotenvLoader("", "missing.env").Load()
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = NewDotenvLoader("", writeConfigFile(t, ".env", "")).Load()
	assert.ErrorIs(t, err, ErrEmptyFile)
}
