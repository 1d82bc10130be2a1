package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcore/framework/pkg/config"
	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

func containerWithConfig(t *testing.T, values map[string]any) contracts.Container {
	t.Helper()
	c := container.New()
	require.NoError(t, c.Instance(contracts.ConfigID, config.NewMapConfig(values)))
	return c
}

func sqliteConnection() map[string]any {
	return map[string]any{
		"driver":         "sqlite",
		"database":       ":memory:",
		"retry_attempts": 0,
		"pool": map[string]any{
			"max_open_connections": 1,
			"max_idle_connections": 1,
		},
	}
}

func TestModule_NamedConnections(t *testing.T) {
	c := containerWithConfig(t, map[string]any{
		"database": map[string]any{
			"default": "primary",
			"connections": map[string]any{
				"primary": sqliteConnection(),
				"reports": sqliteConnection(),
			},
		},
	})

	m := NewModule()
	assert.Equal(t, contracts.DatabaseModuleName, m.Name())
	require.NoError(t, m.Register(c))
	assert.Equal(t, []string{"primary", "reports"}, m.(*Module).Connections())

	primary, err := container.Resolve[*Database](c, ConnectionID("primary"))
	require.NoError(t, err)
	reports, err := container.Resolve[*Database](c, ConnectionID("reports"))
	require.NoError(t, err)
	assert.NotSame(t, primary, reports)

	byID, err := container.Resolve[*Database](c, contracts.DatabaseID)
	require.NoError(t, err)
	assert.Same(t, primary, byID)

	byType, err := container.Make[*Database](c)
	require.NoError(t, err)
	assert.Same(t, primary, byType)

	conn, err := container.Make[*sql.DB](c)
	require.NoError(t, err)
	assert.NoError(t, conn.Ping())

	require.NoError(t, m.Stop(nil))
	_, err = primary.DB()
	assert.ErrorIs(t, err, ErrDatabaseNotConnected)
}

func TestModule_SingleConnection(t *testing.T) {
	c := containerWithConfig(t, map[string]any{"database": sqliteConnection()})
	require.NoError(t, NewModule().Register(c))

	db, err := container.Resolve[*Database](c, contracts.DatabaseID)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, db.Driver())
}

func TestModule_LegacyDotenvKeys(t *testing.T) {
	c := containerWithConfig(t, map[string]any{
		"db_driver":   "sqlite3",
		"db_database": ":memory:",
	})
	require.NoError(t, NewModule().Register(c))

	db, err := container.Resolve[*Database](c, contracts.DatabaseID)
	require.NoError(t, err)
	assert.NoError(t, db.Ping(t.Context()))
}

func TestModule_ConfigErrors(t *testing.T) {
	t.Run("no config", func(t *testing.T) {
		err := NewModule().Register(container.New())
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	tests := []struct {
		name   string
		values map[string]any
		want   error
	}{
		{"no database section", map[string]any{"app": "x"}, ErrConfigNotFound},
		{"missing driver", map[string]any{"database": map[string]any{"dsn": "x"}}, ErrDriverNotSpecified},
		{"unsupported driver", map[string]any{"database": map[string]any{"driver": "oracle"}}, ErrUnsupportedDriver},
		{"unknown default", map[string]any{"database": map[string]any{
			"default":     "main",
			"connections": map[string]any{"primary": sqliteConnection()},
		}}, ErrConfigNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModule().Register(containerWithConfig(t, tt.values))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
