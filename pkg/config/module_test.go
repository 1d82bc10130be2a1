package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

func TestModule_RegistersConfig(t *testing.T) {
	yamlPath := writeConfigFile(t, "app.yaml", "app:\n  name: demo\n  port: 8000\n")
	envPath := writeConfigFile(t, ".env", "WEBCORE_TEST_APP__PORT=9000\n")

	c := container.New()
	m := NewModule("WEBCORE_TEST_", yamlPath, envPath)
	assert.Equal(t, contracts.ConfigModuleName, m.Name())
	require.NoError(t, m.Register(c))

	cfg, err := container.Resolve[contracts.Config](c, contracts.ConfigID)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.GetString("app.name"))
	assert.Equal(t, 9000, cfg.GetInt("app.port"), "dotenv overrides yaml")

	again, err := container.Resolve[contracts.Config](c, contracts.ConfigID)
	require.NoError(t, err)
	assert.Same(t, cfg, again)

	byType, err := container.Make[contracts.Config](c)
	require.NoError(t, err)
	assert.Same(t, cfg, byType)
}

func TestModule_TemplatesAreRendered(t *testing.T) {
	t.Setenv("WEBCORE_TEST_HOST", "db.internal")
	yamlPath := writeConfigFile(t, "app.yaml", "database:\n  dsn: 'postgres://{{ env \"WEBCORE_TEST_HOST\" }}/app'\n")

	c := container.New()
	require.NoError(t, NewModule("WEBCORE_NOPE_", yamlPath).Register(c))

	cfg, err := container.Resolve[contracts.Config](c, contracts.ConfigID)
	require.NoError(t, err)
	assert.Equal(t, "postgres://db.internal/app", cfg.GetString("database.dsn"))
}

func TestModule_LoaderError(t *testing.T) {
	loadErr := errors.New("boom")
	c := container.New()
	require.NoError(t, NewModuleWithLoader(&mockLoader{err: loadErr}).Register(c))

	_, err := c.Get(contracts.ConfigID)
	assert.ErrorIs(t, err, loadErr)
}
