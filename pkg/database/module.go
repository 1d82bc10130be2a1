package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/webcore/framework/pkg/config"
	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

// ConnectionID is the container id of a named connection.
func ConnectionID(name string) string {
	return contracts.DatabaseID + ".connections." + name
}

type Module struct {
	pool *databasePool
}

func NewModule() contracts.AppModule {
	return &Module{
		pool: newDatabasePool(),
	}
}

func (m *Module) Name() string {
	return contracts.DatabaseModuleName
}

// Register reads the connections from config and binds each one as a lazily
// connected singleton. contracts.DatabaseID aliases the default connection
// and *sql.DB resolves to its pool.
func (m *Module) Register(c contracts.Container) error {
	cfg, err := container.Resolve[contracts.Config](c, contracts.ConfigID)
	if err != nil {
		return ErrConfigNotFound.
			WithDetail("reason", err.Error()).
			WithCause(err)
	}

	defaultName, connections, err := connectionsConfig(cfg)
	if err != nil {
		return err
	}

	for name, connCfg := range connections {
		db, err := m.createConnection(name, connCfg)
		if err != nil {
			return err
		}
		if err := m.pool.registerDatabase(name, db); err != nil {
			return err
		}
		if err := c.Singleton(ConnectionID(name), connect(db)); err != nil {
			return err
		}
	}

	if _, ok := m.pool.getDatabase(defaultName); !ok {
		return ErrConfigNotFound.WithDetail("reason", "default connection "+defaultName+" is not configured")
	}
	if err := c.Bind(contracts.DatabaseID, ConnectionID(defaultName)); err != nil {
		return err
	}
	if err := c.Bind(container.TypeID[*Database](), contracts.DatabaseID); err != nil {
		return err
	}
	return c.Singleton(container.TypeID[*sql.DB](), func(c contracts.Container) (any, error) {
		db, err := container.Resolve[*Database](c, contracts.DatabaseID)
		if err != nil {
			return nil, err
		}
		return db.DB()
	})
}

func (m *Module) Start(contracts.AppContext) error {
	return nil
}

func (m *Module) Stop(contracts.AppContext) error {
	return m.pool.closeAll()
}

// Connections lists the configured connection names.
func (m *Module) Connections() []string {
	return m.pool.names()
}

func connect(db *Database) contracts.Factory {
	return func(contracts.Container) (any, error) {
		if err := db.Connect(context.Background()); err != nil {
			return nil, err
		}
		return db, nil
	}
}

func (m *Module) createConnection(name string, cfg contracts.Config) (*Database, error) {
	rawDriver := cfg.GetString("driver")
	if rawDriver == "" {
		return nil, ErrDriverNotSpecified.WithDetail("name", name)
	}
	driver, err := driverName(rawDriver)
	if err != nil {
		return nil, err
	}

	dsn, err := buildDSN(name, driver, cfg)
	if err != nil {
		return nil, err
	}

	return NewDatabase(driver, dsn, connectionOptions(cfg)...), nil
}

func connectionOptions(cfg contracts.Config) []Option {
	var options []Option

	if pool, ok := cfg.GetSub("pool"); ok {
		options = append(options,
			WithConnectionPool(
				pool.GetInt("max_open_connections", 25),
				pool.GetInt("max_idle_connections", 5),
				pool.GetDuration("conn_max_lifetime", time.Hour),
			),
			WithConnectionIdleTime(pool.GetDuration("conn_max_idle_time", 5*time.Minute)),
		)
	}

	options = append(options,
		WithPingTimeout(cfg.GetDuration("ping_timeout", 5*time.Second)),
		WithRetry(cfg.GetInt("retry_attempts", 3), cfg.GetDuration("retry_delay", time.Second)),
	)

	return options
}

// connectionsConfig accepts three layouts: database.connections.<name> with
// database.default naming the default one, a single connection directly
// under database, or the flat DB_DRIVER/DB_HOST/DB_DATABASE/DB_USER/DB_PASS
// keys of a dotenv file.
func connectionsConfig(cfg contracts.Config) (string, map[string]contracts.Config, error) {
	const single = "default"

	dbCfg, ok := cfg.GetSub("database")
	if !ok {
		if legacy, ok := legacyConfig(cfg); ok {
			return single, map[string]contracts.Config{single: legacy}, nil
		}
		return "", nil, ErrConfigNotFound.WithDetail("reason", "database config not found")
	}

	connections, ok := dbCfg.GetSub("connections")
	if !ok {
		return single, map[string]contracts.Config{single: dbCfg}, nil
	}

	result := make(map[string]contracts.Config)
	for name := range connections.All() {
		if sub, ok := connections.GetSub(name); ok {
			result[name] = sub
		}
	}
	if len(result) == 0 {
		return "", nil, ErrConfigNotFound.WithDetail("reason", "no connections configured")
	}
	return dbCfg.GetString("default", "primary"), result, nil
}

func legacyConfig(cfg contracts.Config) (contracts.Config, bool) {
	if !cfg.Has("db_driver") {
		return nil, false
	}
	values := map[string]any{"driver": cfg.Get("db_driver")}
	for from, to := range map[string]string{
		"db_dsn":      "dsn",
		"db_host":     "host",
		"db_port":     "port",
		"db_database": "database",
		"db_user":     "user",
		"db_pass":     "password",
	} {
		if cfg.Has(from) {
			values[to] = cfg.Get(from)
		}
	}
	return config.NewMapConfig(values), true
}
