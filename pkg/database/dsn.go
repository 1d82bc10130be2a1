package database

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/webcore/framework/pkg/contracts"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

func driverName(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "mysql", "mariadb":
		return DriverMySQL, nil
	case "postgres", "postgresql", "pgsql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", ErrUnsupportedDriver.WithDetail("driver", driver)
	}
}

// buildDSN returns the connection's dsn option verbatim when set, and
// otherwise assembles one from host, port, database, user, password and
// params.
func buildDSN(name, driver string, cfg contracts.Config) (string, error) {
	if dsn := cfg.GetString("dsn"); dsn != "" {
		return dsn, nil
	}

	switch driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = hostPort(cfg, "3306")
		mc.DBName = cfg.GetString("database")
		mc.User = cfg.GetString("user")
		mc.Passwd = cfg.GetString("password")
		mc.ParseTime = cfg.GetBool("parse_time", true)
		if params := stringParams(cfg); len(params) > 0 {
			mc.Params = params
		}
		return mc.FormatDSN(), nil

	case DriverPostgres:
		query := url.Values{}
		query.Set("sslmode", cfg.GetString("sslmode", "disable"))
		for k, v := range stringParams(cfg) {
			query.Set(k, v)
		}
		u := url.URL{
			Scheme:   "postgres",
			Host:     hostPort(cfg, "5432"),
			Path:     "/" + cfg.GetString("database"),
			RawQuery: query.Encode(),
		}
		if user := cfg.GetString("user"); user != "" {
			u.User = url.UserPassword(user, cfg.GetString("password"))
		}
		dsn, err := pq.ParseURL(u.String())
		if err != nil {
			return "", ErrInvalidDSN.
				WithDetail("name", name).
				WithDetail("reason", err.Error()).
				WithCause(err)
		}
		return dsn, nil

	case DriverSQLite:
		return cfg.GetString("database", ":memory:"), nil
	}

	return "", ErrUnsupportedDriver.WithDetail("driver", driver)
}

func hostPort(cfg contracts.Config, defaultPort string) string {
	host := cfg.GetString("host", "127.0.0.1")
	port := defaultPort
	if cfg.Has("port") {
		port = strconv.Itoa(cfg.GetInt("port"))
	}
	return net.JoinHostPort(host, port)
}

func stringParams(cfg contracts.Config) map[string]string {
	sub, ok := cfg.GetSub("params")
	if !ok {
		return nil
	}
	params := make(map[string]string)
	for k := range sub.All() {
		params[k] = sub.GetString(k)
	}
	return params
}
