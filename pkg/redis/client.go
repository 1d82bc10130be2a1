package redis

import (
	"time"

	rdClient "github.com/redis/go-redis/v9"

	"github.com/webcore/framework/pkg/contracts"
)

const DefaultAddr = "127.0.0.1:6379"

// NewClient builds a client from the redis config section. It does not
// connect; go-redis dials on the first command.
func NewClient(cfg contracts.Config) *rdClient.Client {
	opts := &rdClient.Options{Addr: DefaultAddr}
	if cfg == nil {
		return rdClient.NewClient(opts)
	}

	opts.Addr = cfg.GetString("addr", DefaultAddr)
	opts.Username = cfg.GetString("username")
	opts.Password = cfg.GetString("password")
	opts.DB = cfg.GetInt("db", 0)
	opts.PoolSize = cfg.GetInt("pool_size", 0)
	opts.MaxRetries = cfg.GetInt("max_retries", 0)
	opts.DialTimeout = cfg.GetDuration("dial_timeout", 5*time.Second)
	opts.ReadTimeout = cfg.GetDuration("read_timeout", 3*time.Second)
	opts.WriteTimeout = cfg.GetDuration("write_timeout", 3*time.Second)

	return rdClient.NewClient(opts)
}
