package redis

import (
	"context"
	"sync"
	"time"

	rdClient "github.com/redis/go-redis/v9"

	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

type module struct {
	mu     sync.Mutex
	client *rdClient.Client
}

// NewModule registers a *redis.Client under contracts.RedisID and a Store
// resolvable by type. Both are built from the "redis" config section on
// first use.
func NewModule() contracts.AppModule {
	return &module{}
}

func (m *module) Name() string {
	return contracts.RedisModuleName
}

func (m *module) Register(c contracts.Container) error {
	if err := c.Singleton(contracts.RedisID, m.newClient); err != nil {
		return err
	}
	if err := c.Bind(container.TypeID[*rdClient.Client](), contracts.RedisID); err != nil {
		return err
	}
	return c.Singleton(container.TypeID[*Store](), func(c contracts.Container) (any, error) {
		client, err := container.Resolve[*rdClient.Client](c, contracts.RedisID)
		if err != nil {
			return nil, err
		}
		return NewStore(client, sectionString(c, "prefix")), nil
	})
}

func (m *module) newClient(c contracts.Container) (any, error) {
	client := NewClient(section(c))

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()

	return client, nil
}

func (m *module) Start(ctx contracts.AppContext) error {
	cfg := section(ctx.Container())
	if cfg == nil || !cfg.GetBool("ping_on_start", false) {
		return nil
	}

	client, err := container.Resolve[*rdClient.Client](ctx.Container(), contracts.RedisID)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx.Ctx(), cfg.GetDuration("ping_timeout", 5*time.Second))
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return ErrPing.WithDetail("addr", client.Options().Addr).WithCause(err)
	}
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Close()
	m.client = nil
	if err != nil {
		return ErrClose.WithCause(err)
	}
	return nil
}

func section(c contracts.Container) contracts.Config {
	if !c.Has(contracts.ConfigID) {
		return nil
	}
	cfg, err := container.Resolve[contracts.Config](c, contracts.ConfigID)
	if err != nil {
		return nil
	}
	sub, ok := cfg.GetSub("redis")
	if !ok {
		return nil
	}
	return sub
}

func sectionString(c contracts.Container, key string) string {
	cfg := section(c)
	if cfg == nil {
		return ""
	}
	return cfg.GetString(key)
}
