package bootstrap

import (
	"os"
	"time"

	"github.com/webcore/framework/pkg/app"
	"github.com/webcore/framework/pkg/config"
	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
	"github.com/webcore/framework/pkg/database"
	"github.com/webcore/framework/pkg/logger"
	"github.com/webcore/framework/pkg/redis"
	"github.com/webcore/framework/pkg/router"
)

// Bootstrap assembles an application from the framework modules. The config
// module is always registered first.
type Bootstrap struct {
	appName         string
	appVersion      string
	appEnvironment  string
	container       contracts.Container
	classes         []any
	modules         []contracts.AppModule
	gracefulTimeout time.Duration
}

func New(appName string, appVersion string, envPrefix string, configPaths ...string) *Bootstrap {
	return NewWithConfig(appName, appVersion, config.NewModule(envPrefix, configPaths...))
}

// NewWithConfig is New with a ready-made config module, typically one built
// by config.NewModuleWithLoader.
func NewWithConfig(appName string, appVersion string, configModule contracts.AppModule) *Bootstrap {
	appEnvironment := os.Getenv("APP_ENVIRONMENT")
	if appEnvironment == "" {
		appEnvironment = "development"
	}

	return &Bootstrap{
		appName:         appName,
		appVersion:      appVersion,
		appEnvironment:  appEnvironment,
		container:       container.New(),
		modules:         []contracts.AppModule{configModule},
		gracefulTimeout: 30 * time.Second,
	}
}

func (b *Bootstrap) WithGracefulTimeout(timeout time.Duration) *Bootstrap {
	b.gracefulTimeout = timeout
	return b
}

func (b *Bootstrap) WithLogger(opts ...logger.Option) *Bootstrap {
	return b.WithModule(logger.NewModule(opts...))
}

func (b *Bootstrap) WithDatabase() *Bootstrap {
	return b.WithModule(database.NewModule())
}

func (b *Bootstrap) WithRedis() *Bootstrap {
	return b.WithModule(redis.NewModule())
}

func (b *Bootstrap) WithRouter(routes func(*router.Router) error) *Bootstrap {
	return b.WithModule(router.NewModule(routes))
}

func (b *Bootstrap) WithModule(m contracts.AppModule) *Bootstrap {
	b.modules = append(b.modules, m)
	return b
}

// Declare adds classes (constructors or struct pointer markers) to the
// container catalog so they can be autowired.
func (b *Bootstrap) Declare(classes ...any) *Bootstrap {
	b.classes = append(b.classes, classes...)
	return b
}

func (b *Bootstrap) Container() contracts.Container {
	return b.container
}

func (b *Bootstrap) CreateApp() (contracts.App, error) {
	for _, class := range b.classes {
		if _, err := b.container.Declare(class); err != nil {
			return nil, err
		}
	}

	a := app.New(
		app.AppInfo{
			AppName:     b.appName,
			Version:     b.appVersion,
			Environment: b.appEnvironment,
		},
		b.container,
		app.NewRegistry(),
		app.WithGracefulTimeout(b.gracefulTimeout),
	)

	for _, module := range b.modules {
		if err := a.Register(module); err != nil {
			return nil, err
		}
	}

	return a, nil
}
