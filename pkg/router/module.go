package router

import (
	"context"
	"net/http"

	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
	"github.com/webcore/framework/pkg/errors"
)

type module struct {
	routes    func(*Router) error
	container contracts.Container
	server    *Server
}

// NewModule registers the router and, when http.addr is configured, serves
// it for the lifetime of the application. routes is called once, when the
// router is first resolved.
func NewModule(routes func(*Router) error) contracts.AppModule {
	return &module{routes: routes}
}

func (m *module) Name() string {
	return contracts.RouterModuleName
}

func (m *module) Register(c contracts.Container) error {
	m.container = c

	if !c.Has(contracts.ErrorHandlerID) {
		if err := c.Singleton(contracts.ErrorHandlerID, newErrorHandler); err != nil {
			return err
		}
	}

	if err := c.Singleton(contracts.RouterID, m.newRouter); err != nil {
		return err
	}
	return c.Bind(container.TypeID[*Router](), contracts.RouterID)
}

func (m *module) newRouter(c contracts.Container) (any, error) {
	errorHandler, err := container.Resolve[contracts.ErrorHandler](c, contracts.ErrorHandlerID)
	if err != nil {
		return nil, err
	}

	middleware := []func(http.Handler) http.Handler{RequestID}
	logger := optionalLogger(c)
	if logger != nil {
		middleware = append(middleware, Logging(logger))
	}
	middleware = append(middleware, Recovery(errorHandler, logger))

	r := New(m.container, errorHandler, middleware...)
	if m.routes != nil {
		if err := m.routes(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (m *module) Start(ctx contracts.AppContext) error {
	cfg := optionalConfig(ctx.Container())
	if cfg == nil || !cfg.Has("http.addr") {
		return nil
	}

	r, err := container.Resolve[*Router](ctx.Container(), contracts.RouterID)
	if err != nil {
		return err
	}

	defaults := DefaultServerConfig()
	m.server = NewServer(ServerConfig{
		Addr:              cfg.GetString("http.addr"),
		ReadHeaderTimeout: cfg.GetDuration("http.read_header_timeout", defaults.ReadHeaderTimeout),
		ReadTimeout:       cfg.GetDuration("http.read_timeout", defaults.ReadTimeout),
		WriteTimeout:      cfg.GetDuration("http.write_timeout", defaults.WriteTimeout),
		IdleTimeout:       cfg.GetDuration("http.idle_timeout", defaults.IdleTimeout),
	}, r, optionalLogger(ctx.Container()))

	return m.server.Start(ctx.Ctx())
}

func (m *module) Stop(ctx contracts.AppContext) error {
	if m.server == nil {
		return nil
	}

	timeout := DefaultShutdownTimeout
	if cfg := optionalConfig(ctx.Container()); cfg != nil {
		timeout = cfg.GetDuration("http.shutdown_timeout", timeout)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return m.server.Stop(shutdownCtx)
}

func newErrorHandler(c contracts.Container) (any, error) {
	handlerCfg := errors.NewDefaultErrorHandlerConfig()
	if cfg := optionalConfig(c); cfg != nil {
		handlerCfg.WithShowDetails(cfg.GetBool("http.show_error_details", false))
	}

	var logger contracts.Logger
	if l := optionalLogger(c); l != nil {
		logger = l.WithChannel("http")
	}
	return errors.NewDefaultErrorHandler(handlerCfg, logger), nil
}

func optionalLogger(c contracts.Container) contracts.Logger {
	if !c.Has(contracts.LoggerID) {
		return nil
	}
	l, err := container.Resolve[contracts.Logger](c, contracts.LoggerID)
	if err != nil {
		return nil
	}
	return l
}

func optionalConfig(c contracts.Container) contracts.Config {
	if !c.Has(contracts.ConfigID) {
		return nil
	}
	cfg, err := container.Resolve[contracts.Config](c, contracts.ConfigID)
	if err != nil {
		return nil
	}
	return cfg
}
