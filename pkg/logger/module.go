package logger

import (
	"strings"

	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

type module struct {
	opts []Option
}

// NewModule registers the application logger. Options given here are applied
// after the ones derived from the "logger" config section, so they win.
func NewModule(opts ...Option) contracts.AppModule {
	return &module{opts: opts}
}

func (m *module) Name() string {
	return contracts.LoggerModuleName
}

func (m *module) Register(c contracts.Container) error {
	err := c.Singleton(contracts.LoggerID, func(c contracts.Container) (any, error) {
		opts, err := optionsFromConfig(c)
		if err != nil {
			return nil, err
		}
		return NewLogger(append(opts, m.opts...)...)
	})
	if err != nil {
		return err
	}
	return c.Bind(container.TypeID[contracts.Logger](), contracts.LoggerID)
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}

func optionsFromConfig(c contracts.Container) ([]Option, error) {
	if !c.Has(contracts.ConfigID) {
		return nil, nil
	}
	raw, err := c.Get(contracts.ConfigID)
	if err != nil {
		return nil, err
	}
	cfg, ok := raw.(contracts.Config)
	if !ok {
		return nil, nil
	}

	var opts []Option
	if cfg.Has("logger.level") {
		level, err := ParseLevel(cfg.GetString("logger.level"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLevel(level))
	}

	switch format := strings.ToLower(cfg.GetString("logger.format", "text")); format {
	case "json":
		opts = append(opts, WithJSON())
	case "text":
		opts = append(opts, WithText())
	default:
		return nil, ErrInvalidFormat.WithDetail("format", format)
	}

	if cfg.GetBool("logger.color", false) {
		opts = append(opts, WithColor())
	}
	if cfg.GetBool("logger.source", false) {
		opts = append(opts, WithSource())
	}
	if channel := cfg.GetString("logger.channel"); channel != "" {
		opts = append(opts, WithChannel(channel))
	}
	return opts, nil
}
