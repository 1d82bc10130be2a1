package app

import (
	"time"

	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

func NewRegistry() contracts.AppRegistry {
	return &registry{
		modules: make([]contracts.AppModule, 0),
	}
}

// New builds an application around c. A nil container or registry is
// replaced with a fresh one.
func New(info AppInfo, c contracts.Container, registry contracts.AppRegistry, opts ...func(*app)) contracts.App {
	if c == nil {
		c = container.New()
	}

	if registry == nil {
		registry = NewRegistry()
	}

	a := &app{
		container:       c,
		registry:        registry,
		info:            info,
		shutdownTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}
