package contracts

import (
	"context"
	"time"
)

// Factory builds a value for a binding. The container handed to the factory
// tracks the current resolution chain, so nested Get calls are safe.
type Factory func(c Container) (any, error)

type Container interface {
	Has(id string) bool
	Bind(id string, concrete any) error
	Singleton(id string, factory Factory) error
	Instance(id string, value any) error
	Declare(class any) (string, error)
	Get(id string) (any, error)
}

type AppContext interface {
	Ctx() context.Context
	Container() Container
	AppName() string
	Version() string
	Environment() string
	StartTime() time.Time
	StopTime() time.Time
	IsRunning() bool
	Stop()
}

type AppModule interface {
	Name() string
	Register(container Container) error
	Start(ctx AppContext) error
	Stop(ctx AppContext) error
}

type AppRegistry interface {
	Register(module AppModule) error
	All() []AppModule
	Shutdown(ctx AppContext) error
}

type App interface {
	Register(module AppModule) error
	Run() error
	Stop()
}
