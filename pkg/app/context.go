package app

import (
	"context"
	"sync"
	"time"

	"github.com/webcore/framework/pkg/contracts"
)

// AppInfo identifies the running application in logs and in AppContext.
type AppInfo struct {
	AppName     string
	Version     string
	Environment string
}

// appContext lives for one Run. Everything but the stop state is fixed at
// creation.
type appContext struct {
	info      AppInfo
	ctx       context.Context
	cancel    context.CancelCauseFunc
	container contracts.Container
	startTime time.Time

	mu       sync.RWMutex
	stopTime time.Time
}

var _ contracts.AppContext = (*appContext)(nil)

func newAppContext(info AppInfo, c contracts.Container) *appContext {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &appContext{
		info:      info,
		ctx:       ctx,
		cancel:    cancel,
		container: c,
		startTime: time.Now(),
	}
}

func (c *appContext) Ctx() context.Context            { return c.ctx }
func (c *appContext) Container() contracts.Container { return c.container }
func (c *appContext) AppName() string                 { return c.info.AppName }
func (c *appContext) Version() string                 { return c.info.Version }
func (c *appContext) Environment() string             { return c.info.Environment }
func (c *appContext) StartTime() time.Time            { return c.startTime }

func (c *appContext) StopTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stopTime
}

func (c *appContext) IsRunning() bool {
	return c.StopTime().IsZero()
}

func (c *appContext) Stop() {
	c.stopWith(ErrStopRequested)
}

// stopWith cancels the context with cause. Only the first call counts.
func (c *appContext) stopWith(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopTime.IsZero() {
		return
	}
	c.stopTime = time.Now()
	c.cancel(cause)
}

// stopReason is the cause passed to the first stop, nil while running.
func (c *appContext) stopReason() error {
	if c.ctx.Err() == nil {
		return nil
	}
	return context.Cause(c.ctx)
}

// uptime is measured up to the stop, or up to now while running.
func (c *appContext) uptime() time.Duration {
	end := c.StopTime()
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(c.startTime)
}
