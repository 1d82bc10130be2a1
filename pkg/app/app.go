package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/webcore/framework/pkg/container"
	"github.com/webcore/framework/pkg/contracts"
)

type app struct {
	container       contracts.Container
	registry        contracts.AppRegistry
	info            AppInfo
	appCtx          *appContext
	appCtxMu        sync.RWMutex
	isRunning       int32
	stopRequested   int32
	shutdownTimeout time.Duration
}

func WithGracefulTimeout(timeout time.Duration) func(*app) {
	return func(a *app) {
		a.shutdownTimeout = timeout
	}
}

func (a *app) Register(module contracts.AppModule) error {
	return a.registry.Register(module)
}

func (a *app) getAppCtx() *appContext {
	a.appCtxMu.RLock()
	defer a.appCtxMu.RUnlock()
	return a.appCtx
}

func (a *app) setAppCtx(ctx *appContext) {
	a.appCtxMu.Lock()
	defer a.appCtxMu.Unlock()
	a.appCtx = ctx
}

// Stop asks a running application to shut down. Calling it before Run makes
// Run return right after the modules have started.
func (a *app) Stop() {
	atomic.StoreInt32(&a.stopRequested, 1)
	if ctx := a.getAppCtx(); ctx != nil {
		ctx.Stop()
	}
}

// Run registers every module, starts them in order and blocks until the
// application is stopped by Stop or by SIGINT/SIGTERM. Modules are then
// stopped in reverse order within the graceful timeout.
func (a *app) Run() error {
	if !atomic.CompareAndSwapInt32(&a.isRunning, 0, 1) {
		return ErrAppRun.WithDetail("reason", "application is already running")
	}

	ctx := newAppContext(a.info, a.container)
	a.setAppCtx(ctx)

	if err := a.registerCore(ctx); err != nil {
		err = ErrCoreServices.WithCause(err)
		ctx.stopWith(err)
		return err
	}

	for _, module := range a.registry.All() {
		if err := module.Register(a.container); err != nil {
			err = ErrModuleRegister.
				WithDetail("module", module.Name()).
				WithCause(err)
			ctx.stopWith(err)
			return err
		}
	}

	started := 0
	for _, module := range a.registry.All() {
		if err := module.Start(ctx); err != nil {
			err = ErrModuleStart.
				WithDetail("module", module.Name()).
				WithCause(err)
			ctx.stopWith(err)
			a.shutdownStarted(ctx, started)
			return err
		}
		started++
	}

	log := a.logger()
	if log != nil {
		log.Info("application started",
			"app", a.info.AppName,
			"version", a.info.Version,
			"environment", a.info.Environment,
			"modules", started,
		)
	}

	go setupSignalHandler(ctx)

	if atomic.LoadInt32(&a.stopRequested) == 1 {
		ctx.Stop()
	}
	<-ctx.Ctx().Done()
	if log != nil {
		log.Info("application stopping", "reason", ctx.stopReason().Error())
	}

	err := a.shutdown(ctx)
	if log != nil {
		if err != nil {
			log.Error("application stopped with errors", "error", err)
		} else {
			log.Info("application stopped", "uptime", ctx.uptime().String())
		}
	}
	return err
}

// registerCore exposes the container and the app context both under their
// well-known ids and under their interface type ids, so constructors can
// declare them as parameters.
func (a *app) registerCore(ctx *appContext) error {
	core := []struct {
		id    string
		value any
	}{
		{contracts.ContainerID, a.container},
		{container.TypeID[contracts.Container](), a.container},
		{contracts.AppContextID, ctx},
		{container.TypeID[contracts.AppContext](), ctx},
	}
	for _, item := range core {
		if a.container.Has(item.id) {
			continue
		}
		if err := a.container.Instance(item.id, item.value); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) shutdown(ctx contracts.AppContext) error {
	if a.shutdownTimeout <= 0 {
		return a.registry.Shutdown(ctx)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.registry.Shutdown(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-shutdownCtx.Done():
		return ErrAppStop.WithDetail("reason", "graceful shutdown timed out after "+a.shutdownTimeout.String())
	}
}

func (a *app) logger() contracts.Logger {
	if !a.container.Has(contracts.LoggerID) {
		return nil
	}
	l, err := container.Resolve[contracts.Logger](a.container, contracts.LoggerID)
	if err != nil {
		return nil
	}
	return l.WithChannel("app")
}

func (a *app) shutdownStarted(appCtx contracts.AppContext, startedModulesCount int) {
	modules := a.registry.All()
	for i := startedModulesCount - 1; i >= 0; i-- {
		_ = modules[i].Stop(appCtx)
	}
}

func setupSignalHandler(ctx *appContext) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		ctx.stopWith(ErrSignalReceived.WithDetail("signal", sig.String()))
	case <-ctx.Ctx().Done():
		return
	}
}
