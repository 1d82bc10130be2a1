package app

import (
	"errors"
	"sync"

	"github.com/webcore/framework/pkg/contracts"
)

type registry struct {
	modules []contracts.AppModule
	mu      sync.RWMutex
}

func (r *registry) Register(module contracts.AppModule) error {
	if module == nil {
		return ErrInvalidModule
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.modules {
		if m.Name() == module.Name() {
			return ErrDuplicateModule.WithDetail("module", module.Name())
		}
	}
	r.modules = append(r.modules, module)
	return nil
}

func (r *registry) All() []contracts.AppModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]contracts.AppModule, len(r.modules))
	copy(result, r.modules)
	return result
}

// Shutdown stops every module in reverse registration order and joins the
// failures.
func (r *registry) Shutdown(ctx contracts.AppContext) error {
	var errs []error
	modules := r.All()
	for i := len(modules) - 1; i >= 0; i-- {
		if err := modules[i].Stop(ctx); err != nil {
			wrapped := ErrModuleStop.
				WithDetail("module", modules[i].Name()).
				WithCause(err)
			errs = append(errs, wrapped)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
