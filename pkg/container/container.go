package container

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/webcore/framework/pkg/contracts"
)

type container struct {
	mu      sync.RWMutex
	items   map[string]*registration
	classes map[string]*class

	// buildMu guards singleton build ownership across resolutions.
	buildMu sync.Mutex
}

func New() contracts.Container {
	return &container{
		items:   make(map[string]*registration),
		classes: make(map[string]*class),
	}
}

func (c *container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.items[id]
	return exists
}

// Bind registers a transient factory, or an alias when concrete is the name
// of another binding or class.
func (c *container) Bind(id string, concrete any) error {
	switch v := concrete.(type) {
	case contracts.Factory:
		return c.set(id, Transient, v, nil)
	case func(contracts.Container) (any, error):
		return c.set(id, Transient, v, nil)
	case string:
		return c.set(id, Alias, nil, v)
	default:
		return ErrInvalidConcrete.
			WithDetail("id", id).
			WithDetail("concrete", fmt.Sprintf("%T", concrete))
	}
}

func (c *container) Singleton(id string, factory contracts.Factory) error {
	return c.set(id, Singleton, factory, nil)
}

func (c *container) Instance(id string, value any) error {
	if isNil(value) {
		return ErrNullInstance.WithDetail("id", id)
	}
	return c.set(id, Instance, nil, value)
}

func (c *container) set(id string, kind Kind, factory contracts.Factory, value any) error {
	item, err := newRegistration(id, kind, factory, value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; exists {
		return ErrDuplicateRegistration.WithDetail("id", id)
	}
	c.items[id] = item
	return nil
}

// Declare makes a class available for autowiring and returns its identifier.
// class is a constructor (func(deps...) T or func(deps...) (T, error)), a
// struct value, or a typed nil pointer to a struct or interface.
func (c *container) Declare(class any) (string, error) {
	cl, err := parseClass(class)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.classes[cl.id]; exists {
		return "", ErrDuplicateClass.WithDetail("id", cl.id)
	}
	c.classes[cl.id] = cl
	return cl.id, nil
}

func (c *container) Get(id string) (any, error) {
	return c.resolve(id, nil)
}

// resolve builds id within parent's resolution, or starts a new one when
// parent is nil. The scope handed to factories is only chain-aware while
// this call runs.
func (c *container) resolve(id string, parent *resolver) (any, error) {
	var chain []string
	owner := &resolution{}
	if parent != nil {
		chain, owner = parent.chain, parent.owner
	}

	if slices.Contains(chain, id) {
		return nil, ErrCircularDependency.
			WithDetail("chain", strings.Join(append(slices.Clone(chain), id), " -> "))
	}

	scope := &resolver{container: c, chain: append(slices.Clone(chain), id), owner: owner}
	scope.active.Store(true)
	defer scope.active.Store(false)

	c.mu.RLock()
	item, registered := c.items[id]
	c.mu.RUnlock()

	if registered {
		if item.kind == Alias {
			target, err := item.aliasTarget()
			if err != nil {
				return nil, err
			}
			return c.resolve(target, scope)
		}
		return item.produce(scope)
	}

	return c.autowire(id, scope)
}

func (c *container) autowire(id string, scope *resolver) (any, error) {
	c.mu.RLock()
	cl, declared := c.classes[id]
	c.mu.RUnlock()

	if !declared {
		return nil, ErrNotFound.WithDetail("id", id)
	}
	if !cl.instantiable() {
		return nil, ErrNotInstantiable.WithDetail("id", id)
	}
	if !cl.ctor.IsValid() {
		return cl.zero(), nil
	}
	if err := cl.checkParams(); err != nil {
		return nil, err
	}

	args := make([]reflect.Value, len(cl.params))
	for i, p := range cl.params {
		dep, err := scope.Get(typeName(p))
		if err != nil {
			return nil, err
		}
		rv := reflect.ValueOf(dep)
		if !rv.Type().AssignableTo(p) {
			return nil, ErrTypeMismatch.
				WithDetail("id", typeName(p)).
				WithDetail("got", rv.Type().String()).
				WithDetail("want", p.String())
		}
		args[i] = rv
	}

	out := cl.ctor.Call(args)
	if cl.returnsError && !out[1].IsNil() {
		return nil, ErrConstructorFailed.
			WithDetail("id", id).
			WithCause(out[1].Interface().(error))
	}

	instance := out[0].Interface()
	if isNil(instance) {
		return nil, ErrNullProducedInstance.
			WithDetail("id", id).
			WithDetail("kind", "class")
	}
	return instance, nil
}

// resolver is the container view handed to factories and constructors. It
// carries the resolution chain so cycles are reported instead of recursing
// forever. A resolver kept after its factory returned behaves like the
// container itself.
type resolver struct {
	*container
	chain  []string
	owner  *resolution
	active atomic.Bool
}

func (r *resolver) Get(id string) (any, error) {
	if !r.active.Load() {
		return r.container.resolve(id, nil)
	}
	return r.container.resolve(id, r)
}

// resolution is one top-level Get and everything it resolves. waiting is
// the singleton it is blocked on, if any.
type resolution struct {
	waiting *registration
}

// blocks reports whether r waiting for item would never return: following
// owners and what they wait for leads back to r. Callers hold buildMu.
func (r *resolution) blocks(item *registration) bool {
	for owner := item.owner; owner != nil; {
		if owner == r {
			return true
		}
		if owner.waiting == nil {
			return false
		}
		owner = owner.waiting.owner
	}
	return false
}
