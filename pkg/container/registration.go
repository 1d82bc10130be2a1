package container

import (
	"reflect"
	"strings"

	"github.com/webcore/framework/pkg/contracts"
)

// registration describes one binding. Only the singleton cell changes after
// construction; it is guarded by the container's buildMu.
type registration struct {
	id      string
	kind    Kind
	factory contracts.Factory
	value   any
	target  string

	cached any
	built  bool
	owner  *resolution
	ready  chan struct{}
}

func newRegistration(id string, kind Kind, factory contracts.Factory, value any) (*registration, error) {
	r := &registration{id: id, kind: kind, factory: factory}

	switch kind {
	case Transient, Singleton:
		if factory == nil {
			return nil, invalidRegistration(id, kind, "factory")
		}
	case Instance:
		if isNil(value) {
			return nil, invalidRegistration(id, kind, "value")
		}
		r.value = value
	case Alias:
		target, _ := value.(string)
		if target == "" {
			return nil, invalidRegistration(id, kind, "alias target")
		}
		r.target = target
	default:
		return nil, ErrUnknownKind.
			WithDetail("id", id).
			WithDetail("kind", kind.String())
	}

	return r, nil
}

func invalidRegistration(id string, kind Kind, missing string) error {
	return ErrInvalidRegistration.
		WithDetail("id", id).
		WithDetail("kind", kind.String()).
		WithDetail("missing", missing)
}

func (r *registration) produce(scope *resolver) (any, error) {
	switch r.kind {
	case Transient:
		v, err := r.factory(scope)
		if err != nil {
			return nil, err
		}
		return r.valid(v)

	case Singleton:
		return r.singleton(scope)

	case Instance:
		return r.valid(r.value)

	default:
		return nil, ErrUnknownKind.
			WithDetail("id", r.id).
			WithDetail("kind", r.kind.String())
	}
}

// singleton runs the factory at most once at a time and outside any lock.
// Concurrent callers wait for the builder; a caller whose wait would close
// a loop of builders gets ErrCircularDependency instead of blocking.
func (r *registration) singleton(scope *resolver) (v any, err error) {
	mu := &scope.container.buildMu
	mu.Lock()
	for !r.built && r.owner != nil {
		if scope.owner.blocks(r) {
			mu.Unlock()
			return nil, ErrCircularDependency.
				WithDetail("chain", strings.Join(scope.chain, " -> "))
		}
		ready := r.ready
		scope.owner.waiting = r
		mu.Unlock()
		<-ready
		mu.Lock()
		scope.owner.waiting = nil
	}
	if r.built {
		v = r.cached
		mu.Unlock()
		return v, nil
	}
	r.owner, r.ready = scope.owner, make(chan struct{})
	mu.Unlock()

	built := false
	defer func() {
		mu.Lock()
		if built {
			r.cached, r.built = v, true
		}
		close(r.ready)
		r.owner, r.ready = nil, nil
		mu.Unlock()
	}()

	if v, err = r.factory(scope); err != nil {
		return nil, err
	}
	if v, err = r.valid(v); err != nil {
		return nil, err
	}
	built = true
	return v, nil
}

func (r *registration) aliasTarget() (string, error) {
	if r.kind != Alias {
		return "", ErrNotAnAlias.
			WithDetail("id", r.id).
			WithDetail("kind", r.kind.String())
	}
	return r.target, nil
}

func (r *registration) valid(v any) (any, error) {
	if isNil(v) {
		return nil, ErrNullProducedInstance.
			WithDetail("id", r.id).
			WithDetail("kind", r.kind.String())
	}
	return v, nil
}

// isNil reports whether v is nil or a typed nil hidden in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
