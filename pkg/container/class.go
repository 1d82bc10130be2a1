package container

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// class is an autowiring recipe: either a constructor whose parameters are
// resolved from the container, or a bare type built with no arguments.
type class struct {
	id           string
	typ          reflect.Type
	ctor         reflect.Value
	params       []reflect.Type
	variadic     bool
	returnsError bool
}

func parseClass(v any) (*class, error) {
	if v == nil {
		return nil, ErrInvalidClass.
			WithDetail("class", "<nil>").
			WithDetail("reason", "class is nil")
	}

	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Func {
		return parseConstructor(reflect.ValueOf(v))
	}

	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface:
		t = t.Elem()
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
	case t.Kind() == reflect.Struct:
	default:
		return nil, ErrInvalidClass.
			WithDetail("class", t.String()).
			WithDetail("reason", "expected a constructor, a struct, or a pointer to a struct or interface")
	}

	if t.Name() == "" && (t.Kind() != reflect.Pointer || t.Elem().Name() == "") {
		return nil, ErrInvalidClass.
			WithDetail("class", t.String()).
			WithDetail("reason", "anonymous types cannot be declared")
	}

	return &class{id: typeName(t), typ: t}, nil
}

func parseConstructor(fn reflect.Value) (*class, error) {
	ft := fn.Type()
	if fn.IsNil() {
		return nil, ErrInvalidClass.
			WithDetail("class", ft.String()).
			WithDetail("reason", "constructor is nil")
	}

	switch {
	case ft.NumOut() == 1 && ft.Out(0) != errorType:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return nil, ErrInvalidClass.
			WithDetail("class", ft.String()).
			WithDetail("reason", "constructor must return T or (T, error)")
	}

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}

	return &class{
		id:           typeName(ft.Out(0)),
		typ:          ft.Out(0),
		ctor:         fn,
		params:       params,
		variadic:     ft.IsVariadic(),
		returnsError: ft.NumOut() == 2,
	}, nil
}

// checkParams rejects every parameter that cannot be autowired. It runs
// before any dependency is resolved.
func (cl *class) checkParams() error {
	for i, p := range cl.params {
		reason := ""
		base := p
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}

		switch {
		case cl.variadic && i == len(cl.params)-1:
			reason = "is variadic"
		case p.Kind() == reflect.Interface && p.Name() == "" && p.NumMethod() == 0:
			reason = "doesn't have a type"
		case base.Kind() == reflect.Interface && base.Name() == "":
			reason = "is an anonymous interface type"
		case base.Name() == "" || base.PkgPath() == "":
			reason = "is of builtin type"
		}

		if reason != "" {
			return ErrUnresolvableDependency.
				WithDetail("class", cl.id).
				WithDetail("param", fmt.Sprintf("#%d", i)).
				WithDetail("type", p.String()).
				WithDetail("reason", reason)
		}
	}
	return nil
}

func (cl *class) instantiable() bool {
	return cl.ctor.IsValid() || cl.typ.Kind() != reflect.Interface
}

// zero builds a class declared without a constructor.
func (cl *class) zero() any {
	if cl.typ.Kind() == reflect.Pointer {
		return reflect.New(cl.typ.Elem()).Interface()
	}
	return reflect.New(cl.typ).Elem().Interface()
}

// typeName is the identifier of t: the package path qualified name, with a
// leading '*' per pointer level.
func typeName(t reflect.Type) string {
	switch {
	case t.Kind() == reflect.Pointer:
		return "*" + typeName(t.Elem())
	case t.Name() != "" && t.PkgPath() != "":
		return t.PkgPath() + "." + t.Name()
	default:
		return t.String()
	}
}
