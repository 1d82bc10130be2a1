package container

import (
	"fmt"
	"reflect"

	"github.com/webcore/framework/pkg/contracts"
)

// TypeID returns the identifier under which T is declared and autowired.
func TypeID[T any]() string {
	return typeName(reflect.TypeOf((*T)(nil)).Elem())
}

// IDOf returns the identifier of v's dynamic type. A typed nil pointer to an
// interface names the interface itself.
func IDOf(v any) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}
	return typeName(t)
}

// Resolve gets id from c and asserts the result to T.
func Resolve[T any](c contracts.Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch.
			WithDetail("id", id).
			WithDetail("got", fmt.Sprintf("%T", v)).
			WithDetail("want", TypeID[T]())
	}
	return typed, nil
}

func MustResolve[T any](c contracts.Container, id string) T {
	v, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return v
}

// Make resolves T by its own type identifier.
func Make[T any](c contracts.Container) (T, error) {
	return Resolve[T](c, TypeID[T]())
}
