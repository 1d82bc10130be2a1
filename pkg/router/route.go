package router

import (
	"net/http"
	"reflect"

	"github.com/webcore/framework/pkg/contracts"
)

// Route binds a method and a chi pattern to an action of a controller that
// lives in the container.
type Route struct {
	Method     string
	Pattern    string
	Controller string
	Action     string
}

type (
	action      = func(http.ResponseWriter, *http.Request)
	errorAction = func(http.ResponseWriter, *http.Request) error
)

// execute resolves the controller and calls the action on it. Controllers
// are resolved per request, so transient bindings get a fresh instance.
func (rt Route) execute(c contracts.Container, w http.ResponseWriter, r *http.Request) error {
	controller, err := c.Get(rt.Controller)
	if err != nil {
		return ErrControllerResolve.
			WithDetail("controller", rt.Controller).
			WithCause(err)
	}

	method := reflect.ValueOf(controller).MethodByName(rt.Action)
	if !method.IsValid() {
		return ErrActionNotFound.
			WithDetail("controller", rt.Controller).
			WithDetail("action", rt.Action)
	}

	switch fn := method.Interface().(type) {
	case action:
		fn(w, r)
		return nil
	case errorAction:
		return fn(w, r)
	default:
		return ErrInvalidAction.
			WithDetail("controller", rt.Controller).
			WithDetail("action", rt.Action).
			WithDetail("signature", method.Type().String())
	}
}
