package router

import (
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/webcore/framework/pkg/contracts"
	"github.com/webcore/framework/pkg/errors"
)

var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// Router dispatches requests to controller actions resolved from the
// container. Pattern matching is chi's.
type Router struct {
	mux          chi.Router
	container    contracts.Container
	errorHandler contracts.ErrorHandler
	prefix       string

	mu     *sync.RWMutex
	routes *[]Route
}

var _ http.Handler = (*Router)(nil)

func New(c contracts.Container, errorHandler contracts.ErrorHandler, middleware ...func(http.Handler) http.Handler) *Router {
	if errorHandler == nil {
		errorHandler = errors.NewDefaultErrorHandler(nil, nil)
	}

	mux := chi.NewRouter()
	mux.Use(middleware...)

	r := &Router{
		mux:          mux,
		container:    c,
		errorHandler: errorHandler,
		mu:           &sync.RWMutex{},
		routes:       &[]Route{},
	}

	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		r.errorHandler.Handle(w, req, errors.ErrNotFound.WithDetail("path", req.URL.Path))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		r.errorHandler.Handle(w, req, errors.ErrMethodNotAllowed.
			WithDetail("method", req.Method).
			WithDetail("path", req.URL.Path))
	})

	return r
}

// Handle routes method+pattern to controller.action. The controller is
// resolved from the container on every request.
func (r *Router) Handle(method, pattern, controller, action string) error {
	method = strings.ToUpper(method)
	if !slices.Contains(methods, method) {
		return ErrInvalidMethod.WithDetail("method", method)
	}
	if controller == "" || action == "" {
		return ErrInvalidRoute.
			WithDetail("method", method).
			WithDetail("pattern", pattern)
	}

	route := Route{
		Method:     method,
		Pattern:    r.prefix + pattern,
		Controller: controller,
		Action:     action,
	}

	r.mux.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := route.execute(r.container, w, req); err != nil {
			r.errorHandler.Handle(w, req, err)
		}
	}))

	r.mu.Lock()
	*r.routes = append(*r.routes, route)
	r.mu.Unlock()
	return nil
}

func (r *Router) Get(pattern, controller, action string) error {
	return r.Handle(http.MethodGet, pattern, controller, action)
}

func (r *Router) Post(pattern, controller, action string) error {
	return r.Handle(http.MethodPost, pattern, controller, action)
}

func (r *Router) Put(pattern, controller, action string) error {
	return r.Handle(http.MethodPut, pattern, controller, action)
}

func (r *Router) Patch(pattern, controller, action string) error {
	return r.Handle(http.MethodPatch, pattern, controller, action)
}

func (r *Router) Delete(pattern, controller, action string) error {
	return r.Handle(http.MethodDelete, pattern, controller, action)
}

// Group mounts the routes registered by fn under prefix. Middleware passed
// here only wraps the group.
func (r *Router) Group(prefix string, fn func(*Router) error, middleware ...func(http.Handler) http.Handler) error {
	var fnErr error
	r.mux.Route(prefix, func(mx chi.Router) {
		mx.Use(middleware...)
		sub := &Router{
			mux:          mx,
			container:    r.container,
			errorHandler: r.errorHandler,
			prefix:       r.prefix + prefix,
			mu:           r.mu,
			routes:       r.routes,
		}
		fnErr = fn(sub)
	})
	return fnErr
}

func (r *Router) Use(middleware ...func(http.Handler) http.Handler) {
	r.mux.Use(middleware...)
}

// Routes lists registered routes in registration order.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(*r.routes)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Param returns a named URL parameter of the matched route.
func Param(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
