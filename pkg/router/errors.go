package router

import "github.com/webcore/framework/pkg/errors"

var newRouterCode = errors.WithPrefix("ROUTER")
var newServerCode = errors.WithPrefix("HTTP_SERVER")

var (
	ErrInvalidMethod     = newRouterCode().New("unsupported HTTP method {{.method}}")
	ErrInvalidRoute      = newRouterCode().New("route {{.method}} {{.pattern}} needs a controller and an action")
	ErrActionNotFound    = newRouterCode().New("controller {{.controller}} has no action {{.action}}")
	ErrInvalidAction     = newRouterCode().New("action {{.controller}}.{{.action}} has signature {{.signature}}")
	ErrControllerResolve = newRouterCode().New("failed to resolve controller {{.controller}}")
	ErrHandlerPanic      = newRouterCode().New("handler panicked: {{.panic}}")

	ErrServerAlreadyRunning = newServerCode().New("server is already running")
	ErrServerStart          = newServerCode().New("failed to start server on {{.addr}}")
	ErrServerStop           = newServerCode().New("failed to stop server")
)
