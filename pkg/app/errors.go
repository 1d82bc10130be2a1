package app

import "github.com/webcore/framework/pkg/errors"

var newAppCode = errors.WithPrefix("APP")
var newRegistryCode = errors.WithPrefix("APP_REGISTRY")

var (
	ErrModuleRegister = newAppCode().New("failed to register module {{.module}}")
	ErrModuleStart    = newAppCode().New("failed to start module {{.module}}")
	ErrAppRun         = newAppCode().New("application run failed with reason: {{.reason}}")
	ErrAppStop        = newAppCode().New("application stop failed with reason: {{.reason}}")
	ErrCoreServices   = newAppCode().New("failed to register core services")
	ErrStopRequested  = newAppCode().New("stop requested")
	ErrSignalReceived = newAppCode().New("received signal {{.signal}}")

	ErrModuleStop      = newRegistryCode().New("failed to stop module {{.module}}")
	ErrDuplicateModule = newRegistryCode().New("module {{.module}} is already registered")
	ErrInvalidModule   = newRegistryCode().New("module must not be nil")
)
