package contracts

// Well-known container identifiers of framework services.
const (
	ContainerID    = "webcore.container"
	AppContextID   = "webcore.app.context"
	ConfigID       = "webcore.config"
	LoggerID       = "webcore.logger"
	DatabaseID     = "webcore.database"
	RedisID        = "webcore.redis"
	RouterID       = "webcore.router"
	ErrorHandlerID = "webcore.error_handler"
)

const (
	ConfigModuleName   = "config"
	LoggerModuleName   = "logger"
	DatabaseModuleName = "database"
	RedisModuleName    = "redis"
	RouterModuleName   = "router"
)
