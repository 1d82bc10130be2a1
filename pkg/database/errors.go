package database

import "github.com/webcore/framework/pkg/errors"

var newDatabaseCode = errors.WithPrefix("DATABASE")

var (
	ErrConfigNotFound       = newDatabaseCode().New("database configuration not found: {{.reason}}")
	ErrDriverNotSpecified   = newDatabaseCode().New("driver not specified for connection {{.name}}")
	ErrUnsupportedDriver    = newDatabaseCode().New("unsupported database driver {{.driver}}")
	ErrInvalidDSN           = newDatabaseCode().New("invalid DSN for connection {{.name}}: {{.reason}}")
	ErrFailedToOpenDatabase = newDatabaseCode().New("failed to open {{.driver}} database")
	ErrDatabaseNotConnected = newDatabaseCode().New("database not connected")
	ErrTransactionFailed    = newDatabaseCode().New("transaction failed: {{.reason}}")
	ErrRegisterConnection   = newDatabaseCode().New("failed to register connection {{.name}}: {{.reason}}")
	ErrCloseDatabase        = newDatabaseCode().New("failed to close connection {{.name}}")
)
