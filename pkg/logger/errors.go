package logger

import "github.com/webcore/framework/pkg/errors"

var newLoggerCode = errors.WithPrefix("LOGGER")

var (
	ErrInvalidLevel  = newLoggerCode().New("unknown log level {{.level}}")
	ErrInvalidFormat = newLoggerCode().New("unknown log format {{.format}}")
)
