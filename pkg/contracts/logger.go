package contracts

// Logger follows the eight syslog (RFC 5424) severities. Arguments are alternating
// key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Notice(msg string, args ...any)
	Warning(msg string, args ...any)
	Error(msg string, args ...any)
	Critical(msg string, args ...any)
	Alert(msg string, args ...any)
	Emergency(msg string, args ...any)
	Log(level string, msg string, args ...any)
	With(args ...any) Logger
	WithChannel(channel string) Logger
	Channel() string
}
