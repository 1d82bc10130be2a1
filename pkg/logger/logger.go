package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/webcore/framework/pkg/contracts"
)

const channelKey = "channel"

var oddArgsWarning sync.Once

type sLogger struct {
	*slog.Logger
	channel string
}

var _ contracts.Logger = (*sLogger)(nil)

func NewLogger(opts ...Option) (contracts.Logger, error) {
	cfg := &config{
		level:   LevelInfo,
		json:    false,
		writer:  os.Stdout,
		channel: "app",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.replaceAttr == nil {
		WithDefaultReplaceAttr()(cfg)
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.writer, &slog.HandlerOptions{
			Level:       cfg.level,
			AddSource:   cfg.addSource,
			ReplaceAttr: cfg.replaceAttr,
		})
	} else {
		isColored := cfg.wantColor && isTerminal(cfg.writer)
		handler = newTextHandler(cfg.writer, isColored, cfg.replaceAttr, cfg.level)
	}

	return &sLogger{
		Logger:  slog.New(handler),
		channel: cfg.channel,
	}, nil
}

func (l *sLogger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args)
}

func (l *sLogger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args)
}

func (l *sLogger) Notice(msg string, args ...any) {
	l.log(LevelNotice, msg, args)
}

func (l *sLogger) Warning(msg string, args ...any) {
	l.log(LevelWarning, msg, args)
}

func (l *sLogger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args)
}

func (l *sLogger) Critical(msg string, args ...any) {
	l.log(LevelCritical, msg, args)
}

func (l *sLogger) Alert(msg string, args ...any) {
	l.log(LevelAlert, msg, args)
}

func (l *sLogger) Emergency(msg string, args ...any) {
	l.log(LevelEmergency, msg, args)
}

// Log writes at a level given by name. An unknown name is logged at error
// level with the offending name attached.
func (l *sLogger) Log(level string, msg string, args ...any) {
	lvl, err := ParseLevel(level)
	if err != nil {
		args = append(args, "invalid_level", level)
		lvl = LevelError
	}
	l.log(lvl, msg, args)
}

func (l *sLogger) With(args ...any) contracts.Logger {
	return &sLogger{
		Logger:  l.Logger.With(args...),
		channel: l.channel,
	}
}

func (l *sLogger) WithChannel(channel string) contracts.Logger {
	return &sLogger{
		Logger:  l.Logger,
		channel: channel,
	}
}

func (l *sLogger) Channel() string {
	return l.channel
}

func (l *sLogger) log(level slog.Level, msg string, args []any) {
	attrs := append([]slog.Attr{slog.String(channelKey, l.channel)}, convertArgs(args)...)
	l.LogAttrs(context.Background(), level, msg, attrs...)
}

func convertArgs(args []any) []slog.Attr {
	if len(args)%2 != 0 {
		oddArgsWarning.Do(func() {
			slog.Warn("logger called with odd number of args", slog.Any("args", args))
		})
	}

	var attrs []slog.Attr
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			attrs = append(attrs, slog.Any("MISSING_KEY", args[i]))
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("NON_STRING_KEY_%T", args[i])
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}
