package logger

import (
	"log/slog"
	"strings"
)

// Syslog severities mapped onto slog levels. Notice sits between info and
// warning; critical, alert and emergency are above error.
const (
	LevelDebug     = slog.LevelDebug
	LevelInfo      = slog.LevelInfo
	LevelNotice    = slog.Level(2)
	LevelWarning   = slog.LevelWarn
	LevelError     = slog.LevelError
	LevelCritical  = slog.Level(12)
	LevelAlert     = slog.Level(16)
	LevelEmergency = slog.Level(20)
)

var levelNames = map[slog.Level]string{
	LevelDebug:     "DEBUG",
	LevelInfo:      "INFO",
	LevelNotice:    "NOTICE",
	LevelWarning:   "WARNING",
	LevelError:     "ERROR",
	LevelCritical:  "CRITICAL",
	LevelAlert:     "ALERT",
	LevelEmergency: "EMERGENCY",
}

func getLevelName(level slog.Leveler) string {
	if name, ok := levelNames[level.Level()]; ok {
		return name
	}
	return level.Level().String()
}

// ParseLevel accepts a syslog level name in any case. "warn" is accepted as
// an alias of warning.
func ParseLevel(name string) (slog.Level, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "WARN" {
		return LevelWarning, nil
	}
	for level, n := range levelNames {
		if n == upper {
			return level, nil
		}
	}
	return LevelInfo, ErrInvalidLevel.WithDetail("level", name)
}
