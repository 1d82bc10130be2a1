package contracts

import "time"

type Config interface {
	Has(key string) bool

	Get(key string) any

	// Require returns the value under key or an error naming the missing option.
	Require(key string) (any, error)

	GetString(key string, defaultVal ...string) string

	GetInt(key string, defaultVal ...int) int

	GetInt64(key string, defaultVal ...int64) int64

	GetFloat64(key string, defaultVal ...float64) float64

	GetBool(key string, defaultVal ...bool) bool

	GetDuration(key string, defaultVal ...time.Duration) time.Duration

	GetStringSlice(key string, separator ...string) []string

	GetSub(key string) (Config, bool)

	All() map[string]any
}
