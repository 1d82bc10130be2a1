package config

import (
	"os"
	"strings"
)

type EnvLoader struct {
	prefix string
}

func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix}
}

func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, l.prefix) {
			continue
		}
		setNested(config, envKey(key, l.prefix), typedValue(value))
	}

	return config, nil
}
