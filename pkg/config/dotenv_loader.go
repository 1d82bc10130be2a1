package config

import (
	"bytes"
	"strings"

	"github.com/joho/godotenv"
)

// DotenvLoader reads KEY=value files. Keys are lower-cased and a double
// underscore opens a nested section, so DATABASE__HOST becomes database.host.
// Only keys starting with prefix are kept; the prefix is stripped.
type DotenvLoader struct {
	*fileLoader
	prefix string
}

func NewDotenvLoader(prefix string, paths ...string) *DotenvLoader {
	l := &DotenvLoader{prefix: prefix}
	l.fileLoader = &fileLoader{paths: paths, decode: l.decode}
	return l
}

func (l *DotenvLoader) decode(path string, data []byte) (map[string]any, error) {
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, ErrParseDotenv.
			WithDetail("path", path).
			WithDetail("reason", err.Error()).
			WithCause(err)
	}

	config := make(map[string]any, len(env))
	for key, value := range env {
		if !strings.HasPrefix(key, l.prefix) {
			continue
		}
		setNested(config, envKey(key, l.prefix), typedValue(value))
	}
	return config, nil
}
