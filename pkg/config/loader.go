package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Loader interface {
	Load() (map[string]any, error)
}

// fileLoader tries its paths in order and decodes the first one that exists.
type fileLoader struct {
	paths  []string
	decode func(path string, data []byte) (map[string]any, error)
}

func (l *fileLoader) Load() (map[string]any, error) {
	for _, path := range l.paths {
		data, err := readFile(path)
		if err != nil {
			if ErrPathNotFound.Is(err) {
				continue
			}
			return nil, err
		}
		values, err := l.decode(path, data)
		if err != nil {
			return nil, err
		}
		if values == nil {
			values = make(map[string]any)
		}
		return values, nil
	}
	return nil, ErrPathNotFound.WithDetail("path", strings.Join(l.paths, ", "))
}

func readFile(path string) ([]byte, error) {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil || info.IsDir() {
		return nil, ErrPathNotFound.WithDetail("path", path)
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, ErrPathNotFound.WithDetail("path", path).WithCause(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile.WithDetail("path", path)
	}
	return data, nil
}

// envKey turns PREFIX_DB__HOST into db.host.
func envKey(key, prefix string) string {
	key = strings.ToLower(strings.TrimPrefix(key, prefix))
	return strings.ReplaceAll(key, "__", ".")
}

func typedValue(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func setNested(m map[string]any, key string, value any) {
	keys := strings.Split(key, ".")
	last := len(keys) - 1

	current := m
	for i, k := range keys {
		if i == last {
			current[k] = value
			return
		}
		next, ok := current[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[k] = next
		}
		current = next
	}
}
