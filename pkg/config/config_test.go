package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConfig_Get(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"app":      map[string]any{"port": 8080},
		"features": map[string]any{"new_ui": true},
	})

	assert.Equal(t, 8080, cfg.Get("app.port"))
	assert.Equal(t, true, cfg.Get("features.new_ui"))
	assert.Nil(t, cfg.Get("unknown"))
	assert.False(t, cfg.Has("app.port.deeper"))
}

func TestMapConfig_Has(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"app": map[string]any{"name": "myapp"},
		"db":  nil,
	})

	assert.True(t, cfg.Has("app.name"))
	assert.True(t, cfg.Has("db"), "a nil value still counts as present")
	assert.False(t, cfg.Has("missing"))
}

func TestMapConfig_GetString(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"string": "hello",
		"int":    42,
		"bool":   true,
		"float":  3.14,
		"nil":    nil,
	})

	tests := []struct {
		key  string
		want string
	}{
		{"string", "hello"},
		{"int", "42"},
		{"bool", "true"},
		{"float", "3.14"},
		{"nil", ""},
		{"missing", "default"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.GetString(tt.key, "default"), "GetString(%s)", tt.key)
	}
}

func TestMapConfig_GetInt(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"int":    42,
		"float":  3.14,
		"string": "123",
		"bool":   true,
	})

	assert.Equal(t, 42, cfg.GetInt("int"))
	assert.Equal(t, 3, cfg.GetInt("float"))
	assert.Equal(t, 123, cfg.GetInt("string"))
	assert.Equal(t, 1, cfg.GetInt("bool"))
	assert.Equal(t, 99, cfg.GetInt("missing", 99))
}

func TestMapConfig_GetInt64(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"int64":  int64(1000),
		"int":    100,
		"float":  99.9,
		"string": "500",
	})

	assert.Equal(t, int64(1000), cfg.GetInt64("int64"))
	assert.Equal(t, int64(100), cfg.GetInt64("int"))
	assert.Equal(t, int64(99), cfg.GetInt64("float"))
	assert.Equal(t, int64(500), cfg.GetInt64("string"))
	assert.Equal(t, int64(42), cfg.GetInt64("missing", 42))
}

func TestMapConfig_GetFloat64(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"float":  3.14,
		"int":    42,
		"int64":  int64(100),
		"string": "2.5",
	})

	assert.Equal(t, 3.14, cfg.GetFloat64("float"))
	assert.Equal(t, 42.0, cfg.GetFloat64("int"))
	assert.Equal(t, 100.0, cfg.GetFloat64("int64"))
	assert.Equal(t, 2.5, cfg.GetFloat64("string"))
	assert.Equal(t, 1.1, cfg.GetFloat64("missing", 1.1))
}

func TestMapConfig_GetBool(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"bool":         true,
		"string_true":  "true",
		"string_yes":   "yes",
		"string_1":     "1",
		"string_false": "false",
		"int":          1,
		"zero":         0,
	})

	tests := []struct {
		key  string
		want bool
	}{
		{"bool", true},
		{"string_true", true},
		{"string_yes", true},
		{"string_1", true},
		{"int", true},
		{"string_false", false},
		{"zero", false},
		{"missing", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.GetBool(tt.key, tt.want), "GetBool(%s)", tt.key)
	}
}

func TestMapConfig_GetStringSlice(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"comma":     "a,b,c",
		"custom":    "x|y|z",
		"array":     []string{"p", "q", "r"},
		"mixed":     []any{1, "two", 3.0},
		"single":    "single",
		"not_found": nil,
	})

	assert.Equal(t, []string{"a", "b", "c"}, cfg.GetStringSlice("comma"))
	assert.Equal(t, []string{"x", "y", "z"}, cfg.GetStringSlice("custom", "|"))
	assert.Equal(t, []string{"p", "q", "r"}, cfg.GetStringSlice("array"))
	assert.Equal(t, []string{"1", "two", "3"}, cfg.GetStringSlice("mixed"))
	assert.Equal(t, []string{"single"}, cfg.GetStringSlice("single"))
	assert.Nil(t, cfg.GetStringSlice("not_found"))
}

func TestMapConfig_GetSub(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"app": map[string]any{
			"name": "myapp",
			"db":   map[string]any{"host": "localhost"},
		},
		"not_map": "value",
	})

	sub, ok := cfg.GetSub("app")
	require.True(t, ok)
	assert.Equal(t, "myapp", sub.Get("name"))

	db, ok := sub.GetSub("db")
	require.True(t, ok)
	assert.Equal(t, "localhost", db.Get("host"))

	_, ok = cfg.GetSub("not_map")
	assert.False(t, ok)
	_, ok = cfg.GetSub("missing")
	assert.False(t, ok)
}

func TestMapConfig_All(t *testing.T) {
	original := map[string]any{"key": "value"}
	copied := NewMapConfig(original).All()
	assert.Equal(t, original, copied)

	copied["key"] = "modified"
	assert.Equal(t, "value", original["key"], "All must return a copy")
}

func TestMapConfig_Require(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"db": map[string]any{"host": "localhost"},
	})

	v, err := cfg.Require("db.host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", v)

	_, err = cfg.Require("db.port")
	assert.ErrorIs(t, err, ErrOptionNotFound)
	assert.Contains(t, err.Error(), "db.port")
}

func TestMapConfig_GetDuration(t *testing.T) {
	cfg := NewMapConfig(map[string]any{
		"string":  "1m30s",
		"seconds": 5,
		"float":   1.5,
		"numeric": "10",
		"bad":     "soon",
	})

	tests := []struct {
		key  string
		want time.Duration
	}{
		{"string", 90 * time.Second},
		{"seconds", 5 * time.Second},
		{"float", 1500 * time.Millisecond},
		{"numeric", 10 * time.Second},
		{"bad", time.Minute},
		{"missing", time.Minute},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.GetDuration(tt.key, time.Minute), "GetDuration(%q)", tt.key)
	}
}

func TestNewMapConfig_Nil(t *testing.T) {
	cfg := NewMapConfig(nil)
	assert.False(t, cfg.Has("anything"))
	assert.NotNil(t, cfg.All())
}
