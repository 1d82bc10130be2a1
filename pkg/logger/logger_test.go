package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcore/framework/pkg/contracts"
)

func TestLoggerMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf), WithText(), WithLevel(LevelDebug))
	require.NoError(t, err)

	tests := []struct {
		method func(string, ...any)
		prefix string
	}{
		{logger.Debug, "DEBUG"},
		{logger.Info, "INFO"},
		{logger.Notice, "NOTICE"},
		{logger.Warning, "WARNING"},
		{logger.Error, "ERROR"},
		{logger.Critical, "CRITICAL"},
		{logger.Alert, "ALERT"},
		{logger.Emergency, "EMERGENCY"},
	}

	for _, tt := range tests {
		buf.Reset()
		t.Run(tt.prefix, func(t *testing.T) {
			tt.method("test", "key", "val")
			output := buf.String()
			assert.True(t, strings.HasPrefix(output, tt.prefix+" test"), "got %q", output)
			assert.Contains(t, output, `key="val"`)
		})
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf), WithLevel(LevelWarning))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Notice("hidden")
	logger.Warning("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARNING shown")
}

func TestLogger_LogByName(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf))
	require.NoError(t, err)

	logger.Log("notice", "by name")
	assert.Contains(t, buf.String(), "NOTICE by name")

	buf.Reset()
	logger.Log("verbose", "bad level")
	assert.Contains(t, buf.String(), "ERROR bad level")
	assert.Contains(t, buf.String(), `invalid_level="verbose"`)
}

func TestLogger_Channel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf), WithChannel("http"))
	require.NoError(t, err)
	assert.Equal(t, "http", logger.Channel())

	logger.Info("request")
	assert.Contains(t, buf.String(), `channel="http"`)

	buf.Reset()
	logger.WithChannel("db").Info("query")
	assert.Contains(t, buf.String(), `channel="db"`)
	assert.NotContains(t, buf.String(), `channel="http"`)
	assert.Equal(t, "http", logger.Channel(), "WithChannel must not change the parent logger")
}

func TestLogger_DefaultChannel(t *testing.T) {
	logger, err := NewLogger(WithWriter(&bytes.Buffer{}), WithChannel(""))
	require.NoError(t, err)
	assert.Equal(t, "app", logger.Channel())
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf), WithText())
	require.NoError(t, err)

	l2 := logger.With("service", "auth")
	l2.Info("login")

	assert.Contains(t, buf.String(), `service="auth"`)
	assert.Equal(t, logger.Channel(), l2.Channel())
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf), WithJSON(), WithChannel("audit"))
	require.NoError(t, err)

	logger.Critical("disk full", "free", 0)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record), "output %q", buf.String())
	assert.Equal(t, "CRITICAL", record["level"])
	assert.Equal(t, "audit", record["channel"])
	assert.Equal(t, "disk full", record["msg"])
}

func TestConvertArgs_OddArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))
	defer slog.SetDefault(prev)

	attrs := convertArgs([]any{"key1", "val1", "key2"})

	require.Len(t, attrs, 2)
	assert.Equal(t, "MISSING_KEY", attrs[1].Key)
	assert.Contains(t, buf.String(), "odd number of args")
}

func TestConvertArgs_NonStringKey(t *testing.T) {
	attrs := convertArgs([]any{42, "value"})
	require.Len(t, attrs, 1)
	assert.Regexp(t, `^NON_STRING_KEY_int`, attrs[0].Key)
}

func TestLogger_ImplementsContract(t *testing.T) {
	var _ contracts.Logger = (*sLogger)(nil)
}
