package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webcore/framework/pkg/contracts"
)

type recordedLog struct {
	level string
	msg   string
	args  []any
}

func (r recordedLog) attr(key string) any {
	for i := 0; i+1 < len(r.args); i += 2 {
		if r.args[i] == key {
			return r.args[i+1]
		}
	}
	return nil
}

type recordingLogger struct {
	records []recordedLog
}

func (l *recordingLogger) record(level, msg string, args []any) {
	l.records = append(l.records, recordedLog{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(msg string, args ...any)     { l.record("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)      { l.record("info", msg, args) }
func (l *recordingLogger) Notice(msg string, args ...any)    { l.record("notice", msg, args) }
func (l *recordingLogger) Warning(msg string, args ...any)   { l.record("warning", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any)     { l.record("error", msg, args) }
func (l *recordingLogger) Critical(msg string, args ...any)  { l.record("critical", msg, args) }
func (l *recordingLogger) Alert(msg string, args ...any)     { l.record("alert", msg, args) }
func (l *recordingLogger) Emergency(msg string, args ...any) { l.record("emergency", msg, args) }
func (l *recordingLogger) Log(level, msg string, args ...any) {
	l.record(level, msg, args)
}
func (l *recordingLogger) With(...any) contracts.Logger         { return l }
func (l *recordingLogger) WithChannel(string) contracts.Logger { return l }
func (l *recordingLogger) Channel() string                      { return "test" }

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp), "body %q", rec.Body.String())
	return resp
}

func TestDefaultErrorHandler_StatusMapping(t *testing.T) {
	custom := WithPrefix("TEST")().New("custom failure")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   Code
		wantLevel  string
	}{
		{"not found", ErrNotFound.WithDetail("id", 1), http.StatusNotFound, ErrNotFound.Code, "warning"},
		{"method not allowed", ErrMethodNotAllowed, http.StatusMethodNotAllowed, ErrMethodNotAllowed.Code, "warning"},
		{"validation", ErrValidation, http.StatusBadRequest, ErrValidation.Code, "warning"},
		{"timeout", ErrTimeout, http.StatusGatewayTimeout, ErrTimeout.Code, "error"},
		{"unmapped code", custom, http.StatusInternalServerError, ErrInternal.Code, "error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, ErrInternal.Code, "error"},
		{"outermost code wins", ErrValidation.WithCause(ErrNotFound), http.StatusBadRequest, ErrValidation.Code, "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			rec := httptest.NewRecorder()

			NewDefaultErrorHandler(nil, logger).Handle(rec, httptest.NewRequest(http.MethodGet, "/users/1", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			resp := decodeResponse(t, rec)
			assert.Equal(t, string(tt.wantCode), resp.Code)
			assert.NotEmpty(t, resp.RequestID)
			assert.Equal(t, resp.RequestID, rec.Header().Get("X-Request-Id"))

			require.Len(t, logger.records, 1)
			assert.Equal(t, tt.wantLevel, logger.records[0].level)
			assert.Equal(t, "/users/1", logger.records[0].attr("path"))
		})
	}
}

func TestDefaultErrorHandler_UsesRequestIDFromContext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contracts.ContextWithRequestID(req.Context(), "req-42"))

	NewDefaultErrorHandler(nil, nil).Handle(rec, req, ErrNotFound)

	assert.Equal(t, "req-42", decodeResponse(t, rec).RequestID)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
}

func TestDefaultErrorHandler_LogsChainCodes(t *testing.T) {
	logger := &recordingLogger{}
	inner := WithPrefix("INNER")().New("inner")

	NewDefaultErrorHandler(nil, logger).Handle(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil),
		ErrUnavailable.WithCause(inner))

	require.Len(t, logger.records, 1)
	assert.Equal(t, []Code{ErrUnavailable.Code, inner.Code}, logger.records[0].attr("error_codes"))
	assert.NotEmpty(t, logger.records[0].attr("stack_trace"))
}

func TestDefaultErrorHandler_Details(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	inner := WithPrefix("INNER")().New("no binding {{.id}}").WithDetail("id", "UserRepository")
	err := ErrValidation.WithDetail("field", "email").WithCause(inner)

	hidden := httptest.NewRecorder()
	NewDefaultErrorHandler(nil, nil).Handle(hidden, req, err)
	assert.Nil(t, decodeResponse(t, hidden).Details)

	shown := httptest.NewRecorder()
	cfg := NewDefaultErrorHandlerConfig().WithShowDetails(true)
	NewDefaultErrorHandler(cfg, nil).Handle(shown, req, err)
	assert.Equal(t, map[string]any{"field": "email", "id": "UserRepository"}, decodeResponse(t, shown).Details)
}

func TestDefaultErrorHandler_CustomMapping(t *testing.T) {
	code := WithPrefix("BILLING")()
	cfg := NewDefaultErrorHandlerConfig().
		WithStatusCode(code, http.StatusPaymentRequired).
		WithUserMessage(code, "Payment required")

	rec := httptest.NewRecorder()
	NewDefaultErrorHandler(cfg, nil).Handle(rec, httptest.NewRequest(http.MethodPost, "/", nil), code.New("payment required"))

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, "Payment required", decodeResponse(t, rec).Message)
}

func TestDefaultErrorHandler_UnknownMessageFallback(t *testing.T) {
	code := WithPrefix("QUOTA")()
	cfg := NewDefaultErrorHandlerConfig().WithStatusCode(code, http.StatusTooManyRequests)

	rec := httptest.NewRecorder()
	NewDefaultErrorHandler(cfg, nil).Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), code.New("quota"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "An error occurred", decodeResponse(t, rec).Message)
}

func TestDefaultErrorHandler_NilError(t *testing.T) {
	rec := httptest.NewRecorder()
	NewDefaultErrorHandler(nil, nil).Handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Zero(t, rec.Body.Len())
}
