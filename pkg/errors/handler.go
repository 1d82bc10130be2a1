package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/webcore/framework/pkg/contracts"
)

type DefaultErrorHandlerConfig struct {
	statusCodeMap  map[string]int
	userMessageMap map[string]string
	showDetails    bool
}

var _ contracts.ErrorHandlerConfig = (*DefaultErrorHandlerConfig)(nil)

func NewDefaultErrorHandlerConfig() *DefaultErrorHandlerConfig {
	return &DefaultErrorHandlerConfig{
		statusCodeMap: map[string]int{
			string(ErrValidation.Code):       http.StatusBadRequest,
			string(ErrNotFound.Code):         http.StatusNotFound,
			string(ErrMethodNotAllowed.Code): http.StatusMethodNotAllowed,
			string(ErrTimeout.Code):          http.StatusGatewayTimeout,
			string(ErrUnavailable.Code):      http.StatusServiceUnavailable,
			string(ErrInternal.Code):         http.StatusInternalServerError,
		},
		userMessageMap: map[string]string{
			string(ErrValidation.Code):       "Invalid input data",
			string(ErrNotFound.Code):         "Resource not found",
			string(ErrMethodNotAllowed.Code): "Method not allowed",
			string(ErrTimeout.Code):          "Request timeout",
			string(ErrUnavailable.Code):      "Service temporarily unavailable",
			string(ErrInternal.Code):         "Internal server error",
		},
	}
}

func (c *DefaultErrorHandlerConfig) StatusCodeMap() map[string]int {
	return c.statusCodeMap
}

func (c *DefaultErrorHandlerConfig) UserMessageMap() map[string]string {
	return c.userMessageMap
}

func (c *DefaultErrorHandlerConfig) ShowDetails() bool {
	return c.showDetails
}

func (c *DefaultErrorHandlerConfig) WithStatusCode(code Code, httpStatus int) *DefaultErrorHandlerConfig {
	c.statusCodeMap[string(code)] = httpStatus
	return c
}

func (c *DefaultErrorHandlerConfig) WithUserMessage(code Code, message string) *DefaultErrorHandlerConfig {
	c.userMessageMap[string(code)] = message
	return c
}

func (c *DefaultErrorHandlerConfig) WithShowDetails(show bool) *DefaultErrorHandlerConfig {
	c.showDetails = show
	return c
}

type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id"`
}

// DefaultErrorHandler renders errors as JSON. The status is looked up by the
// code of the outermost coded error; uncoded errors and unmapped codes are
// reported as internal errors.
type DefaultErrorHandler struct {
	config contracts.ErrorHandlerConfig
	logger contracts.Logger
}

var _ contracts.ErrorHandler = (*DefaultErrorHandler)(nil)

func NewDefaultErrorHandler(config contracts.ErrorHandlerConfig, logger contracts.Logger) *DefaultErrorHandler {
	if config == nil {
		config = NewDefaultErrorHandlerConfig()
	}
	return &DefaultErrorHandler{
		config: config,
		logger: logger,
	}
}

func (h *DefaultErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	errorType, statusCode := h.determineErrorType(err)

	requestID := contracts.RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = uuid.NewString()
	}

	h.logError(r, err, errorType, statusCode, requestID)

	response := ErrorResponse{
		Code:      errorType,
		Message:   h.getUserMessage(errorType),
		Details:   h.extractDetails(err),
		RequestID: requestID,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Request-Id", requestID)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

func (h *DefaultErrorHandler) determineErrorType(err error) (string, int) {
	if code := CodeOf(err); code != "" {
		if statusCode, ok := h.config.StatusCodeMap()[string(code)]; ok {
			return string(code), statusCode
		}
	}
	return string(ErrInternal.Code), http.StatusInternalServerError
}

func (h *DefaultErrorHandler) getUserMessage(errorType string) string {
	if message, exists := h.config.UserMessageMap()[errorType]; exists {
		return message
	}
	return "An error occurred"
}

// extractDetails exposes the details of the whole error chain, so the id
// behind a wrapped container error is visible too.
func (h *DefaultErrorHandler) extractDetails(err error) map[string]any {
	if !h.config.ShowDetails() {
		return nil
	}
	return DetailsOf(err)
}

func (h *DefaultErrorHandler) logError(r *http.Request, err error, errorType string, statusCode int, requestID string) {
	if h.logger == nil {
		return
	}

	logArgs := []any{
		"error", err.Error(),
		"error_type", errorType,
		"error_codes", Codes(err),
		"status_code", statusCode,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestID,
	}

	switch {
	case statusCode >= 500:
		var e *Error
		if errors.As(err, &e) {
			logArgs = append(logArgs, "stack_trace", e.Stack)
		}
		h.logger.Error("Server error occurred", logArgs...)
	case statusCode >= 400:
		h.logger.Warning("Client error occurred", logArgs...)
	default:
		h.logger.Info("Request processed with error", logArgs...)
	}
}
