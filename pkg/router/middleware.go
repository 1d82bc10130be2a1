package router

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/webcore/framework/pkg/contracts"
)

const RequestIDHeader = "X-Request-Id"

// RequestID keeps an incoming X-Request-Id or generates one, and exposes it
// through contracts.RequestIDFromContext.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(contracts.ContextWithRequestID(r.Context(), id)))
	})
}

func Logging(logger contracts.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logArgs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
				"request_id", contracts.RequestIDFromContext(r.Context()),
			}
			if userAgent := r.UserAgent(); userAgent != "" {
				logArgs = append(logArgs, "user_agent", userAgent)
			}
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				logArgs = append(logArgs, "client_ip", strings.TrimSpace(strings.Split(forwarded, ",")[0]))
			}

			switch {
			case status >= 500:
				logger.Error("HTTP request completed with server error", logArgs...)
			case status >= 400:
				logger.Warning("HTTP request completed with client error", logArgs...)
			default:
				logger.Info("HTTP request completed", logArgs...)
			}
		})
	}
}

// Recovery turns a panicking handler into an internal error response.
func Recovery(errorHandler contracts.ErrorHandler, logger contracts.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if logger != nil {
					stack := make([]byte, 4096)
					length := runtime.Stack(stack, false)
					logger.Critical("HTTP handler panic",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", contracts.RequestIDFromContext(r.Context()),
						"stack_trace", string(stack[:length]),
					)
				}
				errorHandler.Handle(w, r, ErrHandlerPanic.WithDetail("panic", fmt.Sprint(rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
