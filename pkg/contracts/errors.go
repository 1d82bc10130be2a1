package contracts

import (
	"context"
	"net/http"
)

type ErrorHandler interface {
	Handle(w http.ResponseWriter, r *http.Request, err error)
}

type ErrorHandlerConfig interface {
	StatusCodeMap() map[string]int
	UserMessageMap() map[string]string
	ShowDetails() bool
}

type requestIDKey struct{}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
