package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseErrors() []*Error {
	return []*Error{
		ErrValidation, ErrNotFound, ErrMethodNotAllowed,
		ErrInternal, ErrTimeout, ErrUnavailable,
	}
}

func TestBaseErrors_Codes(t *testing.T) {
	seen := map[Code]bool{}
	for _, err := range baseErrors() {
		assert.Regexp(t, `^CORE_\d{4}$`, string(err.Code))
		assert.NotEmpty(t, err.Message, "error %s has an empty message", err.Code)
		assert.False(t, seen[err.Code], "duplicate code %s", err.Code)
		seen[err.Code] = true
	}
}

func TestBaseErrors_Messages(t *testing.T) {
	assert.Equal(t, string(ErrNotFound.Code)+": resource not found", ErrNotFound.Error())
	assert.Equal(t, "internal error", ErrInternal.Message)
}

func TestBaseErrors_MappedByDefaultHandler(t *testing.T) {
	statuses := NewDefaultErrorHandlerConfig().StatusCodeMap()
	messages := NewDefaultErrorHandlerConfig().UserMessageMap()
	for _, err := range baseErrors() {
		assert.Contains(t, statuses, string(err.Code))
		assert.Contains(t, messages, string(err.Code))
	}
}
