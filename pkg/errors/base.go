package errors

var newCoreCode = WithPrefix("CORE")

// Base error classes. The HTTP error handler maps each one to a status code;
// anything else is reported as ErrInternal.
var (
	ErrValidation       = newCoreCode().New("validation failed")
	ErrNotFound         = newCoreCode().New("resource not found")
	ErrMethodNotAllowed = newCoreCode().New("method not allowed")
	ErrInternal         = newCoreCode().New("internal error")
	ErrTimeout          = newCoreCode().New("operation timeout")
	ErrUnavailable      = newCoreCode().New("service unavailable")
)
