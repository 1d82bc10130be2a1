package errors

import (
	"errors"
	"maps"
)

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As[T error](err error, target *T) bool {
	return errors.As(err, target)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

// CodeOf returns the code of the outermost coded error in err's tree, or ""
// when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Codes lists the codes of every coded error in err's tree, outermost first.
func Codes(err error) []Code {
	var codes []Code
	walk(err, func(e *Error) {
		codes = append(codes, e.Code)
	})
	return codes
}

// DetailsOf merges the details of every coded error in err's tree. When two
// errors carry the same key the outer one wins.
func DetailsOf(err error) map[string]any {
	var layers []map[string]any
	walk(err, func(e *Error) {
		layers = append(layers, e.Details)
	})

	merged := make(map[string]any)
	for i := len(layers) - 1; i >= 0; i-- {
		maps.Copy(merged, layers[i])
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func walk(err error, fn func(*Error)) {
	if err == nil {
		return
	}
	if e, ok := err.(*Error); ok {
		fn(e)
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			walk(inner, fn)
		}
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), fn)
	}
}
