package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a catalog load failure.
type ErrorKind int

const (
	// NotFound means the data file does not exist.
	NotFound ErrorKind = iota + 1
	// ParseError means the data file is not valid JSON.
	ParseError
	// ShapeError means the JSON does not have a recognized catalog shape.
	ShapeError
)

// String returns a human-readable name for the ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case ParseError:
		return "parse error"
	case ShapeError:
		return "shape error"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is checks against a *LoadError.
var (
	ErrNotFound = errors.New("catalog data file not found")
	ErrParse    = errors.New("catalog data file is not valid JSON")
	ErrShape    = errors.New("catalog data file has an unrecognized shape")
)

// LoadError describes why a catalog could not be loaded.
type LoadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	msg := e.sentinel().Error()
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *LoadError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *LoadError) sentinel() error {
	switch e.Kind {
	case NotFound:
		return ErrNotFound
	case ParseError:
		return ErrParse
	default:
		return ErrShape
	}
}

func shapeErrorf(format string, args ...any) *LoadError {
	return &LoadError{Kind: ShapeError, Err: fmt.Errorf(format, args...)}
}
