package classgen

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps one of them.
var (
	ErrUnsupportedShape    = errors.New("unsupported shape")
	ErrInternalConsistency = errors.New("internal consistency violation")
	ErrDataParse           = errors.New("data parse violation")
	ErrMissingReference    = errors.New("missing reference")
	ErrNameCollision       = errors.New("name collision")
	ErrDepthLimit          = errors.New("depth limit exceeded")
)

// Error locates a failure in the class model.
type Error struct {
	Kind  error  // one of the Err* kinds
	Class string // class being processed, if any
	Key   string // JSON key being processed, if any
	Msg   string
}

func (e *Error) Error() string {
	loc := e.Class
	if e.Key != "" {
		loc += "." + e.Key
	}
	if loc == "" {
		return fmt.Sprintf("classgen: %v: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("classgen: %v: %s: %s", e.Kind, loc, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, class, key, format string, args ...any) *Error {
	return &Error{Kind: kind, Class: class, Key: key, Msg: fmt.Sprintf(format, args...)}
}
