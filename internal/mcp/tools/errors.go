package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/jsonclass/internal/query"
	"github.com/usestring/jsonclass/pkg/jsonclass"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeSchemaMismatch   = "SCHEMA_MISMATCH"
	ErrCodeNoResult         = "NO_RESULT"
	ErrCodeUnsupportedShape = "UNSUPPORTED_SHAPE"
	ErrCodeDataParse        = "DATA_PARSE"
	ErrCodeNameCollision    = "NAME_COLLISION"
	ErrCodeTooDeep          = "TOO_DEEP"
	ErrCodeInternal         = "INTERNAL"
	ErrCodeTimeout          = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// codes maps generation error kinds to response codes, most specific first.
var codes = []struct {
	kind    error
	code    string
	message string
}{
	{jsonclass.ErrInvalidSample, ErrCodeInvalidInput, "json is not a single JSON document"},
	{jsonclass.ErrSchemaMismatch, ErrCodeSchemaMismatch, "json does not validate against schema"},
	{query.ErrNoResult, ErrCodeNoResult, "query selected nothing"},
	{jsonclass.ErrUnsupportedShape, ErrCodeUnsupportedShape, "schema uses an unsupported construct"},
	{jsonclass.ErrMissingReference, ErrCodeUnsupportedShape, "schema has an unresolvable reference"},
	{jsonclass.ErrDataParse, ErrCodeDataParse, "a value fits no numeric type"},
	{jsonclass.ErrNameCollision, ErrCodeNameCollision, "two keys map to the same field name"},
	{jsonclass.ErrDepthLimit, ErrCodeTooDeep, "json nests too deeply"},
	{context.DeadlineExceeded, ErrCodeTimeout, "request timed out"},
}

// WrapGenerateError converts a generation error to a coded error.
func WrapGenerateError(err error) error {
	if err == nil {
		return nil
	}

	coded := &CodedError{Code: ErrCodeInternal, Message: "generation failed", Cause: err}
	for _, c := range codes {
		if errors.Is(err, c.kind) {
			coded.Code = c.code
			coded.Message = c.message
			break
		}
	}

	slog.Warn("generation failed",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
