package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/usestring/jsonclass/internal/cache"
	"github.com/usestring/jsonclass/internal/config"
	"github.com/usestring/jsonclass/internal/query"
	"github.com/usestring/jsonclass/pkg/jsonclass"
	"github.com/usestring/jsonclass/pkg/jsonvalue"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Cache  *cache.ResultCache
	Query  *query.Engine
}

// Sample decodes the json argument of a tool call and, when expression is
// set, narrows it to the first value the jq expression selects.
func (d *Deps) Sample(ctx context.Context, text, expression string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput("json is required")
	}
	if limit := d.Config.MaxSampleBytes; limit > 0 && len(text) > limit {
		return nil, ErrInvalidInput(fmt.Sprintf("json is %d bytes, limit is %d", len(text), limit))
	}

	value, err := jsonvalue.DecodeWithDepth([]byte(text), d.Config.MaxDepth)
	if err != nil {
		if errors.Is(err, jsonvalue.ErrTooDeep) {
			return nil, WrapGenerateError(fmt.Errorf("%w: %w", jsonclass.ErrDepthLimit, err))
		}
		return nil, WrapGenerateError(fmt.Errorf("%w: %w", jsonclass.ErrInvalidSample, err))
	}
	if expression == "" {
		return value, nil
	}

	if err := d.Query.ValidateExpression(expression); err != nil {
		return nil, ErrInvalidInput(err.Error())
	}
	selected, err := d.Query.Select(ctx, value, expression)
	if err != nil {
		if errors.Is(err, query.ErrNoResult) {
			return nil, WrapGenerateError(err)
		}
		return nil, &CodedError{Code: ErrCodeInvalidInput, Message: "query failed", Cause: err}
	}
	return selected, nil
}
