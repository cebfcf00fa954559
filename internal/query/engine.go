// Package query selects the part of a sample document that classes are
// generated for, using jq expressions.
package query

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/jsonclass/pkg/jsonvalue"
)

// ErrNoResult is returned when an expression produces no value.
var ErrNoResult = errors.New("query produced no result")

// Engine executes jq expressions against decoded samples.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Select runs expression against value, a jsonvalue.Decode result, and
// returns the first value it produces.
//
// Path expressions such as .data.items[0] select from value itself, so key
// order and number literals are kept. Other expressions are evaluated by jq;
// objects they build have sorted keys and numbers in jq's own rendering.
func (e *Engine) Select(ctx context.Context, value any, expression string) (any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	input := toJQ(value)

	if sel, ok := e.selectPath(ctx, value, input, expression); ok {
		return sel, nil
	}

	v, ok, err := first(ctx, code, input)
	if err != nil {
		return nil, errors.New(formatJQError("query", err))
	}
	if !ok {
		return nil, ErrNoResult
	}
	return fromJQ(v), nil
}

// selectPath evaluates path(expression) and follows the first path into the
// original tree. It reports false whenever that is not possible.
func (e *Engine) selectPath(ctx context.Context, value, input any, expression string) (any, bool) {
	query, err := gojq.Parse("path(" + expression + ")")
	if err != nil {
		return nil, false
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, false
	}
	p, ok, err := first(ctx, code, input)
	if err != nil || !ok {
		return nil, false
	}
	steps, ok := p.([]any)
	if !ok {
		return nil, false
	}
	return follow(value, steps)
}

func first(ctx context.Context, code *gojq.Code, input any) (any, bool, error) {
	iter := code.RunWithContext(ctx, input)
	v, ok := iter.Next()
	if !ok {
		return nil, false, nil
	}
	if err, isErr := v.(error); isErr {
		return nil, false, err
	}
	return v, true, nil
}

// follow walks steps of a jq path through a decoded value.
func follow(value any, steps []any) (any, bool) {
	cur := value
	for _, step := range steps {
		switch s := step.(type) {
		case string:
			obj, ok := cur.(*jsonvalue.Object)
			if !ok {
				return nil, false
			}
			if cur, ok = obj.Get(s); !ok {
				return nil, false
			}
		case int:
			arr, ok := cur.([]any)
			if !ok {
				return nil, false
			}
			if s < 0 {
				s += len(arr)
			}
			if s < 0 || s >= len(arr) {
				return nil, false
			}
			cur = arr[s]
		default:
			// slices and computed indices
			return nil, false
		}
	}
	return cur, true
}

// toJQ converts a decoded value into the types gojq operates on.
func toJQ(v any) any {
	switch val := v.(type) {
	case *jsonvalue.Object:
		m := make(map[string]any, val.Len())
		for _, k := range val.Keys() {
			fv, _ := val.Get(k)
			m[k] = toJQ(fv)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			out[i] = toJQ(el)
		}
		return out
	case jsonvalue.Number:
		s := string(val)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if b, ok := new(big.Int).SetString(s, 10); ok {
			return b
		}
		f, _ := strconv.ParseFloat(s, 64)
		return f
	default:
		return v
	}
}

// fromJQ converts a gojq result back into the jsonvalue representation.
func fromJQ(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := jsonvalue.NewObject()
		for _, k := range keys {
			obj.Set(k, fromJQ(val[k]))
		}
		return obj
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			out[i] = fromJQ(el)
		}
		return out
	case int:
		return jsonvalue.Number(strconv.Itoa(val))
	case *big.Int:
		return jsonvalue.Number(val.String())
	case float64:
		return jsonvalue.Number(strconv.FormatFloat(val, 'g', -1, 64))
	default:
		return v
	}
}

// formatJQError creates a helpful error message for jq execution errors.
//
// Runtime jq errors such as "cannot iterate over: null" are plain errors in
// gojq, so hints are chosen by message text.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// ValidateExpression checks if a jq expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return fmt.Errorf("invalid jq expression: %w", err)
	}

	_, err = gojq.Compile(query)
	if err != nil {
		return fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return nil
}
