package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking its output type with
// CheckOutputSchema.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T would be rejected by the
// output schema the SDK infers for T.
//
// Two mistakes are caught. A slice field without omitzero/omitempty marshals
// as null while its schema says "array". A json.RawMessage field is inferred
// as an array of bytes while it marshals as arbitrary JSON.
//
// The untyped any output is accepted, as is any T the schema package cannot
// handle; the SDK reports those itself.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, map[reflect.Type]bool{}); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s has json.RawMessage at %s; declare the field as any and fill it with toAny",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	data, err := zeroValueViolation(rt)
	if err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails its schema: %v\n  JSON: %s\n  add omitzero to slice fields that may be nil",
			toolName, rt, err, data,
		))
	}
}

// zeroValueViolation validates the marshaled zero value of rt against the
// schema inferred for rt. It returns the JSON and the validation error, or a
// nil error when the value passes or cannot be checked.
func zeroValueViolation(rt reflect.Type) ([]byte, error) {
	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil, nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, nil
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil, nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, nil
	}

	return data, resolved.Validate(&v)
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the field paths under t whose type is json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, visiting map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if visiting[t] {
		return nil
	}
	visiting[t] = true
	defer delete(visiting, t)

	switch t.Kind() {
	case reflect.Struct:
		var found []string
		for f := range fields(t) {
			found = append(found, rawMessagePaths(f.Type, append(path, f.Name), visiting)...)
		}
		return found
	case reflect.Slice, reflect.Array:
		return rawMessagePaths(t.Elem(), append(path, "[]"), visiting)
	case reflect.Map:
		return rawMessagePaths(t.Elem(), append(path, "[value]"), visiting)
	default:
		return nil
	}
}

// fields yields the exported fields of a struct type.
func fields(t reflect.Type) func(func(reflect.StructField) bool) {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			f := t.Field(i)
			if f.IsExported() && !yield(f) {
				return
			}
		}
	}
}
