package classgen

import (
	"context"
	"log/slog"

	"github.com/invopop/jsonschema"
)

// Options configures Run.
type Options struct {
	RootName string // class name for the root object, default "Root"
	MaxDepth int    // sample nesting cap for Collect, default DefaultMaxDepth
}

// DefaultOptions returns the default run options.
func DefaultOptions() Options {
	return Options{
		RootName: DefaultRootName,
		MaxDepth: DefaultMaxDepth,
	}
}

// Result is the finalized class model.
type Result struct {
	Classes     []FinalizedClass `json:"classes"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
}

// Run derives, collects and specializes in that order. value must be the
// jsonvalue.Decode form of the sample schema was inferred from. The context is
// checked between passes.
func Run(ctx context.Context, schema *jsonschema.Schema, value any, opts Options) (*Result, error) {
	if opts.RootName == "" {
		opts.RootName = DefaultRootName
	}

	reg, err := Derive(schema, opts.RootName)
	if err != nil {
		return nil, err
	}
	slog.Debug("derived class candidates", "classes", reg.Len())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := Collect(schema, reg, opts.RootName, value, opts.MaxDepth); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classes, diagnostics, err := Specialize(reg)
	if err != nil {
		return nil, err
	}
	for _, d := range diagnostics {
		slog.Warn("field type degraded", "class", d.Class, "field", d.Field, "key", d.Key, "reason", d.Message)
	}

	return &Result{Classes: classes, Diagnostics: diagnostics}, nil
}
