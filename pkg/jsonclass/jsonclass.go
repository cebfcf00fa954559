package jsonclass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/usestring/jsonclass/internal/classgen"
	"github.com/usestring/jsonclass/internal/render"
	schemautil "github.com/usestring/jsonclass/pkg/jsonschema"
	"github.com/usestring/jsonclass/pkg/jsonvalue"
)

// Class, Field and Diagnostic are the finalized model types.
type (
	Class      = classgen.FinalizedClass
	Field      = classgen.FinalizedField
	Diagnostic = classgen.Diagnostic
)

// Error kinds, matched with errors.Is.
var (
	ErrUnsupportedShape    = classgen.ErrUnsupportedShape
	ErrInternalConsistency = classgen.ErrInternalConsistency
	ErrDataParse           = classgen.ErrDataParse
	ErrMissingReference    = classgen.ErrMissingReference
	ErrNameCollision       = classgen.ErrNameCollision
	ErrDepthLimit          = classgen.ErrDepthLimit

	// ErrInvalidSample reports a sample that is not a single JSON document.
	ErrInvalidSample = errors.New("invalid sample")
	// ErrSchemaMismatch reports a sample that does not validate against the
	// supplied schema.
	ErrSchemaMismatch = errors.New("sample does not match schema")
)

// Options configures Generate.
type Options struct {
	// RootName names the root class. Default "Root".
	RootName string
	// Package is the package clause of the rendered source. Default "model".
	Package string
	// Banner prepends a generated-code marker.
	Banner bool
	// MaxDepth bounds sample nesting. Default jsonvalue.DefaultMaxDepth.
	MaxDepth int
	// Schema replaces inference. The sample must validate against it. Nested
	// object schemas are hoisted into $defs on a copy; the caller's schema is
	// left untouched.
	Schema *jsonschema.Schema
}

// Result is the output of Generate.
type Result struct {
	Source      []byte             `json:"source"`
	Classes     []Class            `json:"classes"`
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
	Schema      *jsonschema.Schema `json:"schema"`
}

// Generate decodes sample and runs the full pipeline on it.
func Generate(ctx context.Context, sample []byte, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	value, err := jsonvalue.DecodeWithDepth(sample, opts.MaxDepth)
	if err != nil {
		if errors.Is(err, jsonvalue.ErrTooDeep) {
			return nil, fmt.Errorf("%w: %w", ErrDepthLimit, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidSample, err)
	}
	return GenerateValue(ctx, value, opts)
}

// GenerateValue runs the pipeline on a value decoded by jsonvalue.Decode.
func GenerateValue(ctx context.Context, value any, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	schema, err := resolveSchema(value, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := classgen.Run(ctx, schema, value, classgen.Options{
		RootName: opts.RootName,
		MaxDepth: opts.MaxDepth,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Classes:     model.Classes,
		Diagnostics: model.Diagnostics,
		Schema:      schema,
	}
	res.Source, err = render.Go(model.Classes, render.Options{Package: opts.Package, Banner: opts.Banner})
	if err != nil {
		return res, fmt.Errorf("rendering: %w", err)
	}
	return res, nil
}

func withDefaults(opts Options) Options {
	if opts.RootName == "" {
		opts.RootName = classgen.DefaultRootName
	}
	if opts.Package == "" {
		opts.Package = render.DefaultPackage
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = jsonvalue.DefaultMaxDepth
	}
	return opts
}

func resolveSchema(value any, opts Options) (*jsonschema.Schema, error) {
	reserved := []string{opts.RootName}

	if opts.Schema == nil {
		inferOpts := schemautil.DefaultInferOptions()
		inferOpts.ReservedNames = reserved
		inferOpts.MaxDepth = opts.MaxDepth
		return schemautil.InferValues(inferOpts, value).Schema, nil
	}

	validator, err := schemautil.NewValidator(opts.Schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedShape, err)
	}
	if res := validator.ValidateValue(value); !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(res.Errors, "; "))
	}

	data, err := json.Marshal(opts.Schema)
	if err != nil {
		return nil, fmt.Errorf("copying schema: %w", err)
	}
	schema, err := schemautil.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("copying schema: %w", err)
	}
	schemautil.Hoist(schema, reserved)
	return schema, nil
}
