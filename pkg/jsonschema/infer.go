// Package jsonschema provides JSON Schema inference from arbitrary JSON data.
// It generates schemas following JSON Schema Draft 2020-12.
package jsonschema

import (
	"sort"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/usestring/jsonclass/pkg/jsonvalue"
)

// InferredSchema contains a JSON Schema inferred from sample data along with metadata.
type InferredSchema struct {
	Schema      *jsonschema.Schema `json:"schema"`       // JSON Schema (Draft 2020-12)
	SampleCount int                `json:"sample_count"` // Number of samples used
	AllMatch    bool               `json:"all_match"`    // True if all samples had identical schema
}

// InferOptions controls schema inference behavior.
type InferOptions struct {
	// StrictRequired marks properties as required only if present in ALL samples.
	// When true with multiple samples: only fields in ALL samples are required.
	// When true with single sample: ALL present fields are required.
	// When false: no fields are marked as required.
	// Default: true
	StrictRequired bool
	// AdditionalProperties sets additionalProperties in object schemas.
	// Default: nil (not set)
	AdditionalProperties *bool
	// MarkNullableAsOptional treats fields that can be null as optional (not required).
	// Default: true
	MarkNullableAsOptional bool
	// HoistDefinitions moves every nested object schema into $defs and replaces
	// it with a $ref. The root object (or the item object of a root array)
	// stays inline.
	// Default: true
	HoistDefinitions bool
	// ReservedNames are never used as definition names.
	// Default: ["Root"]
	ReservedNames []string
	// MaxDepth bounds container nesting of each sample.
	// Default: jsonvalue.DefaultMaxDepth
	MaxDepth int
}

// DefaultInferOptions returns the default inference options.
func DefaultInferOptions() *InferOptions {
	return &InferOptions{
		StrictRequired:         true,
		AdditionalProperties:   nil,
		MarkNullableAsOptional: true,
		HoistDefinitions:       true,
		ReservedNames:          []string{"Root"},
		MaxDepth:               jsonvalue.DefaultMaxDepth,
	}
}

// Infer generates a JSON Schema from one or more JSON byte samples.
// Returns a merged schema if multiple samples are provided.
func Infer(samples ...[]byte) (*InferredSchema, error) {
	return InferWithOptions(DefaultInferOptions(), samples...)
}

// InferWithOptions generates a JSON Schema with custom options.
// Samples that fail to parse are skipped; nil is returned when none parse.
func InferWithOptions(opts *InferOptions, samples ...[]byte) (*InferredSchema, error) {
	if len(samples) == 0 {
		return nil, nil
	}

	if opts == nil {
		opts = DefaultInferOptions()
	}

	parsedSamples := make([]any, 0, len(samples))
	for _, data := range samples {
		parsed, err := jsonvalue.DecodeWithDepth(data, opts.MaxDepth)
		if err != nil {
			continue
		}
		parsedSamples = append(parsedSamples, parsed)
	}

	if len(parsedSamples) == 0 {
		return nil, nil
	}

	return InferValues(opts, parsedSamples...), nil
}

// InferValues generates a JSON Schema from values already decoded by
// jsonvalue.Decode.
func InferValues(opts *InferOptions, values ...any) *InferredSchema {
	if opts == nil {
		opts = DefaultInferOptions()
	}

	schemas := make([]*jsonschema.Schema, 0, len(values))
	for _, v := range values {
		schemas = append(schemas, inferFromValue(v))
	}

	// Check if all schemas are identical
	allMatch := true
	if len(schemas) > 1 {
		first := fingerprint(schemas[0])
		for i := 1; i < len(schemas); i++ {
			if fingerprint(schemas[i]) != first {
				allMatch = false
				break
			}
		}
	}

	merged := mergeSchemas(schemas)

	if opts.StrictRequired && merged.Type == "object" {
		computeRequiredFields(merged, values, opts.MarkNullableAsOptional)
	}

	if opts.AdditionalProperties != nil {
		applyAdditionalProperties(merged, *opts.AdditionalProperties)
	}

	if opts.HoistDefinitions {
		Hoist(merged, opts.ReservedNames)
	}
	merged.Version = jsonschema.Version

	return &InferredSchema{
		Schema:      merged,
		SampleCount: len(schemas),
		AllMatch:    allMatch,
	}
}

// InferFromValue generates a JSON Schema from a value decoded by
// jsonvalue.Decode. Nested objects stay inline.
func InferFromValue(v any) *jsonschema.Schema {
	return inferFromValue(v)
}

func inferFromValue(v any) *jsonschema.Schema {
	if v == nil {
		return &jsonschema.Schema{Type: "null"}
	}

	switch val := v.(type) {
	case bool:
		return &jsonschema.Schema{Type: "boolean"}

	case jsonvalue.Number:
		// Classify by how the literal is written, not by its value: 1.0 stays a number.
		if IsIntegerLiteral(string(val)) {
			return &jsonschema.Schema{Type: "integer"}
		}
		return &jsonschema.Schema{Type: "number"}

	case string:
		return &jsonschema.Schema{Type: "string"}

	case []any:
		return inferArraySchema(val)

	case *jsonvalue.Object:
		return inferObjectSchema(val)

	default:
		// Unknown type, return empty schema (matches anything)
		return &jsonschema.Schema{}
	}
}

// IsIntegerLiteral reports whether a JSON number literal has neither a
// fraction nor an exponent.
func IsIntegerLiteral(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".eE")
}

func inferArraySchema(arr []any) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: "array"}

	if len(arr) == 0 {
		return schema
	}

	itemSchemas := make([]*jsonschema.Schema, 0, len(arr))
	for _, item := range arr {
		itemSchemas = append(itemSchemas, inferFromValue(item))
	}

	schema.Items = mergeSchemas(itemSchemas)
	return schema
}

func inferObjectSchema(obj *jsonvalue.Object) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}

	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		schema.Properties.Set(k, inferFromValue(v))
	}

	return schema
}

func mergeSchemas(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 0 {
		return &jsonschema.Schema{}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	// Collect all types
	types := make(map[string]bool)
	var objectSchemas []*jsonschema.Schema
	var arraySchemas []*jsonschema.Schema
	hasUntyped := false

	for _, s := range schemas {
		if s.Type == "" {
			hasUntyped = true
			continue
		}
		types[s.Type] = true

		if s.Type == "object" {
			objectSchemas = append(objectSchemas, s)
		}
		if s.Type == "array" {
			arraySchemas = append(arraySchemas, s)
		}
	}

	if len(types) == 0 {
		return &jsonschema.Schema{}
	}

	// null next to exactly one other kind only makes that kind nullable
	if types["null"] && len(types) > 1 {
		delete(types, "null")
	}
	// integer and number together widen to number
	if types["integer"] && types["number"] && len(types) == 2 {
		delete(types, "integer")
	}

	// All same type - merge appropriately
	if len(types) == 1 && !hasUntyped {
		for t := range types {
			switch t {
			case "object":
				return mergeObjectSchemas(objectSchemas)
			case "array":
				return mergeArraySchemas(arraySchemas)
			default:
				return &jsonschema.Schema{Type: t}
			}
		}
	}

	typeList := make([]string, 0, len(types))
	for t := range types {
		typeList = append(typeList, t)
	}
	sort.Strings(typeList)

	// invopop/jsonschema has no type arrays, so unions are expressed with anyOf.
	anyOf := make([]*jsonschema.Schema, 0, len(typeList))
	if len(objectSchemas) > 0 {
		anyOf = append(anyOf, mergeObjectSchemas(objectSchemas))
	}
	if len(arraySchemas) > 0 {
		anyOf = append(anyOf, mergeArraySchemas(arraySchemas))
	}
	for _, t := range typeList {
		if t != "object" && t != "array" {
			anyOf = append(anyOf, &jsonschema.Schema{Type: t})
		}
	}

	if len(anyOf) == 1 && !hasUntyped {
		return anyOf[0]
	}
	return &jsonschema.Schema{AnyOf: anyOf}
}

func mergeObjectSchemas(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 0 {
		return &jsonschema.Schema{Type: "object"}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	// Merge properties from all schemas, keys in first-seen order
	var keys []string
	allProperties := make(map[string][]*jsonschema.Schema)
	for _, s := range schemas {
		if s.Properties == nil {
			continue
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if _, seen := allProperties[pair.Key]; !seen {
				keys = append(keys, pair.Key)
			}
			allProperties[pair.Key] = append(allProperties[pair.Key], pair.Value)
		}
	}

	merged := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}

	for _, k := range keys {
		merged.Properties.Set(k, mergeSchemas(allProperties[k]))
	}

	return merged
}

func mergeArraySchemas(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 0 {
		return &jsonschema.Schema{Type: "array"}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	itemSchemas := make([]*jsonschema.Schema, 0, len(schemas))
	for _, s := range schemas {
		if s.Items != nil {
			itemSchemas = append(itemSchemas, s.Items)
		}
	}

	merged := &jsonschema.Schema{Type: "array"}
	if len(itemSchemas) > 0 {
		merged.Items = mergeSchemas(itemSchemas)
	}
	return merged
}

// computeRequiredFields determines which properties are present in ALL samples
// and marks them as required in the schema.
// If markNullableAsOptional is true, fields that contain null values are not marked as required.
func computeRequiredFields(schema *jsonschema.Schema, samples []any, markNullableAsOptional bool) {
	if schema.Type != "object" || schema.Properties == nil {
		return
	}

	// Count occurrences of each property across all samples
	// Also track if the property ever has a null value
	propCounts := make(map[string]int)
	propNullable := make(map[string]bool)
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		propCounts[pair.Key] = 0
		propNullable[pair.Key] = false
	}

	for _, sample := range samples {
		obj, ok := sample.(*jsonvalue.Object)
		if !ok {
			continue
		}
		for _, key := range obj.Keys() {
			if _, exists := propCounts[key]; exists {
				propCounts[key]++
				if value, _ := obj.Get(key); value == nil {
					propNullable[key] = true
				}
			}
		}
	}

	// Properties present in all samples are required
	// Unless they're nullable and markNullableAsOptional is true
	totalSamples := len(samples)
	required := make([]string, 0)
	for key, count := range propCounts {
		if count == totalSamples {
			if markNullableAsOptional && propNullable[key] {
				continue
			}
			required = append(required, key)
		}
	}
	sort.Strings(required)

	if len(required) > 0 {
		schema.Required = required
	}

	// Recursively handle nested objects
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		propSchema := pair.Value
		if propSchema.Type == "object" {
			nestedSamples := make([]any, 0)
			for _, sample := range samples {
				obj, ok := sample.(*jsonvalue.Object)
				if !ok {
					continue
				}
				if nested, exists := obj.Get(pair.Key); exists && nested != nil {
					nestedSamples = append(nestedSamples, nested)
				}
			}
			if len(nestedSamples) > 0 {
				computeRequiredFields(propSchema, nestedSamples, markNullableAsOptional)
			}
		} else if propSchema.Type == "array" && propSchema.Items != nil && propSchema.Items.Type == "object" {
			// For arrays of objects, collect all items from all samples
			nestedSamples := make([]any, 0)
			for _, sample := range samples {
				obj, ok := sample.(*jsonvalue.Object)
				if !ok {
					continue
				}
				if arr, exists := obj.Get(pair.Key); exists {
					if items, ok := arr.([]any); ok {
						for _, item := range items {
							if item != nil {
								nestedSamples = append(nestedSamples, item)
							}
						}
					}
				}
			}
			if len(nestedSamples) > 0 {
				computeRequiredFields(propSchema.Items, nestedSamples, markNullableAsOptional)
			}
		}
	}
}

// applyAdditionalProperties recursively sets additionalProperties on all object schemas.
func applyAdditionalProperties(schema *jsonschema.Schema, allowed bool) {
	if schema == nil {
		return
	}

	if schema.Type == "object" {
		if allowed {
			schema.AdditionalProperties = jsonschema.TrueSchema
		} else {
			schema.AdditionalProperties = jsonschema.FalseSchema
		}

		if schema.Properties != nil {
			for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
				applyAdditionalProperties(pair.Value, allowed)
			}
		}
	}

	if schema.Type == "array" && schema.Items != nil {
		applyAdditionalProperties(schema.Items, allowed)
	}

	for _, s := range schema.AnyOf {
		applyAdditionalProperties(s, allowed)
	}
}

// fingerprint renders a schema's structure as a compact string for equality checks.
func fingerprint(s *jsonschema.Schema) string {
	var b strings.Builder
	writeFingerprint(&b, s)
	return b.String()
}

func writeFingerprint(b *strings.Builder, s *jsonschema.Schema) {
	if s == nil {
		b.WriteString("_")
		return
	}
	b.WriteString(s.Type)
	if s.Properties != nil {
		b.WriteByte('{')
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			b.WriteString(pair.Key)
			b.WriteByte(':')
			writeFingerprint(b, pair.Value)
			b.WriteByte(',')
		}
		b.WriteByte('}')
	}
	if s.Items != nil {
		b.WriteByte('[')
		writeFingerprint(b, s.Items)
		b.WriteByte(']')
	}
	for _, alt := range s.AnyOf {
		b.WriteByte('|')
		writeFingerprint(b, alt)
	}
}
