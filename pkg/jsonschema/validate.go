package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	sjs "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/jsonclass/pkg/jsonvalue"
)

// ValidationResult reports whether a value conforms to a schema.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validator validates decoded JSON values against a compiled schema.
type Validator struct {
	schema *sjs.Schema
}

// Parse decodes a JSON Schema document, keeping property order.
func Parse(data []byte) (*jsonschema.Schema, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing JSON Schema: %w", err)
	}
	return &s, nil
}

// NewValidator compiles a schema for validation.
func NewValidator(schema *jsonschema.Schema) (*Validator, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is required")
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	// The compiler wants a plain JSON value, not a reader.
	schemaValue, err := sjs.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := sjs.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// ValidateValue validates a value decoded by jsonvalue.Decode.
func (v *Validator) ValidateValue(value any) *ValidationResult {
	if v == nil || v.schema == nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []string{"schema not compiled"},
		}
	}

	err := v.schema.Validate(jsonvalue.Plain(value))
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	return &ValidationResult{
		Valid:  false,
		Errors: extractValidationErrors(err),
	}
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	if err == nil {
		return nil
	}

	var validationErr *sjs.ValidationError
	if errors.As(err, &validationErr) {
		return extractDetailedErrors(validationErr)
	}

	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractDetailedErrors flattens a ValidationError into sorted, deduplicated
// "path: message" lines.
func extractDetailedErrors(err *sjs.ValidationError) []string {
	errorsByPath := make(map[string][]string)
	collectErrors(err, errorsByPath)

	paths := make([]string, 0, len(errorsByPath))
	for path := range errorsByPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var result []string
	for _, path := range paths {
		seen := make(map[string]bool)
		for _, msg := range errorsByPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}

	return result
}

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *sjs.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		// $ref and wrapper messages carry no information of their own
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
