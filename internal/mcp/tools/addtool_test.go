package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutputSchema(t *testing.T) {
	type nilSlice struct {
		Items []string `json:"items"`
	}
	type omitzeroSlice struct {
		Items []string `json:"items,omitzero"`
	}
	type omitemptySlice struct {
		Items []string `json:"items,omitempty"`
	}
	type scalars struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	type pointerSlice struct {
		Items *[]string `json:"items"`
	}
	type rawMessage struct {
		Data json.RawMessage `json:"data,omitempty"`
	}
	type rawMessageSlice struct {
		Items []json.RawMessage `json:"items,omitzero"`
	}
	type inner struct {
		Schema json.RawMessage `json:"schema,omitempty"`
	}
	type nestedRawMessage struct {
		Nested inner `json:"nested"`
	}
	type anySlice struct {
		Items []any `json:"items,omitzero"`
	}

	tests := []struct {
		name   string
		check  func()
		panics bool
	}{
		{"nil slice", func() { CheckOutputSchema[nilSlice]("t") }, true},
		{"omitzero slice", func() { CheckOutputSchema[omitzeroSlice]("t") }, false},
		{"omitempty slice", func() { CheckOutputSchema[omitemptySlice]("t") }, false},
		{"scalars", func() { CheckOutputSchema[scalars]("t") }, false},
		{"untyped any", func() { CheckOutputSchema[any]("t") }, false},
		{"pointer to slice", func() { CheckOutputSchema[pointerSlice]("t") }, false},
		{"raw message", func() { CheckOutputSchema[rawMessage]("t") }, true},
		{"raw message slice", func() { CheckOutputSchema[rawMessageSlice]("t") }, true},
		{"nested raw message", func() { CheckOutputSchema[nestedRawMessage]("t") }, true},
		{"any slice", func() { CheckOutputSchema[anySlice]("t") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.panics {
				assert.Panics(t, tt.check)
			} else {
				assert.NotPanics(t, tt.check)
			}
		})
	}
}

func TestCheckOutputSchema_ToolOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[GenerateOutput]("jsonclass_generate")
		CheckOutputSchema[InferSchemaOutput]("jsonclass_infer_schema")
		CheckOutputSchema[ValidateOutput]("jsonclass_validate")
	})
}
