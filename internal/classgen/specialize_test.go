package classgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func examples(raws ...string) []Example {
	out := make([]Example, 0, len(raws))
	for _, r := range raws {
		switch r {
		case "<absent>":
			out = append(out, AbsentExample())
		case NullToken:
			out = append(out, NullExample())
		default:
			out = append(out, RawExample(r))
		}
	}
	return out
}

func TestFieldType_Integer(t *testing.T) {
	tests := []struct {
		name     string
		examples []string
		expected string
	}{
		{"int32", []string{"1", "-2", "2147483647"}, "int32"},
		{"nullable int32", []string{"1", "2", "null"}, "*int32"},
		{"int64", []string{"1", "2147483648"}, "int64"},
		{"int64 negative", []string{"-2147483649"}, "int64"},
		{"uint64", []string{"1", "18446744073709551615"}, "uint64"},
		{"nullable uint64", []string{"1", "2", "null", "9223372036854775808"}, "*uint64"},
		{"absent only", []string{"<absent>"}, "*int32"},
		{"negative zero", []string{"-0", "18446744073709551615"}, "uint64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := &FieldCandidate{Key: "n", Type: Primitive(KindInteger), Examples: examples(tt.examples...)}
			typ, degraded, err := FieldType(field)
			require.NoError(t, err)
			assert.False(t, degraded)
			assert.Equal(t, tt.expected, typ)
		})
	}
}

func TestFieldType_IntegerWideningIsMonotonic(t *testing.T) {
	field := &FieldCandidate{Key: "n", Type: Primitive(KindInteger), Examples: examples("1", "2", "null")}
	typ, _, err := FieldType(field)
	require.NoError(t, err)
	assert.Equal(t, "*int32", typ)

	field.Examples = append(field.Examples, RawExample("18446744073709551615"))
	typ, _, err = FieldType(field)
	require.NoError(t, err)
	assert.Equal(t, "*uint64", typ)

	// Order of examples does not matter.
	field.Examples = examples("18446744073709551615", "1", "null", "2")
	typ, _, err = FieldType(field)
	require.NoError(t, err)
	assert.Equal(t, "*uint64", typ)
}

func TestFieldType_IntegerParseViolations(t *testing.T) {
	tests := []struct {
		name     string
		examples []string
	}{
		{"too large", []string{"18446744073709551616"}},
		{"far beyond uint64", []string{"1", "2", "null", "99999999999999999999"}},
		{"too small", []string{"-9223372036854775809"}},
		{"negative with unsigned", []string{"-1", "18446744073709551615"}},
		{"unsigned then negative", []string{"9223372036854775808", "-1"}},
		{"fraction", []string{"1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := &FieldCandidate{Key: "n", Type: Primitive(KindInteger), Examples: examples(tt.examples...)}
			_, _, err := FieldType(field)
			assert.ErrorIs(t, err, ErrDataParse)
		})
	}
}

func TestFieldType_Float(t *testing.T) {
	tests := []struct {
		name     string
		examples []string
		expected string
	}{
		{"single", []string{"0.1"}, "float32"},
		{"double", []string{"0.123456789012345"}, "float64"},
		{"mixed literals", []string{"1.5", "2"}, "float32"},
		{"one widens all", []string{"1.5", "2.0000001192093"}, "float64"},
		{"shortest rendering", []string{"0.5", "12", "9.99", "-0.25"}, "float32"},
		{"trailing zero", []string{"1.50"}, "float64"},
		{"point zero", []string{"1.0"}, "float64"},
		{"leading zero digits", []string{"0.10"}, "float64"},
		{"exponent", []string{"1e3"}, "float64"},
		{"upper-case exponent", []string{"2.5E-3"}, "float64"},
		{"beyond single range", []string{"1e39"}, "float64"},
		{"nullable", []string{"0.5", "null"}, "*float32"},
		{"absent", []string{"<absent>", "0.25"}, "*float32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := &FieldCandidate{Key: "f", Type: Primitive(KindNumber), Examples: examples(tt.examples...)}
			typ, _, err := FieldType(field)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, typ)
		})
	}
}

func TestFieldType_FloatParseViolation(t *testing.T) {
	for _, raw := range []string{"abc", "1e400", ""} {
		field := &FieldCandidate{Key: "f", Type: Primitive(KindNumber), Examples: []Example{RawExample(raw)}}
		_, _, err := FieldType(field)
		assert.ErrorIs(t, err, ErrDataParse, "raw %q", raw)
	}
}

func TestFieldType_OtherKinds(t *testing.T) {
	tests := []struct {
		name     string
		field    FieldCandidate
		expected string
		degraded bool
	}{
		{"bool", FieldCandidate{Type: Primitive(KindBoolean), Examples: examples("true")}, "bool", false},
		{"nullable bool", FieldCandidate{Type: Primitive(KindBoolean), Examples: examples("true", "<absent>")}, "*bool", false},
		{"string", FieldCandidate{Type: Primitive(KindString), Examples: examples("a")}, "string", false},
		{"nullable string stays plain", FieldCandidate{Type: Primitive(KindString), Examples: examples("a", "null", "<absent>")}, "string", false},
		{"class", FieldCandidate{Type: ClassRef("Meta")}, "Meta", false},
		{"class list", FieldCandidate{Type: ClassRef("Item"), ArrayDepth: 2}, "[][]Item", false},
		{"none", FieldCandidate{Type: Primitive(KindNone), Examples: examples("<absent>")}, "any", true},
		{"null", FieldCandidate{Type: Primitive(KindNull), Examples: examples("<absent>")}, "any", true},
		{"empty list", FieldCandidate{Type: Primitive(KindNone), ArrayDepth: 1}, "[]any", true},
		{"list of strings", FieldCandidate{Type: Primitive(KindString), ArrayDepth: 1, Examples: examples("a", "b")}, "[]string", false},
		{"2d nullable ints", FieldCandidate{Type: Primitive(KindInteger), ArrayDepth: 2, Examples: examples("1", "null", "3")}, "[][]*int32", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := tt.field
			typ, degraded, err := FieldType(&field)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, typ)
			assert.Equal(t, tt.degraded, degraded)
		})
	}
}

func TestFieldType_StructuralKindsAreErrors(t *testing.T) {
	_, _, err := FieldType(&FieldCandidate{Key: "o", Type: Primitive(KindObject)})
	assert.ErrorIs(t, err, ErrInternalConsistency)

	_, _, err = FieldType(&FieldCandidate{Key: "a", Type: Primitive(KindArray)})
	assert.ErrorIs(t, err, ErrInternalConsistency)

	_, _, err = FieldType(&FieldCandidate{Key: "u", Type: Primitive(KindUnsupported)})
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestSpecialize_NameCollision(t *testing.T) {
	reg := NewRegistry()
	class := NewClassCandidate("Root")
	class.AddField(&FieldCandidate{Key: "a_b", Type: Primitive(KindString)})
	class.AddField(&FieldCandidate{Key: "aB", Type: Primitive(KindString)})
	reg.Add(class)

	_, _, err := Specialize(reg)
	require.ErrorIs(t, err, ErrNameCollision)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Root", e.Class)
	assert.Equal(t, "aB", e.Key)
}

func TestSpecialize_MissingClassReference(t *testing.T) {
	reg := NewRegistry()
	class := NewClassCandidate("Root")
	class.AddField(&FieldCandidate{Key: "meta", Type: ClassRef("Meta")})
	reg.Add(class)

	_, _, err := Specialize(reg)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestSpecialize_DiagnosticsAndOrder(t *testing.T) {
	reg := NewRegistry()
	root := NewClassCandidate("Root")
	root.AddField(&FieldCandidate{Key: "zeta", Type: Primitive(KindInteger), Examples: examples("1")})
	root.AddField(&FieldCandidate{Key: "meta", Type: Primitive(KindNull), Examples: examples("<absent>")})
	root.AddField(&FieldCandidate{Key: "child", Type: ClassRef("Child")})
	reg.Add(root)
	child := NewClassCandidate("Child")
	child.AddField(&FieldCandidate{Key: "ok", Type: Primitive(KindBoolean), Examples: examples("false")})
	reg.Add(child)

	classes, diagnostics, err := Specialize(reg)
	require.NoError(t, err)

	require.Len(t, classes, 2)
	assert.Equal(t, "Root", classes[0].Name)
	assert.Equal(t, "Child", classes[1].Name)
	assert.Equal(t, []FinalizedField{
		{Name: "Zeta", Key: "zeta", Type: "int32"},
		{Name: "Meta", Key: "meta", Type: "any", Degraded: true},
		{Name: "Child", Key: "child", Type: "Child"},
	}, classes[0].Fields)

	require.Len(t, diagnostics, 1)
	assert.Equal(t, "Root", diagnostics[0].Class)
	assert.Equal(t, "Meta", diagnostics[0].Field)
	assert.Equal(t, "meta", diagnostics[0].Key)
}
