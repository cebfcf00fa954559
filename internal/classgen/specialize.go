package classgen

import (
	"errors"
	"strconv"
	"strings"
)

// Go type names produced by Specialize.
const (
	TypeBool    = "bool"
	TypeInt32   = "int32"
	TypeInt64   = "int64"
	TypeUint64  = "uint64"
	TypeFloat32 = "float32"
	TypeFloat64 = "float64"
	TypeString  = "string"
	TypeAny     = "any"
)

// Specialize turns every field's examples into its final Go type. Classes and
// fields keep registry order. Open fields degrade to any and are reported as
// diagnostics; everything else that cannot be typed is an error.
func Specialize(reg *Registry) ([]FinalizedClass, []Diagnostic, error) {
	var diagnostics []Diagnostic
	classes := make([]FinalizedClass, 0, reg.Len())

	for _, class := range reg.Classes() {
		final := FinalizedClass{
			Name:   class.Name,
			Fields: make([]FinalizedField, 0, len(class.Fields)),
		}
		seen := make(map[string]string, len(class.Fields))

		for _, field := range class.Fields {
			name := NormalizeName(field.Key)
			if other, dup := seen[name]; dup {
				return nil, nil, newError(ErrNameCollision, class.Name, field.Key, "normalizes to %q like key %q", name, other)
			}
			seen[name] = field.Key

			if field.Type.IsClass() {
				if _, ok := reg.Get(field.Type.Class); !ok {
					return nil, nil, newError(ErrMissingReference, class.Name, field.Key, "class %q not registered", field.Type.Class)
				}
			}

			typ, degraded, err := FieldType(field)
			if err != nil {
				var e *Error
				if errors.As(err, &e) {
					e.Class = class.Name
				}
				return nil, nil, err
			}
			if degraded {
				diagnostics = append(diagnostics, Diagnostic{
					Class:   class.Name,
					Field:   name,
					Key:     field.Key,
					Message: "no type information in sample (" + field.Type.Kind.String() + "), using " + TypeAny,
				})
			}

			final.Fields = append(final.Fields, FinalizedField{
				Name:     name,
				Key:      field.Key,
				Type:     typ,
				Degraded: degraded,
			})
		}
		classes = append(classes, final)
	}

	return classes, diagnostics, nil
}

// FieldType resolves the Go type of one field: the element type, made a
// pointer when nullable, wrapped in ArrayDepth slice layers.
func FieldType(field *FieldCandidate) (typ string, degraded bool, err error) {
	elem, degraded, err := elementType(field)
	if err != nil {
		return "", false, err
	}
	return strings.Repeat("[]", field.ArrayDepth) + elem, degraded, nil
}

func elementType(field *FieldCandidate) (string, bool, error) {
	if field.Type.IsClass() {
		return field.Type.Class, false, nil
	}

	var base string
	switch field.Type.Kind {
	case KindBoolean:
		base = TypeBool
	case KindInteger:
		t, err := integerType(field)
		if err != nil {
			return "", false, err
		}
		base = t
	case KindNumber:
		t, err := floatType(field)
		if err != nil {
			return "", false, err
		}
		base = t
	case KindString:
		return TypeString, false, nil
	case KindNone, KindNull:
		return TypeAny, true, nil
	case KindObject, KindArray:
		return "", false, newError(ErrInternalConsistency, "", field.Key, "%s kind reached primitive specialization", field.Type.Kind)
	default:
		return "", false, newError(ErrUnsupportedShape, "", field.Key, "cannot represent kind %s", field.Type.Kind)
	}

	if field.Nullable() {
		return "*" + base, false, nil
	}
	return base, false, nil
}

// integerType widens int32 -> int64 -> uint64 until every example fits.
func integerType(field *FieldCandidate) (string, error) {
	needs64, needsUnsigned, negative := false, false, false
	var negativeRaw, unsignedRaw string

	for _, ex := range field.Examples {
		if !ex.Concrete() {
			continue
		}
		if n, err := strconv.ParseInt(ex.Raw, 10, 32); err == nil {
			if n < 0 && !negative {
				negative, negativeRaw = true, ex.Raw
			}
			continue
		}
		if n, err := strconv.ParseInt(ex.Raw, 10, 64); err == nil {
			needs64 = true
			if n < 0 && !negative {
				negative, negativeRaw = true, ex.Raw
			}
			continue
		}
		if _, err := strconv.ParseUint(ex.Raw, 10, 64); err == nil {
			needsUnsigned = true
			if unsignedRaw == "" {
				unsignedRaw = ex.Raw
			}
			continue
		}
		return "", newError(ErrDataParse, "", field.Key, "%q is not a 32-bit, 64-bit or unsigned 64-bit integer", ex.Raw)
	}

	switch {
	case needsUnsigned && negative:
		return "", newError(ErrDataParse, "", field.Key, "no integer type holds both %s and %s", negativeRaw, unsignedRaw)
	case needsUnsigned:
		return TypeUint64, nil
	case needs64:
		return TypeInt64, nil
	default:
		return TypeInt32, nil
	}
}

// floatType picks float32 unless some example does not survive a
// single-precision round trip.
func floatType(field *FieldCandidate) (string, error) {
	double := false
	for _, ex := range field.Examples {
		if !ex.Concrete() {
			continue
		}
		f, err := strconv.ParseFloat(ex.Raw, 32)
		if err != nil {
			if !errors.Is(err, strconv.ErrRange) {
				return "", newError(ErrDataParse, "", field.Key, "%q is not a number", ex.Raw)
			}
			if _, err := strconv.ParseFloat(ex.Raw, 64); err != nil {
				return "", newError(ErrDataParse, "", field.Key, "%q does not fit a 64-bit float", ex.Raw)
			}
			double = true
			continue
		}
		if !double && !roundTrips32(ex.Raw, f) {
			double = true
		}
	}
	if double {
		return TypeFloat64, nil
	}
	return TypeFloat32, nil
}

// roundTrips32 reports whether the shortest single-precision rendering of f
// is the literal it was parsed from, character for character. "1.50" and
// "1e3" render as "1.5" and "1000", so they need float64.
func roundTrips32(literal string, f float64) bool {
	return strconv.FormatFloat(f, 'g', -1, 32) == literal
}
