package classgen

import "github.com/invopop/jsonschema"

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies a schema node.
type Kind int

const (
	KindNone Kind = iota // no type information (empty schema, anyOf union)
	KindObject
	KindArray
	KindBoolean
	KindInteger
	KindNumber
	KindString
	KindNull
	KindUnsupported // a type keyword this package cannot represent
)

// KindOf classifies a schema by its type keyword. References are not
// followed; a bare $ref classifies as KindNone.
func KindOf(s *jsonschema.Schema) Kind {
	if s == nil {
		return KindNone
	}
	switch s.Type {
	case "":
		return KindNone
	case "object":
		return KindObject
	case "array":
		return KindArray
	case "boolean":
		return KindBoolean
	case "integer":
		return KindInteger
	case "number":
		return KindNumber
	case "string":
		return KindString
	case "null":
		return KindNull
	default:
		return KindUnsupported
	}
}

// IsPrimitive reports whether values of the kind are scalars.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindBoolean, KindInteger, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the kind carries no usable type information and
// degrades to a dynamic type.
func (k Kind) IsOpen() bool {
	return k == KindNone || k == KindNull
}
