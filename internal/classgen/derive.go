package classgen

import (
	"errors"
	"sort"

	"github.com/invopop/jsonschema"

	schemautil "github.com/usestring/jsonclass/pkg/jsonschema"
)

// DefaultRootName is the class name given to the root object.
const DefaultRootName = "Root"

// Derive registers one class for the root object (or the object items of a
// root array) and one for every object definition in root.Definitions,
// reachable or not. The root class comes first, definitions follow in name
// order.
//
// Nested objects must already be hoisted into definitions; an inline object
// in field position is an internal consistency error.
func Derive(root *jsonschema.Schema, rootName string) (*Registry, error) {
	if rootName == "" {
		rootName = DefaultRootName
	}
	reg := NewRegistry()

	shape, err := rootShape(root)
	if err != nil {
		return nil, err
	}
	if KindOf(shape) == KindObject {
		class, err := deriveClass(root, shape, rootName)
		if err != nil {
			return nil, err
		}
		reg.Add(class)
	}

	for _, name := range definitionNames(root) {
		def := root.Definitions[name]
		if KindOf(def) != KindObject {
			continue
		}
		class, err := deriveClass(root, def, name)
		if err != nil {
			return nil, err
		}
		if !reg.Add(class) {
			return nil, newError(ErrNameCollision, name, "", "definition name clashes with the root class")
		}
	}

	return reg, nil
}

// rootShape unwraps one array layer at the root and follows a root-level
// reference. Nested root arrays are not unwrapped further.
func rootShape(root *jsonschema.Schema) (*jsonschema.Schema, error) {
	shape, err := follow(root, root)
	if err != nil {
		return nil, err
	}
	if KindOf(shape) == KindArray {
		return follow(root, shape.Items)
	}
	return shape, nil
}

// follow resolves a chain of references to the schema they point to.
func follow(root, s *jsonschema.Schema) (*jsonschema.Schema, error) {
	for hops := 0; s != nil && s.Ref != ""; hops++ {
		if hops > len(root.Definitions) {
			return nil, newError(ErrUnsupportedShape, "", "", "reference cycle at %q", s.Ref)
		}
		def, name, ok := schemautil.Lookup(root, s.Ref)
		if !ok {
			return nil, newError(ErrMissingReference, "", "", "definition %q not found (ref %q)", name, s.Ref)
		}
		s = def
	}
	return s, nil
}

func definitionNames(root *jsonschema.Schema) []string {
	if root == nil {
		return nil
	}
	names := make([]string, 0, len(root.Definitions))
	for name := range root.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func deriveClass(root, shape *jsonschema.Schema, name string) (*ClassCandidate, error) {
	class := NewClassCandidate(name)
	if shape.Properties == nil {
		return class, nil
	}
	for pair := shape.Properties.Oldest(); pair != nil; pair = pair.Next() {
		ref, depth, err := resolveField(root, pair.Value)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Class, e.Key = name, pair.Key
			}
			return nil, err
		}
		class.AddField(&FieldCandidate{
			Key:        pair.Key,
			Type:       ref,
			ArrayDepth: depth,
		})
	}
	return class, nil
}

// resolveField unwraps array layers and references down to the element type.
// A reference to an object definition yields a class reference; a reference
// to anything else is resolved to that definition's kind.
func resolveField(root, s *jsonschema.Schema) (TypeRef, int, error) {
	depth := 0
	hops := 0
	for {
		if s == nil {
			return Primitive(KindNone), depth, nil
		}

		if s.Ref != "" {
			if hops > len(root.Definitions) {
				return TypeRef{}, 0, newError(ErrUnsupportedShape, "", "", "reference cycle at %q", s.Ref)
			}
			hops++
			def, name, ok := schemautil.Lookup(root, s.Ref)
			if !ok {
				return TypeRef{}, 0, newError(ErrMissingReference, "", "", "definition %q not found (ref %q)", name, s.Ref)
			}
			if KindOf(def) == KindObject {
				return ClassRef(name), depth, nil
			}
			s = def
			continue
		}

		switch k := KindOf(s); k {
		case KindArray:
			depth++
			s = s.Items
		case KindObject:
			return TypeRef{}, 0, newError(ErrInternalConsistency, "", "", "inline object schema; nested objects must be definitions")
		case KindUnsupported:
			return TypeRef{}, 0, newError(ErrUnsupportedShape, "", "", "type %q", s.Type)
		default:
			return Primitive(k), depth, nil
		}
	}
}
