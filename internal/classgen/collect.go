package classgen

import (
	"github.com/invopop/jsonschema"

	schemautil "github.com/usestring/jsonclass/pkg/jsonschema"
	"github.com/usestring/jsonclass/pkg/jsonvalue"
)

// DefaultMaxDepth bounds how deep Collect descends into the sample.
const DefaultMaxDepth = 1000

type collector struct {
	root     *jsonschema.Schema
	reg      *Registry
	maxDepth int
}

// Collect walks value alongside root and appends every observed value to the
// examples of the matching field in reg. value must come from jsonvalue.Decode
// and reg from Derive on the same schema.
//
// maxDepth <= 0 uses DefaultMaxDepth.
func Collect(root *jsonschema.Schema, reg *Registry, rootName string, value any, maxDepth int) error {
	if rootName == "" {
		rootName = DefaultRootName
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	c := &collector{root: root, reg: reg, maxDepth: maxDepth}

	shape, err := follow(root, root)
	if err != nil {
		return err
	}

	if KindOf(shape) == KindArray {
		items, err := follow(root, shape.Items)
		if err != nil {
			return err
		}
		if KindOf(items) != KindObject {
			return nil
		}
		arr, ok := value.([]any)
		if !ok {
			if value == nil {
				return nil
			}
			return newError(ErrInternalConsistency, rootName, "", "schema declares a root array, sample holds %s", describe(value))
		}
		for _, el := range arr {
			switch v := el.(type) {
			case nil:
			case *jsonvalue.Object:
				if err := c.object(items, rootName, v, 1); err != nil {
					return err
				}
			default:
				return newError(ErrInternalConsistency, rootName, "", "root array element is %s, schema declares an object", describe(el))
			}
		}
		return nil
	}

	if KindOf(shape) != KindObject {
		return nil
	}
	switch v := value.(type) {
	case nil:
		return nil
	case *jsonvalue.Object:
		return c.object(shape, rootName, v, 0)
	default:
		return newError(ErrInternalConsistency, rootName, "", "schema declares a root object, sample holds %s", describe(value))
	}
}

// object records one visit of a class. The same class may be visited many
// times, e.g. once per array element; fields are always walked in declaration
// order.
func (c *collector) object(shape *jsonschema.Schema, className string, obj *jsonvalue.Object, depth int) error {
	if depth > c.maxDepth {
		return newError(ErrDepthLimit, className, "", "sample nests deeper than %d levels", c.maxDepth)
	}
	class, ok := c.reg.Get(className)
	if !ok {
		return newError(ErrMissingReference, className, "", "class not registered")
	}
	if shape.Properties == nil {
		return nil
	}

	for pair := shape.Properties.Oldest(); pair != nil; pair = pair.Next() {
		field, ok := class.Field(pair.Key)
		if !ok {
			return newError(ErrInternalConsistency, className, pair.Key, "schema property has no field")
		}

		val, present := obj.Get(pair.Key)
		if !present || (!field.Type.IsClass() && field.Type.Kind.IsOpen()) {
			// Class-typed fields have nothing to record when absent.
			if !field.Type.IsClass() {
				field.Examples = append(field.Examples, AbsentExample())
			}
			continue
		}

		if err := c.value(className, field, val, 0, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// value records one occurrence of field. level counts the array layers
// already entered for this field.
func (c *collector) value(className string, field *FieldCandidate, val any, level, depth int) error {
	if depth > c.maxDepth {
		return newError(ErrDepthLimit, className, field.Key, "sample nests deeper than %d levels", c.maxDepth)
	}

	switch v := val.(type) {
	case *jsonvalue.Object:
		if !field.Type.IsClass() || level != field.ArrayDepth {
			return newError(ErrInternalConsistency, className, field.Key, "object value for %s field at array level %d", field.Type, level)
		}
		def, name, ok := schemautil.Lookup(c.root, schemautil.DefsPrefix+field.Type.Class)
		if !ok {
			def, name, ok = schemautil.Lookup(c.root, schemautil.DefinitionsPrefix+field.Type.Class)
		}
		if !ok {
			return newError(ErrMissingReference, className, field.Key, "definition %q not found", name)
		}
		return c.object(def, field.Type.Class, v, depth)

	case []any:
		if level >= field.ArrayDepth {
			return newError(ErrInternalConsistency, className, field.Key, "array value where schema declares %d array layers", field.ArrayDepth)
		}
		for _, el := range v {
			if err := c.value(className, field, el, level+1, depth+1); err != nil {
				return err
			}
		}
		return nil

	case nil:
		if !field.Type.IsClass() {
			field.Examples = append(field.Examples, NullExample())
		}
		return nil

	case string, jsonvalue.Number, bool:
		if field.Type.IsClass() || level != field.ArrayDepth {
			return newError(ErrInternalConsistency, className, field.Key, "scalar value for %s field at array level %d", field.Type, level)
		}
		field.Examples = append(field.Examples, RawExample(rawText(v)))
		return nil

	default:
		return newError(ErrInternalConsistency, className, field.Key, "unexpected value of type %T", val)
	}
}

func rawText(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case jsonvalue.Number:
		return string(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func describe(v any) string {
	switch v.(type) {
	case *jsonvalue.Object:
		return "an object"
	case []any:
		return "an array"
	case nil:
		return "null"
	default:
		return "a scalar"
	}
}
