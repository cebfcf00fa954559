package jsonschema

import (
	"sort"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// Reference prefixes understood by DefinitionName.
const (
	DefsPrefix        = "#/$defs/"
	DefinitionsPrefix = "#/definitions/"
)

// DefinitionName resolves a path-style reference to the bare definition name.
// It reports false for references that do not point into $defs or definitions.
func DefinitionName(ref string) (string, bool) {
	for _, prefix := range []string{DefsPrefix, DefinitionsPrefix} {
		if name, ok := strings.CutPrefix(ref, prefix); ok && name != "" && !strings.Contains(name, "/") {
			return name, true
		}
	}
	return "", false
}

// Lookup returns the definition a reference points to.
func Lookup(root *jsonschema.Schema, ref string) (*jsonschema.Schema, string, bool) {
	name, ok := DefinitionName(ref)
	if !ok || root == nil || root.Definitions == nil {
		return nil, name, false
	}
	def, ok := root.Definitions[name]
	return def, name, ok && def != nil
}

// TypeName converts a property key into a PascalCase type name: runs of ASCII
// letters and digits become words, a leading digit run is dropped, and an
// empty result becomes "Object".
func TypeName(key string) string {
	var b strings.Builder
	upper := true
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			if upper {
				r = toUpperASCII(r)
				upper = false
			}
			b.WriteRune(r)
		case r >= '0' && r <= '9' && b.Len() > 0:
			b.WriteRune(r)
		default:
			upper = true
		}
	}
	if b.Len() == 0 {
		return "Object"
	}
	return b.String()
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// namer hands out unique definition names.
type namer struct {
	used map[string]bool
}

func newNamer(reserved []string) *namer {
	n := &namer{used: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		n.used[r] = true
	}
	return n
}

func (n *namer) next(key string) string {
	base := TypeName(key)
	name := base
	for i := 2; n.used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	n.used[name] = true
	return name
}

// Hoist moves every nested object schema into root.Definitions and replaces
// it with a $ref. Names come from the property key that holds the object;
// objects inside arrays take the array's key. The root object, or the item
// schema of a root array, stays inline. Existing definitions keep their names
// and are hoisted in turn. reserved names are never handed out.
func Hoist(root *jsonschema.Schema, reserved []string) {
	if root == nil {
		return
	}
	existing := make([]string, 0, len(root.Definitions))
	for name := range root.Definitions {
		existing = append(existing, name)
	}
	sort.Strings(existing)

	n := newNamer(append(append([]string(nil), reserved...), existing...))
	defs := make(jsonschema.Definitions, len(existing))
	for _, name := range existing {
		defs[name] = root.Definitions[name]
	}

	inline := root
	if inline.Type == "array" && inline.Items != nil {
		inline = inline.Items
	}
	if inline.Type == "object" {
		hoistProperties(inline, defs, n)
	}
	for _, name := range existing {
		if def := defs[name]; def != nil && def.Type == "object" {
			hoistProperties(def, defs, n)
		}
	}

	if len(defs) > 0 {
		root.Definitions = defs
	}
}

func hoistProperties(obj *jsonschema.Schema, defs jsonschema.Definitions, n *namer) {
	if obj.Properties == nil {
		return
	}
	for pair := obj.Properties.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value = hoistValue(pair.Key, pair.Value, defs, n)
	}
}

func hoistValue(key string, s *jsonschema.Schema, defs jsonschema.Definitions, n *namer) *jsonschema.Schema {
	switch {
	case s == nil:
		return s
	case s.Type == "array":
		if s.Items != nil {
			s.Items = hoistValue(key, s.Items, defs, n)
		}
		return s
	case s.Type == "object":
		name := n.next(key)
		defs[name] = s
		hoistProperties(s, defs, n)
		return &jsonschema.Schema{Ref: DefsPrefix + name}
	default:
		return s
	}
}
