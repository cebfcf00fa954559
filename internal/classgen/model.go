package classgen

// TypeRef is the resolved type of a field before specialization: either a
// primitive kind or a reference to a generated class.
type TypeRef struct {
	Kind  Kind   // primitive kind; zero when Class is set
	Class string // class name for class references
}

// Primitive returns a TypeRef for a primitive (or open) kind.
func Primitive(k Kind) TypeRef { return TypeRef{Kind: k} }

// ClassRef returns a TypeRef naming a generated class.
func ClassRef(name string) TypeRef { return TypeRef{Class: name} }

// IsClass reports whether the reference names a class.
func (t TypeRef) IsClass() bool { return t.Class != "" }

func (t TypeRef) String() string {
	if t.IsClass() {
		return "class " + t.Class
	}
	return t.Kind.String()
}

// NullToken is the raw text recorded for an explicit JSON null.
const NullToken = "null"

// Example is one observation of a field in the sample.
type Example struct {
	Raw    string // literal text of the value; NullToken for null
	Absent bool   // the key was missing, or the field has no usable type
	Null   bool   // the value was an explicit null
}

// RawExample records a present, non-null value.
func RawExample(raw string) Example { return Example{Raw: raw} }

// AbsentExample records a missing key.
func AbsentExample() Example { return Example{Absent: true} }

// NullExample records an explicit null.
func NullExample() Example { return Example{Raw: NullToken, Null: true} }

// Concrete reports whether the example carries a value.
func (e Example) Concrete() bool { return !e.Absent && !e.Null }

// FieldCandidate accumulates examples for one field of a class.
type FieldCandidate struct {
	Key        string  // original JSON key
	Type       TypeRef // resolved element type
	ArrayDepth int     // number of array layers around Type
	Examples   []Example
}

// Nullable reports whether any example is absent or null.
func (f *FieldCandidate) Nullable() bool {
	for _, ex := range f.Examples {
		if !ex.Concrete() {
			return true
		}
	}
	return false
}

// ClassCandidate is a class under construction.
type ClassCandidate struct {
	Name   string
	Fields []*FieldCandidate

	index map[string]int
}

// NewClassCandidate returns an empty class.
func NewClassCandidate(name string) *ClassCandidate {
	return &ClassCandidate{Name: name, index: make(map[string]int)}
}

// AddField appends a field. A key added twice keeps its first position and
// takes the new type.
func (c *ClassCandidate) AddField(f *FieldCandidate) {
	if i, ok := c.index[f.Key]; ok {
		c.Fields[i] = f
		return
	}
	c.index[f.Key] = len(c.Fields)
	c.Fields = append(c.Fields, f)
}

// Field returns the field declared for a JSON key.
func (c *ClassCandidate) Field(key string) (*FieldCandidate, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return c.Fields[i], true
}

// Registry holds class candidates in registration order. It is created by
// Derive, filled by Collect and read by Specialize.
type Registry struct {
	order   []string
	classes map[string]*ClassCandidate
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*ClassCandidate)}
}

// Add registers a class. It reports false if the name is already taken.
func (r *Registry) Add(c *ClassCandidate) bool {
	if _, exists := r.classes[c.Name]; exists {
		return false
	}
	r.order = append(r.order, c.Name)
	r.classes[c.Name] = c
	return true
}

// Get returns a class by name.
func (r *Registry) Get(name string) (*ClassCandidate, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Classes returns the classes in registration order.
func (r *Registry) Classes() []*ClassCandidate {
	out := make([]*ClassCandidate, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.classes[name])
	}
	return out
}

// Len returns the number of registered classes.
func (r *Registry) Len() int { return len(r.order) }

// FinalizedField is a field with its final Go type.
type FinalizedField struct {
	Name     string `json:"name"`               // normalized identifier
	Key      string `json:"key"`                // original JSON key
	Type     string `json:"type"`               // Go type expression
	Degraded bool   `json:"degraded,omitempty"` // type fell back to any
}

// FinalizedClass is a class ready for emission.
type FinalizedClass struct {
	Name   string           `json:"name"`
	Fields []FinalizedField `json:"fields"`
}

// Diagnostic describes a non-fatal degradation.
type Diagnostic struct {
	Class   string `json:"class"`
	Field   string `json:"field"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return d.Class + "." + d.Field + " (" + d.Key + "): " + d.Message
}
