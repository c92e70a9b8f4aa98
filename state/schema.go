// Package state infers the shared graph state schema from node code,
// node categories, and edge guards. Inference is best-effort pattern
// recognition over Python text; it never fails.
package state

// Python type names used in the emitted TypedDict.
const (
	TypeStr   = "str"
	TypeInt   = "int"
	TypeFloat = "float"
	TypeBool  = "bool"
	TypeList  = "list"
	TypeDict  = "dict"
)

// Schema is an ordered field-name → Python-type mapping. Insertion
// order is preserved and the first writer of a field wins, so the same
// document always produces the same schema.
type Schema struct {
	names []string
	types map[string]string
}

// NewSchema returns a schema pre-seeded with the two fields every
// generated graph carries: input and output.
func NewSchema() *Schema {
	s := &Schema{types: make(map[string]string)}
	s.Set("input", TypeStr)
	s.Set("output", TypeDict)
	return s
}

// Set records a field. A field that already exists keeps its original
// type; later writers never override earlier ones.
func (s *Schema) Set(name, pyType string) {
	if _, ok := s.types[name]; ok {
		return
	}
	s.names = append(s.names, name)
	s.types[name] = pyType
}

// Has reports whether the field is present.
func (s *Schema) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// Type returns the Python type recorded for the field.
func (s *Schema) Type(name string) (string, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Fields returns the field names in insertion order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.names) }
