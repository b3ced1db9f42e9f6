package signature

import "reflect"

// Shape is the cardinality a field expects for its resolved value.
type Shape int

const (
	// ShapeSingleton expects exactly one value.
	ShapeSingleton Shape = iota
	// ShapeList expects a sequence of values.
	ShapeList
)

// MediaType identifies the request body encoding declared by a data field.
type MediaType string

const (
	MediaTypeJSON       MediaType = "application/json"
	MediaTypeMultipart  MediaType = "multipart/form-data"
	MediaTypeURLEncoded MediaType = "application/x-www-form-urlencoded"
)

// Extras holds declaration-time hints for a field: alternate parameter
// sources, required policy and body encoding.
//
// The Query, Header and Cookie aliases are consulted only when the field name
// itself matches neither a path nor a query parameter. They are checked in
// that fixed order and the first non-empty alias selects the source; the
// alias, not the field name, is looked up there.
type Extras struct {
	Query     string
	Header    string
	Cookie    string
	Required  bool
	MediaType MediaType
}

// Field describes one declared handler or provider parameter.
// Fields are immutable once built and owned by their signature model.
type Field struct {
	Name       string
	Type       reflect.Type
	Default    any
	HasDefault bool
	Shape      Shape
	Extras     Extras
}

// DefaultValue returns the declared default, or nil when the field has none.
func (f Field) DefaultValue() any {
	if f.HasDefault {
		return f.Default
	}
	return nil
}

// UsableDefault reports whether the field declares a default that can stand
// in for a missing required parameter. Nil and zero values do not count.
func (f Field) UsableDefault() bool {
	if !f.HasDefault || f.Default == nil {
		return false
	}
	return !reflect.ValueOf(f.Default).IsZero()
}

// FieldSet is an ordered mapping from field name to Field, one per handler or
// provider. Built once at registration time and read-only thereafter.
type FieldSet struct {
	names  []string
	fields map[string]Field
}

// NewFieldSet builds a FieldSet preserving declaration order.
func NewFieldSet(fields ...Field) (FieldSet, error) {
	fs := FieldSet{
		names:  make([]string, 0, len(fields)),
		fields: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			return FieldSet{}, ErrEmptyFieldName
		}
		if _, exists := fs.fields[f.Name]; exists {
			return FieldSet{}, &DuplicateFieldError{Name: f.Name}
		}
		fs.names = append(fs.names, f.Name)
		fs.fields[f.Name] = f
	}
	return fs, nil
}

// MustFieldSet is like NewFieldSet but panics on invalid declarations.
// Signature construction happens at route-registration time, so failing fast
// surfaces configuration mistakes before any request is served.
func MustFieldSet(fields ...Field) FieldSet {
	fs, err := NewFieldSet(fields...)
	if err != nil {
		panic(err)
	}
	return fs
}

// Names returns the field names in declaration order.
func (fs FieldSet) Names() []string {
	names := make([]string, len(fs.names))
	copy(names, fs.names)
	return names
}

// Get returns the field declared under name.
func (fs FieldSet) Get(name string) (Field, bool) {
	f, ok := fs.fields[name]
	return f, ok
}

// Has reports whether a field is declared under name.
func (fs FieldSet) Has(name string) bool {
	_, ok := fs.fields[name]
	return ok
}

// Len returns the number of declared fields.
func (fs FieldSet) Len() int {
	return len(fs.names)
}

// Without returns a copy of the field set with the named fields removed,
// preserving the declaration order of the remaining fields.
func (fs FieldSet) Without(names ...string) FieldSet {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := FieldSet{
		names:  make([]string, 0, len(fs.names)),
		fields: make(map[string]Field, len(fs.fields)),
	}
	for _, n := range fs.names {
		if _, skip := drop[n]; skip {
			continue
		}
		out.names = append(out.names, n)
		out.fields[n] = fs.fields[n]
	}
	return out
}
