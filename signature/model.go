package signature

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Model validates a resolved kwargs mapping and exposes the result as a plain
// mapping again. It is the source of truth for each field's descriptor.
type Model interface {
	Fields() FieldSet
	// Construct validates and coerces raw keyword values and returns them as
	// a mapping keyed by the declared field names.
	Construct(kwargs map[string]any) (map[string]any, error)
}

// StructModel derives a signature from a struct type's tags and coerces
// resolved kwargs into that struct.
//
// Supported tags:
//   - `param:"name"` - declares the field under "name"; `param:"-"` skips the
//     field. Untagged fields are declared under the lowercased Go field name,
//     so a field named Data is resolved as the reserved "data" kwarg.
//   - `query:"alias"`, `header:"alias"`, `cookie:"alias"` - alternate source
//     aliases consulted when neither path nor query parameters match.
//   - `required:"true"` - the field is mandatory when resolved via an alias.
//   - `media:"multipart/form-data"` - body encoding for data fields.
//   - `default:"..."` - declared default; the literal gets a JSON-decode
//     attempt with raw-string fallback, so `default:"10"` is an int and
//     `default:"en"` a string.
//
// Slice fields (except []byte) declare list shape; everything else is a
// singleton.
//
// Example:
//
//	type ListPostsRequest struct {
//		Version  string         `param:"version"`
//		Limit    int            `query:"limit" default:"25"`
//		Token    string         `header:"X-API-Token" required:"true"`
//		Session  string         `cookie:"session"`
//		Query    map[string]any // reserved: full query mapping
//		Data     PostPayload    `media:"application/json"`
//	}
//
//	model := signature.MustFor[ListPostsRequest]()
type StructModel[T any] struct {
	fields FieldSet
	index  map[string]int
}

// For derives a StructModel from T's exported fields.
func For[T any]() (*StructModel[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrNotStruct, rt.Kind())
	}

	fields := make([]Field, 0, rt.NumField())
	index := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name, skip := fieldName(sf)
		if skip {
			continue
		}
		f := Field{
			Name:  name,
			Type:  sf.Type,
			Shape: shapeOf(sf.Type),
			Extras: Extras{
				Query:     sf.Tag.Get("query"),
				Header:    sf.Tag.Get("header"),
				Cookie:    sf.Tag.Get("cookie"),
				Required:  sf.Tag.Get("required") == "true",
				MediaType: MediaType(sf.Tag.Get("media")),
			},
		}
		if literal, ok := sf.Tag.Lookup("default"); ok {
			f.Default = decodeLiteral(literal)
			f.HasDefault = true
		}
		fields = append(fields, f)
		index[name] = i
	}

	fs, err := NewFieldSet(fields...)
	if err != nil {
		return nil, err
	}
	return &StructModel[T]{fields: fs, index: index}, nil
}

// MustFor is like For but panics on invalid types. Models are built at
// route-registration time, so misdeclared signatures should prevent startup.
func MustFor[T any]() *StructModel[T] {
	m, err := For[T]()
	if err != nil {
		panic(err)
	}
	return m
}

// Fields returns the derived field set.
func (m *StructModel[T]) Fields() FieldSet {
	return m.fields
}

// Decode validates and coerces resolved kwargs into a T.
func (m *StructModel[T]) Decode(kwargs map[string]any) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "param",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return out, err
	}
	if err := decoder.Decode(kwargs); err != nil {
		return out, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return out, nil
}

// Construct implements Model: it runs kwargs through Decode and converts the
// validated struct back into a mapping keyed by the declared field names.
func (m *StructModel[T]) Construct(kwargs map[string]any) (map[string]any, error) {
	decoded, err := m.Decode(kwargs)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(decoded)
	out := make(map[string]any, m.fields.Len())
	for name, i := range m.index {
		out[name] = rv.Field(i).Interface()
	}
	return out, nil
}

func fieldName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("param")
	if tag == "-" {
		return "", true
	}
	if tag == "" {
		return strings.ToLower(sf.Name), false
	}
	// Tag options after a comma are irrelevant for resolution.
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func shapeOf(t reflect.Type) Shape {
	if t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8 {
		return ShapeList
	}
	return ShapeSingleton
}

// decodeLiteral interprets a default tag literal as JSON, falling back to the
// raw string, mirroring how form field values are decoded.
func decodeLiteral(literal string) any {
	var v any
	if err := json.Unmarshal([]byte(literal), &v); err != nil {
		return literal
	}
	return v
}
