package internal

import (
	"fmt"
	"github.com/mitchellh/reflectwalk"
	"reflect"
	"strings"
)

// ReflectField is one exported leaf field found while walking a tunable struct.
type ReflectField struct {
	Path  string // Dotted field path from the root struct (json tag names when present)
	Value reflect.Value
}

// String formats the field as "path: value" (floats with the 0.001 tuning step).
func (f ReflectField) String() string {
	switch f.Value.Kind() {
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%s: %.3f", f.Path, f.Value.Float())
	default:
		return fmt.Sprintf("%s: %v", f.Path, f.Value.Interface())
	}
}

// ReflectFields lists the exported leaf fields of the struct pointed to (or held) by v, in
// declaration order. Remember that reflect is relatively slow and results should be cached.
func ReflectFields(v interface{}) ([]ReflectField, error) {
	w := &fieldWalker{}
	if err := reflectwalk.Walk(v, w); err != nil {
		return nil, err
	}
	return w.fields, nil
}

type fieldWalker struct {
	fields []ReflectField
	names  []string // Current path (one entry per struct field being visited)
}

func (w *fieldWalker) Enter(_ reflectwalk.Location) error {
	return nil
}

func (w *fieldWalker) Exit(l reflectwalk.Location) error {
	if l == reflectwalk.StructField && len(w.names) > 0 {
		w.names = w.names[:len(w.names)-1]
	}
	return nil
}

func (w *fieldWalker) Struct(_ reflect.Value) error {
	return nil
}

func (w *fieldWalker) StructField(field reflect.StructField, value reflect.Value) error {
	if field.PkgPath != "" { // Unexported
		return reflectwalk.SkipEntry
	}
	name := field.Name
	if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
		name = tag
	}
	w.names = append(w.names, name)
	switch value.Kind() {
	case reflect.Struct, reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Array:
		// Containers are walked into, only leaves are reported
	default:
		w.fields = append(w.fields, ReflectField{Path: strings.Join(w.names, "."), Value: value})
	}
	return nil
}
