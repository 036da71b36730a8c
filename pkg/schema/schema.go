package schema

import (
	"reflect"
	"sort"
	"strings"
)

// Schema is a map of property names to their expected types.
type Schema map[string]Type

// FromStruct derives a schema from the exported fields of t (or the struct t
// points to), named by tag. Fields tagged "-" and embedded fields are skipped.
func FromStruct(t reflect.Type, tag string) Schema {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	s := make(Schema)
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		s[name] = typeOf(f.Type)
	}
	return s
}

// Validate checks the properties present in data against the schema.
// Properties are optional; keys the schema does not define are errors.
// Errors are reported in key order.
func Validate(schema Schema, data map[string]any) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		value := data[key]
		fieldType, ok := schema[key]
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "not defined in schema"})
			continue
		}
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
