package schema

import (
	"fmt"
	"reflect"
)

// Type defines the contract for property validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

type scalarType struct {
	name  string
	check func(any) bool
}

func (t *scalarType) Name() string { return t.name }

func (t *scalarType) Validate(value any) error {
	if !t.check(value) {
		return fmt.Errorf("expected %s, got %T", t.name, value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string { return "[" + t.elemType.Name() + "]" }

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := range rv.Len() {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// MapType validates string-keyed maps of a specific value type.
type MapType struct {
	elemType Type
}

func (t *MapType) Name() string { return "{" + t.elemType.Name() + "}" }

func (t *MapType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("expected map, got %T", value)
	}
	iter := rv.MapRange()
	for iter.Next() {
		if err := t.elemType.Validate(iter.Value().Interface()); err != nil {
			return fmt.Errorf("key %q: %w", iter.Key().String(), err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// String creates a string type validator.
func String() Type {
	return &scalarType{name: "string", check: func(v any) bool {
		_, ok := v.(string)
		return ok
	}}
}

// Int creates an integer type validator. Whole floats are accepted, as
// produced by JSON decoding.
func Int() Type {
	return &scalarType{name: "int", check: func(v any) bool {
		switch n := v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			return n == float64(int64(n))
		}
		return false
	}}
}

// Float creates a floating-point type validator. Integers are accepted.
func Float() Type {
	return &scalarType{name: "float", check: func(v any) bool {
		switch v.(type) {
		case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
		return false
	}}
}

// Bool creates a boolean type validator.
func Bool() Type {
	return &scalarType{name: "bool", check: func(v any) bool {
		_, ok := v.(bool)
		return ok
	}}
}

// Any accepts every value.
func Any() Type {
	return &scalarType{name: "any", check: func(any) bool { return true }}
}

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Map creates a map type validator for values of the given type.
func Map(elemType Type) Type {
	return &MapType{elemType: elemType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ParseType converts a type name to a Type.
// Supports "string", "int", "float", "bool", "any", "[T]" and "{T}".
func ParseType(typeStr string) (Type, error) {
	if n := len(typeStr); n > 2 {
		open, closing := typeStr[0], typeStr[n-1]
		if (open == '[' && closing == ']') || (open == '{' && closing == '}') {
			elem, err := ParseType(typeStr[1 : n-1])
			if err != nil {
				return nil, err
			}
			if open == '[' {
				return Slice(elem), nil
			}
			return Map(elem), nil
		}
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "any":
		return Any(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of property names to type strings into a Schema.
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}

// typeOf maps a Go type to its schema type.
func typeOf(t reflect.Type) Type {
	switch t.Kind() {
	case reflect.String:
		return String()
	case reflect.Bool:
		return Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int()
	case reflect.Float32, reflect.Float64:
		return Float()
	case reflect.Slice, reflect.Array:
		return Slice(typeOf(t.Elem()))
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return Map(typeOf(t.Elem()))
		}
	}
	return Any()
}
