// Package schema describes the design properties of component types.
//
// A Schema maps property names to types. FromStruct derives one from the
// "design" tags of a component struct, and Validate checks a property map
// against it, as sent by a property editor:
//
//	s := schema.FromStruct(reflect.TypeFor[toolbox.Button](), "design")
//	// {"enabled": bool, "text": string}
//
//	err := schema.Validate(s, map[string]any{"text": 42})
//	// field "text": expected string, got int (got int)
//
// Schemas marshal to JSON as a map of property names to type strings
// ("string", "int", "[string]", "{string}", "any").
package schema
