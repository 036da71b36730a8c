/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing design documents.

It allows developers to describe component trees using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for generated
designs, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	b := dsl.New("shop")

	form := b.Root("toolbox.Form", "Orders").Set("text", "Orders")

	body := form.Add("toolbox.Panel", "body").Set("dock", "fill")
	body.Add("toolbox.Button", "ok").Set("text", "OK")
	body.AddTo("footer", "toolbox.Label", "status")

	form.Add("toolbox.Timer", "clock").Set("interval", 500)

	doc, err := b.Build()
	// ... pass doc to document.Load or Studio.Load
*/
package dsl
