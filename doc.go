/*
Package atelier is the design-time infrastructure of a visual component builder.

It hosts a graph of components in a designer host: every component is sited,
named and served by a layered service locator, may own nested containers,
and is extended by a designer that contributes verbs and smart-tag action
lists. Structural edits are batched in strictly nested transactions and
broadcast to subscribers through change notifications.

# Concept

A design surface pairs a host with its action service. The host keeps the
root component, the sites of everything added to it, and the services shared
by the whole design. Designers are resolved from a registry that maps
component types to designer factories, so any Go struct embedding
domain.ComponentBase can take part in a design.

# Usage

Open a YAML or JSON design document into a surface:

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/atelier"
		"github.com/aretw0/atelier/pkg/domain"
	)

	func main() {
		surface, err := atelier.Open("form.yaml")
		if err != nil {
			log.Fatal(err)
		}
		defer surface.Dispose()

		host := surface.Host()
		fmt.Println(host.RootComponentClassName())
		for _, c := range host.Components() {
			fmt.Println(domain.NameOf(c), domain.TypeName(c))
		}
	}

Use New with options to share a registry, metrics or a logger between surfaces,
and pkg/session to keep surfaces open behind a document store.
*/
package atelier
