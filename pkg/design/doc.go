/*
Package design implements the design-time host.

A Host is the top-level container of a design surface. It sites components,
elects the root component, resolves designers through a ports.DesignerProvider,
batches edits in LIFO transactions and fans change notifications out to
subscribers. Every sited component gets a Site, which carries its name, a
private dictionary, site-local services and any nested containers the
component owns.

Service lookups walk an explicit chain: the host's own services, services
added to the host, the parent provider passed with WithParent, and finally the
fallback defaults (extender registry and WithFallbackService entries).

The host is single-goroutine and reentrant. Handlers run inline and may mutate
the host; dispatch always iterates a snapshot of the subscribers.

Use NewSurface to obtain a host. Surface.Dispose is the only teardown path.
*/
package design
