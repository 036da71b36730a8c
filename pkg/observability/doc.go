/*
Package observability provides tools for monitoring design surfaces.

It includes Prometheus metrics fed by the change and host hooks of a designer
host, and structured logging hooks for auditing component changes.
*/
package observability
