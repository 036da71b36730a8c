/*
Package session keeps design surfaces open on behalf of concurrent callers.

A Manager maps document IDs to live surfaces. Surfaces are single-goroutine
objects, so every access goes through a per-document lock; a distributed
locker extends that lock across replicas sharing one document store.
*/
package session
