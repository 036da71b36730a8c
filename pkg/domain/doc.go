/*
Package domain contains the core model of the atelier design-time host.

It defines the contracts shared by every layer: components, the sites that bind
them to a container, the containers themselves, and the events raised while a
design surface is edited. The package is kept pure: no I/O, no logging and no
knowledge of how designers or services are implemented.

# Key Entities

  - Component: an opaque unit of design-time state. Identity matters, structure does not.
  - Site: binds one component to a name, a container and a private dictionary.
  - Container: an insertion-ordered set of sited components.
  - ChangeHooks / HostHooks: callbacks fired around every mutation of a host.

Optional capabilities (ExtenderProvider, Inheritable, ReflectionOnly, Disposable)
replace the attribute metadata a reflection-driven framework would consult.
*/
package domain
