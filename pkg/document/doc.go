// Package document reads design documents and moves them in and out of a host.
//
// A document is a tree of component specs. The root spec becomes the host's
// root component and its children are sited directly in the host. Children of
// any other component are sited in that component's default nested container,
// and named containers map to named nested containers.
//
//	namespace: demo
//	root:
//	  type: toolbox.Form
//	  name: Form1
//	  children:
//	    - type: toolbox.Panel
//	      name: panel1
//	      children:
//	        - type: toolbox.Button
//	          name: ok
package document
