// Package toolbox provides the stock component types of a design surface and
// their designers: Form (root), Panel, Button, Label, ToolTip (extender) and Timer.
package toolbox
