/*
Package actions implements smart-tag actions for design-time components.

An action list is an ordered set of items a designer surfaces next to a
component. Lists reach the Service in two ways: they are registered directly
with Add, or they are pulled on demand from the CommandSet published on the
component's site, which exposes the "ActionLists" and "Verbs" command groups.
Verbs are wrapped into a synthetic VerbList whose items re-evaluate the verb
flags on every call.
*/
package actions
