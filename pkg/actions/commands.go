package actions

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
)

// Command group names understood by CommandSet implementations.
const (
	CommandActionLists = "ActionLists"
	CommandVerbs       = "Verbs"
)

// CommandSet is published as a site service by designers that expose commands.
type CommandSet interface {
	// GetCommands returns the commands of the named group, or nil.
	GetCommands(name string) []any
}

// CommandSetType is the service key of CommandSet.
var CommandSetType = reflect.TypeFor[CommandSet]()

// ServiceType is the service key under which a Service registers itself.
var ServiceType = reflect.TypeFor[*Service]()

// ActionLists returns the action lists of the set, skipping nil entries.
func ActionLists(cs CommandSet) []List {
	if cs == nil {
		return nil
	}
	var lists []List
	for _, cmd := range cs.GetCommands(CommandActionLists) {
		if isNil(cmd) {
			continue
		}
		if l, ok := cmd.(List); ok {
			lists = append(lists, l)
		}
	}
	return lists
}

// Verbs returns the verbs of the set, skipping nil entries.
func Verbs(cs CommandSet) []*Verb {
	if cs == nil {
		return nil
	}
	var verbs []*Verb
	for _, cmd := range cs.GetCommands(CommandVerbs) {
		if v, ok := cmd.(*Verb); ok && v != nil {
			verbs = append(verbs, v)
		}
	}
	return verbs
}

// StaticCommandSet is a CommandSet over fixed verbs and lists.
type StaticCommandSet struct {
	Lists     []List
	VerbItems []*Verb
}

func (s *StaticCommandSet) GetCommands(name string) []any {
	switch name {
	case CommandActionLists:
		if s.Lists == nil {
			return nil
		}
		out := make([]any, len(s.Lists))
		for i, l := range s.Lists {
			out[i] = l
		}
		return out
	case CommandVerbs:
		if s.VerbItems == nil {
			return nil
		}
		out := make([]any, len(s.VerbItems))
		for i, v := range s.VerbItems {
			out[i] = v
		}
		return out
	}
	return nil
}

func lookupCommandSet(c domain.Component) CommandSet {
	site := c.Site()
	if site == nil {
		return nil
	}
	cs, _ := domain.Lookup[CommandSet](site)
	return cs
}
