package services

import (
	"fmt"
	"strings"
)

// Action names a guarded operation on a document (send, accept, convert, ...).
type Action string

// Machine is a small transition table shared by quotations, invoices, and
// collection reminders. Each action permits a fixed set of source statuses
// and leads to exactly one target status; applying an action from any other
// status yields a StateError with a guard message naming the action.
type Machine struct {
	entity string // plural, lowercase, used in guard messages
	rules  map[Action]rule
}

type rule struct {
	froms []string
	to    string
	verb  string // past-participle phrase, e.g. "marked sent"
}

func NewMachine(entity string) *Machine {
	return &Machine{entity: entity, rules: make(map[Action]rule)}
}

// Permit registers an action: it may run from any of froms and moves the
// document to to. verb appears in the guard error ("only pending reminders
// can be <verb>").
func (m *Machine) Permit(action Action, verb, to string, froms ...string) *Machine {
	m.rules[action] = rule{froms: froms, to: to, verb: verb}
	return m
}

// Apply validates current against the action's permitted sources and returns
// the target status. The document itself is not touched; callers assign the
// returned status and stamp any side-effect fields.
func (m *Machine) Apply(action Action, current string) (string, error) {
	r, ok := m.rules[action]
	if !ok {
		return "", fmt.Errorf("unknown %s action %q", m.entity, action)
	}
	for _, from := range r.froms {
		if from == current {
			return r.to, nil
		}
	}
	return "", &StateError{
		Entity:  m.entity,
		Action:  action,
		Current: current,
		msg:     fmt.Sprintf("only %s %s can be %s", humanStates(r.froms), m.entity, r.verb),
	}
}

// Can reports whether the action is legal from current.
func (m *Machine) Can(action Action, current string) bool {
	_, err := m.Apply(action, current)
	return err == nil
}

func humanStates(states []string) string {
	lowered := make([]string, len(states))
	for i, s := range states {
		lowered[i] = strings.ToLower(s)
	}
	return strings.Join(lowered, " or ")
}
