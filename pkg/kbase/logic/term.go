// Package logic holds the statement model shared by the knowledge base:
// terms, statements, rules, binding sets, and the matcher that relates them.
package logic

import "strings"

// VarMarker is the leading character that distinguishes a variable name.
const VarMarker = '?'

// Term is a single argument of a statement: a constant or a variable.
type Term struct {
	Name string
}

// Const returns a constant term.
func Const(name string) Term {
	return Term{Name: name}
}

// Var returns a variable term, adding the marker when it is missing.
func Var(name string) Term {
	if !IsVariable(name) {
		name = string(VarMarker) + name
	}
	return Term{Name: name}
}

// IsVariable reports whether name carries the variable marker.
func IsVariable(name string) bool {
	return len(name) > 1 && name[0] == VarMarker
}

// IsVariable reports whether the term is a variable.
func (t Term) IsVariable() bool {
	return IsVariable(t.Name)
}

func (t Term) String() string {
	return t.Name
}

// validName rejects names the reader could never round-trip.
func validName(name string) bool {
	if name == "" || name == string(VarMarker) {
		return false
	}
	return !strings.ContainsAny(name, "() \t\r\n")
}
