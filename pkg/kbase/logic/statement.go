package logic

import (
	"fmt"
	"strings"

	"github.com/cognicore/kbase/pkg/kbase/internalerr"
)

// Sentence is either a Statement (a fact) or a Rule.
// The set of implementations is closed.
type Sentence interface {
	Key() string
	String() string
	Validate() error
	sentence()
}

// Statement is a predicate applied to an ordered list of terms.
// Statements are values: methods never modify the receiver's terms.
type Statement struct {
	Predicate string
	Terms     []Term
}

// NewStatement builds a statement from raw names, treating names with
// the variable marker as variables.
func NewStatement(predicate string, args ...string) Statement {
	terms := make([]Term, len(args))
	for i, a := range args {
		terms[i] = Term{Name: a}
	}
	return Statement{Predicate: predicate, Terms: terms}
}

func (Statement) sentence() {}

// Arity returns the number of terms.
func (s Statement) Arity() int {
	return len(s.Terms)
}

// Equal reports syntactic equality, variable names included.
func (s Statement) Equal(o Statement) bool {
	if s.Predicate != o.Predicate || len(s.Terms) != len(o.Terms) {
		return false
	}
	for i := range s.Terms {
		if s.Terms[i] != o.Terms[i] {
			return false
		}
	}
	return true
}

// Key is the canonical form used for deduplication.
func (s Statement) Key() string {
	return s.String()
}

func (s Statement) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(s.Predicate)
	for _, t := range s.Terms {
		b.WriteByte(' ')
		b.WriteString(t.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// Validate checks that the statement is well formed.
func (s Statement) Validate() error {
	if !validName(s.Predicate) || IsVariable(s.Predicate) {
		return fmt.Errorf("%w: bad predicate %q", internalerr.ErrInvalidInput, s.Predicate)
	}
	for i, t := range s.Terms {
		if !validName(t.Name) {
			return fmt.Errorf("%w: bad term %d in %s", internalerr.ErrInvalidInput, i, s.Predicate)
		}
	}
	return nil
}

// Variables returns the distinct variable names in order of first appearance.
func (s Statement) Variables() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range s.Terms {
		if t.IsVariable() && !seen[t.Name] {
			seen[t.Name] = true
			out = append(out, t.Name)
		}
	}
	return out
}

// IsGround reports whether the statement contains no variables.
func (s Statement) IsGround() bool {
	for _, t := range s.Terms {
		if t.IsVariable() {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no memory with s.
func (s Statement) Clone() Statement {
	terms := make([]Term, len(s.Terms))
	copy(terms, s.Terms)
	return Statement{Predicate: s.Predicate, Terms: terms}
}

// Rule is an implication from a conjunction of premises to a conclusion.
type Rule struct {
	LHS []Statement
	RHS Statement
}

func (Rule) sentence() {}

// Equal reports syntactic equality of premises and conclusion.
func (r Rule) Equal(o Rule) bool {
	if len(r.LHS) != len(o.LHS) || !r.RHS.Equal(o.RHS) {
		return false
	}
	for i := range r.LHS {
		if !r.LHS[i].Equal(o.LHS[i]) {
			return false
		}
	}
	return true
}

// Key is the canonical form used for deduplication.
func (r Rule) Key() string {
	return r.String()
}

func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range r.LHS {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	b.WriteString(r.RHS.String())
	return b.String()
}

// Validate checks that the rule has premises and that every statement is well formed.
func (r Rule) Validate() error {
	if len(r.LHS) == 0 {
		return fmt.Errorf("%w: rule %s has no premises", internalerr.ErrInvalidInput, r.RHS)
	}
	for _, p := range r.LHS {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return r.RHS.Validate()
}

// Clone returns a copy that shares no memory with r.
func (r Rule) Clone() Rule {
	lhs := make([]Statement, len(r.LHS))
	for i, p := range r.LHS {
		lhs[i] = p.Clone()
	}
	return Rule{LHS: lhs, RHS: r.RHS.Clone()}
}
