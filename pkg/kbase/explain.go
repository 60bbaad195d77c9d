package kbase

import (
	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/tms"
)

// Explanation is the derivation tree of a fact or rule.
type Explanation struct {
	Kind tms.Kind
	// Fact is set for KindFact nodes, Rule for KindRule nodes.
	Fact        logic.Statement
	Rule        logic.Rule
	Asserted bool
	// Cycle marks a node that already appears higher up the same branch.
	// It is a leaf: its derivations are not expanded again.
	Cycle       bool
	Derivations []Derivation
}

// Derivation is one justification: the rule that fired and the fact it fired on.
type Derivation struct {
	Fact *Explanation
	Rule *Explanation
}

func (e *Explanation) String() string {
	if e.Kind == tms.KindRule {
		return e.Rule.String()
	}
	return e.Fact.String()
}

// Explain builds the derivation tree for a live fact.
// Derivations can be circular (a symmetric rule supports each of its two
// facts with the other), so a node already on the current branch is
// emitted once more as a Cycle leaf and not expanded.
func (kb *KnowledgeBase) Explain(stmt logic.Statement) (*Explanation, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	f, ok := kb.graph.Fact(stmt)
	if !ok {
		return nil, false
	}
	return kb.explainFact(f, map[tms.ID]bool{}), true
}

func (kb *KnowledgeBase) explainFact(f *tms.Fact, path map[tms.ID]bool) *Explanation {
	e := &Explanation{Kind: tms.KindFact, Fact: f.Statement.Clone(), Asserted: f.Asserted}
	if path[f.ID] {
		e.Cycle = true
		return e
	}
	path[f.ID] = true
	defer delete(path, f.ID)

	e.Derivations = kb.explainSupport(f.SupportedBy, path)
	return e
}

func (kb *KnowledgeBase) explainRule(r *tms.Rule, path map[tms.ID]bool) *Explanation {
	e := &Explanation{Kind: tms.KindRule, Rule: r.Rule.Clone(), Asserted: r.Asserted}
	if path[r.ID] {
		e.Cycle = true
		return e
	}
	path[r.ID] = true
	defer delete(path, r.ID)

	e.Derivations = kb.explainSupport(r.SupportedBy, path)
	return e
}

func (kb *KnowledgeBase) explainSupport(js []tms.Justification, path map[tms.ID]bool) []Derivation {
	var out []Derivation
	for _, j := range js {
		f, okF := kb.graph.FactByID(j.Fact)
		r, okR := kb.graph.RuleByID(j.Rule)
		if !okF || !okR {
			continue
		}
		out = append(out, Derivation{Fact: kb.explainFact(f, path), Rule: kb.explainRule(r, path)})
	}
	return out
}
