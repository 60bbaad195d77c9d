// Package tms keeps the justification graph over facts and rules and
// retracts derived knowledge once nothing supports it any more.
package tms

import (
	"slices"

	"go.uber.org/zap"

	"github.com/cognicore/kbase/pkg/kbase/logic"
)

// Kind tells fact nodes from rule nodes.
type Kind uint8

const (
	KindFact Kind = iota + 1
	KindRule
)

func (k Kind) String() string {
	switch k {
	case KindFact:
		return "fact"
	case KindRule:
		return "rule"
	}
	return "unknown"
}

// Justification records one forward-chaining step: Rule fired against Fact.
type Justification struct {
	Fact ID
	Rule ID
}

// Support is the truth-maintenance metadata shared by facts and rules.
type Support struct {
	Asserted      bool
	SupportedBy   []Justification
	SupportsFacts []ID
	SupportsRules []ID
}

// Grounded reports whether the node still has a reason to exist.
func (s *Support) Grounded() bool {
	return s.Asserted || len(s.SupportedBy) > 0
}

func (s *Support) addJustification(j Justification) bool {
	if slices.Contains(s.SupportedBy, j) {
		return false
	}
	s.SupportedBy = append(s.SupportedBy, j)
	return true
}

func (s *Support) addEdge(child ID, kind Kind) {
	switch kind {
	case KindFact:
		if !slices.Contains(s.SupportsFacts, child) {
			s.SupportsFacts = append(s.SupportsFacts, child)
		}
	case KindRule:
		if !slices.Contains(s.SupportsRules, child) {
			s.SupportsRules = append(s.SupportsRules, child)
		}
	}
}

// dropJustifications removes every justification matching drop and reports how many went.
func (s *Support) dropJustifications(drop func(Justification) bool) int {
	before := len(s.SupportedBy)
	s.SupportedBy = slices.DeleteFunc(s.SupportedBy, drop)
	return before - len(s.SupportedBy)
}

func (s *Support) dropEdge(id ID) {
	s.SupportsFacts = slices.DeleteFunc(s.SupportsFacts, func(x ID) bool { return x == id })
	s.SupportsRules = slices.DeleteFunc(s.SupportsRules, func(x ID) bool { return x == id })
}

func (s Support) clone() Support {
	return Support{
		Asserted:      s.Asserted,
		SupportedBy:   slices.Clone(s.SupportedBy),
		SupportsFacts: slices.Clone(s.SupportsFacts),
		SupportsRules: slices.Clone(s.SupportsRules),
	}
}

// Fact is a live statement node.
type Fact struct {
	ID        ID
	Statement logic.Statement
	Support
}

// Clone returns a deep copy detached from the graph.
func (f *Fact) Clone() Fact {
	return Fact{ID: f.ID, Statement: f.Statement.Clone(), Support: f.Support.clone()}
}

// Rule is a live implication node.
type Rule struct {
	ID   ID
	Rule logic.Rule
	Support
}

// Clone returns a deep copy detached from the graph.
func (r *Rule) Clone() Rule {
	return Rule{ID: r.ID, Rule: r.Rule.Clone(), Support: r.Support.clone()}
}

// Graph owns every live fact and rule and the edges between them.
// It is not safe for concurrent use; callers serialise access.
type Graph struct {
	ids *IDSource
	log *zap.Logger

	facts    []*Fact
	factKeys map[string]*Fact
	factIDs  map[ID]*Fact

	rules    []*Rule
	ruleKeys map[string]*Rule
	ruleIDs  map[ID]*Rule
}

// New creates an empty graph. Nil arguments get defaults.
func New(ids *IDSource, log *zap.Logger) *Graph {
	if ids == nil {
		ids = NewIDSource()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Graph{
		ids:      ids,
		log:      log,
		factKeys: make(map[string]*Fact),
		factIDs:  make(map[ID]*Fact),
		ruleKeys: make(map[string]*Rule),
		ruleIDs:  make(map[ID]*Rule),
	}
}

// AddFact stores stmt. A nil justification means a user assertion.
// If an equal fact is live it is updated in place and created is false.
func (g *Graph) AddFact(stmt logic.Statement, j *Justification) (f *Fact, created bool) {
	if existing, ok := g.factKeys[stmt.Key()]; ok {
		mergeSupport(&existing.Support, j)
		return existing, false
	}

	f = &Fact{ID: g.ids.Next(), Statement: stmt.Clone()}
	mergeSupport(&f.Support, j)
	g.facts = append(g.facts, f)
	g.factKeys[stmt.Key()] = f
	g.factIDs[f.ID] = f
	return f, true
}

// AddRule stores rule with the same merge semantics as AddFact.
func (g *Graph) AddRule(rule logic.Rule, j *Justification) (r *Rule, created bool) {
	if existing, ok := g.ruleKeys[rule.Key()]; ok {
		mergeSupport(&existing.Support, j)
		return existing, false
	}

	r = &Rule{ID: g.ids.Next(), Rule: rule.Clone()}
	mergeSupport(&r.Support, j)
	g.rules = append(g.rules, r)
	g.ruleKeys[rule.Key()] = r
	g.ruleIDs[r.ID] = r
	return r, true
}

func mergeSupport(s *Support, j *Justification) {
	if j == nil {
		s.Asserted = true
		return
	}
	s.addJustification(*j)
}

// Link records that the fact and rule in j support child.
func (g *Graph) Link(j Justification, child ID, kind Kind) {
	if f, ok := g.factIDs[j.Fact]; ok {
		f.addEdge(child, kind)
	}
	if r, ok := g.ruleIDs[j.Rule]; ok {
		r.addEdge(child, kind)
	}
}

// Fact returns the live fact structurally equal to stmt.
func (g *Graph) Fact(stmt logic.Statement) (*Fact, bool) {
	f, ok := g.factKeys[stmt.Key()]
	return f, ok
}

// FactByID returns the live fact with the given ID.
func (g *Graph) FactByID(id ID) (*Fact, bool) {
	f, ok := g.factIDs[id]
	return f, ok
}

// Rule returns the live rule structurally equal to rule.
func (g *Graph) Rule(rule logic.Rule) (*Rule, bool) {
	r, ok := g.ruleKeys[rule.Key()]
	return r, ok
}

// RuleByID returns the live rule with the given ID.
func (g *Graph) RuleByID(id ID) (*Rule, bool) {
	r, ok := g.ruleIDs[id]
	return r, ok
}

// Facts returns the live facts in insertion order.
// The slice is a copy; the nodes are not.
func (g *Graph) Facts() []*Fact {
	return slices.Clone(g.facts)
}

// Rules returns the live rules in insertion order.
func (g *Graph) Rules() []*Rule {
	return slices.Clone(g.rules)
}

// Len returns the number of live facts and rules.
func (g *Graph) Len() (facts, rules int) {
	return len(g.facts), len(g.rules)
}
