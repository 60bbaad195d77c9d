package tms

import (
	"slices"

	"go.uber.org/zap"

	"github.com/cognicore/kbase/pkg/kbase/logic"
)

// Outcome describes what a user retraction did.
type Outcome uint8

const (
	// NotFound: no live fact matched; nothing changed.
	NotFound Outcome = iota
	// Unasserted: the fact keeps standing on its derivations but is no longer pinned.
	Unasserted
	// Unchanged: the fact was derived only and still has derivations.
	Unchanged
	// Removed: the fact and every dependant left without support are gone.
	Removed
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not found"
	case Unasserted:
		return "unasserted"
	case Unchanged:
		return "unchanged"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Retract withdraws the user's assertion of stmt.
//
// A fact that still has derivations loses only its asserted flag. A fact
// with no derivations is removed, and the removal cascades through
// everything it supported. During the cascade asserted facts and asserted
// rules are never removed; they simply lose the justifications that
// referred to removed nodes.
//
// Derivations may be circular. With ((sisters ?x ?y)) -> (sisters ?y ?x),
// (sisters ada eva) and (sisters eva ada) justify each other, so retracting
// either one only clears its asserted flag and both stay live.
func (g *Graph) Retract(stmt logic.Statement) Outcome {
	f, ok := g.factKeys[stmt.Key()]
	if !ok {
		g.log.Debug("retract: fact not found", zap.Stringer("fact", stmt))
		return NotFound
	}

	if len(f.SupportedBy) > 0 {
		if f.Asserted {
			g.log.Debug("retract: asserted fact keeps its derivations", zap.Stringer("fact", stmt))
			f.Asserted = false
			return Unasserted
		}
		g.log.Debug("retract: derived fact still supported", zap.Stringer("fact", stmt))
		return Unchanged
	}

	g.removeFact(f)
	return Removed
}

// cascadeFact re-examines a fact after one of its supporters disappeared.
func (g *Graph) cascadeFact(id ID) {
	f, ok := g.factIDs[id]
	if !ok {
		return
	}
	if f.Grounded() {
		g.log.Debug("cascade stops at fact",
			zap.Stringer("fact", f.Statement),
			zap.Bool("asserted", f.Asserted),
			zap.Int("justifications", len(f.SupportedBy)))
		return
	}
	g.removeFact(f)
}

// cascadeRule re-examines a rule after one of its supporters disappeared.
func (g *Graph) cascadeRule(id ID) {
	r, ok := g.ruleIDs[id]
	if !ok {
		return
	}
	if r.Grounded() {
		g.log.Debug("cascade stops at rule",
			zap.Stringer("rule", r.Rule),
			zap.Bool("asserted", r.Asserted),
			zap.Int("justifications", len(r.SupportedBy)))
		return
	}
	g.removeRule(r)
}

func (g *Graph) removeFact(f *Fact) {
	g.log.Debug("removing fact", zap.Stringer("fact", f.Statement))

	g.facts = slices.DeleteFunc(g.facts, func(x *Fact) bool { return x == f })
	delete(g.factKeys, f.Statement.Key())
	delete(g.factIDs, f.ID)

	g.cleanup(f.ID, func(j Justification) bool { return j.Fact == f.ID })
	g.cascade(f.Support)
}

func (g *Graph) removeRule(r *Rule) {
	g.log.Debug("removing rule", zap.Stringer("rule", r.Rule))

	g.rules = slices.DeleteFunc(g.rules, func(x *Rule) bool { return x == r })
	delete(g.ruleKeys, r.Rule.Key())
	delete(g.ruleIDs, r.ID)

	g.cleanup(r.ID, func(j Justification) bool { return j.Rule == r.ID })
	g.cascade(r.Support)
}

// cleanup strips every edge that mentions a removed node from the live graph.
// It must run before the cascade so each dependant sees its reduced support.
func (g *Graph) cleanup(removed ID, drop func(Justification) bool) {
	for _, f := range g.facts {
		f.dropJustifications(drop)
		f.dropEdge(removed)
	}
	for _, r := range g.rules {
		r.dropJustifications(drop)
		r.dropEdge(removed)
	}
}

func (g *Graph) cascade(s Support) {
	for _, id := range s.SupportsFacts {
		g.cascadeFact(id)
	}
	for _, id := range s.SupportsRules {
		g.cascadeRule(id)
	}
}
