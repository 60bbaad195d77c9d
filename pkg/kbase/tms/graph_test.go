package tms

import (
	"testing"

	"github.com/cognicore/kbase/pkg/kbase/logic"
)

func stmt(pred string, args ...string) logic.Statement {
	return logic.NewStatement(pred, args...)
}

func rule(rhs logic.Statement, lhs ...logic.Statement) logic.Rule {
	return logic.Rule{LHS: lhs, RHS: rhs}
}

// derive adds child as if rule had fired against fact.
func derive(g *Graph, f *Fact, r *Rule, child logic.Statement) *Fact {
	j := Justification{Fact: f.ID, Rule: r.ID}
	c, _ := g.AddFact(child, &j)
	g.Link(j, c.ID, KindFact)
	return c
}

func TestAddFactMerges(t *testing.T) {
	g := New(nil, nil)

	f, created := g.AddFact(stmt("motherof", "ada", "bing"), nil)
	if !created || !f.Asserted {
		t.Fatalf("first add: created=%v asserted=%v", created, f.Asserted)
	}

	again, created := g.AddFact(stmt("motherof", "ada", "bing"), nil)
	if created || again != f {
		t.Fatal("re-assertion must return the live fact")
	}
	if n, _ := g.Len(); n != 1 {
		t.Errorf("fact count = %d, want 1", n)
	}
}

func TestAddFactJustificationMerge(t *testing.T) {
	g := New(nil, nil)
	r, _ := g.AddRule(rule(stmt("parentof", "?x", "?y"), stmt("motherof", "?x", "?y")), nil)
	m, _ := g.AddFact(stmt("motherof", "ada", "bing"), nil)

	j := Justification{Fact: m.ID, Rule: r.ID}
	p, created := g.AddFact(stmt("parentof", "ada", "bing"), &j)
	if !created || p.Asserted || len(p.SupportedBy) != 1 {
		t.Fatalf("derived fact: created=%v asserted=%v support=%d", created, p.Asserted, len(p.SupportedBy))
	}

	g.AddFact(stmt("parentof", "ada", "bing"), &j)
	if len(p.SupportedBy) != 1 {
		t.Errorf("duplicate justification recorded: %d", len(p.SupportedBy))
	}

	g.AddFact(stmt("parentof", "ada", "bing"), nil)
	if !p.Asserted {
		t.Error("plain re-assertion should set asserted")
	}
}

func TestRetractNotFound(t *testing.T) {
	g := New(nil, nil)
	if got := g.Retract(stmt("motherof", "ada", "bing")); got != NotFound {
		t.Errorf("Retract = %v, want %v", got, NotFound)
	}
}

func TestRetractRemovesAndCascades(t *testing.T) {
	g := New(nil, nil)
	r, _ := g.AddRule(rule(stmt("parentof", "?x", "?y"), stmt("motherof", "?x", "?y")), nil)
	m, _ := g.AddFact(stmt("motherof", "ada", "bing"), nil)
	derive(g, m, r, stmt("parentof", "ada", "bing"))

	if got := g.Retract(stmt("motherof", "ada", "bing")); got != Removed {
		t.Fatalf("Retract = %v, want %v", got, Removed)
	}
	if _, ok := g.Fact(stmt("parentof", "ada", "bing")); ok {
		t.Error("derived fact should be gone")
	}
	if len(r.SupportsFacts) != 0 {
		t.Errorf("rule keeps a dangling forward edge: %v", r.SupportsFacts)
	}
	if got := g.Retract(stmt("motherof", "ada", "bing")); got != NotFound {
		t.Errorf("second Retract = %v, want %v", got, NotFound)
	}
}

func TestRetractKeepsAlternateSupport(t *testing.T) {
	g := New(nil, nil)
	r, _ := g.AddRule(rule(stmt("related", "?x"), stmt("knows", "?x", "?y")), nil)
	a, _ := g.AddFact(stmt("knows", "ada", "bing"), nil)
	b, _ := g.AddFact(stmt("knows", "ada", "chen"), nil)
	derive(g, a, r, stmt("related", "ada"))
	c := derive(g, b, r, stmt("related", "ada"))

	g.Retract(stmt("knows", "ada", "bing"))
	got, ok := g.Fact(stmt("related", "ada"))
	if !ok {
		t.Fatal("fact with alternate support was removed")
	}
	if got != c || len(got.SupportedBy) != 1 {
		t.Errorf("support after first retraction = %d, want 1", len(got.SupportedBy))
	}

	g.Retract(stmt("knows", "ada", "chen"))
	if _, ok := g.Fact(stmt("related", "ada")); ok {
		t.Error("fact without support should be removed")
	}
}

func TestRetractAssertedAndDerived(t *testing.T) {
	g := New(nil, nil)
	r, _ := g.AddRule(rule(stmt("parentof", "?x", "?y"), stmt("motherof", "?x", "?y")), nil)
	m, _ := g.AddFact(stmt("motherof", "ada", "bing"), nil)
	p := derive(g, m, r, stmt("parentof", "ada", "bing"))
	g.AddFact(stmt("parentof", "ada", "bing"), nil)

	if got := g.Retract(stmt("parentof", "ada", "bing")); got != Unasserted {
		t.Fatalf("Retract = %v, want %v", got, Unasserted)
	}
	if p.Asserted {
		t.Error("asserted flag should be cleared")
	}
	if got := g.Retract(stmt("parentof", "ada", "bing")); got != Unchanged {
		t.Errorf("second Retract = %v, want %v", got, Unchanged)
	}
	if _, ok := g.Fact(stmt("parentof", "ada", "bing")); !ok {
		t.Error("derived fact must survive")
	}
}

func TestCascadeSparesAssertedNodes(t *testing.T) {
	g := New(nil, nil)
	r, _ := g.AddRule(rule(stmt("parentof", "?x", "?y"), stmt("motherof", "?x", "?y")), nil)
	m, _ := g.AddFact(stmt("motherof", "ada", "bing"), nil)
	p := derive(g, m, r, stmt("parentof", "ada", "bing"))
	p.Asserted = true

	g.Retract(stmt("motherof", "ada", "bing"))

	got, ok := g.Fact(stmt("parentof", "ada", "bing"))
	if !ok {
		t.Fatal("asserted fact removed by cascade")
	}
	if !got.Asserted || len(got.SupportedBy) != 0 {
		t.Errorf("asserted=%v support=%d, want true/0", got.Asserted, len(got.SupportedBy))
	}
}

func TestCascadeRemovesResidualRules(t *testing.T) {
	g := New(nil, nil)
	base, _ := g.AddRule(rule(stmt("grandmotherof", "?x", "?z"),
		stmt("motherof", "?x", "?y"), stmt("motherof", "?y", "?z")), nil)
	m, _ := g.AddFact(stmt("motherof", "ada", "bing"), nil)

	j := Justification{Fact: m.ID, Rule: base.ID}
	residual, _ := g.AddRule(rule(stmt("grandmotherof", "ada", "?z"), stmt("motherof", "bing", "?z")), &j)
	g.Link(j, residual.ID, KindRule)

	m2, _ := g.AddFact(stmt("motherof", "bing", "chen"), nil)
	derive(g, m2, residual, stmt("grandmotherof", "ada", "chen"))

	g.Retract(stmt("motherof", "ada", "bing"))

	if _, ok := g.RuleByID(residual.ID); ok {
		t.Error("residual rule should be removed")
	}
	if _, ok := g.Fact(stmt("grandmotherof", "ada", "chen")); ok {
		t.Error("fact derived from the residual rule should be removed")
	}
	if _, ok := g.RuleByID(base.ID); !ok {
		t.Error("asserted rule must survive")
	}
	if len(m2.SupportsFacts) != 0 {
		t.Errorf("surviving fact keeps a dangling edge: %v", m2.SupportsFacts)
	}
}

func TestIDSourceMonotonic(t *testing.T) {
	ids := NewIDSource()
	prev := ids.Next()
	for i := 0; i < 100; i++ {
		next := ids.Next()
		if next.Compare(prev) <= 0 {
			t.Fatalf("id %s not after %s", next, prev)
		}
		prev = next
	}
}
