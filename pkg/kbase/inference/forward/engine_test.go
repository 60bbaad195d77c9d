package forward

import (
	"testing"

	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/tms"
)

type recordingSink struct {
	facts []logic.Statement
	rules []logic.Rule
	just  []tms.Justification
}

func (s *recordingSink) DeriveFact(stmt logic.Statement, j tms.Justification) {
	s.facts = append(s.facts, stmt)
	s.just = append(s.just, j)
}

func (s *recordingSink) DeriveRule(rule logic.Rule, j tms.Justification) {
	s.rules = append(s.rules, rule)
	s.just = append(s.just, j)
}

func nodes(t *testing.T, fact logic.Statement, rule logic.Rule) (*tms.Fact, *tms.Rule) {
	t.Helper()
	g := tms.New(nil, nil)
	f, _ := g.AddFact(fact, nil)
	r, _ := g.AddRule(rule, nil)
	return f, r
}

func TestInferSinglePremise(t *testing.T) {
	f, r := nodes(t,
		logic.NewStatement("motherof", "ada", "bing"),
		logic.Rule{
			LHS: []logic.Statement{logic.NewStatement("motherof", "?x", "?y")},
			RHS: logic.NewStatement("parentof", "?x", "?y"),
		})

	sink := &recordingSink{}
	if !New(nil).Infer(f, r, sink) {
		t.Fatal("expected the rule to fire")
	}

	if len(sink.facts) != 1 || len(sink.rules) != 0 {
		t.Fatalf("derived %d facts and %d rules, want 1 and 0", len(sink.facts), len(sink.rules))
	}
	if got := sink.facts[0].String(); got != "(parentof ada bing)" {
		t.Errorf("derived %s", got)
	}
	if sink.just[0] != (tms.Justification{Fact: f.ID, Rule: r.ID}) {
		t.Errorf("justification = %+v", sink.just[0])
	}
}

func TestInferResidualRule(t *testing.T) {
	f, r := nodes(t,
		logic.NewStatement("motherof", "ada", "bing"),
		logic.Rule{
			LHS: []logic.Statement{
				logic.NewStatement("motherof", "?x", "?y"),
				logic.NewStatement("motherof", "?y", "?z"),
			},
			RHS: logic.NewStatement("grandmotherof", "?x", "?z"),
		})

	sink := &recordingSink{}
	if !New(nil).Infer(f, r, sink) {
		t.Fatal("expected a partial firing")
	}

	if len(sink.rules) != 1 {
		t.Fatalf("derived %d rules, want 1", len(sink.rules))
	}
	want := "((motherof bing ?z)) -> (grandmotherof ada ?z)"
	if got := sink.rules[0].String(); got != want {
		t.Errorf("residual = %s, want %s", got, want)
	}
	if len(r.Rule.LHS) != 2 {
		t.Error("source rule was mutated")
	}
}

func TestInferOnlyFirstPremise(t *testing.T) {
	// The fact satisfies the second premise only; left-to-right resolution ignores it.
	f, r := nodes(t,
		logic.NewStatement("sisters", "ada", "eva"),
		logic.Rule{
			LHS: []logic.Statement{
				logic.NewStatement("motherof", "?x", "?y"),
				logic.NewStatement("sisters", "?x", "?z"),
			},
			RHS: logic.NewStatement("auntof", "?z", "?y"),
		})

	sink := &recordingSink{}
	if New(nil).Infer(f, r, sink) {
		t.Error("rule should not fire on its second premise")
	}
	if len(sink.facts)+len(sink.rules) != 0 {
		t.Error("nothing should be derived")
	}
}
