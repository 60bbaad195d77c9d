package inference

import (
	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/tms"
)

// Engine performs one inference step between a fact and a rule.
// This interface allows swapping the join strategy without touching the knowledge base.
type Engine interface {
	// Infer tries to fire rule against fact and hands anything it derives to sink.
	// It reports whether the pair produced a derivation.
	Infer(fact *tms.Fact, rule *tms.Rule, sink Sink) bool
}

// Sink receives derived knowledge together with the step that justifies it.
// The knowledge base implements Sink; storing a derivation may trigger further inference.
type Sink interface {
	DeriveFact(stmt logic.Statement, j tms.Justification)
	DeriveRule(rule logic.Rule, j tms.Justification)
}
