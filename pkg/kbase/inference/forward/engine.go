package forward

import (
	"go.uber.org/zap"

	"github.com/cognicore/kbase/pkg/kbase/inference"
	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/tms"
)

// Engine is a forward-chaining step that resolves premises strictly left to right.
// A rule with several premises fires partially, leaving a residual rule
// over the remaining premises with the new bindings applied.
type Engine struct {
	log *zap.Logger
}

// New creates a forward-chaining engine
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

var _ inference.Engine = (*Engine)(nil)

// Infer matches the first premise of rule against fact.
func (e *Engine) Infer(fact *tms.Fact, rule *tms.Rule, sink inference.Sink) bool {
	lhs := rule.Rule.LHS
	if len(lhs) == 0 {
		// Rules are validated on the way in; an empty body can only be a bug.
		panic("forward: rule without premises: " + rule.Rule.String())
	}

	e.log.Debug("attempting inference",
		zap.Stringer("fact", fact.Statement),
		zap.Stringer("rule", rule.Rule))

	bindings, ok := logic.Match(lhs[0], fact.Statement)
	if !ok {
		return false
	}

	j := tms.Justification{Fact: fact.ID, Rule: rule.ID}

	if len(lhs) == 1 {
		derived := logic.Instantiate(rule.Rule.RHS, bindings)
		e.log.Debug("derived fact", zap.Stringer("fact", derived), zap.Stringer("bindings", bindings))
		sink.DeriveFact(derived, j)
		return true
	}

	residual := logic.InstantiateRule(logic.Rule{LHS: lhs[1:], RHS: rule.Rule.RHS}, bindings)
	e.log.Debug("derived rule", zap.Stringer("rule", residual), zap.Stringer("bindings", bindings))
	sink.DeriveRule(residual, j)
	return true
}
