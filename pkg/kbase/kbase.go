// Package kbase is an in-memory rule-based reasoning engine.
//
// Facts and rules are asserted into a KnowledgeBase, which forward-chains
// eagerly: every derivable fact is materialised as soon as its premises are
// present, so Ask is a plain lookup. Each derived item records the fact and
// rule that produced it, and retracting a fact removes whatever was left
// without support.
package kbase

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cognicore/kbase/pkg/kbase/inference"
	"github.com/cognicore/kbase/pkg/kbase/inference/forward"
	"github.com/cognicore/kbase/pkg/kbase/internalerr"
	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/tms"
)

// KnowledgeBase is the main reasoning facade.
// All operations are serialised by one mutex; a retraction cascade is never interleaved
// with another operation.
type KnowledgeBase struct {
	mu     sync.Mutex
	graph  *tms.Graph
	engine inference.Engine
	log    *zap.Logger
}

// Options configures a KnowledgeBase. Zero fields get defaults.
type Options struct {
	Engine inference.Engine
	Logger *zap.Logger
	IDs    *tms.IDSource
}

// New creates an empty knowledge base
func New(opts Options) *KnowledgeBase {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	engine := opts.Engine
	if engine == nil {
		engine = forward.New(log.Named("forward"))
	}
	return &KnowledgeBase{
		graph:  tms.New(opts.IDs, log.Named("tms")),
		engine: engine,
		log:    log,
	}
}

// Answer is one successful match of an Ask query.
type Answer struct {
	Bindings logic.Bindings
	// Fact is the stored fact the query matched.
	Fact logic.Statement
}

func (a Answer) String() string {
	return a.Bindings.String()
}

// Assert adds a fact or rule and runs forward chaining to saturation.
// Asserting something already present marks it asserted and changes nothing else.
func (kb *KnowledgeBase) Assert(s logic.Sentence) error {
	if s == nil {
		return fmt.Errorf("assert: %w: nil sentence", internalerr.ErrInvalidInput)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("assert %s: %w", s, err)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	kb.log.Debug("asserting", zap.Stringer("sentence", s))
	switch s := s.(type) {
	case logic.Statement:
		kb.addFact(s, nil)
	case logic.Rule:
		kb.addRule(s, nil)
	}
	return nil
}

// AssertAll asserts sentences in order, stopping at the first invalid one.
func (kb *KnowledgeBase) AssertAll(sentences []logic.Sentence) error {
	for _, s := range sentences {
		if err := kb.Assert(s); err != nil {
			return err
		}
	}
	return nil
}

// Ask matches query against every stored fact, in insertion order.
// A malformed query yields no answers; the problem is only logged.
func (kb *KnowledgeBase) Ask(query logic.Statement) []Answer {
	if err := query.Validate(); err != nil {
		kb.log.Warn("invalid ask", zap.Stringer("query", query), zap.Error(err))
		return nil
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	var answers []Answer
	for _, f := range kb.graph.Facts() {
		if b, ok := logic.Match(query, f.Statement); ok {
			answers = append(answers, Answer{Bindings: b, Fact: f.Statement.Clone()})
		}
	}
	kb.log.Debug("ask", zap.Stringer("query", query), zap.Int("answers", len(answers)))
	return answers
}

// Retract withdraws a user assertion of stmt. See tms.Graph.Retract for the
// cascade rules, including facts kept alive by circular derivations.
// Retracting an absent fact is a no-op.
func (kb *KnowledgeBase) Retract(stmt logic.Statement) (tms.Outcome, error) {
	if err := stmt.Validate(); err != nil {
		return tms.NotFound, fmt.Errorf("retract %s: %w", stmt, err)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	out := kb.graph.Retract(stmt)
	kb.log.Debug("retracted", zap.Stringer("fact", stmt), zap.Stringer("outcome", out))
	return out, nil
}

// Contains reports whether an equal fact is live.
func (kb *KnowledgeBase) Contains(stmt logic.Statement) bool {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	_, ok := kb.graph.Fact(stmt)
	return ok
}

// Fact returns a detached copy of the live fact equal to stmt.
func (kb *KnowledgeBase) Fact(stmt logic.Statement) (tms.Fact, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	f, ok := kb.graph.Fact(stmt)
	if !ok {
		return tms.Fact{}, false
	}
	return f.Clone(), true
}

// Rule returns a detached copy of the live rule equal to rule.
func (kb *KnowledgeBase) Rule(rule logic.Rule) (tms.Rule, bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	r, ok := kb.graph.Rule(rule)
	if !ok {
		return tms.Rule{}, false
	}
	return r.Clone(), true
}

// Len returns the number of live facts and rules.
func (kb *KnowledgeBase) Len() (facts, rules int) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.graph.Len()
}

// Snapshot returns a deep copy of every live node.
func (kb *KnowledgeBase) Snapshot() *tms.Snapshot {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.graph.Snapshot()
}

// Asserted returns the user-asserted facts, then the asserted rules, in insertion order.
// Asserting them into an empty knowledge base rebuilds the same contents.
func (kb *KnowledgeBase) Asserted() []logic.Sentence {
	snap := kb.Snapshot()

	var out []logic.Sentence
	for _, f := range snap.Facts {
		if f.Asserted {
			out = append(out, f.Statement)
		}
	}
	for _, r := range snap.Rules {
		if r.Asserted {
			out = append(out, r.Rule)
		}
	}
	return out
}

func (kb *KnowledgeBase) String() string {
	snap := kb.Snapshot()

	var b strings.Builder
	b.WriteString("Knowledge Base: \n")
	for _, f := range snap.Facts {
		b.WriteString(f.Statement.String())
		b.WriteByte('\n')
	}
	for _, r := range snap.Rules {
		b.WriteString(r.Rule.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// addFact stores a fact and, if it is new, chains it against the current rules.
// j is nil for user assertions.
func (kb *KnowledgeBase) addFact(stmt logic.Statement, j *tms.Justification) {
	f, created := kb.graph.AddFact(stmt, j)
	if j != nil {
		kb.graph.Link(*j, f.ID, tms.KindFact)
	}
	if !created {
		kb.log.Debug("fact already present", zap.Stringer("fact", stmt), zap.Bool("derived", j != nil))
		return
	}

	// Rules added while chaining have already been matched against f.
	for _, r := range kb.graph.Rules() {
		kb.engine.Infer(f, r, chainer{kb})
	}
}

// addRule stores a rule and, if it is new, chains it against the current facts.
func (kb *KnowledgeBase) addRule(rule logic.Rule, j *tms.Justification) {
	r, created := kb.graph.AddRule(rule, j)
	if j != nil {
		kb.graph.Link(*j, r.ID, tms.KindRule)
	}
	if !created {
		kb.log.Debug("rule already present", zap.Stringer("rule", rule), zap.Bool("derived", j != nil))
		return
	}

	for _, f := range kb.graph.Facts() {
		kb.engine.Infer(f, r, chainer{kb})
	}
}

// chainer feeds derivations back into the knowledge base. It runs with kb.mu held.
type chainer struct {
	kb *KnowledgeBase
}

func (c chainer) DeriveFact(stmt logic.Statement, j tms.Justification) {
	c.kb.addFact(stmt, &j)
}

func (c chainer) DeriveRule(rule logic.Rule, j tms.Justification) {
	c.kb.addRule(rule, &j)
}
