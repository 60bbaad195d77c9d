package tms

// Snapshot is a detached deep copy of a graph, safe to read after the graph changes.
type Snapshot struct {
	Facts []Fact
	Rules []Rule

	factIdx map[ID]int
	ruleIdx map[ID]int
}

// Snapshot copies every live node in insertion order.
func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{
		Facts:   make([]Fact, len(g.facts)),
		Rules:   make([]Rule, len(g.rules)),
		factIdx: make(map[ID]int, len(g.facts)),
		ruleIdx: make(map[ID]int, len(g.rules)),
	}
	for i, f := range g.facts {
		s.Facts[i] = f.Clone()
		s.factIdx[f.ID] = i
	}
	for i, r := range g.rules {
		s.Rules[i] = r.Clone()
		s.ruleIdx[r.ID] = i
	}
	return s
}

// Fact looks up a fact by ID.
func (s *Snapshot) Fact(id ID) (Fact, bool) {
	i, ok := s.factIdx[id]
	if !ok {
		return Fact{}, false
	}
	return s.Facts[i], true
}

// Rule looks up a rule by ID.
func (s *Snapshot) Rule(id ID) (Rule, bool) {
	i, ok := s.ruleIdx[id]
	if !ok {
		return Rule{}, false
	}
	return s.Rules[i], true
}

// Describe renders a justification as "fact + rule".
func (s *Snapshot) Describe(j Justification) string {
	fact, rule := "<gone>", "<gone>"
	if f, ok := s.Fact(j.Fact); ok {
		fact = f.Statement.String()
	}
	if r, ok := s.Rule(j.Rule); ok {
		rule = r.Rule.String()
	}
	return fact + " + " + rule
}
