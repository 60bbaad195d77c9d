package logic

// Match decides whether pattern and target can be made syntactically equal.
// Either side may contain variables. On success the returned Bindings hold
// every variable that ended up tied to a constant; variables equated only
// with other variables are resolved internally and not reported.
func Match(pattern, target Statement) (Bindings, bool) {
	if pattern.Predicate != target.Predicate || len(pattern.Terms) != len(target.Terms) {
		return Bindings{}, false
	}

	u := newUnifier()
	for i := range pattern.Terms {
		a, b := pattern.Terms[i], target.Terms[i]
		var ok bool
		switch {
		case a.IsVariable() && b.IsVariable():
			ok = u.union(a.Name, b.Name)
		case a.IsVariable():
			ok = u.bind(a.Name, b.Name)
		case b.IsVariable():
			ok = u.bind(b.Name, a.Name)
		default:
			ok = a.Name == b.Name
		}
		if !ok {
			return Bindings{}, false
		}
	}
	return u.out, true
}

// unifier is the per-call state of Match: variable equivalence classes,
// the constant (if any) each class is tied to, and the output bindings.
// It is never shared, so a failed match leaves nothing behind.
type unifier struct {
	parent  map[string]string
	members map[string][]string
	value   map[string]string
	out     Bindings
}

func newUnifier() *unifier {
	return &unifier{
		parent:  make(map[string]string),
		members: make(map[string][]string),
		value:   make(map[string]string),
	}
}

func (u *unifier) find(v string) string {
	p, ok := u.parent[v]
	if !ok {
		u.parent[v] = v
		u.members[v] = []string{v}
		return v
	}
	if p == v {
		return v
	}
	root := u.find(p)
	u.parent[v] = root
	return root
}

func (u *unifier) bind(v, c string) bool {
	r := u.find(v)
	if bound, ok := u.value[r]; ok {
		return bound == c
	}
	u.value[r] = c
	for _, m := range u.members[r] {
		u.out.Bind(m, c)
	}
	return true
}

func (u *unifier) union(a, b string) bool {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return true
	}
	va, aBound := u.value[ra]
	vb, bBound := u.value[rb]
	if aBound && bBound && va != vb {
		return false
	}

	// Merge rb into ra; members joining a bound class inherit its constant.
	switch {
	case aBound && !bBound:
		for _, m := range u.members[rb] {
			u.out.Bind(m, va)
		}
	case bBound && !aBound:
		u.value[ra] = vb
		for _, m := range u.members[ra] {
			u.out.Bind(m, vb)
		}
	}
	u.parent[rb] = ra
	u.members[ra] = append(u.members[ra], u.members[rb]...)
	delete(u.members, rb)
	delete(u.value, rb)
	return true
}

// Instantiate returns a copy of s with every bound variable replaced by its constant.
func Instantiate(s Statement, b Bindings) Statement {
	out := s.Clone()
	for i, t := range out.Terms {
		if !t.IsVariable() {
			continue
		}
		if c, ok := b.Bound(t.Name); ok {
			out.Terms[i] = Const(c)
		}
	}
	return out
}

// InstantiateRule applies Instantiate to every premise and the conclusion of r.
func InstantiateRule(r Rule, b Bindings) Rule {
	lhs := make([]Statement, len(r.LHS))
	for i, p := range r.LHS {
		lhs[i] = Instantiate(p, b)
	}
	return Rule{LHS: lhs, RHS: Instantiate(r.RHS, b)}
}
