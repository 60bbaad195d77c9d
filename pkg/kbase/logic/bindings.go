package logic

import "strings"

// Binding associates a variable with the constant it stands for.
type Binding struct {
	Var   string
	Value string
}

// Bindings is a consistent substitution from variables to constants.
// Order of insertion is kept for rendering.
// The zero value is an empty set ready to use.
type Bindings struct {
	list  []Binding
	index map[string]int
}

// Bind adds v -> value. It returns false if v is already bound to a different constant.
func (b *Bindings) Bind(v, value string) bool {
	if i, ok := b.index[v]; ok {
		return b.list[i].Value == value
	}
	if b.index == nil {
		b.index = make(map[string]int)
	}
	b.index[v] = len(b.list)
	b.list = append(b.list, Binding{Var: v, Value: value})
	return true
}

// Bound returns the constant bound to v.
func (b Bindings) Bound(v string) (string, bool) {
	i, ok := b.index[v]
	if !ok {
		return "", false
	}
	return b.list[i].Value, true
}

// Len returns the number of bound variables.
func (b Bindings) Len() int {
	return len(b.list)
}

// Vars returns the bound variable names in binding order.
func (b Bindings) Vars() []string {
	out := make([]string, len(b.list))
	for i, bd := range b.list {
		out[i] = bd.Var
	}
	return out
}

// List returns a copy of the bindings in binding order.
func (b Bindings) List() []Binding {
	out := make([]Binding, len(b.list))
	copy(out, b.list)
	return out
}

// Each calls fn for every binding in order.
func (b Bindings) Each(fn func(v, value string)) {
	for _, bd := range b.list {
		fn(bd.Var, bd.Value)
	}
}

// String renders "?X : ada, ?Y : bing".
func (b Bindings) String() string {
	parts := make([]string, len(b.list))
	for i, bd := range b.list {
		parts[i] = bd.Var + " : " + bd.Value
	}
	return strings.Join(parts, ", ")
}
