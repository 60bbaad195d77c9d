package reader

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cognicore/kbase/pkg/kbase/internalerr"
)

// node is an atom or a parenthesised list.
type node struct {
	atom   string
	list   []node
	isList bool
}

func (n node) String() string {
	if !n.isList {
		return n.atom
	}
	parts := make([]string, len(n.list))
	for i, c := range n.list {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func tokenize(text string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == '(' || r == ')':
			flush()
			toks = append(toks, string(r))
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

// parseOne parses exactly one list from text.
func parseOne(text string) (node, error) {
	toks := tokenize(text)
	if len(toks) == 0 {
		return node{}, fmt.Errorf("%w: empty expression", internalerr.ErrInvalidInput)
	}
	if toks[0] != "(" {
		return node{}, fmt.Errorf("%w: expected '(' at %q", internalerr.ErrInvalidInput, toks[0])
	}
	n, rest, err := parseList(toks[1:])
	if err != nil {
		return node{}, err
	}
	if len(rest) > 0 {
		return node{}, fmt.Errorf("%w: trailing input %q", internalerr.ErrInvalidInput, strings.Join(rest, " "))
	}
	return n, nil
}

// parseList consumes tokens after an opening paren up to its matching close.
func parseList(toks []string) (node, []string, error) {
	n := node{isList: true}
	for len(toks) > 0 {
		tok := toks[0]
		toks = toks[1:]
		switch tok {
		case ")":
			return n, toks, nil
		case "(":
			child, rest, err := parseList(toks)
			if err != nil {
				return node{}, nil, err
			}
			n.list = append(n.list, child)
			toks = rest
		default:
			n.list = append(n.list, node{atom: tok})
		}
	}
	return node{}, nil, fmt.Errorf("%w: missing ')'", internalerr.ErrInvalidInput)
}
