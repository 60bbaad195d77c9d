// Package report renders knowledge base contents for people: a plain text
// dump, derivation trees, and an HTML page.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/kbase/pkg/kbase"
	"github.com/cognicore/kbase/pkg/kbase/tms"
)

const indent = "  "

// Text writes every live fact, then every live rule. Each item is followed by
// the justifications that support it, resolved to statements.
func Text(w io.Writer, snap *tms.Snapshot) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Facts (%d):\n", len(snap.Facts))
	for _, f := range snap.Facts {
		writeItem(&b, snap, f.Statement.String(), f.Support)
	}

	fmt.Fprintf(&b, "Rules (%d):\n", len(snap.Rules))
	for _, r := range snap.Rules {
		writeItem(&b, snap, r.Rule.String(), r.Support)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeItem(b *strings.Builder, snap *tms.Snapshot, text string, s tms.Support) {
	b.WriteString(indent)
	b.WriteString(text)
	if s.Asserted {
		b.WriteString(" [asserted]")
	}
	b.WriteByte('\n')
	for _, j := range s.SupportedBy {
		b.WriteString(indent + indent + "<- ")
		b.WriteString(snap.Describe(j))
		b.WriteByte('\n')
	}
}

// Explanation writes a derivation tree. Alternative derivations of the same
// node are separated by "or"; a node repeated from higher up its branch is
// marked "[cycle]".
func Explanation(w io.Writer, exp *kbase.Explanation) error {
	var b strings.Builder
	writeExplanation(&b, exp, "", 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeExplanation(b *strings.Builder, e *kbase.Explanation, label string, depth int) {
	b.WriteString(strings.Repeat(indent, depth))
	if label != "" {
		b.WriteString(label)
		b.WriteByte(' ')
	}
	b.WriteString(e.String())
	if e.Asserted {
		b.WriteString(" [asserted]")
	}
	if e.Cycle {
		b.WriteString(" [cycle]")
	}
	b.WriteByte('\n')

	for i, d := range e.Derivations {
		if i > 0 {
			b.WriteString(strings.Repeat(indent, depth+1))
			b.WriteString("or\n")
		}
		writeExplanation(b, d.Fact, "fact", depth+1)
		writeExplanation(b, d.Rule, "rule", depth+1)
	}
}
