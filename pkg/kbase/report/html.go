package report

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/kbase/pkg/kbase/tms"
)

// HTML writes a standalone page with one table of facts and one of rules.
func HTML(w io.Writer, snap *tms.Snapshot) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), "Knowledge Base"))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	body.AppendChild(withText(element(atom.H2), "Facts ("+strconv.Itoa(len(snap.Facts))+")"))
	facts := table("facts", "Fact", "Asserted", "Supported by")
	for _, f := range snap.Facts {
		facts.AppendChild(row(snap, f.Statement.String(), f.Support))
	}
	body.AppendChild(facts)

	body.AppendChild(withText(element(atom.H2), "Rules ("+strconv.Itoa(len(snap.Rules))+")"))
	rules := table("rules", "Rule", "Asserted", "Supported by")
	for _, r := range snap.Rules {
		rules.AppendChild(row(snap, r.Rule.String(), r.Support))
	}
	body.AppendChild(rules)

	return html.Render(w, doc)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

func table(id string, headings ...string) *html.Node {
	t := element(atom.Table, attr("id", id))
	tr := element(atom.Tr)
	for _, h := range headings {
		tr.AppendChild(withText(element(atom.Th), h))
	}
	t.AppendChild(tr)
	return t
}

func row(snap *tms.Snapshot, text string, s tms.Support) *html.Node {
	tr := element(atom.Tr)
	tr.AppendChild(withText(element(atom.Td, attr("class", "item")), text))

	asserted := "no"
	if s.Asserted {
		asserted = "yes"
	}
	tr.AppendChild(withText(element(atom.Td), asserted))

	support := element(atom.Td)
	if len(s.SupportedBy) > 0 {
		ul := element(atom.Ul)
		for _, j := range s.SupportedBy {
			ul.AppendChild(withText(element(atom.Li), snap.Describe(j)))
		}
		support.AppendChild(ul)
	}
	tr.AppendChild(support)
	return tr
}
