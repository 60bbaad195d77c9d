package report

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/cognicore/kbase/pkg/kbase"
	"github.com/cognicore/kbase/pkg/kbase/logic"
)

func parentKB(t *testing.T) *kbase.KnowledgeBase {
	t.Helper()
	kb := kbase.New(kbase.Options{})
	err := kb.AssertAll([]logic.Sentence{
		logic.NewStatement("motherof", "ada", "bing"),
		logic.Rule{
			LHS: []logic.Statement{logic.NewStatement("motherof", "?x", "?y")},
			RHS: logic.NewStatement("parentof", "?x", "?y"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return kb
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, parentKB(t).Snapshot()); err != nil {
		t.Fatal(err)
	}

	want := `Facts (2):
  (motherof ada bing) [asserted]
  (parentof ada bing)
    <- (motherof ada bing) + ((motherof ?x ?y)) -> (parentof ?x ?y)
Rules (1):
  ((motherof ?x ?y)) -> (parentof ?x ?y) [asserted]
`
	if buf.String() != want {
		t.Errorf("Text mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, kbase.New(kbase.Options{}).Snapshot()); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Facts (0):\nRules (0):\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestExplanation(t *testing.T) {
	kb := kbase.New(kbase.Options{})
	err := kb.AssertAll([]logic.Sentence{
		logic.NewStatement("motherof", "ada", "bing"),
		logic.NewStatement("motherof", "bing", "chen"),
		logic.Rule{
			LHS: []logic.Statement{
				logic.NewStatement("motherof", "?x", "?y"),
				logic.NewStatement("motherof", "?y", "?z"),
			},
			RHS: logic.NewStatement("grandmotherof", "?x", "?z"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	exp, ok := kb.Explain(logic.NewStatement("grandmotherof", "ada", "chen"))
	if !ok {
		t.Fatal("grandmotherof ada chen should be derived")
	}

	var buf bytes.Buffer
	if err := Explanation(&buf, exp); err != nil {
		t.Fatal(err)
	}

	want := `(grandmotherof ada chen)
  fact (motherof bing chen) [asserted]
  rule ((motherof bing ?z)) -> (grandmotherof ada ?z)
    fact (motherof ada bing) [asserted]
    rule ((motherof ?x ?y) (motherof ?y ?z)) -> (grandmotherof ?x ?z) [asserted]
`
	if buf.String() != want {
		t.Errorf("Explanation mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestExplanationAlternatives(t *testing.T) {
	kb := kbase.New(kbase.Options{})
	err := kb.AssertAll([]logic.Sentence{
		logic.NewStatement("motherof", "ada", "bing"),
		logic.NewStatement("fatherof", "ada", "bing"),
		logic.Rule{
			LHS: []logic.Statement{logic.NewStatement("motherof", "?x", "?y")},
			RHS: logic.NewStatement("parentof", "?x", "?y"),
		},
		logic.Rule{
			LHS: []logic.Statement{logic.NewStatement("fatherof", "?x", "?y")},
			RHS: logic.NewStatement("parentof", "?x", "?y"),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	exp, ok := kb.Explain(logic.NewStatement("parentof", "ada", "bing"))
	if !ok {
		t.Fatal("parentof ada bing should be derived")
	}

	var buf bytes.Buffer
	if err := Explanation(&buf, exp); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n  or\n") != 1 {
		t.Errorf("expected one alternative separator:\n%s", buf.String())
	}
}

func TestExplanationCycle(t *testing.T) {
	kb := kbase.New(kbase.Options{})
	err := kb.AssertAll([]logic.Sentence{
		logic.Rule{
			LHS: []logic.Statement{logic.NewStatement("sisters", "?x", "?y")},
			RHS: logic.NewStatement("sisters", "?y", "?x"),
		},
		logic.NewStatement("sisters", "ada", "eva"),
	})
	if err != nil {
		t.Fatal(err)
	}

	exp, ok := kb.Explain(logic.NewStatement("sisters", "ada", "eva"))
	if !ok {
		t.Fatal("sisters ada eva should be live")
	}

	var buf bytes.Buffer
	if err := Explanation(&buf, exp); err != nil {
		t.Fatal(err)
	}

	want := `(sisters ada eva) [asserted]
  fact (sisters eva ada)
    fact (sisters ada eva) [asserted] [cycle]
    rule ((sisters ?x ?y)) -> (sisters ?y ?x) [asserted]
  rule ((sisters ?x ?y)) -> (sisters ?y ?x) [asserted]
`
	if buf.String() != want {
		t.Errorf("Explanation mismatch\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, parentKB(t).Snapshot()); err != nil {
		t.Fatal(err)
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		t.Fatalf("rendered page does not parse: %v", err)
	}

	rows := map[string]int{}
	var items []string
	var walk func(n *html.Node, table string)
	walk = func(n *html.Node, table string) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				for _, a := range n.Attr {
					if a.Key == "id" {
						table = a.Val
					}
				}
			case "tr":
				rows[table]++
			case "td":
				for _, a := range n.Attr {
					if a.Key == "class" && a.Val == "item" && n.FirstChild != nil {
						items = append(items, n.FirstChild.Data)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, table)
		}
	}
	walk(doc, "")

	// One header row per table.
	if rows["facts"] != 3 {
		t.Errorf("facts table has %d rows, want 3", rows["facts"])
	}
	if rows["rules"] != 2 {
		t.Errorf("rules table has %d rows, want 2", rows["rules"])
	}
	if len(items) != 3 || items[1] != "(parentof ada bing)" {
		t.Errorf("unexpected items %v", items)
	}
}

func TestHTMLEscapes(t *testing.T) {
	kb := kbase.New(kbase.Options{})
	if err := kb.Assert(logic.NewStatement("likes", "<b>ada</b>", "tea&cake")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := HTML(&buf, kb.Snapshot()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>ada") {
		t.Error("statement text was not escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;ada&lt;/b&gt;") || !strings.Contains(out, "tea&amp;cake") {
		t.Errorf("escaped text missing:\n%s", out)
	}
}
