// Package reader turns the textual fact/rule syntax into logic sentences.
//
//	fact: (motherof ada bing)
//	rule: ((motherof ?x ?y) (motherof ?y ?z)) -> (grandmotherof ?x ?z)
//
// Blank lines and lines starting with '#' or ';' are ignored.
package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/kbase/pkg/kbase/internalerr"
	"github.com/cognicore/kbase/pkg/kbase/logic"
)

const (
	factPrefix = "fact:"
	rulePrefix = "rule:"
	arrow      = "->"
)

// ReadFile reads every sentence in the file at path.
func ReadFile(path string) ([]logic.Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sentences, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sentences, nil
}

// Read parses one sentence per non-comment line.
func Read(r io.Reader) ([]logic.Sentence, error) {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	var out []logic.Sentence
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if IsComment(line) {
			continue
		}

		s, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		out = append(out, s)
	}

	return out, scanner.Err()
}

// IsComment reports whether a trimmed line carries no sentence.
func IsComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";")
}

// ParseLine parses a "fact:" or "rule:" line.
func ParseLine(line string) (logic.Sentence, error) {
	line = strings.TrimSpace(line)
	switch {
	case hasPrefixFold(line, factPrefix):
		return ParseStatement(line[len(factPrefix):])
	case hasPrefixFold(line, rulePrefix):
		return ParseRule(line[len(rulePrefix):])
	}
	return nil, fmt.Errorf("%w: expected %q or %q: %s", internalerr.ErrInvalidInput, factPrefix, rulePrefix, line)
}

// ParseStatement parses "(pred a1 a2 ...)".
func ParseStatement(text string) (logic.Statement, error) {
	node, err := parseOne(text)
	if err != nil {
		return logic.Statement{}, err
	}
	return toStatement(node)
}

// ParseRule parses "((p1 ...) (p2 ...)) -> (c ...)".
// A single premise may also be written without the outer list.
func ParseRule(text string) (logic.Rule, error) {
	lhsText, rhsText, ok := strings.Cut(text, arrow)
	if !ok {
		return logic.Rule{}, fmt.Errorf("%w: rule without %q: %s", internalerr.ErrInvalidInput, arrow, strings.TrimSpace(text))
	}

	lhsNode, err := parseOne(lhsText)
	if err != nil {
		return logic.Rule{}, fmt.Errorf("premises: %w", err)
	}
	rhs, err := ParseStatement(rhsText)
	if err != nil {
		return logic.Rule{}, fmt.Errorf("conclusion: %w", err)
	}

	var lhs []logic.Statement
	if len(lhsNode.list) > 0 && !lhsNode.list[0].isList {
		s, err := toStatement(lhsNode)
		if err != nil {
			return logic.Rule{}, fmt.Errorf("premises: %w", err)
		}
		lhs = append(lhs, s)
	} else {
		for i, n := range lhsNode.list {
			s, err := toStatement(n)
			if err != nil {
				return logic.Rule{}, fmt.Errorf("premise %d: %w", i+1, err)
			}
			lhs = append(lhs, s)
		}
	}

	rule := logic.Rule{LHS: lhs, RHS: rhs}
	if err := rule.Validate(); err != nil {
		return logic.Rule{}, err
	}
	return rule, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func toStatement(n node) (logic.Statement, error) {
	if !n.isList || len(n.list) == 0 {
		return logic.Statement{}, fmt.Errorf("%w: expected a non-empty list, got %s", internalerr.ErrInvalidInput, n)
	}
	for _, c := range n.list {
		if c.isList {
			return logic.Statement{}, fmt.Errorf("%w: nested term in %s", internalerr.ErrInvalidInput, n)
		}
	}

	args := make([]string, len(n.list)-1)
	for i, c := range n.list[1:] {
		args[i] = c.atom
	}
	s := logic.NewStatement(n.list[0].atom, args...)
	if err := s.Validate(); err != nil {
		return logic.Statement{}, err
	}
	return s, nil
}
