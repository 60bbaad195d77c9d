package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/reader"
)

const replHelp = `Commands:
  fact: (pred a b)              assert a fact
  rule: ((p ?x) (q ?x)) -> (r ?x)  assert a rule
  ask: (pred ?x b)              query
  retract: (pred a b)           retract a fact
  explain: (pred a b)           show a derivation tree
  dump                          list facts and rules
  help                          this text
  quit                          leave`

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive session over the loaded knowledge base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.repl(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (a *app) repl(in io.Reader, out io.Writer) error {
	facts, rules := a.kb.Len()
	fmt.Fprintf(out, "kbase: %d facts, %d rules loaded. Type \"help\" for commands, Ctrl+D to exit.\n", facts, rules)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if reader.IsComment(line) {
			continue
		}
		if quit := a.replLine(out, line); quit {
			break
		}
	}
	return scanner.Err()
}

// replLine runs one command. Errors are printed, never returned, so the session goes on.
func (a *app) replLine(out io.Writer, line string) (quit bool) {
	cmd, rest, _ := strings.Cut(line, ":")
	cmd = strings.ToLower(strings.TrimSpace(cmd))

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(out, replHelp)
	case "dump":
		err = a.dump(out, "text")
	case "fact", "rule":
		var s logic.Sentence
		if s, err = reader.ParseLine(line); err == nil {
			err = a.kb.Assert(s)
		}
		if err == nil {
			fmt.Fprintln(out, "ok")
		}
	case "ask":
		var q logic.Statement
		if q, err = reader.ParseStatement(rest); err == nil {
			a.printAnswers(out, q)
		}
	case "retract":
		var s logic.Statement
		if s, err = reader.ParseStatement(rest); err == nil {
			err = a.retract(out, s)
		}
	case "explain":
		var s logic.Statement
		if s, err = reader.ParseStatement(rest); err == nil {
			err = a.explain(out, s)
		}
	default:
		err = fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}

	if err != nil {
		a.logger.Debug("repl command failed", zap.String("line", line), zap.Error(err))
		fmt.Fprintf(out, "error: %v\n", err)
	}
	return false
}
