package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cognicore/kbase/pkg/kbase/internalerr"
	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/reader"
	"github.com/cognicore/kbase/pkg/kbase/report"
)

func (a *app) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUERY...",
		Short: "Match queries against the knowledge base",
		Long: `Each QUERY is a statement that may contain ?variables, e.g.

  kbase -f family.txt ask "(parentof ?x bing)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				query, err := reader.ParseStatement(arg)
				if err != nil {
					return fmt.Errorf("query %q: %w", arg, err)
				}
				a.printAnswers(cmd.OutOrStdout(), query)
			}
			return nil
		},
	}
}

func (a *app) retractCmd() *cobra.Command {
	var asks []string

	cmd := &cobra.Command{
		Use:   "retract FACT...",
		Short: "Retract facts and show what remains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			queries := make([]logic.Statement, len(asks))
			for i, q := range asks {
				query, err := reader.ParseStatement(q)
				if err != nil {
					return fmt.Errorf("query %q: %w", q, err)
				}
				queries[i] = query
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				stmt, err := reader.ParseStatement(arg)
				if err != nil {
					return fmt.Errorf("fact %q: %w", arg, err)
				}
				if err := a.retract(out, stmt); err != nil {
					return err
				}
			}
			for _, q := range queries {
				a.printAnswers(out, q)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&asks, "ask", nil, "Query to run after retracting (repeatable)")
	return cmd
}

func (a *app) explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain FACT",
		Short: "Show how a fact was derived",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt, err := reader.ParseStatement(args[0])
			if err != nil {
				return fmt.Errorf("fact %q: %w", args[0], err)
			}
			return a.explain(cmd.OutOrStdout(), stmt)
		},
	}
}

func (a *app) dumpCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every fact and rule with its support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dump(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, html or kb (asserted sentences only, reloadable with --file)")
	return cmd
}

func (a *app) printAnswers(w io.Writer, query logic.Statement) {
	fmt.Fprintln(w, a.palette.query("%s", query))

	answers := a.kb.Ask(query)
	if len(answers) == 0 {
		fmt.Fprintln(w, a.palette.none("  No results."))
		return
	}
	for _, ans := range answers {
		if ans.Bindings.Len() == 0 {
			fmt.Fprintln(w, a.palette.binding("  yes"))
			continue
		}
		fmt.Fprintln(w, a.palette.binding("  %s", ans))
	}
}

func (a *app) retract(w io.Writer, stmt logic.Statement) error {
	outcome, err := a.kb.Retract(stmt)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "retract %s: %s\n", stmt, a.palette.outcome("%s", outcome))
	return nil
}

func (a *app) explain(w io.Writer, stmt logic.Statement) error {
	exp, ok := a.kb.Explain(stmt)
	if !ok {
		return fmt.Errorf("%s: %w", stmt, internalerr.ErrNotFound)
	}
	return report.Explanation(w, exp)
}

func (a *app) dump(w io.Writer, format string) error {
	snap := a.kb.Snapshot()
	switch format {
	case "text":
		return report.Text(w, snap)
	case "html":
		return report.HTML(w, snap)
	case "kb":
		return reader.Write(w, a.kb.Asserted())
	}
	return fmt.Errorf("%w: unknown format %q", internalerr.ErrInvalidInput, format)
}
