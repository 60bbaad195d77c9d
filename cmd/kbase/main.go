// Command kbase loads facts and rules into an in-memory knowledge base and
// queries, retracts, explains, or dumps them.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/kbase/internal/logging"
	"github.com/cognicore/kbase/pkg/kbase"
	"github.com/cognicore/kbase/pkg/kbase/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by every subcommand once the root has run.
type app struct {
	configPath string
	files      []string
	verbose    bool
	colorMode  string

	logger  *zap.Logger
	kb      *kbase.KnowledgeBase
	palette palette
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "kbase",
		Short: "Forward-chaining knowledge base with truth maintenance",
		Long: `kbase loads facts and rules, derives everything they imply, and keeps
track of why each derived fact holds so that retractions remove exactly
what is no longer supported.

Sources come from --config (a YAML file listing text, yaml and sqlite
sources) and any number of --file arguments in the reader syntax:

  fact: (motherof ada bing)
  rule: ((motherof ?x ?y)) -> (parentof ?x ?y)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config listing knowledge sources")
	flags.StringArrayVarP(&a.files, "file", "f", nil, "Fact/rule file to load (repeatable)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log the chaining and retraction trace")
	flags.StringVar(&a.colorMode, "color", config.ColorAuto, "Colour output: auto, always or never")

	root.AddCommand(
		a.askCmd(),
		a.retractCmd(),
		a.explainCmd(),
		a.dumpCmd(),
		a.replCmd(),
	)
	return root
}

// setup merges the config file with the flags, builds the logger and loads every source.
// Flags set on the command line win over the config file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := &config.Config{Color: config.ColorAuto}
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return fmt.Errorf("config %s: %w", a.configPath, err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = a.colorMode
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.palette = newPalette(cfg.Color, cmd.OutOrStdout())

	loader := config.Loader{Config: cfg, Files: a.files}
	sentences, err := loader.Load(contextOf(cmd))
	if err != nil {
		return err
	}

	a.kb = kbase.New(kbase.Options{Logger: logger})
	if err := a.kb.AssertAll(sentences); err != nil {
		return err
	}

	facts, rules := a.kb.Len()
	logger.Debug("knowledge base loaded",
		zap.Int("sentences", len(sentences)),
		zap.Int("facts", facts),
		zap.Int("rules", rules))
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
