// Package commands provides the CLI commands for the gast tool.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"martianoff/gast/internal/config"
	"martianoff/gast/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errFailed is returned when at least one unit failed; the failures have
// already been reported.
var errFailed = errors.New("compilation failed")

// session carries the settings shared by all subcommands of one run.
type session struct {
	configPath string
	debug      bool
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

// setup resolves the configuration and builds the logger.
func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(s.configPath)
	if err != nil {
		return err
	}
	if s.logLevel != "" {
		cfg.LogLevel = s.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	s.cfg, s.logger = cfg, logger
	if cfg.Path != "" {
		logger.Debug("loaded config", zap.String("path", cfg.Path))
	}
	return nil
}

// NewRootCommand builds the gast command tree.
func NewRootCommand() *cobra.Command {
	s := &session{}
	parse := newParseCommand(s)

	root := &cobra.Command{
		Use:   "gast [file.groovy...]",
		Short: "Groovy syntax tree builder",
		Long: `gast parses Groovy source files and prints their abstract syntax tree.

Usage:
  gast [file.groovy...]         Parse files (shorthand for gast parse)
  gast parse -e 'println 1'     Parse an inline script
  gast tokens file.groovy       Print the token stream
  gast version                  Print version`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			for _, a := range args {
				if !strings.HasSuffix(a, ".groovy") && !strings.HasSuffix(a, ".gvy") {
					return fmt.Errorf("unknown command %q for \"gast\"\nRun 'gast --help' for usage", a)
				}
			}
			return parse.RunE(parse, args)
		},
	}

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "Path to a YAML or TOML config file")
	root.PersistentFlags().BoolVarP(&s.debug, "debug", "d", false, "Print full error chains")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(parse)
	root.AddCommand(newTokensCommand(s))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
