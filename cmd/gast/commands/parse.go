package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"martianoff/gast/gasterr"
	"martianoff/gast/internal/batch"
	"martianoff/gast/internal/builder"
	"martianoff/gast/internal/dump"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// evalUnitName names the unit built from -e.
const evalUnitName = "script_from_command_line"

type parseOptions struct {
	eval    string
	defines []string
	format  string
	spans   bool
	workers int
}

func newParseCommand(s *session) *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file.groovy...]",
		Short: "Parse Groovy sources and print their syntax trees",
		Long: `Parse Groovy sources and print the abstract syntax tree of each.

Examples:
  gast parse Main.groovy Util.groovy       # Text trees on stdout
  gast parse -e 'def x = 1'                # Inline script
  gast parse --format yaml --spans A.groovy
  gast parse -D mode=strict A.groovy       # Defines echoed in the header`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, s, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.eval, "eval", "e", "", "Parse the given script text")
	cmd.Flags().StringArrayVarP(&opts.defines, "define", "D", nil, "Define name=value, repeatable")
	cmd.Flags().StringVar(&opts.format, "format", "", "Dump format: text or yaml")
	cmd.Flags().BoolVar(&opts.spans, "spans", false, "Print node spans")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Units built concurrently")
	return cmd
}

func runParse(cmd *cobra.Command, s *session, opts *parseOptions, args []string) error {
	cfg := s.cfg
	for _, d := range opts.defines {
		if err := cfg.Define(d); err != nil {
			return err
		}
	}
	if opts.format != "" {
		cfg.DumpFormat = opts.format
	}
	if cmd.Flags().Changed("spans") {
		cfg.ShowSpans = opts.spans
	}
	if opts.workers != 0 {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var units []*builder.SourceUnit
	if opts.eval != "" {
		units = append(units, builder.NewSourceUnit(evalUnitName, opts.eval))
	}
	fileUnits, readErr := batch.ReadFiles(args)
	units = append(units, fileUnits...)
	if len(units) == 0 && readErr == nil {
		return errors.New("no input: pass files or -e <script>")
	}

	compiler := batch.New(builder.NewFactory(s.logger, cfg.DebugTokens), cfg.Workers, s.logger)
	results, _ := compiler.Compile(context.Background(), units)

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	dumpOpts := dump.Options{Spans: cfg.ShowSpans, Defines: cfg.Defines}
	failed := readErr != nil
	if readErr != nil {
		reportError(errOut, readErr, s.debug)
	}
	for _, r := range results {
		for _, diag := range r.Unit.Errors.Errors() {
			fmt.Fprintf(errOut, "warning: %v\n", diag)
		}
		if r.Err != nil {
			failed = true
			reportError(errOut, r.Err, s.debug)
			continue
		}
		if err := dump.Write(out, cfg.DumpFormat, r.Module, dumpOpts); err != nil {
			return err
		}
	}
	s.logger.Debug("parse finished", zap.Int("units", len(units)), zap.Bool("failed", failed))
	if failed {
		return errFailed
	}
	return nil
}

// reportError prints err. Without debug only the innermost messages are
// shown, one per line, prefixed by the unit; with debug every layer of
// the chain is printed with its type.
func reportError(w io.Writer, err error, debug bool) {
	if debug {
		for depth, e := 0, err; e != nil; depth, e = depth+1, errors.Unwrap(e) {
			fmt.Fprintf(w, "%*s%T: %v\n", depth*2, "", e, e)
			if multi, ok := e.(*gasterr.MultiError); ok {
				for _, inner := range multi.Errors {
					fmt.Fprintf(w, "%*s%T: %v\n", depth*2+2, "", inner, inner)
				}
				break
			}
		}
		return
	}

	var failed *gasterr.CompilationFailedError
	if !errors.As(err, &failed) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	var multi *gasterr.MultiError
	if errors.As(failed.Cause, &multi) {
		for _, inner := range multi.Errors {
			fmt.Fprintf(w, "%s: %v\n", failed.Unit, inner)
		}
		return
	}
	fmt.Fprintf(w, "%s: %v\n", failed.Unit, failed.Cause)
}
