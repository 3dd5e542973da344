package commands

import (
	"errors"
	"fmt"

	"martianoff/gast/internal/parser"

	"github.com/antlr4-go/antlr/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTokensCommand(s *session) *cobra.Command {
	var eval string
	var hidden bool
	cmd := &cobra.Command{
		Use:   "tokens [file.groovy]",
		Short: "Print the token stream of a Groovy source",
		Long: `Print one line per token: line, start:stop offsets, type and text.

Examples:
  gast tokens Main.groovy
  gast tokens -e 'def x = 1'
  gast tokens --hidden Main.groovy     # include comments`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input antlr.CharStream
			var name string
			switch {
			case eval != "":
				input, name = antlr.NewInputStream(eval), evalUnitName
			case len(args) == 1:
				fs, err := antlr.NewFileStream(args[0])
				if err != nil {
					return err
				}
				input, name = fs, args[0]
			default:
				return errors.New("no input: pass a file or -e <script>")
			}

			listener := &parser.GastErrorListener{}
			all := parser.NewLexer(input, listener).AllTokens()
			var tokens []antlr.Token
			for _, t := range all {
				if hidden || t.GetChannel() == antlr.TokenDefaultChannel {
					tokens = append(tokens, t)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), parser.Dump(tokens))
			s.logger.Debug("tokenized", zap.String("unit", name), zap.Int("tokens", len(all)))

			if len(listener.Errors) > 0 {
				for _, err := range listener.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
				}
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&eval, "eval", "e", "", "Tokenize the given script text")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Include hidden-channel tokens")
	return cmd
}
