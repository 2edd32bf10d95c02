package main

import (
	"io"
	"os"
	"strings"

	"github.com/agenthands/while/pkg/compiler/lexer"
	"github.com/agenthands/while/pkg/compiler/parser"
	"github.com/agenthands/while/pkg/config"
	"github.com/agenthands/while/pkg/logging"
	"github.com/agenthands/while/pkg/source"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what every subcommand runs with once flags and configuration have
// been resolved.
type env struct {
	conf    *config.TopLevel
	logger  *zap.Logger
	parser  *parser.Parser
	sandbox *source.Sandbox
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		e          = &env{}
	)

	cmd := &cobra.Command{
		Use:   "while",
		Short: "Tokenize, parse and evaluate WHILE expressions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Errors past this point are about the input, not the usage.
			cmd.SilenceUsage = true

			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			conf, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return e.setup(conf, cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML configuration file")
	config.RegisterFlags(flags)

	cmd.AddCommand(tokensCmd(e))
	cmd.AddCommand(parseCmd(e))
	cmd.AddCommand(evalCmd(e))
	return cmd
}

func (e *env) setup(conf *config.TopLevel, logOut io.Writer) error {
	logger, err := logging.New(logging.Config{
		Level:  conf.Logging.Level,
		Format: conf.Logging.Format,
		Writer: logOut,
	})
	if err != nil {
		return err
	}
	sandbox, err := source.NewSandbox(conf.Source.Root, conf.Source.MaxBytes)
	if err != nil {
		return err
	}

	e.conf = conf
	e.logger = logger.Named("while")
	e.parser = parser.New(
		parser.WithLogger(e.logger.Named("parser")),
		parser.WithMaxDepth(conf.Parser.MaxDepth),
	)
	e.sandbox = sandbox
	return nil
}

// addInputFlag registers -e on cmd; without it the single argument names a
// file under the source root.
func addInputFlag(cmd *cobra.Command, expr *string) {
	cmd.Flags().StringVarP(expr, "expr", "e", "", "expression source text")
}

func (e *env) input(expr string, args []string) ([]byte, error) {
	switch {
	case expr != "" && len(args) > 0:
		return nil, errors.New("give either -e or a file, not both")
	case expr != "":
		return []byte(expr), nil
	case len(args) == 1:
		return e.sandbox.ReadFile(args[0])
	}
	return nil, errors.New("nothing to read: give -e <source> or a file")
}

func (e *env) tokenize(expr string, args []string) ([]lexer.Token, error) {
	src, err := e.input(expr, args)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("tokenized", zap.Int("tokens", len(tokens)), zap.String("source", strings.TrimSpace(string(src))))
	return tokens, nil
}

func main() {
	// On failure Cobra prints the error string, so we only need to exit
	// with a non-0 status
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
