package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/leonardinius/loxexpr/internal/interpreter"
	"github.com/leonardinius/loxexpr/internal/loxerrors"
	"github.com/leonardinius/loxexpr/internal/parser"
	"github.com/leonardinius/loxexpr/internal/scanner"
	"github.com/leonardinius/loxexpr/internal/token"
)

// Exit codes, sysexits.h flavoured.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitIOErr    = 74
)

var (
	ErrUsage          = errors.New("usage error")
	ErrUnknownPrinter = errors.New("unknown AST printer")
	ErrUnknownLevel   = errors.New("unknown log level")
)

type mode int

const (
	modeStatements mode = iota
	modeExpression
	modePrompt
)

type appOpts struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type AppOption func(*appOpts)

// WithFs sets the filesystem scripts are read from.
func WithFs(fs afero.Fs) AppOption {
	return func(opts *appOpts) {
		opts.fs = fs
	}
}

func WithStdin(stdin io.Reader) AppOption {
	return func(opts *appOpts) {
		opts.stdin = stdin
	}
}

func WithStdout(stdout io.Writer) AppOption {
	return func(opts *appOpts) {
		opts.stdout = stdout
	}
}

func WithStderr(stderr io.Writer) AppOption {
	return func(opts *appOpts) {
		opts.stderr = stderr
	}
}

type LoxApp struct {
	opts appOpts

	// flags
	eval        string
	printAst    string
	printTokens bool
	logLevel    string

	logger      log.Logger
	reporter    loxerrors.ErrReporter
	interpreter interpreter.Interpreter
	exitCode    int
}

func NewLoxApp(options ...AppOption) *LoxApp {
	opts := appOpts{fs: afero.NewOsFs(), stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range options {
		opt(&opts)
	}

	return &LoxApp{
		opts:     opts,
		logger:   log.NewNopLogger(),
		reporter: loxerrors.NewErrReporter(opts.stderr),
	}
}

// Main runs the command line and returns the process exit code.
func (app *LoxApp) Main(args []string) int {
	return app.MainContext(context.Background(), args)
}

// MainContext is Main with a context, cancelling it stops evaluation between statements.
func (app *LoxApp) MainContext(ctx context.Context, args []string) int {
	root := app.command()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(app.opts.stderr, "Error: %v\nUsage: %s\n", err, root.UseLine())
		return ExitUsage
	}

	return app.exitCode
}

func (app *LoxApp) command() *cobra.Command {
	root := &cobra.Command{
		Use:           "loxexpr [script]",
		Short:         "Scan, parse and evaluate Lox expressions.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd, args); err != nil {
				return err
			}

			switch {
			case cmd.Flags().Changed("eval"):
				app.exitCode = app.runSource(cmd.Context(), app.eval, modeExpression)
			case len(args) == 1:
				app.exitCode = app.runFile(cmd.Context(), args[0])
			default:
				app.exitCode = app.runPrompt(cmd.Context())
			}
			return nil
		},
	}

	root.SetIn(app.opts.stdin)
	root.SetOut(app.opts.stdout)
	root.SetErr(app.opts.stderr)

	flags := root.Flags()
	flags.StringVarP(&app.eval, "eval", "e", "", "evaluate a single expression and print its value")
	flags.StringVar(&app.printAst, "print-ast", "", "print each parsed tree before evaluation: sexpr or rpn")
	flags.BoolVar(&app.printTokens, "print-tokens", false, "print scanned tokens")
	flags.StringVar(&app.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	return root
}

func (app *LoxApp) setup(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("eval") && len(args) > 0 {
		return fmt.Errorf("%w: --eval does not take a script", ErrUsage)
	}

	switch app.printAst {
	case "", "sexpr", "rpn":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPrinter, app.printAst)
	}

	logger, err := newLogger(app.opts.stderr, app.logLevel)
	if err != nil {
		return err
	}

	app.logger = logger
	app.interpreter = interpreter.NewInterpreter(
		interpreter.WithStdout(app.opts.stdout),
		interpreter.WithStderr(app.opts.stderr),
		interpreter.WithErrorReporter(app.reporter),
		interpreter.WithLogger(log.With(logger, "component", "interpreter")),
	)
	return nil
}

func newLogger(w io.Writer, logLevel string) (log.Logger, error) {
	var allow level.Option
	switch strings.ToLower(logLevel) {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, logLevel)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, allow)
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}

func (app *LoxApp) runFile(ctx context.Context, scriptPath string) int {
	bytes, err := afero.ReadFile(app.opts.fs, scriptPath)
	if err != nil {
		fmt.Fprintln(app.opts.stderr, err)
		return ExitNoInput
	}

	return app.runSource(ctx, string(bytes), modeStatements)
}

func (app *LoxApp) runSource(ctx context.Context, input string, m mode) int {
	out, err := app.run(ctx, input, m)
	app.logFailure(err)
	if out != "" && m == modeExpression {
		fmt.Fprintln(app.opts.stdout, out)
	}

	switch {
	case app.reporter.HadError():
		return ExitDataErr
	case app.reporter.HadRuntimeError():
		return ExitSoftware
	case err != nil:
		fmt.Fprintln(app.opts.stderr, err)
		return ExitSoftware
	}
	return ExitOK
}

func (app *LoxApp) runPrompt(ctx context.Context) int {
	readLine, closer, err := app.lineReader()
	if err != nil {
		fmt.Fprintln(app.opts.stderr, err)
		return ExitIOErr
	}
	defer closer()

	for {
		line, err := readLine()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return ExitOK
		}
		if err != nil {
			fmt.Fprintln(app.opts.stderr, err)
			return ExitIOErr
		}
		if strings.TrimSpace(line) == "" {
			return ExitOK
		}

		// errors are already reported, the session goes on
		out, err := app.run(ctx, line, modePrompt)
		app.logFailure(err)
		if out != "" {
			fmt.Fprintln(app.opts.stdout, out)
		}
	}
}

// lineReader uses readline on a terminal and a plain line scanner otherwise.
func (app *LoxApp) lineReader() (func() (string, error), func(), error) {
	if f, ok := app.opts.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_ = level.Debug(app.logger).Log("msg", "prompt mode", "reader", "readline")

		items := make([]readline.PrefixCompleterInterface, 0, len(token.Keywords()))
		for _, keyword := range token.Keywords() {
			items = append(items, readline.PcItem(keyword))
		}

		rl, err := readline.NewEx(&readline.Config{
			Prompt:       "> ",
			AutoComplete: readline.NewPrefixCompleter(items...),
			Stdin:        f,
			Stdout:       app.opts.stdout,
			Stderr:       app.opts.stderr,
		})
		if err != nil {
			return nil, nil, err
		}
		return rl.Readline, func() { _ = rl.Close() }, nil
	}

	_ = level.Debug(app.logger).Log("msg", "prompt mode", "reader", "lines")
	lines := bufio.NewScanner(app.opts.stdin)
	readLine := func() (string, error) {
		if lines.Scan() {
			return lines.Text(), nil
		}
		if err := lines.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return readLine, func() {}, nil
}

// run takes one input unit through scanning, parsing and evaluation.
// Static errors stop the unit before evaluation.
func (app *LoxApp) run(ctx context.Context, input string, m mode) (string, error) {
	app.reporter.Reset()

	tokens, scanErr := scanner.NewScanner(input, app.reporter).Scan()
	_ = level.Debug(app.logger).Log("msg", "scanned", "tokens", len(tokens), "err", scanErr)
	if app.printTokens {
		for _, tok := range tokens {
			fmt.Fprintf(app.opts.stdout, "%#v\n", tok)
		}
	}

	if m == modeExpression {
		return app.runExpression(ctx, tokens, scanErr)
	}
	return app.runStatements(ctx, tokens, scanErr, m)
}

func (app *LoxApp) runStatements(ctx context.Context, tokens []token.Token, scanErr error, m mode) (string, error) {
	var options []parser.ParserOption
	if m == modePrompt {
		options = append(options, parser.WithImplicitSemicolon())
	}

	statements, err := parser.NewParser(tokens, app.reporter, options...).Parse()
	_ = level.Debug(app.logger).Log("msg", "parsed", "statements", len(statements), "err", err)
	if err = errors.Join(scanErr, err); err != nil {
		return "", err
	}

	if printer := app.astPrinter(); printer != nil {
		for _, stmt := range statements {
			fmt.Fprintln(app.opts.stdout, printer.PrintStmt(stmt))
		}
	}

	out, err := app.interpreter.Interpret(ctx, statements)
	_ = level.Debug(app.logger).Log("msg", "interpreted", "err", err)
	return out, err
}

// runExpression does not parse after a scan error, one mistake in a single
// expression is reported once.
func (app *LoxApp) runExpression(ctx context.Context, tokens []token.Token, scanErr error) (string, error) {
	if scanErr != nil {
		return "", scanErr
	}

	expr, err := parser.NewParser(tokens, app.reporter).ParseExpression()
	_ = level.Debug(app.logger).Log("msg", "parsed", "expression", expr != nil, "err", err)
	if err = errors.Join(scanErr, err); err != nil {
		return "", err
	}

	if printer := app.astPrinter(); printer != nil {
		fmt.Fprintln(app.opts.stdout, printer.Print(expr))
	}

	value, err := app.interpreter.Evaluate(ctx, expr)
	_ = level.Debug(app.logger).Log("msg", "evaluated", "err", err)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}

func (app *LoxApp) logFailure(err error) {
	if err == nil {
		return
	}
	if line, ok := loxerrors.LineOf(err); ok {
		_ = level.Info(app.logger).Log("msg", "unit failed", "line", line)
		return
	}
	_ = level.Info(app.logger).Log("msg", "unit failed", "err", err)
}

type astPrinter interface {
	Print(expr parser.Expr) string
	PrintStmt(stmt parser.Stmt) string
}

func (app *LoxApp) astPrinter() astPrinter {
	switch app.printAst {
	case "sexpr":
		return parser.NewAstPrinter()
	case "rpn":
		return parser.NewRPNPrinter()
	}
	return nil
}
