package cmd_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/leonardinius/loxexpr/cmd"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runApp(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	stdout := new(strings.Builder)
	stderr := new(strings.Builder)
	app := cmd.NewLoxApp(
		cmd.WithStdin(strings.NewReader(stdin)),
		cmd.WithStdout(stdout),
		cmd.WithStderr(stderr),
	)

	code := app.Main(args)
	return code, stdout.String(), stderr.String()
}

func writeScript(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.lox")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o600))
	return path
}

func TestEval(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{name: "value", args: []string{"-e", "1 + 2 * 3"}, code: cmd.ExitOK, stdout: "7\n"},
		{name: "string", args: []string{"--eval", `"foo" + "bar"`}, code: cmd.ExitOK, stdout: "foobar\n"},
		{name: "print ast", args: []string{"--print-ast", "sexpr", "-e", "1 + 2 * 3"}, code: cmd.ExitOK, stdout: "(+ 1 (* 2 3))\n7\n"},
		{name: "print rpn", args: []string{"--print-ast=rpn", "-e", "(1 + 2) * 3"}, code: cmd.ExitOK, stdout: "1 2 + 3 *\n9\n"},
		{name: "print ast quotes strings", args: []string{"--print-ast", "sexpr", "-e", `"a" + "b"`}, code: cmd.ExitOK, stdout: "(+ \"a\" \"b\")\nab\n"},
		{
			name:   "print tokens",
			args:   []string{"--print-tokens", "-e", "nil"},
			code:   cmd.ExitOK,
			stdout: "{Type: NIL, Lexeme: \"nil\", Literal: <nil>, Line: 1}\n{Type: EOF, Lexeme: \"\", Literal: <nil>, Line: 1}\nnil\n",
		},
		{
			name:   "parse error",
			args:   []string{"-e", "(1 + 2"},
			code:   cmd.ExitDataErr,
			stderr: "[line 1] Error at end: Expect ')' after expression.\n",
		},
		{
			name:   "scan error",
			args:   []string{"-e", "1 # 2"},
			code:   cmd.ExitDataErr,
			stderr: "[line 1] Error: Unexpected character. '#'\n",
		},
		{
			name:   "unterminated string",
			args:   []string{"-e", `"abc`},
			code:   cmd.ExitDataErr,
			stderr: "[line 1] Error: Unterminated string.\n",
		},
		{
			name:   "runtime error",
			args:   []string{`--eval=-"x"`},
			code:   cmd.ExitSoftware,
			stderr: "Operand must be a number.\n[line 1]\n",
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runApp(t, "", tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.stdout, stdout)
			assert.Equal(t, tc.stderr, stderr)
		})
	}
}

func TestRunFile(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name   string
		script string
		code   int
		stdout string
		stderr string
	}{
		{
			name:   "statements",
			script: "var a = 1;\nvar b = a + 2;\nprint b;\nprint \"done\";\nb;\n",
			code:   cmd.ExitOK,
			stdout: "3\ndone\n",
		},
		{
			name:   "parse error skips evaluation",
			script: "print 1;\nprint ;\nprint 2 3;\n",
			code:   cmd.ExitDataErr,
			stderr: "[line 2] Error at ';': Expect expression.\n[line 3] Error at '3': Expect ';' after print value.\n",
		},
		{
			name:   "runtime error stops script",
			script: "print 1;\nprint 2 < \"3\";\nprint 3;\n",
			code:   cmd.ExitSoftware,
			stdout: "1\n",
			stderr: "Operands must be numbers.\n[line 2]\n",
		},
		{
			name:   "unterminated string",
			script: "print 1;\n\"never closed",
			code:   cmd.ExitDataErr,
			stderr: "[line 2] Error: Unterminated string.\n",
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runApp(t, "", writeScript(t, tc.script))
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.stdout, stdout)
			assert.Equal(t, tc.stderr, stderr)
		})
	}
}

func TestRunFileMissing(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runApp(t, "", filepath.Join(t.TempDir(), "missing.lox"))
	assert.Equal(t, cmd.ExitNoInput, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "missing.lox")
}

func TestUsage(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		args []string
		err  string
	}{
		{name: "too many scripts", args: []string{"a.lox", "b.lox"}, err: "accepts at most 1 arg(s), received 2"},
		{name: "eval with script", args: []string{"-e", "1", "a.lox"}, err: "usage error: --eval does not take a script"},
		{name: "unknown printer", args: []string{"--print-ast", "tree", "-e", "1"}, err: `unknown AST printer: "tree"`},
		{name: "unknown log level", args: []string{"--log-level", "loud", "-e", "1"}, err: `unknown log level: "loud"`},
		{name: "unknown flag", args: []string{"--bogus"}, err: "unknown flag: --bogus"},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runApp(t, "", tc.args...)
			assert.Equal(t, cmd.ExitUsage, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tc.err)
			assert.Contains(t, stderr, "Usage: loxexpr [script] [flags]")
		})
	}
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name   string
		stdin  string
		stdout string
		stderr string
	}{
		{
			name:   "echo values",
			stdin:  "1 + 2\n\"a\" + \"b\";\nprint 3\n",
			stdout: "3\nab\n3\n",
		},
		{
			name:   "variables live for one line",
			stdin:  "var a = 2; a * a\na\n",
			stdout: "4\n",
			stderr: "Undefined variable 'a'.\n[line 1]\n",
		},
		{
			name:   "errors do not end session",
			stdin:  "(1 +\n-nil\n7\n",
			stdout: "7\n",
			stderr: "[line 1] Error at end: Expect expression.\nOperand must be a number.\n[line 1]\n",
		},
		{
			name:   "empty line ends session",
			stdin:  "1\n\n2\n",
			stdout: "1\n",
		},
		{
			name:  "eof without newline",
			stdin: "",
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, stdout, stderr := runApp(t, tc.stdin)
			assert.Equal(t, cmd.ExitOK, code)
			assert.Equal(t, tc.stdout, stdout)
			assert.Equal(t, tc.stderr, stderr)
		})
	}
}

func TestDebugLogging(t *testing.T) {
	t.Parallel()

	code, stdout, stderr := runApp(t, "", "--log-level", "debug", "-e", "1")
	assert.Equal(t, cmd.ExitOK, code)
	assert.Equal(t, "1\n", stdout)
	assert.Contains(t, stderr, `level=debug`)
	assert.Contains(t, stderr, `msg=scanned tokens=2`)
	assert.Contains(t, stderr, `msg=evaluated`)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout := new(strings.Builder)
	stderr := new(strings.Builder)
	app := cmd.NewLoxApp(cmd.WithStdout(stdout), cmd.WithStderr(stderr))

	code := app.MainContext(ctx, []string{writeScript(t, "print 1;")})
	assert.Equal(t, cmd.ExitSoftware, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "context canceled\n", stderr.String())
}

func TestInfoLoggingLine(t *testing.T) {
	t.Parallel()

	code, _, stderr := runApp(t, "", "--log-level", "info", writeScript(t, "print 1;\nprint -nil;"))
	assert.Equal(t, cmd.ExitSoftware, code)
	assert.Contains(t, stderr, `level=info`)
	assert.Contains(t, stderr, `msg="unit failed" line=2`)
}

func TestRunFileFromFs(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/scripts/hello.lox", []byte(`print "hello";`), 0o644))

	stdout := new(strings.Builder)
	stderr := new(strings.Builder)
	app := cmd.NewLoxApp(cmd.WithFs(fs), cmd.WithStdout(stdout), cmd.WithStderr(stderr))

	assert.Equal(t, cmd.ExitOK, app.Main([]string{"/scripts/hello.lox"}))
	assert.Equal(t, "hello\n", stdout.String())
	assert.Empty(t, stderr.String())

	assert.Equal(t, cmd.ExitNoInput, app.Main([]string{"/scripts/missing.lox"}))
}
