package interpreter

import (
	"io"
	"os"

	"github.com/go-kit/log"

	"github.com/leonardinius/loxexpr/internal/loxerrors"
)

type interpreterOpts struct {
	stdout   io.Writer
	stderr   io.Writer
	reporter loxerrors.ErrReporter
	logger   log.Logger
}

var defaultInterpreterOpts = interpreterOpts{
	stdout: os.Stdout,
	stderr: os.Stderr,
	logger: log.NewNopLogger(),
}

type InterpreterOption func(*interpreterOpts)

func WithStdout(stdout io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stdout = stdout
	}
}

func WithStderr(stderr io.Writer) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.stderr = stderr
	}
}

func WithErrorReporter(r loxerrors.ErrReporter) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.reporter = r
	}
}

func WithLogger(logger log.Logger) InterpreterOption {
	return func(opts *interpreterOpts) {
		opts.logger = logger
	}
}

func newInterpreterOpts(options ...InterpreterOption) *interpreterOpts {
	opts := defaultInterpreterOpts
	for _, opt := range options {
		opt(&opts)
	}

	if opts.reporter == nil {
		opts.reporter = loxerrors.NewErrReporter(opts.stderr)
	}

	return &opts
}
