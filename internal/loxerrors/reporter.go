package loxerrors

import (
	"fmt"
	"io"
)

// ErrReporter is the sink for lexical, syntactic and runtime errors.
//
// Scanner and parser report static errors as soon as they find them, the
// interpreter reports runtime errors. The caller inspects the flags to decide
// whether to go on with the next stage and which exit status to use.
type ErrReporter interface {
	ReportError(err error)
	ReportRuntimeError(err error)
	HadError() bool
	HadRuntimeError() bool
	Reset()
}

type errReporter struct {
	w               io.Writer
	hadError        bool
	hadRuntimeError bool
}

func NewErrReporter(w io.Writer) *errReporter {
	return &errReporter{w: w}
}

// ReportError implements ErrReporter.
func (e *errReporter) ReportError(err error) {
	e.hadError = true
	DefaultReportError(e.w, err)
}

// ReportRuntimeError implements ErrReporter.
func (e *errReporter) ReportRuntimeError(err error) {
	e.hadRuntimeError = true
	DefaultReportError(e.w, err)
}

// HadError implements ErrReporter.
func (e *errReporter) HadError() bool {
	return e.hadError
}

// HadRuntimeError implements ErrReporter.
func (e *errReporter) HadRuntimeError() bool {
	return e.hadRuntimeError
}

// Reset implements ErrReporter.
func (e *errReporter) Reset() {
	e.hadError = false
	e.hadRuntimeError = false
}

// DefaultReportError writes err on its own line.
func DefaultReportError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
}

var _ ErrReporter = (*errReporter)(nil)
