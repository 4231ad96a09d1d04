package loxerrors

import "errors"

// errors.Unwrap has no exported interface to assert against.
type unwrapInterface interface {
	Unwrap() error
}

type linedError interface {
	error
	Line() int
}

// LineOf returns the source line of the first scan, parse or runtime error in err's tree.
func LineOf(err error) (int, bool) {
	var lined linedError
	if errors.As(err, &lined) {
		return lined.Line(), true
	}
	return 0, false
}

var (
	_ linedError = (*ScannerError)(nil)
	_ linedError = (*ParserError)(nil)
	_ linedError = (*RuntimeError)(nil)
)
