package logutil

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// NewError attaches additional attributes to an error.
// It is allowed to pass a nil err to create a new leaf error.
// Use it in place of fmt.Errorf("message %q: %w", "detail", err) for nicer formatting in logs.
func NewError(err error, msg string, attrs ...slog.Attr) error {
	if msg == "" {
		panic("NewError: msg must not be empty, please describe what caused the error")
	}
	return &scopedError{err: err, msg: msg, attrs: attrs}
}

type scopedError struct {
	err   error
	msg   string
	attrs []slog.Attr
}

// Error returns <msg> [with <attrib1=value> [<attrib2=value> ...]][: <err>]
func (e *scopedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.msg)
	if len(e.attrs) > 0 {
		sb.WriteString(" with ")
		for i, attr := range e.attrs {
			if i > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteString(attr.Key)
			sb.WriteRune('=')
			sb.WriteString(strconv.Quote(attr.Value.String()))
		}
	}
	if e.err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.err.Error())
	}
	return sb.String()
}

func (e *scopedError) Unwrap() error {
	return e.err
}

// Destructure collects the attributes of all scopedError entries in an error chain, outermost first.
// Only the first branch is followed for error trees created via errors.Join.
func Destructure(err error) (attrs []slog.Attr) {
	curr := err
	for {
		var sErr *scopedError
		if !errors.As(curr, &sErr) {
			return attrs
		}
		attrs = append(attrs, sErr.attrs...)
		curr = sErr.Unwrap()
	}
}
