package measurement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInputFormat is matched by every *InputFormatError.
var ErrInputFormat = errors.New("input format error")

// InputFormatError reports a measurement source that can not be parsed.
// Row and Column are 1-based, zero when they do not apply.
type InputFormatError struct {
	Path   string
	Row    int
	Column int
	Reason string
	Err    error
}

func (e *InputFormatError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("row %d", e.Row))
	}
	if e.Column > 0 {
		parts = append(parts, fmt.Sprintf("column %d", e.Column))
	}
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(parts) == 0 {
		return msg
	}
	return strings.Join(parts, ", ") + ": " + msg
}

func (e *InputFormatError) Is(target error) bool {
	return target == ErrInputFormat
}

func (e *InputFormatError) Unwrap() error {
	return e.Err
}
