package reader

import (
	"fmt"
	"strings"
)

// Error describes a fatal problem encountered while reading a document. Stack
// lists the include chain that led to the failing file, innermost first.
type Error struct {
	File  string
	Line  int
	Err   error
	Stack []string
}

func (e *Error) Error() string {
	var errMsg string
	if e.File != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", e.File, e.Line, e.Err.Error(), strings.Join(e.Stack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", e.Err.Error(), strings.Join(e.Stack, "\n"))
	}
	return strings.Trim(errMsg, "\n")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Generate an error that also includes any data in the error stack. Errors
// raised by nested documents are returned unchanged.
func (r *wavefrontReader) emitError(file string, line int, err error) error {
	if rErr, isReaderErr := err.(*Error); isReaderErr {
		return rErr
	}

	stack := make([]string, len(r.errStack))
	copy(stack, r.errStack)
	return &Error{
		File:  file,
		Line:  line,
		Err:   err,
		Stack: stack,
	}
}

// Push a frame to the error stack.
func (r *wavefrontReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *wavefrontReader) popFrame() {
	r.errStack = r.errStack[1:]
}
