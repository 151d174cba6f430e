package encoder

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/PilPara/Assembler/parser"
)

// EncodingError carries the source position of the instruction or directive
// that failed to encode, alongside the underlying cause.
type EncodingError struct {
	Pos     parser.Position
	Message string
	cause   error
}

func (e *EncodingError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Pos, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *EncodingError) Unwrap() error {
	return e.cause
}

// Wrap attaches pos/message context to err, always capturing a fresh stack
// trace via github.com/pkg/errors.WithStack.
func Wrap(pos parser.Position, err error, message string) error {
	if err == nil {
		return nil
	}
	return &EncodingError{Pos: pos, Message: message, cause: errors.WithStack(err)}
}
