package sem

import (
	"fmt"

	"minipy/pkg/lexer"
)

// NameError reports an unresolved or conflicting identifier.
type NameError struct {
	Msg string
	Pos lexer.Position
}

func (e *NameError) Error() string {
	return fmt.Sprintf("NameError: %s at %s", e.Msg, e.Pos)
}

// ArityError reports a call whose argument count does not match the
// callee's parameter count.
type ArityError struct {
	Func string
	Want int
	Got  int
	Pos  lexer.Position
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("ArityError: %s() takes %d argument(s), got %d at %s",
		e.Func, e.Want, e.Got, e.Pos)
}

// TypeUsageError reports a disallowed literal or call shape.
type TypeUsageError struct {
	Msg string
	Pos lexer.Position
}

func (e *TypeUsageError) Error() string {
	return fmt.Sprintf("TypeUsageError: %s at %s", e.Msg, e.Pos)
}
