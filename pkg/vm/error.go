package vm

import (
	"errors"
	"fmt"

	"minipy/pkg/codegen"
)

// Fault is a fatal runtime error: stack underflow, unresolved label,
// malformed integer input, or an arithmetic fault. Already-emitted
// output is left intact.
type Fault struct {
	Msg    string
	Offset int
	Op     codegen.Opcode
}

func (e *Fault) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("VmFault: %s", e.Msg)
	}
	return fmt.Sprintf("VmFault: %s at offset %d (%s)", e.Msg, e.Offset, e.Op)
}

var ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
