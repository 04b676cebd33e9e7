package vm

// Frame is the activation record for one function invocation.
type Frame struct {
	FuncName string           // function name for this frame
	Locals   map[string]int64 // parameter/local bindings
	ReturnTo int              // instruction offset to resume in the caller
	Caller   *Frame           // caller's frame, for depth/debugging only
}
