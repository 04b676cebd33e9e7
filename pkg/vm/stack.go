package vm

// operandStack holds the integers expressions evaluate through.
type operandStack struct {
	a []int64
}

func newOperandStack() *operandStack {
	return &operandStack{a: make([]int64, 0, 16)}
}

// Push adds a value to the top of the stack
func (s *operandStack) Push(v int64) {
	s.a = append(s.a, v)
}

// Pop removes and returns the top value of the stack
func (s *operandStack) Pop() (int64, bool) {
	if len(s.a) == 0 {
		return 0, false
	}

	v := s.a[len(s.a)-1]
	s.a = s.a[:len(s.a)-1]
	return v, true
}

// Peek returns the top value of the stack without removing it
func (s *operandStack) Peek() (int64, bool) {
	if len(s.a) == 0 {
		return 0, false
	}

	return s.a[len(s.a)-1], true
}

// Depth returns the number of values on the stack
func (s *operandStack) Depth() int {
	return len(s.a)
}
