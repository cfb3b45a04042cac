package lisp

import (
	"fmt"
	"io"
)

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame

	// MaxHeight limits the number of frames on the stack.  A value of zero
	// means the height is unlimited.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string // the symbol used to call the function or "lambda"
	Env  uint   // ID of the environment created for the call
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame onto s.  Push returns false, leaving s
// unmodified, if s is already at its maximum height.
func (s *CallStack) Push(name string, env uint) bool {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return false
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Env: env})
	return true
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		_n, err := fmt.Fprintf(w, "%sheight %d: %s [env %d]\n", indent, i, f.Name, f.Env)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
