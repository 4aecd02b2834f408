package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// maxStackDepth bounds the frames kept by WithStack.
const maxStackDepth = 32

// StackFrame is one caller recorded by WithStack.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

func (f StackFrame) String() string {
	return fmt.Sprintf("%s\n\t%s:%d", f.Function, f.File, f.Line)
}

// ContextError annotates a cause with what dashkit was doing when it failed.
// Context may be empty when only a stack was attached.
type ContextError struct {
	Context string
	Cause   error
	Stack   []StackFrame
}

func (e *ContextError) Error() string {
	switch {
	case e.Context == "":
		return e.Cause.Error()
	case e.Cause == nil:
		return e.Context
	default:
		return e.Context + ": " + e.Cause.Error()
	}
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext prefixes err with the action that failed, e.g. "load a.yaml".
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return &ContextError{Context: context, Cause: err}
}

// WithStack records the caller's stack on err so --debug can print it. The
// message is unchanged. An error that already carries a stack is returned
// as is.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if len(GetStack(err)) > 0 {
		return err
	}
	return &ContextError{Cause: err, Stack: callers(3)}
}

func callers(skip int) []StackFrame {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") &&
			!strings.HasPrefix(frame.Function, "testing.") {
			stack = append(stack, StackFrame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})
		}
		if !more {
			return stack
		}
	}
}

// GetStack returns the first stack recorded in err's chain.
func GetStack(err error) []StackFrame {
	for err != nil {
		if ce, ok := err.(*ContextError); ok && len(ce.Stack) > 0 {
			return ce.Stack
		}
		err = errors.Unwrap(err)
	}
	return nil
}

// Chain lists the distinct messages from err down to its root cause. Stack
// annotations repeat their cause's message and are folded into it.
func Chain(err error) []string {
	var chain []string
	for err != nil {
		msg := err.Error()
		if len(chain) == 0 || chain[len(chain)-1] != msg {
			chain = append(chain, msg)
		}
		err = errors.Unwrap(err)
	}
	return chain
}
