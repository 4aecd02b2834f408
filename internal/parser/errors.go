package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/dashkit/internal/errors"
)

// ScriptError reports a malformed script line.
type ScriptError struct {
	Line    int
	Input   string
	Message string
	Usage   string
	Cause   error
}

func (e *ScriptError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("line %d: %s '%s'", e.Line, e.Message, e.Input)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}

// NewScriptError creates a script error with the expected form of the command.
func NewScriptError(line int, input, message, usage string) *ScriptError {
	return &ScriptError{
		Line:    line,
		Input:   input,
		Message: message,
		Usage:   usage,
	}
}

// NewUnknownCommandError reports a line starting with an unknown command word.
func NewUnknownCommandError(line int, word string) *ScriptError {
	names := make([]string, len(Ops))
	for i, op := range Ops {
		names[i] = string(op)
	}
	return &ScriptError{
		Line:    line,
		Input:   word,
		Message: "unknown command",
		Usage:   strings.Join(names, ", "),
		Cause:   errors.ErrUnknownCommand,
	}
}

func usage(cmd Command, form string) *ScriptError {
	return NewScriptError(cmd.Line, cmd.Raw, "malformed command", form)
}

func tooManyArgs(cmd Command, form string) *ScriptError {
	return NewScriptError(cmd.Line, cmd.Raw, "too many arguments", form)
}

// FormatWithUsage returns the error message followed by the expected form.
func (e *ScriptError) FormatWithUsage() string {
	if e.Usage == "" {
		return e.Error()
	}
	return e.Error() + "\n\nUsage: " + e.Usage
}

// ToUserError converts a ScriptError to a UserError for consistent handling.
func (e *ScriptError) ToUserError() *errors.UserError {
	suggestion := ""
	if e.Usage != "" {
		suggestion = "Expected: " + e.Usage
	}
	ue := errors.NewUserErrorWithField("script", e.Input, fmt.Sprintf("line %d: %s", e.Line, e.Message), suggestion)
	return ue.WithCause(e.Cause)
}
