package runtime

import (
	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/parser"
)

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	if se, ok := asScriptError(err); ok {
		return errors.GetSuggestion(se.ToUserError())
	}
	return errors.GetSuggestion(err)
}

// FormatError formats an error for the terminal. Debug mode adds the error
// chain, category and stack trace.
func FormatError(err error, debug bool) string {
	if err == nil {
		return ""
	}
	if debug {
		return errors.FormatDebugError(err)
	}
	if se, ok := asScriptError(err); ok {
		return se.FormatWithUsage()
	}
	return errors.FormatByCategory(err)
}

func asScriptError(err error) (*parser.ScriptError, bool) {
	var se *parser.ScriptError
	ok := errors.As(err, &se)
	return se, ok
}
