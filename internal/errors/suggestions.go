package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrDashboardNotFound:  "Use 'dashkit list' to see the known dashboards.",
	ErrDuplicateDashboard: "Every dashboardId in a layout file must be unique.",
	ErrEmptyDashboardID:   "Give the dashboard an id, or use 'new' without arguments to generate one.",
	ErrInvalidDirection:   "Use 'move up KEY' or 'move down KEY'.",
	ErrInvalidWidgetKey:   "Widget keys cannot be empty or contain control characters.",
	ErrInvalidLayoutFile:  "Run 'dashkit validate' to check the layout file.",
	ErrLayoutFileNotFound: "Pass --layouts with an existing file, or omit it to start from a blank dashboard.",
	ErrScriptNotFound:     "Pass a script path, or '-' to read the script from stdin.",
	ErrUnknownCommand:     "Script commands: new, select, delete, add, remove, move, undo, redo, edit, target, next-key, list, show, status.",
	ErrMutationRejected:   "Drop --stop-on-reject to keep going after a rejected change.",
	ErrPermissionDenied:   "Check the permissions of the layout file and its directory.",
	ErrLayoutLocked:       "Wait for the other dashkit run to finish, then try again.",
}

// GetSuggestion returns a suggestion for an error, if available.
// A UserError's own suggestion takes precedence over the sentinel table.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
