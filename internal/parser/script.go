// Package parser turns dashkit session scripts into commands.
//
// A script holds one command per line. Blank lines and text after '#' are
// ignored. Tokens may be quoted with single or double quotes.
//
//	new [ID]
//	select ID
//	delete ID
//	add KEY [to PARENT] [unique]
//	remove KEY [from PARENT]
//	move up|down KEY [in PARENT]
//	undo | redo
//	edit on|off
//	target KEY|none
//	next-key KEY
//	list | show [ID] | status
package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/manav03panchal/dashkit/internal/model"
)

// Op names a script command.
type Op string

const (
	OpNew     Op = "new"
	OpSelect  Op = "select"
	OpDelete  Op = "delete"
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpMove    Op = "move"
	OpUndo    Op = "undo"
	OpRedo    Op = "redo"
	OpEdit    Op = "edit"
	OpTarget  Op = "target"
	OpNextKey Op = "next-key"
	OpList    Op = "list"
	OpShow    Op = "show"
	OpStatus  Op = "status"
)

// Ops lists every script command in the order they are documented.
var Ops = []Op{
	OpNew, OpSelect, OpDelete, OpAdd, OpRemove, OpMove, OpUndo, OpRedo,
	OpEdit, OpTarget, OpNextKey, OpList, OpShow, OpStatus,
}

// IsMutation reports whether op changes the current dashboard's widgets.
func (op Op) IsMutation() bool {
	switch op {
	case OpAdd, OpRemove, OpMove:
		return true
	}
	return false
}

// Command is a single parsed script line.
type Command struct {
	Line int    // 1-based line number in the script
	Raw  string // the line as written, comment stripped
	Op   Op

	DashboardID     string
	WidgetKey       model.WidgetKey
	ParentWidgetKey model.WidgetKey
	Direction       model.Direction
	Unique          bool // add: reject keys already placed
	On              bool // edit: on/off
}

// Keywords that introduce a parent container.
var parentKeywords = map[Op]string{
	OpAdd:    "to",
	OpRemove: "from",
	OpMove:   "in",
}

// Parse parses a whole script. It stops at the first malformed line.
func Parse(r io.Reader) ([]Command, error) {
	var commands []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		cmd, ok, err := ParseLine(line, scanner.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			commands = append(commands, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}

// ParseString parses a script held in memory.
func ParseString(script string) ([]Command, error) {
	return Parse(strings.NewReader(script))
}

// ParseLine parses one script line. It reports false for blank and comment
// lines.
func ParseLine(line int, text string) (Command, bool, error) {
	tokens := tokenize(stripComment(text))
	if len(tokens) == 0 {
		return Command{}, false, nil
	}

	cmd := Command{
		Line: line,
		Raw:  strings.TrimSpace(stripComment(text)),
		Op:   Op(strings.ToLower(tokens[0])),
	}
	args := tokens[1:]

	switch cmd.Op {
	case OpNew:
		if len(args) > 1 {
			return cmd, false, tooManyArgs(cmd, "new [ID]")
		}
		if len(args) == 1 {
			cmd.DashboardID = args[0]
		}

	case OpSelect, OpDelete:
		if len(args) != 1 {
			return cmd, false, usage(cmd, string(cmd.Op)+" ID")
		}
		cmd.DashboardID = args[0]

	case OpShow:
		if len(args) > 1 {
			return cmd, false, tooManyArgs(cmd, "show [ID]")
		}
		if len(args) == 1 {
			cmd.DashboardID = args[0]
		}

	case OpAdd:
		if len(args) > 0 && strings.EqualFold(args[len(args)-1], "unique") {
			cmd.Unique = true
			args = args[:len(args)-1]
		}
		if err := parseWidgetRef(&cmd, args, "add KEY [to PARENT] [unique]"); err != nil {
			return cmd, false, err
		}

	case OpRemove:
		if err := parseWidgetRef(&cmd, args, "remove KEY [from PARENT]"); err != nil {
			return cmd, false, err
		}

	case OpMove:
		if len(args) == 0 {
			return cmd, false, usage(cmd, "move up|down KEY [in PARENT]")
		}
		dir, ok := model.ParseDirection(args[0])
		if !ok {
			return cmd, false, NewScriptError(cmd.Line, args[0], "invalid direction", "move up|down KEY [in PARENT]")
		}
		cmd.Direction = dir
		if err := parseWidgetRef(&cmd, args[1:], "move up|down KEY [in PARENT]"); err != nil {
			return cmd, false, err
		}

	case OpEdit:
		if len(args) != 1 {
			return cmd, false, usage(cmd, "edit on|off")
		}
		on, ok := parseSwitch(args[0])
		if !ok {
			return cmd, false, NewScriptError(cmd.Line, args[0], "expected on or off", "edit on|off")
		}
		cmd.On = on

	case OpTarget:
		if len(args) != 1 {
			return cmd, false, usage(cmd, "target KEY|none")
		}
		if !strings.EqualFold(args[0], "none") {
			cmd.WidgetKey = model.WidgetKey(args[0])
		}

	case OpNextKey:
		if len(args) != 1 {
			return cmd, false, usage(cmd, "next-key KEY")
		}
		cmd.WidgetKey = model.WidgetKey(args[0])

	case OpUndo, OpRedo, OpList, OpStatus:
		if len(args) != 0 {
			return cmd, false, tooManyArgs(cmd, string(cmd.Op))
		}

	default:
		return cmd, false, NewUnknownCommandError(line, tokens[0])
	}

	return cmd, true, nil
}

// parseWidgetRef reads "KEY [keyword PARENT]" into cmd.
func parseWidgetRef(cmd *Command, args []string, form string) error {
	keyword := parentKeywords[cmd.Op]
	switch {
	case len(args) == 1:
		cmd.WidgetKey = model.WidgetKey(args[0])
	case len(args) == 3 && strings.EqualFold(args[1], keyword):
		cmd.WidgetKey = model.WidgetKey(args[0])
		cmd.ParentWidgetKey = model.WidgetKey(args[2])
	default:
		return usage(*cmd, form)
	}
	return nil
}

func parseSwitch(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, true
	case "off", "false", "no", "0":
		return false, true
	}
	return false, false
}

// stripComment drops everything from the first '#' outside quotes.
func stripComment(text string) string {
	inQuote := false
	quoteChar := rune(0)
	for i, r := range text {
		switch {
		case (r == '"' || r == '\'') && !inQuote:
			inQuote = true
			quoteChar = r
		case r == quoteChar && inQuote:
			inQuote = false
			quoteChar = 0
		case r == '#' && !inQuote:
			return text[:i]
		}
	}
	return text
}

// tokenize splits input into tokens, preserving quoted strings.
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range input {
		if (r == '"' || r == '\'') && !inQuote {
			inQuote = true
			quoteChar = r
			continue
		}
		if r == quoteChar && inQuote {
			inQuote = false
			quoteChar = 0
			continue
		}
		if (r == ' ' || r == '\t') && !inQuote {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}
