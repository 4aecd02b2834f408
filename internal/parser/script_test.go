package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/dashkit/internal/model"
)

func parseOne(t *testing.T, line string) Command {
	t.Helper()
	cmd, ok, err := ParseLine(1, line)
	require.NoError(t, err)
	require.True(t, ok)
	return cmd
}

// =============================================================================
// Line Tests
// =============================================================================

func TestParseLine(t *testing.T) {
	t.Run("blank_and_comment", func(t *testing.T) {
		for _, line := range []string{"", "   ", "# just a note", "\t# indented"} {
			_, ok, err := ParseLine(1, line)
			assert.NoError(t, err)
			assert.False(t, ok, line)
		}
	})

	t.Run("new_without_id", func(t *testing.T) {
		cmd := parseOne(t, "new")
		assert.Equal(t, OpNew, cmd.Op)
		assert.Empty(t, cmd.DashboardID)
	})

	t.Run("new_with_id", func(t *testing.T) {
		cmd := parseOne(t, "new ops")
		assert.Equal(t, "ops", cmd.DashboardID)
	})

	t.Run("select_and_delete", func(t *testing.T) {
		assert.Equal(t, "ops", parseOne(t, "select ops").DashboardID)
		assert.Equal(t, OpDelete, parseOne(t, "DELETE ops").Op)
	})

	t.Run("add_root", func(t *testing.T) {
		cmd := parseOne(t, "add Chart")
		assert.Equal(t, OpAdd, cmd.Op)
		assert.Equal(t, model.WidgetKey("Chart"), cmd.WidgetKey)
		assert.Empty(t, cmd.ParentWidgetKey)
		assert.False(t, cmd.Unique)
	})

	t.Run("add_to_parent_unique", func(t *testing.T) {
		cmd := parseOne(t, "add Chart to WidgetContainer_container1 unique")
		assert.Equal(t, model.WidgetKey("Chart"), cmd.WidgetKey)
		assert.Equal(t, model.WidgetKey("WidgetContainer_container1"), cmd.ParentWidgetKey)
		assert.True(t, cmd.Unique)
	})

	t.Run("remove_from_parent", func(t *testing.T) {
		cmd := parseOne(t, "remove Chart from Row_container2")
		assert.Equal(t, OpRemove, cmd.Op)
		assert.Equal(t, model.WidgetKey("Row_container2"), cmd.ParentWidgetKey)
	})

	t.Run("move", func(t *testing.T) {
		cmd := parseOne(t, "move down Chart in Row_container2")
		assert.Equal(t, OpMove, cmd.Op)
		assert.Equal(t, model.DirectionDown, cmd.Direction)
		assert.Equal(t, model.WidgetKey("Chart"), cmd.WidgetKey)
		assert.Equal(t, model.WidgetKey("Row_container2"), cmd.ParentWidgetKey)

		assert.Equal(t, model.DirectionUp, parseOne(t, "move up Chart").Direction)
	})

	t.Run("edit_and_target", func(t *testing.T) {
		assert.True(t, parseOne(t, "edit on").On)
		assert.False(t, parseOne(t, "edit off").On)
		assert.Equal(t, model.WidgetKey("Row_container1"), parseOne(t, "target Row_container1").WidgetKey)
		assert.Empty(t, parseOne(t, "target none").WidgetKey)
	})

	t.Run("quoted_tokens", func(t *testing.T) {
		cmd := parseOne(t, `add "Sales Chart" to 'My Row'`)
		assert.Equal(t, model.WidgetKey("Sales Chart"), cmd.WidgetKey)
		assert.Equal(t, model.WidgetKey("My Row"), cmd.ParentWidgetKey)
	})

	t.Run("trailing_comment", func(t *testing.T) {
		cmd := parseOne(t, "add Chart # the big one")
		assert.Equal(t, model.WidgetKey("Chart"), cmd.WidgetKey)
		assert.Equal(t, "add Chart", cmd.Raw)
	})

	t.Run("hash_inside_quotes", func(t *testing.T) {
		cmd := parseOne(t, `add "Chart#2"`)
		assert.Equal(t, model.WidgetKey("Chart#2"), cmd.WidgetKey)
	})

	t.Run("no_arg_commands", func(t *testing.T) {
		for _, op := range []Op{OpUndo, OpRedo, OpList, OpStatus} {
			assert.Equal(t, op, parseOne(t, string(op)).Op)
		}
		assert.Equal(t, OpShow, parseOne(t, "show").Op)
		assert.Equal(t, "ops", parseOne(t, "show ops").DashboardID)
	})
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		msg  string
	}{
		{"unknown_command", "explode now", "unknown command"},
		{"select_without_id", "select", "malformed command"},
		{"add_without_key", "add", "malformed command"},
		{"add_bad_keyword", "add Chart into Row", "malformed command"},
		{"move_bad_direction", "move sideways Chart", "invalid direction"},
		{"move_without_key", "move up", "malformed command"},
		{"edit_bad_switch", "edit maybe", "expected on or off"},
		{"undo_with_args", "undo 3", "too many arguments"},
		{"new_with_two_ids", "new a b", "too many arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := ParseLine(7, tt.line)
			require.Error(t, err)
			assert.False(t, ok)

			var se *ScriptError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, 7, se.Line)
			assert.Contains(t, se.Error(), tt.msg)
			assert.True(t, strings.HasPrefix(se.Error(), "line 7:"))
		})
	}
}

// =============================================================================
// Script Tests
// =============================================================================

func TestParseScript(t *testing.T) {
	script := `
# build a dashboard
new ops
add WidgetContainer_container1
add Chart to WidgetContainer_container1

move up Chart in WidgetContainer_container1
undo
`
	cmds, err := ParseString(script)
	require.NoError(t, err)
	require.Len(t, cmds, 5)

	assert.Equal(t, OpNew, cmds[0].Op)
	assert.Equal(t, 3, cmds[0].Line)
	assert.Equal(t, OpMove, cmds[3].Op)
	assert.Equal(t, 7, cmds[3].Line)
	assert.Equal(t, OpUndo, cmds[4].Op)
}

func TestParseScriptStopsAtFirstError(t *testing.T) {
	cmds, err := ParseString("new\nfly away\nbogus")
	assert.Nil(t, cmds)

	var se *ScriptError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Line)
}

func TestOpIsMutation(t *testing.T) {
	assert.True(t, OpAdd.IsMutation())
	assert.True(t, OpRemove.IsMutation())
	assert.True(t, OpMove.IsMutation())
	assert.False(t, OpUndo.IsMutation())
	assert.False(t, OpNew.IsMutation())
}
