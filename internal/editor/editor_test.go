package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/events"
	"github.com/manav03panchal/dashkit/internal/model"
)

func keys(ks ...string) []model.WidgetKey {
	out := make([]model.WidgetKey, len(ks))
	for i, k := range ks {
		out[i] = model.WidgetKey(k)
	}
	return out
}

func ids(configs []model.DashboardConfig) []string {
	out := make([]string, len(configs))
	for i, c := range configs {
		out[i] = c.DashboardID
	}
	return out
}

func loaded(t *testing.T) *Editor {
	t.Helper()
	e := New(Options{})
	t.Cleanup(e.Close)
	e.Load([]model.DashboardConfig{
		{DashboardID: "ops", Widgets: keys("A", "B")},
		{DashboardID: "default", Widgets: keys("WidgetContainer_container1")},
	})
	return e
}

// =============================================================================
// Dashboard Tests
// =============================================================================

func TestNewEditorHoldsBlank(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	assert.Equal(t, "default", e.Current().DashboardID)
	assert.Equal(t, []string{"default"}, ids(e.Dashboards()))
	assert.True(t, e.Status().IsUndoDisabled)
	assert.Equal(t, 1, e.Status().HistoryLength)
}

func TestLoadSelectsDefault(t *testing.T) {
	e := loaded(t)
	assert.Equal(t, "default", e.Current().DashboardID)
	assert.Equal(t, []string{"default", "ops"}, ids(e.Dashboards()))
	assert.False(t, e.State().IsLoading)
}

func TestLoadWithoutDefaultSelectsFirstSorted(t *testing.T) {
	e := New(Options{})
	defer e.Close()
	e.Load([]model.DashboardConfig{{DashboardID: "zeta"}, {DashboardID: "alpha"}})
	assert.Equal(t, "alpha", e.Current().DashboardID)
}

func TestLoadEmptyFallsBackToBlank(t *testing.T) {
	e := New(Options{DefaultDashboardID: "home"})
	defer e.Close()
	e.Load(nil)
	assert.Equal(t, "home", e.Current().DashboardID)
	assert.Equal(t, []string{"home"}, ids(e.Dashboards()))
}

func TestLoadDiscardsHistory(t *testing.T) {
	e := loaded(t)
	e.AddWidget("X", "", false)
	e.Load([]model.DashboardConfig{{DashboardID: "default"}})

	_, ok := e.Undo()
	assert.False(t, ok)
}

func TestNewDashboard(t *testing.T) {
	e := loaded(t)

	t.Run("named", func(t *testing.T) {
		cfg, err := e.NewDashboard("  sales ")
		require.NoError(t, err)
		assert.Equal(t, "sales", cfg.DashboardID)
		assert.Equal(t, "sales", e.Current().DashboardID)
		assert.Empty(t, e.Current().Widgets)
	})

	t.Run("generated_id", func(t *testing.T) {
		cfg, err := e.NewDashboard("")
		require.NoError(t, err)
		_, err = uuid.Parse(cfg.DashboardID)
		assert.NoError(t, err)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := e.NewDashboard("ops")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrDuplicateDashboard))
		assert.NotEqual(t, "ops", e.Current().DashboardID)
	})
}

func TestSelect(t *testing.T) {
	e := loaded(t)

	cfg, err := e.Select("ops")
	require.NoError(t, err)
	assert.Equal(t, keys("A", "B"), cfg.Widgets)
	assert.Equal(t, "ops", e.Current().DashboardID)

	_, err = e.Select("ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDashboardNotFound))
	assert.Equal(t, "ops", e.Current().DashboardID)
}

func TestDelete(t *testing.T) {
	e := loaded(t)

	require.NoError(t, e.Delete("default"))
	assert.Equal(t, []string{"ops"}, ids(e.Dashboards()))
	assert.Equal(t, "ops", e.Current().DashboardID)

	assert.True(t, errors.Is(e.Delete("default"), errors.ErrDashboardNotFound))

	require.NoError(t, e.Delete("ops"))
	assert.Equal(t, []string{"default"}, ids(e.Dashboards()))
	assert.Equal(t, "default", e.Current().DashboardID)
	assert.Empty(t, e.Current().Widgets)
}

func TestDeleteOtherDashboardKeepsCurrentHistory(t *testing.T) {
	e := loaded(t)
	require.Equal(t, "default", e.Current().DashboardID)
	require.True(t, e.AddWidget("Chart", "", false).Success)

	require.NoError(t, e.Delete("ops"))
	assert.Equal(t, "default", e.Current().DashboardID)
	assert.Equal(t, keys("WidgetContainer_container1", "Chart"), e.Current().Widgets)
	assert.Equal(t, 2, e.Status().HistoryLength)

	_, ok := e.Undo()
	assert.True(t, ok)
	assert.Equal(t, keys("WidgetContainer_container1"), e.Current().Widgets)
}

// =============================================================================
// Widget Tests
// =============================================================================

func TestAddWidgetPushesHistory(t *testing.T) {
	e := loaded(t)

	res := e.AddWidget("Chart", "", false)
	require.True(t, res.Success)
	assert.Equal(t, keys("WidgetContainer_container1", "Chart"), e.Current().Widgets)
	assert.Equal(t, 2, e.Status().HistoryLength)
	assert.False(t, e.Status().IsUndoDisabled)
}

func TestAddWidgetRejectedLeavesHistory(t *testing.T) {
	e := loaded(t)

	res := e.AddWidget("WidgetContainer_container1", "", true)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
	assert.Equal(t, 1, e.Status().HistoryLength)

	res = e.AddWidget("", "", false)
	assert.False(t, res.Success)
	assert.Equal(t, "default", res.UpdatedDashboardConfig.DashboardID)
}

func TestAddWidgetNoDuplicatesOption(t *testing.T) {
	e := New(Options{NoDuplicatedWidgets: true})
	defer e.Close()

	require.True(t, e.AddWidget("A", "", false).Success)
	assert.False(t, e.AddWidget("A", "", false).Success)
}

func TestAddWidgetUsesTargetWhileEditing(t *testing.T) {
	e := loaded(t)
	e.SetEditing(true)
	e.SetTarget("WidgetContainer_container1")

	require.True(t, e.AddWidget("Table", "", false).Success)
	assert.True(t, e.Current().HasChild("WidgetContainer_container1", "Table"))
	assert.False(t, e.Current().HasWidget("Table"))

	// Leaving edit mode clears the target.
	e.SetEditing(false)
	require.True(t, e.AddWidget("Table", "", false).Success)
	assert.True(t, e.Current().HasWidget("Table"))
}

func TestRemoveTargetClearsIt(t *testing.T) {
	e := loaded(t)
	e.SetEditing(true)
	e.SetTarget("WidgetContainer_container1")

	require.True(t, e.RemoveWidget("WidgetContainer_container1", "").Success)
	assert.Empty(t, e.State().TargetContainerKey)
}

func TestMoveWidget(t *testing.T) {
	e := loaded(t)
	_, err := e.Select("ops")
	require.NoError(t, err)

	res := e.MoveWidget(model.DirectionDown, "A", "")
	require.True(t, res.Success)
	assert.Equal(t, keys("B", "A"), e.Current().Widgets)
}

// =============================================================================
// Undo/Redo Tests
// =============================================================================

func TestUndoRedo(t *testing.T) {
	e := loaded(t)
	_, err := e.Select("ops")
	require.NoError(t, err)

	e.AddWidget("C", "", false)
	e.MoveWidget(model.DirectionUp, "C", "")
	assert.Equal(t, keys("A", "C", "B"), e.Current().Widgets)

	cfg, ok := e.Undo()
	require.True(t, ok)
	assert.Equal(t, keys("A", "B", "C"), cfg.Widgets)
	assert.Equal(t, keys("A", "B", "C"), e.Current().Widgets)

	_, ok = e.Undo()
	require.True(t, ok)
	assert.Equal(t, keys("A", "B"), e.Current().Widgets)

	_, ok = e.Undo()
	assert.False(t, ok)

	cfg, ok = e.Redo()
	require.True(t, ok)
	assert.Equal(t, keys("A", "B", "C"), cfg.Widgets)

	// Undo restores the collection entry too.
	for _, c := range e.Dashboards() {
		if c.DashboardID == "ops" {
			assert.Equal(t, keys("A", "B", "C"), c.Widgets)
		}
	}
}

func TestUndoThenAddDiscardsRedo(t *testing.T) {
	e := loaded(t)
	e.AddWidget("X", "", false)
	e.Undo()
	e.AddWidget("Y", "", false)

	_, ok := e.Redo()
	assert.False(t, ok)
	assert.Equal(t, keys("WidgetContainer_container1", "Y"), e.Current().Widgets)
}

func TestHistoryIsPerDashboardSelection(t *testing.T) {
	e := loaded(t)
	e.AddWidget("X", "", false)

	_, err := e.Select("ops")
	require.NoError(t, err)
	assert.True(t, e.Status().IsUndoDisabled)
	assert.Equal(t, 1, e.Status().HistoryLength)
}

// =============================================================================
// Intent Tests
// =============================================================================

func TestEmitterIntents(t *testing.T) {
	e := loaded(t)
	_, err := e.Select("ops")
	require.NoError(t, err)

	e.Emitter().MoveClick(model.DirectionDown, "A", "")
	assert.True(t, e.LastIntentResult().Success)
	assert.Equal(t, keys("B", "A"), e.Current().Widgets)

	e.Emitter().RemoveClick("B", "")
	assert.True(t, e.LastIntentResult().Success)
	assert.Equal(t, keys("A"), e.Current().Widgets)

	e.Emitter().SelectContainer("WidgetContainer_container9")
	assert.Equal(t, model.WidgetKey("WidgetContainer_container9"), e.State().TargetContainerKey)

	_, ok := e.Undo()
	assert.True(t, ok)
	assert.Equal(t, keys("B", "A"), e.Current().Widgets)
}

func TestCloseStopsIntents(t *testing.T) {
	bus := events.NewBus()
	e := New(Options{Bus: bus})
	e.AddWidget("A", "", false)
	e.Close()

	e.Emitter().RemoveClick("A", "")
	assert.Equal(t, keys("A"), e.Current().Widgets)
	assert.Equal(t, 0, bus.Len())
}

func TestNextContainerKey(t *testing.T) {
	e := loaded(t)
	assert.Equal(t, model.WidgetKey("WidgetContainer_container2"), e.NextContainerKey("WidgetContainer"))
}
