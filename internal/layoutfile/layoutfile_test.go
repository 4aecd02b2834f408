package layoutfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/model"
)

func sampleConfigs() []model.DashboardConfig {
	return []model.DashboardConfig{
		{
			DashboardID: "default",
			Widgets:     []model.WidgetKey{"WidgetContainer_container1", "Chart"},
			ChildWidgetsConfig: []model.ChildWidgetEntry{
				{ParentWidgetKey: "WidgetContainer_container1", WidgetKey: "Table"},
			},
		},
		{
			DashboardID:        "ops",
			Widgets:            []model.WidgetKey{},
			ChildWidgetsConfig: []model.ChildWidgetEntry{},
			ResponsiveGrid:     true,
		},
	}
}

// =============================================================================
// Decode Tests
// =============================================================================

func TestDecodeYAML(t *testing.T) {
	doc := `
dashboards:
  - dashboardId: default
    widgets: [WidgetContainer_container1, Chart]
    childWidgetsConfig:
      - parentWidgetKey: WidgetContainer_container1
        widgetKey: Table
  - dashboardId: ops
`
	configs, err := Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.Equal(t, []model.WidgetKey{"WidgetContainer_container1", "Chart"}, configs[0].Widgets)
	assert.Equal(t, model.WidgetKey("Table"), configs[0].ChildWidgetsConfig[0].WidgetKey)

	// Missing lists come back empty, not nil.
	assert.NotNil(t, configs[1].Widgets)
	assert.NotNil(t, configs[1].ChildWidgetsConfig)
	assert.Empty(t, configs[1].Widgets)
}

func TestDecodeEmptyDocument(t *testing.T) {
	configs, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestDecodeErrors(t *testing.T) {
	t.Run("malformed_yaml", func(t *testing.T) {
		_, err := Decode(strings.NewReader("dashboards: [\n"), FormatYAML)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidLayoutFile))
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("unknown_field", func(t *testing.T) {
		_, err := Decode(strings.NewReader("dashboards:\n  - dashboardId: a\n    colour: red\n"), FormatYAML)
		assert.True(t, errors.Is(err, errors.ErrInvalidLayoutFile))
	})

	t.Run("duplicate_ids", func(t *testing.T) {
		doc := `{"dashboards":[{"dashboardId":"a"},{"dashboardId":"a"}]}`
		_, err := Decode(strings.NewReader(doc), FormatJSON)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrDuplicateDashboard))
	})

	t.Run("empty_id", func(t *testing.T) {
		_, err := Decode(strings.NewReader("dashboards:\n  - widgets: [A]\n"), FormatYAML)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrEmptyDashboardID))
	})
}

// =============================================================================
// Encode Tests
// =============================================================================

func TestEncodeUsesCamelCaseKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleConfigs(), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "dashboardId: default")
	assert.Contains(t, out, "childWidgetsConfig:")
	assert.Contains(t, out, "parentWidgetKey: WidgetContainer_container1")
	assert.Contains(t, out, "responsiveGrid: true")
}

func TestEncodeDecodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleConfigs(), FormatJSON))
	assert.Contains(t, buf.String(), `"dashboardId": "ops"`)

	configs, err := Decode(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, sampleConfigs(), configs)
}

func TestEncodeNilCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil, FormatJSON))
	assert.Contains(t, buf.String(), `"dashboards": []`)
}

// =============================================================================
// File Tests
// =============================================================================

func TestSaveAndLoad(t *testing.T) {
	for _, name := range []string{"layouts.yaml", "layouts.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, Save(path, sampleConfigs()))

			configs, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, sampleConfigs(), configs)

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file left behind")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLayoutFileNotFound))
}

func TestLoadInvalidFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dashboards: 3\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.True(t, strings.HasPrefix(err.Error(), "load "+path+": "))
}

func TestSaveFailureCarriesStack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := Save(filepath.Join(blocker, "dashboards.yaml"), sampleConfigs())
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	assert.Equal(t, errors.CategorySystem, errors.Classify(err))

	stack := errors.GetStack(err)
	require.NotEmpty(t, stack)
	assert.Contains(t, stack[0].Function, "layoutfile.systemError")
	assert.Contains(t, errors.FormatDebugError(err), "Stack trace:")
	assert.NotContains(t, errors.FormatByCategory(err), "Stack trace:")
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("a.json"))
	assert.Equal(t, FormatJSON, FormatForPath("A.JSON"))
	assert.Equal(t, FormatYAML, FormatForPath("a.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("a"))
}

func TestDefaultPath(t *testing.T) {
	assert.True(t, strings.HasSuffix(DefaultPath(), filepath.Join("dashkit", "dashboards.yaml")))
}

func TestDecodeValidationErrorIsInvalidLayout(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"dashboards":[{"dashboardId":""}]}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidLayoutFile))
	assert.True(t, errors.Is(err, errors.ErrEmptyDashboardID))
}
