package output

import "github.com/manav03panchal/dashkit/internal/model"

// WidgetNode is a widget with the widgets it hosts, in order.
type WidgetNode struct {
	Key       string       `json:"key"`
	Container bool         `json:"container,omitempty"`
	Children  []WidgetNode `json:"children,omitempty"`
}

// BuildTree arranges cfg into the widget hierarchy starting at the root list.
// Child entries whose parent is not reachable from the root are returned as
// unplaced.
func BuildTree(cfg model.DashboardConfig) ([]WidgetNode, []model.ChildWidgetEntry) {
	reached := make(map[model.WidgetKey]bool)

	var build func(key model.WidgetKey, path map[model.WidgetKey]bool) WidgetNode
	build = func(key model.WidgetKey, path map[model.WidgetKey]bool) WidgetNode {
		reached[key] = true
		node := WidgetNode{Key: key.String(), Container: key.IsContainer()}
		if path[key] {
			return node
		}
		path[key] = true
		for _, child := range cfg.Children(key) {
			node.Children = append(node.Children, build(child, path))
		}
		delete(path, key)
		return node
	}

	roots := make([]WidgetNode, 0, len(cfg.Widgets))
	for _, w := range cfg.Widgets {
		roots = append(roots, build(w, map[model.WidgetKey]bool{}))
	}

	var unplaced []model.ChildWidgetEntry
	for _, e := range cfg.ChildWidgetsConfig {
		if !reached[e.ParentWidgetKey] {
			unplaced = append(unplaced, e)
		}
	}
	return roots, unplaced
}
