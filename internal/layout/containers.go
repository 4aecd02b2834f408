package layout

import (
	"sort"

	"github.com/manav03panchal/dashkit/internal/model"
)

// NextContainerKey returns the key for a new container generated under
// containerWidgetKey. Ordinals are shared by every root-level WidgetContainer,
// so the result uses one more than the highest ordinal in use.
func NextContainerKey(cfg model.DashboardConfig, containerWidgetKey model.WidgetKey) model.WidgetKey {
	highest := 0
	for _, w := range cfg.Widgets {
		if !w.IsWidgetContainer() {
			continue
		}
		if n, ok := w.ContainerOrdinal(); ok && n > highest {
			highest = n
		}
	}
	return model.ContainerKey(containerWidgetKey, highest+1)
}

// EnsureContainersSequence returns a structurally consistent copy of cfg:
// child entries whose parent is unreachable from the root are dropped, then
// container ordinals are renumbered 1..n within each nesting scope, keeping
// their relative order. A scope is the base key a container key was generated
// from, so WidgetContainer_container1_container2 is numbered among the other
// containers generated under WidgetContainer_container1.
func EnsureContainersSequence(cfg model.DashboardConfig) model.DashboardConfig {
	out := pruneOrphans(cfg.Clone())

	type container struct {
		key     model.WidgetKey
		ordinal int
		seen    int
	}

	scopes := make(map[model.WidgetKey][]container)
	var order []model.WidgetKey
	index := make(map[model.WidgetKey]bool)
	seen := 0
	collect := func(k model.WidgetKey) {
		if index[k] || !k.IsContainer() {
			return
		}
		n, ok := k.ContainerOrdinal()
		if !ok {
			return
		}
		index[k] = true
		base := k.ContainerBase()
		if _, ok := scopes[base]; !ok {
			order = append(order, base)
		}
		scopes[base] = append(scopes[base], container{key: k, ordinal: n, seen: seen})
		seen++
	}
	for _, w := range out.Widgets {
		collect(w)
	}
	for _, e := range out.ChildWidgetsConfig {
		collect(e.ParentWidgetKey)
		collect(e.WidgetKey)
	}

	ordinals := make(map[model.WidgetKey]int)
	changed := false
	for _, base := range order {
		group := scopes[base]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].ordinal != group[j].ordinal {
				return group[i].ordinal < group[j].ordinal
			}
			return group[i].seen < group[j].seen
		})
		for i, c := range group {
			ordinals[c.key] = i + 1
			if c.ordinal != i+1 {
				changed = true
			}
		}
	}
	if !changed {
		return out
	}

	// A renumbered scope renames the keys generated under it as well.
	var rename func(k model.WidgetKey) model.WidgetKey
	rename = func(k model.WidgetKey) model.WidgetKey {
		n, ok := ordinals[k]
		if !ok {
			return k
		}
		return model.ContainerKey(rename(k.ContainerBase()), n)
	}
	for i, w := range out.Widgets {
		out.Widgets[i] = rename(w)
	}
	for i, e := range out.ChildWidgetsConfig {
		out.ChildWidgetsConfig[i] = model.ChildWidgetEntry{
			ParentWidgetKey: rename(e.ParentWidgetKey),
			WidgetKey:       rename(e.WidgetKey),
		}
	}
	return out
}

// pruneOrphans drops child entries whose parent is not placed on the dashboard.
func pruneOrphans(cfg model.DashboardConfig) model.DashboardConfig {
	placed := make(map[model.WidgetKey]bool, len(cfg.Widgets))
	for _, w := range cfg.Widgets {
		placed[w] = true
	}

	// Nested containers become reachable once their own parent is.
	for changed := true; changed; {
		changed = false
		for _, e := range cfg.ChildWidgetsConfig {
			if placed[e.ParentWidgetKey] && !placed[e.WidgetKey] {
				placed[e.WidgetKey] = true
				changed = true
			}
		}
	}

	children := cfg.ChildWidgetsConfig[:0]
	for _, e := range cfg.ChildWidgetsConfig {
		if placed[e.ParentWidgetKey] {
			children = append(children, e)
		}
	}
	cfg.ChildWidgetsConfig = children
	return cfg
}

// SortForDisplay returns a sorted copy of configs: the default dashboard
// first, the rest ordered by id.
func SortForDisplay(configs []model.DashboardConfig, defaultID string) []model.DashboardConfig {
	out := model.CloneAll(configs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DashboardID, out[j].DashboardID
		if a == defaultID && b != defaultID {
			return true
		}
		if b == defaultID && a != defaultID {
			return false
		}
		return a < b
	})
	return out
}
