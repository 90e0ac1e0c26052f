package insights

import (
	"time"

	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

// Layout names a canvas arrangement.
type Layout string

const (
	LayoutForce        Layout = "force"
	LayoutRadial       Layout = "radial"
	LayoutHierarchical Layout = "hierarchical"
)

const (
	radialMaxClusters      = 3
	radialMinItems         = 8
	hierarchicalPriorities = 3
	hierarchicalMinItems   = 10
)

// SuggestLayout picks an arrangement from the map's shape. A large map
// concentrated in few clusters reads best radially; a large map with a wide
// priority spread (unset counts as a value) reads best as a hierarchy.
// Everything else stays force-directed.
func (g *Generator) SuggestLayout(items []item.Item) Layout {
	stats := g.Analyze(items, time.Time{})

	if stats.DistinctClusters() <= radialMaxClusters && len(items) > radialMinItems {
		return LayoutRadial
	}
	if stats.DistinctPriorities() >= hierarchicalPriorities && len(items) > hierarchicalMinItems {
		return LayoutHierarchical
	}
	return LayoutForce
}
