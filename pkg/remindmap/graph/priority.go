package graph

import "github.com/theokkk4/remindmap/pkg/remindmap/item"

// PriorityLink is a secondary, presentation-only link that chains items of
// the same priority level. It is not inferred from content and is never
// part of Build's output.
type PriorityLink struct {
	Source   string        `json:"source"`
	Target   string        `json:"target"`
	Priority item.Priority `json:"priority"`
}

// chainedPriorities are linked in this order.
var chainedPriorities = []item.Priority{item.PriorityUrgent, item.PriorityHigh}

// PriorityChains links consecutive urgent items, then consecutive high
// items, in snapshot order.
func PriorityChains(items []item.Item) []PriorityLink {
	links := make([]PriorityLink, 0)
	for _, p := range chainedPriorities {
		prev := ""
		for _, it := range items {
			if it.Priority != p {
				continue
			}
			if prev != "" {
				links = append(links, PriorityLink{Source: prev, Target: it.ID, Priority: p})
			}
			prev = it.ID
		}
	}
	return links
}
