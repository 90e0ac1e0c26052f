package main

import (
	"fmt"
	"io"
	"time"

	"github.com/theokkk4/remindmap/pkg/remindmap"
	"github.com/theokkk4/remindmap/pkg/remindmap/analytics"
	"github.com/theokkk4/remindmap/pkg/remindmap/graph"
	"github.com/theokkk4/remindmap/pkg/remindmap/insights"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

// themeMinSupport is the number of items a keyword pair must share to count as a theme.
const themeMinSupport = 2

type clustersReport struct {
	Clusters []remindmap.ItemCluster  `json:"clusters"`
	Top      []analytics.ClusterCount `json:"top"`
}

type graphReport struct {
	Edges         []graph.Edge         `json:"edges"`
	PriorityLinks []graph.PriorityLink `json:"priorityLinks"`
}

type analyzeReport struct {
	Item        item.Item             `json:"item"`
	Suggestions []insights.Suggestion `json:"suggestions"`
	Color       string                `json:"color"`
}

type layoutReport struct {
	Layout insights.Layout `json:"layout"`
}

// analyze runs opts.mode over items. In analyze mode a non-nil target is
// a stored item analyzed against the rest of the map.
func analyze(engine *remindmap.Engine, items []item.Item, opts options, target *item.Item) (any, error) {
	switch opts.mode {
	case "clusters":
		clusters, err := engine.Clusters(items)
		if err != nil {
			return nil, fmt.Errorf("clusters: %w", err)
		}
		return clustersReport{Clusters: clusters, Top: engine.TopClusters(items, opts.limit)}, nil

	case "graph":
		edges, err := engine.BuildGraph(items)
		if err != nil {
			return nil, fmt.Errorf("graph: %w", err)
		}
		return graphReport{Edges: edges, PriorityLinks: engine.PriorityChains(items)}, nil

	case "insights":
		return engine.MapInsights(items), nil

	case "layout":
		return layoutReport{Layout: engine.SuggestLayout(items)}, nil

	case "analyze":
		var it item.Item
		existing := items
		if target != nil {
			it = *target
			existing = make([]item.Item, 0, len(items))
			for _, other := range items {
				if other.ID != it.ID {
					existing = append(existing, other)
				}
			}
		} else {
			priority, err := item.ParsePriority(opts.priority)
			if err != nil {
				return nil, err
			}
			it = item.Item{
				ID:          item.NewID(),
				Title:       opts.title,
				Description: opts.description,
				Priority:    priority,
			}
			if due, ok := engine.DetectDueDate(it.Text()); ok {
				it.DueDate = &due
			}
		}
		return analyzeReport{
			Item:        it,
			Suggestions: engine.AnalyzeNewItem(it, existing),
			Color:       engine.SuggestColor(it.Title, it.Description),
		}, nil

	case "themes":
		themes := engine.Themes(items, opts.limit, themeMinSupport)
		if themes == nil {
			themes = []analytics.PairStat{}
		}
		return themes, nil
	}
	return nil, fmt.Errorf("unknown mode %q", opts.mode)
}

func printResult(out io.Writer, mode string, result any) {
	switch r := result.(type) {
	case clustersReport:
		fmt.Fprintln(out, "Clusters:")
		for _, c := range r.Clusters {
			fmt.Fprintf(out, "  %s %-10s %-8s %.2f %v\n", c.Icon, c.ItemID, c.Cluster, c.Confidence, c.MatchedKeywords)
		}
		fmt.Fprintln(out, "\nTop clusters:")
		for _, c := range r.Top {
			fmt.Fprintf(out, "  %-10s %d\n", c.Cluster, c.Count)
		}

	case graphReport:
		fmt.Fprintf(out, "Edges (%d):\n", len(r.Edges))
		for _, e := range r.Edges {
			fmt.Fprintf(out, "  %s ↔ %s  %.2f  %s\n", e.Source, e.Target, e.Strength, e.Label)
		}
		if len(r.PriorityLinks) > 0 {
			fmt.Fprintln(out, "\nPriority chains:")
			for _, l := range r.PriorityLinks {
				fmt.Fprintf(out, "  %s → %s  (%s)\n", l.Source, l.Target, l.Priority)
			}
		}

	case []string:
		if len(r) == 0 {
			fmt.Fprintln(out, "No insights yet.")
		}
		for _, s := range r {
			fmt.Fprintln(out, s)
		}

	case layoutReport:
		fmt.Fprintf(out, "Suggested layout: %s\n", r.Layout)

	case analyzeReport:
		fmt.Fprintf(out, "Item %s: %q\n", r.Item.ID, r.Item.Title)
		fmt.Fprintf(out, "Suggested color: %s\n", r.Color)
		if r.Item.DueDate != nil {
			fmt.Fprintf(out, "Detected due date: %s\n", r.Item.DueDate.Format(time.RFC1123))
		}
		if len(r.Suggestions) == 0 {
			fmt.Fprintln(out, "No suggestions.")
		}
		for _, s := range r.Suggestions {
			fmt.Fprintf(out, "  [%s %.2f] %s\n", s.Kind, s.Confidence, s.Message)
		}

	case []analytics.PairStat:
		if len(r) == 0 {
			fmt.Fprintln(out, "No recurring themes.")
		}
		for _, p := range r {
			fmt.Fprintf(out, "  %s ↔ %s  support=%d  PMI=%.2f\n", p.A, p.B, p.Support, p.PMI)
		}

	default:
		fmt.Fprintf(out, "%s: %v\n", mode, result)
	}
}
