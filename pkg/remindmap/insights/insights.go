// Package insights turns analysis results into advisory messages: per-item
// suggestions when a node is added and map-wide observations.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/theokkk4/remindmap/pkg/remindmap/analytics"
	"github.com/theokkk4/remindmap/pkg/remindmap/graph"
	"github.com/theokkk4/remindmap/pkg/remindmap/ingest"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

// Kind classifies a suggestion.
type Kind string

const (
	KindCluster    Kind = "cluster"
	KindConnection Kind = "connection"
	KindPriority   Kind = "priority"
	KindInsight    Kind = "insight"
)

// Suggestion is an ephemeral hint for the item being edited.
type Suggestion struct {
	Kind       Kind    `json:"kind"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

const (
	urgentSuggestionConfidence = 0.8
	highSuggestionConfidence   = 0.6
)

var (
	urgentLexicon = []string{"urgent", "asap", "critical", "emergency", "now", "today"}
	highLexicon   = []string{"important", "priority", "deadline", "due", "soon"}
)

// Map insight templates.
const (
	msgEmptyMap   = "Your mind map is empty. Add your first thought!"
	msgUrgent     = "⚠️ You have %d urgent items - consider focusing on these first"
	msgHigh       = "📌 %d high-priority items might benefit from breaking down into smaller tasks"
	msgOverdue    = "🕐 %d %s past due date"
	msgCompletion = "✅ %d%% completion rate - keep it up!"
	msgDiversity  = "🧠 Your map spans %d different concepts - you're thinking big!"
)

// Options holds the thresholds the generator reports against.
type Options struct {
	// ClusterConfidence is the classifier confidence a cluster hint must exceed.
	ClusterConfidence float64
	// RelatedThreshold is the similarity floor for connection hints.
	RelatedThreshold float64
	// UrgentWarning and HighWarning are the counts that must be exceeded
	// before the map is flagged as overloaded.
	UrgentWarning int
	HighWarning   int
	// ConceptDiversity is the unique keyword count that must be exceeded.
	ConceptDiversity int
	MaxInsights      int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		ClusterConfidence: 0.3,
		RelatedThreshold:  0.3,
		UrgentWarning:     3,
		HighWarning:       5,
		ConceptDiversity:  20,
		MaxInsights:       3,
	}
}

// Generator produces suggestions and insights from a pipeline and a graph builder.
type Generator struct {
	pipeline *ingest.Pipeline
	graph    *graph.Builder
	opts     Options
}

// NewGenerator wires a generator. Nil components fall back to defaults.
func NewGenerator(pipeline *ingest.Pipeline, builder *graph.Builder, opts Options) *Generator {
	if pipeline == nil {
		pipeline = ingest.NewPipeline(nil, nil)
	}
	if builder == nil {
		builder = graph.NewBuilder(pipeline.Tokenizer(), graph.DefaultOptions())
	}
	return &Generator{pipeline: pipeline, graph: builder, opts: opts}
}

// AnalyzeNewItem computes cluster, connection and priority hints for it
// against the rest of the map, highest confidence first.
func (g *Generator) AnalyzeNewItem(it item.Item, existing []item.Item) []Suggestion {
	suggestions := make([]Suggestion, 0, 3)

	cluster := g.pipeline.Taxonomy().Classify(it.Title, it.Description)
	if cluster.Confidence > g.opts.ClusterConfidence && !it.HasCustomColor() {
		suggestions = append(suggestions, Suggestion{
			Kind:       KindCluster,
			Message:    fmt.Sprintf("This looks like a %s item (%d%% confident)", cluster.Cluster, percent(cluster.Confidence)),
			Confidence: cluster.Confidence,
		})
	}

	related := g.graph.FindRelated(it, existing, g.opts.RelatedThreshold)
	if len(related) > 0 {
		suggestions = append(suggestions, Suggestion{
			Kind:       KindConnection,
			Message:    fmt.Sprintf("Found %d related %s in your map", len(related), plural(len(related), "item", "items")),
			Confidence: related[0].Similarity,
		})
	}

	if s, ok := prioritySuggestion(it); ok {
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

// prioritySuggestion matches the wording against the urgency lexicons by
// substring. The urgent check short-circuits the high one.
func prioritySuggestion(it item.Item) (Suggestion, bool) {
	text := strings.ToLower(it.Text())

	if containsAny(text, urgentLexicon) {
		if it.Priority == item.PriorityUrgent {
			return Suggestion{}, false
		}
		return Suggestion{
			Kind:       KindPriority,
			Message:    "This might be urgent based on your wording",
			Confidence: urgentSuggestionConfidence,
		}, true
	}

	if containsAny(text, highLexicon) && it.Priority == item.PriorityLow {
		return Suggestion{
			Kind:       KindPriority,
			Message:    "Consider setting this to high priority",
			Confidence: highSuggestionConfidence,
		}, true
	}
	return Suggestion{}, false
}

// Analyze aggregates the snapshot into counts.
func (g *Generator) Analyze(items []item.Item, now time.Time) analytics.Stats {
	a := analytics.NewAnalyzer(now)
	for _, it := range items {
		processed := g.pipeline.Process(it.Title, it.Description)
		a.Process(it, processed.Keywords, processed.Cluster.Cluster)
	}
	return a.Snapshot()
}

// MapInsights reports map-wide findings in a fixed order and keeps only
// the first MaxInsights of them. An empty map yields only the empty-map
// message.
func (g *Generator) MapInsights(items []item.Item, now time.Time) []string {
	if len(items) == 0 {
		return []string{msgEmptyMap}
	}

	stats := g.Analyze(items, now)
	insights := make([]string, 0, 5)

	if urgent := stats.Priority(item.PriorityUrgent); urgent > int64(g.opts.UrgentWarning) {
		insights = append(insights, fmt.Sprintf(msgUrgent, urgent))
	}
	if high := stats.Priority(item.PriorityHigh); high > int64(g.opts.HighWarning) {
		insights = append(insights, fmt.Sprintf(msgHigh, high))
	}
	if stats.Overdue > 0 {
		insights = append(insights, fmt.Sprintf(msgOverdue, stats.Overdue, plural(int(stats.Overdue), "item", "items")))
	}
	if stats.Completed > 0 {
		insights = append(insights, fmt.Sprintf(msgCompletion, stats.CompletionRate()))
	}
	if n := stats.UniqueKeywords(); n > g.opts.ConceptDiversity {
		insights = append(insights, fmt.Sprintf(msgDiversity, n))
	}

	if g.opts.MaxInsights > 0 && len(insights) > g.opts.MaxInsights {
		insights = insights[:g.opts.MaxInsights]
	}
	return insights
}

// TopClusters returns the k most populated clusters of the snapshot. Ties
// follow taxonomy order with the fallback label last.
func (g *Generator) TopClusters(items []item.Item, k int) []analytics.ClusterCount {
	stats := g.Analyze(items, time.Time{})
	order := append(g.pipeline.Taxonomy().Labels(), ingest.GeneralLabel)
	return stats.TopClusters(k, order)
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
