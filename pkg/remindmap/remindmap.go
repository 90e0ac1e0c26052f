// Package remindmap is the content similarity and auto-clustering engine of
// a mind map: it extracts keywords from items, assigns them to topic
// clusters, infers an undirected relationship graph from keyword overlap
// and generates advisory suggestions.
//
// The Engine keeps no state between calls. Every method is a pure function
// of its arguments and the wiring chosen at construction, so one Engine can
// be shared across goroutines. Callers pass an immutable snapshot of their
// items on each call.
package remindmap

import (
	"fmt"
	"time"

	"github.com/theokkk4/remindmap/internal/metrics"
	"github.com/theokkk4/remindmap/pkg/remindmap/analytics"
	"github.com/theokkk4/remindmap/pkg/remindmap/config"
	"github.com/theokkk4/remindmap/pkg/remindmap/graph"
	"github.com/theokkk4/remindmap/pkg/remindmap/ingest"
	"github.com/theokkk4/remindmap/pkg/remindmap/insights"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
	"github.com/theokkk4/remindmap/pkg/remindmap/similarity"
)

// Options wires an Engine. Zero values select the defaults.
type Options struct {
	// Components carries settings, stop-words and taxonomy, usually from
	// config.Loader. Nil means the built-in defaults.
	Components *config.Components
	// Recorder receives per-operation timings.
	Recorder metrics.Recorder
	// Now is the clock used for overdue checks and due date detection.
	Now func() time.Time
}

// Engine is the entry point to all analysis operations.
type Engine struct {
	settings  config.Settings
	tokenizer *ingest.Tokenizer
	taxonomy  *ingest.Taxonomy
	pipeline  *ingest.Pipeline
	graph     *graph.Builder
	insights  *insights.Generator
	recorder  metrics.Recorder
	now       func() time.Time
}

// New builds an engine from opts. Settings carried by caller-built
// Components are validated; an invalid set fails with ErrInvalidConfig.
func New(opts Options) (*Engine, error) {
	comp := opts.Components
	if comp == nil {
		comp = config.Defaults()
	}
	if err := comp.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("engine settings: %w", err)
	}
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.Noop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	pipeline := ingest.NewPipeline(comp.Tokenizer, comp.Taxonomy)
	builder := graph.NewBuilder(pipeline.Tokenizer(), comp.Settings.GraphOptions())

	return &Engine{
		settings:  comp.Settings,
		tokenizer: pipeline.Tokenizer(),
		taxonomy:  pipeline.Taxonomy(),
		pipeline:  pipeline,
		graph:     builder,
		insights:  insights.NewGenerator(pipeline, builder, comp.Settings.InsightOptions()),
		recorder:  rec,
		now:       now,
	}, nil
}

// Settings returns the thresholds the engine runs with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// Taxonomy returns the classifier's topics in evaluation order.
func (e *Engine) Taxonomy() []ingest.Topic {
	return e.taxonomy.Topics()
}

// ExtractKeywords returns the ordered keyword list of text.
func (e *Engine) ExtractKeywords(text string) []string {
	return e.tokenizer.ExtractKeywords(text)
}

// Similarity scores two keyword lists.
func (e *Engine) Similarity(a, b []string) float64 {
	return similarity.Jaccard(a, b)
}

// ItemSimilarity scores the keyword overlap of two items.
func (e *Engine) ItemSimilarity(a, b item.Item) float64 {
	return similarity.Jaccard(e.tokenizer.ExtractKeywords(a.Text()), e.tokenizer.ExtractKeywords(b.Text()))
}

// DetectCluster classifies a title and description.
func (e *Engine) DetectCluster(title, description string) ingest.ClusterResult {
	return e.taxonomy.Classify(title, description)
}

// ItemCluster is the classification of one item plus its palette entries.
type ItemCluster struct {
	ItemID string `json:"itemId"`
	ingest.ClusterResult
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// Clusters classifies every item of the snapshot. Ids must be unique.
func (e *Engine) Clusters(items []item.Item) (out []ItemCluster, err error) {
	done := metrics.TimeOp(e.recorder, "clusters")
	defer func() { done(err == nil) }()

	if err := item.ValidateUnique(items); err != nil {
		return nil, err
	}

	out = make([]ItemCluster, len(items))
	for i, it := range items {
		res := e.taxonomy.Classify(it.Title, it.Description)
		out[i] = ItemCluster{
			ItemID:        it.ID,
			ClusterResult: res,
			Color:         e.taxonomy.ClusterColor(res.Cluster),
			Icon:          e.taxonomy.ClusterIcon(res.Cluster),
		}
	}
	return out, nil
}

// FindRelated returns the candidates most similar to target at or above threshold.
func (e *Engine) FindRelated(target item.Item, candidates []item.Item, threshold float64) []graph.RelatedPair {
	return e.graph.FindRelated(target, candidates, threshold)
}

// Related runs FindRelated with the configured query threshold.
func (e *Engine) Related(target item.Item, candidates []item.Item) []graph.RelatedPair {
	return e.graph.Related(target, candidates)
}

// BuildGraph infers the relationship graph of the snapshot. Ids must be unique.
func (e *Engine) BuildGraph(items []item.Item) (edges []graph.Edge, err error) {
	done := metrics.TimeOp(e.recorder, "graph")
	defer func() { done(err == nil) }()

	return e.graph.Build(items)
}

// PriorityChains returns the presentation links between same-priority items.
func (e *Engine) PriorityChains(items []item.Item) []graph.PriorityLink {
	return graph.PriorityChains(items)
}

// AnalyzeNewItem suggests a cluster, connections and a priority for it.
func (e *Engine) AnalyzeNewItem(it item.Item, existing []item.Item) []insights.Suggestion {
	done := metrics.TimeOp(e.recorder, "analyze")
	defer done(true)

	return e.insights.AnalyzeNewItem(it, existing)
}

// MapInsights summarizes the snapshot in at most MaxInsights messages.
func (e *Engine) MapInsights(items []item.Item) []string {
	done := metrics.TimeOp(e.recorder, "insights")
	defer done(true)

	return e.insights.MapInsights(items, e.now())
}

// SuggestLayout picks a canvas arrangement for the snapshot.
func (e *Engine) SuggestLayout(items []item.Item) insights.Layout {
	return e.insights.SuggestLayout(items)
}

// SuggestColor returns the accent color of the cluster the text falls into.
func (e *Engine) SuggestColor(title, description string) string {
	return e.taxonomy.SuggestColor(title, description)
}

// TopClusters returns the k most populated clusters; k <= 0 returns all.
func (e *Engine) TopClusters(items []item.Item, k int) []analytics.ClusterCount {
	return e.insights.TopClusters(items, k)
}

// Themes returns keyword pairs shared by at least minSupport items.
func (e *Engine) Themes(items []item.Item, limit int, minSupport int64) []analytics.PairStat {
	return e.insights.Analyze(items, e.now()).TopPairs(limit, minSupport)
}

// DetectDueDate looks for a relative date or clock time in text.
func (e *Engine) DetectDueDate(text string) (time.Time, bool) {
	return ingest.DetectTime(text, e.now())
}
