// Package graph infers the undirected relationship graph between items
// from keyword overlap.
//
// Every call is a full O(n²) pass over the snapshot it is given. That is
// fine for a personal map of tens to a few hundred items and is not meant
// for large corpora; there is no index and no approximate neighbour search.
package graph

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theokkk4/remindmap/pkg/remindmap/ingest"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
	"github.com/theokkk4/remindmap/pkg/remindmap/similarity"
)

const (
	// DefaultRelatedThreshold is the minimum similarity for a related-items query.
	DefaultRelatedThreshold = 0.2
	// DefaultEdgeThreshold is the bar an inferred edge must strictly exceed.
	DefaultEdgeThreshold = 0.25
	// DefaultMaxRelatedPerQuery caps a related-items query.
	DefaultMaxRelatedPerQuery = 5
	// DefaultMaxEdgesPerItem caps how many edges one item may originate.
	DefaultMaxEdgesPerItem = 2
	// DefaultStrongStrength is the strength above which an edge is strongly related.
	DefaultStrongStrength = 0.5
)

// Edge labels.
const (
	LabelStrong  = "Strongly related"
	LabelRelated = "Related"
)

// Options tunes thresholds and limits of the builder.
type Options struct {
	RelatedThreshold   float64
	EdgeThreshold      float64
	MaxRelatedPerQuery int
	MaxEdgesPerItem    int
	StrongStrength     float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		RelatedThreshold:   DefaultRelatedThreshold,
		EdgeThreshold:      DefaultEdgeThreshold,
		MaxRelatedPerQuery: DefaultMaxRelatedPerQuery,
		MaxEdgesPerItem:    DefaultMaxEdgesPerItem,
		StrongStrength:     DefaultStrongStrength,
	}
}

// RelatedPair is one hit of a related-items query.
type RelatedPair struct {
	ItemID     string  `json:"itemId"`
	Similarity float64 `json:"similarity"`
}

// Edge is an inferred, undirected relationship. Source is the item whose
// scan produced the edge; the pair is never emitted twice in either order.
type Edge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
	Label    string  `json:"label"`
}

// Builder finds related items and builds the relationship graph.
type Builder struct {
	tokenizer *ingest.Tokenizer
	opts      Options
}

// NewBuilder creates a builder. A nil tokenizer means the default one.
func NewBuilder(tokenizer *ingest.Tokenizer, opts Options) *Builder {
	if tokenizer == nil {
		tokenizer = ingest.DefaultTokenizer()
	}
	return &Builder{tokenizer: tokenizer, opts: opts}
}

// Options returns the builder's configuration.
func (b *Builder) Options() Options {
	return b.opts
}

// keyedItem pairs an item id with its keywords, extracted once per pass.
type keyedItem struct {
	id       string
	keywords []string
}

func (b *Builder) keyed(items []item.Item) []keyedItem {
	out := make([]keyedItem, len(items))
	for i, it := range items {
		out[i] = keyedItem{id: it.ID, keywords: b.tokenizer.ExtractKeywords(it.Text())}
	}
	return out
}

// Related runs FindRelated with the configured query threshold.
func (b *Builder) Related(target item.Item, candidates []item.Item) []RelatedPair {
	return b.FindRelated(target, candidates, b.opts.RelatedThreshold)
}

// FindRelated returns up to MaxRelatedPerQuery candidates whose similarity
// to target is at least threshold, most similar first. Equal scores keep
// candidate order. A candidate sharing the target's non-empty id is the
// target itself and is skipped.
func (b *Builder) FindRelated(target item.Item, candidates []item.Item, threshold float64) []RelatedPair {
	src := keyedItem{id: target.ID, keywords: b.tokenizer.ExtractKeywords(target.Text())}
	return b.related(src, b.keyed(candidates), threshold)
}

func (b *Builder) related(src keyedItem, candidates []keyedItem, threshold float64) []RelatedPair {
	results := make([]RelatedPair, 0)
	for _, c := range candidates {
		if src.id != "" && c.id == src.id {
			continue
		}
		sim := similarity.Jaccard(src.keywords, c.keywords)
		if sim >= threshold {
			results = append(results, RelatedPair{ItemID: c.id, Similarity: sim})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if b.opts.MaxRelatedPerQuery > 0 && len(results) > b.opts.MaxRelatedPerQuery {
		results = results[:b.opts.MaxRelatedPerQuery]
	}
	return results
}

// pairKey is an unordered id pair in canonical (min, max) order.
type pairKey struct {
	lo, hi string
}

func edgeKey(a, b string) pairKey {
	if a < b {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}

// Build infers the relationship graph for a snapshot of items.
//
// Each item keeps at most MaxEdgesPerItem of its related items (queried at
// EdgeThreshold) and an edge is added only when its similarity strictly
// exceeds EdgeThreshold and the unordered pair has not been seen yet.
// Items must have unique, non-empty ids.
func (b *Builder) Build(items []item.Item) ([]Edge, error) {
	if err := item.ValidateUnique(items); err != nil {
		return nil, err
	}

	start := time.Now()
	keyed := b.keyed(items)
	edges := make([]Edge, 0)
	seen := make(map[pairKey]struct{})

	for _, src := range keyed {
		related := b.related(src, keyed, b.opts.EdgeThreshold)
		if b.opts.MaxEdgesPerItem > 0 && len(related) > b.opts.MaxEdgesPerItem {
			related = related[:b.opts.MaxEdgesPerItem]
		}

		for _, rel := range related {
			if rel.Similarity <= b.opts.EdgeThreshold {
				continue
			}
			key := edgeKey(src.id, rel.ItemID)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			edges = append(edges, Edge{
				Source:   src.id,
				Target:   rel.ItemID,
				Strength: rel.Similarity,
				Label:    b.label(rel.Similarity),
			})
		}
	}

	log.Debug().
		Int("items", len(items)).
		Int("edges", len(edges)).
		Dur("took", time.Since(start)).
		Msg("Relationship graph built")

	return edges, nil
}

func (b *Builder) label(strength float64) string {
	if strength > b.opts.StrongStrength {
		return LabelStrong
	}
	return LabelRelated
}
