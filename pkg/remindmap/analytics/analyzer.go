// Package analytics aggregates per-item counts over one map snapshot.
//
// An Analyzer is filled item by item and read through Snapshot. It is not
// safe for concurrent use and is meant to live for a single call.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/theokkk4/remindmap/pkg/remindmap/item"
)

// Analyzer counts priorities, clusters, completion and keyword spread.
type Analyzer struct {
	now        time.Time
	totalItems int64
	completed  int64
	overdue    int64
	priorities map[item.Priority]int64
	clusters   map[string]int64
	keywordDF  map[string]int64
	pairCounts map[Pair]int64 // keywords co-occurring inside one item
}

// NewAnalyzer creates an empty analyzer. now decides which due dates are past.
func NewAnalyzer(now time.Time) *Analyzer {
	return &Analyzer{
		now:        now,
		priorities: make(map[item.Priority]int64),
		clusters:   make(map[string]int64),
		keywordDF:  make(map[string]int64),
		pairCounts: make(map[Pair]int64),
	}
}

// Process consumes one item together with its extracted keywords and
// assigned cluster label. An empty cluster is not counted.
func (a *Analyzer) Process(it item.Item, keywords []string, cluster string) {
	a.totalItems++
	a.priorities[it.Priority]++
	if cluster != "" {
		a.clusters[cluster]++
	}
	if it.Completed {
		a.completed++
	}
	if it.Overdue(a.now) {
		a.overdue++
	}

	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		a.keywordDF[kw]++
	}

	unique := make([]string, 0, len(seen))
	for kw := range seen {
		unique = append(unique, kw)
	}
	sort.Strings(unique)
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			a.pairCounts[NewPair(unique[i], unique[j])]++
		}
	}
}

// Stats exposes the aggregated counts.
type Stats struct {
	TotalItems int64
	Completed  int64
	Overdue    int64
	Priorities map[item.Priority]int64
	Clusters   map[string]int64
	KeywordDF  map[string]int64
	PairCounts map[Pair]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	priorities := make(map[item.Priority]int64, len(a.priorities))
	for p, n := range a.priorities {
		priorities[p] = n
	}
	clusters := make(map[string]int64, len(a.clusters))
	for c, n := range a.clusters {
		clusters[c] = n
	}
	df := make(map[string]int64, len(a.keywordDF))
	for kw, n := range a.keywordDF {
		df[kw] = n
	}
	pairs := make(map[Pair]int64, len(a.pairCounts))
	for p, n := range a.pairCounts {
		pairs[p] = n
	}
	return Stats{
		TotalItems: a.totalItems,
		Completed:  a.completed,
		Overdue:    a.overdue,
		Priorities: priorities,
		Clusters:   clusters,
		KeywordDF:  df,
		PairCounts: pairs,
	}
}

// Priority returns how many items carry p.
func (s Stats) Priority(p item.Priority) int64 {
	return s.Priorities[p]
}

// DistinctPriorities counts distinct priority values, the unset one included.
func (s Stats) DistinctPriorities() int {
	return len(s.Priorities)
}

// DistinctClusters counts distinct cluster labels.
func (s Stats) DistinctClusters() int {
	return len(s.Clusters)
}

// UniqueKeywords is the size of the keyword union across all items.
func (s Stats) UniqueKeywords() int {
	return len(s.KeywordDF)
}

// CompletionRate returns the completed share as a whole percentage,
// rounded half up. An empty snapshot reads as 0.
func (s Stats) CompletionRate() int {
	if s.TotalItems == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.TotalItems) * 100))
}

// ClusterCount is one bucket of the cluster histogram.
type ClusterCount struct {
	Cluster string `json:"cluster"`
	Count   int64  `json:"count"`
}

// TopClusters returns the k largest clusters, count descending. Ties follow
// order, then label; labels absent from order sort after those present.
// k <= 0 returns every cluster.
func (s Stats) TopClusters(k int, order []string) []ClusterCount {
	rank := make(map[string]int, len(order))
	for i, label := range order {
		rank[label] = i
	}
	position := func(label string) int {
		if r, ok := rank[label]; ok {
			return r
		}
		return len(order)
	}

	out := make([]ClusterCount, 0, len(s.Clusters))
	for c, n := range s.Clusters {
		out = append(out, ClusterCount{Cluster: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		pi, pj := position(out[i].Cluster), position(out[j].Cluster)
		if pi != pj {
			return pi < pj
		}
		return out[i].Cluster < out[j].Cluster
	})

	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// PairStat describes a keyword pair that recurs across items.
type PairStat struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	Support int64   `json:"support"`
	PMI     float64 `json:"pmi"`
}

// TopPairs returns keyword pairs that co-occur in at least minSupport items,
// ranked by support and then by PMI. These are the recurring themes of a map.
func (s Stats) TopPairs(limit int, minSupport int64) []PairStat {
	if s.TotalItems == 0 {
		return nil
	}
	var stats []PairStat
	for p, count := range s.PairCounts {
		if count < minSupport {
			continue
		}
		stats = append(stats, PairStat{
			A:       p.A,
			B:       p.B,
			Support: count,
			PMI:     computePMI(count, s.KeywordDF[p.A], s.KeywordDF[p.B], s.TotalItems),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Support != stats[j].Support {
			return stats[i].Support > stats[j].Support
		}
		if stats[i].PMI != stats[j].PMI {
			return stats[i].PMI > stats[j].PMI
		}
		if stats[i].A != stats[j].A {
			return stats[i].A < stats[j].A
		}
		return stats[i].B < stats[j].B
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

// computePMI is add-one smoothed so pairs seen once in tiny maps stay finite.
func computePMI(pairCount, dfA, dfB, total int64) float64 {
	if dfA == 0 || dfB == 0 || total == 0 {
		return 0
	}
	smooth := 1.0
	numerator := (float64(pairCount) + smooth) / float64(total)
	denominator := ((float64(dfA) + smooth) / float64(total)) * ((float64(dfB) + smooth) / float64(total))
	return math.Log(numerator / denominator)
}

// Pair is an unordered keyword pair stored with A <= B.
type Pair struct {
	A string
	B string
}

// NewPair orders a and b into a Pair.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}
