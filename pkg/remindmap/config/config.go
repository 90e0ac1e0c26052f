package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theokkk4/remindmap/pkg/remindmap/graph"
	"github.com/theokkk4/remindmap/pkg/remindmap/ingest"
	"github.com/theokkk4/remindmap/pkg/remindmap/insights"
	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
)

// Settings holds the engine's tunable thresholds and limits.
type Settings struct {
	RelatedThreshold            float64 `yaml:"related_threshold"`
	GraphEdgeThreshold          float64 `yaml:"graph_edge_threshold"`
	AnalyzeRelatedThreshold     float64 `yaml:"analyze_related_threshold"`
	MaxRelatedPerQuery          int     `yaml:"max_related_per_query"`
	MaxEdgesPerItem             int     `yaml:"max_edges_per_item"`
	ConfidenceDivisor           float64 `yaml:"confidence_divisor"`
	ClusterSuggestionConfidence float64 `yaml:"cluster_suggestion_confidence"`
	StrongEdgeStrength          float64 `yaml:"strong_edge_strength"`
	MaxKeywords                 int     `yaml:"max_keywords"`
	MinTokenLength              int     `yaml:"min_token_length"`
	UrgentWarning               int     `yaml:"urgent_warning"`
	HighWarning                 int     `yaml:"high_warning"`
	ConceptDiversity            int     `yaml:"concept_diversity"`
	MaxInsights                 int     `yaml:"max_insights"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	g := graph.DefaultOptions()
	in := insights.DefaultOptions()
	return Settings{
		RelatedThreshold:            g.RelatedThreshold,
		GraphEdgeThreshold:          g.EdgeThreshold,
		AnalyzeRelatedThreshold:     in.RelatedThreshold,
		MaxRelatedPerQuery:          g.MaxRelatedPerQuery,
		MaxEdgesPerItem:             g.MaxEdgesPerItem,
		ConfidenceDivisor:           ingest.DefaultConfidenceDivisor,
		ClusterSuggestionConfidence: in.ClusterConfidence,
		StrongEdgeStrength:          g.StrongStrength,
		MaxKeywords:                 ingest.DefaultMaxKeywords,
		MinTokenLength:              ingest.DefaultMinTokenLen,
		UrgentWarning:               in.UrgentWarning,
		HighWarning:                 in.HighWarning,
		ConceptDiversity:            in.ConceptDiversity,
		MaxInsights:                 in.MaxInsights,
	}
}

// Validate rejects thresholds outside [0,1] and non-positive limits.
func (s Settings) Validate() error {
	unit := map[string]float64{
		"related_threshold":             s.RelatedThreshold,
		"graph_edge_threshold":          s.GraphEdgeThreshold,
		"analyze_related_threshold":     s.AnalyzeRelatedThreshold,
		"cluster_suggestion_confidence": s.ClusterSuggestionConfidence,
		"strong_edge_strength":          s.StrongEdgeStrength,
	}
	for name, v := range unit {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", internalerr.ErrInvalidConfig, name, v)
		}
	}

	positive := map[string]int{
		"max_related_per_query": s.MaxRelatedPerQuery,
		"max_edges_per_item":    s.MaxEdgesPerItem,
		"max_keywords":          s.MaxKeywords,
		"min_token_length":      s.MinTokenLength,
		"max_insights":          s.MaxInsights,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", internalerr.ErrInvalidConfig, name, v)
		}
	}

	// Keyword sets hold at most ten tokens and never a token shorter than three.
	if s.MaxKeywords > ingest.DefaultMaxKeywords {
		return fmt.Errorf("%w: max_keywords must be at most %d, got %d",
			internalerr.ErrInvalidConfig, ingest.DefaultMaxKeywords, s.MaxKeywords)
	}
	if s.MinTokenLength < ingest.DefaultMinTokenLen {
		return fmt.Errorf("%w: min_token_length must be at least %d, got %d",
			internalerr.ErrInvalidConfig, ingest.DefaultMinTokenLen, s.MinTokenLength)
	}

	counts := map[string]int{
		"urgent_warning":    s.UrgentWarning,
		"high_warning":      s.HighWarning,
		"concept_diversity": s.ConceptDiversity,
	}
	for name, v := range counts {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", internalerr.ErrInvalidConfig, name, v)
		}
	}

	if s.ConfidenceDivisor <= 0 || math.IsNaN(s.ConfidenceDivisor) || math.IsInf(s.ConfidenceDivisor, 0) {
		return fmt.Errorf("%w: confidence_divisor must be positive, got %v", internalerr.ErrInvalidConfig, s.ConfidenceDivisor)
	}
	return nil
}

// TokenizerOptions projects the keyword extraction limits.
func (s Settings) TokenizerOptions() ingest.TokenizerOptions {
	return ingest.TokenizerOptions{MaxKeywords: s.MaxKeywords, MinTokenLen: s.MinTokenLength}
}

// GraphOptions projects the relationship graph thresholds.
func (s Settings) GraphOptions() graph.Options {
	return graph.Options{
		RelatedThreshold:   s.RelatedThreshold,
		EdgeThreshold:      s.GraphEdgeThreshold,
		MaxRelatedPerQuery: s.MaxRelatedPerQuery,
		MaxEdgesPerItem:    s.MaxEdgesPerItem,
		StrongStrength:     s.StrongEdgeStrength,
	}
}

// InsightOptions projects the suggestion and insight thresholds.
func (s Settings) InsightOptions() insights.Options {
	return insights.Options{
		ClusterConfidence: s.ClusterSuggestionConfidence,
		RelatedThreshold:  s.AnalyzeRelatedThreshold,
		UrgentWarning:     s.UrgentWarning,
		HighWarning:       s.HighWarning,
		ConceptDiversity:  s.ConceptDiversity,
		MaxInsights:       s.MaxInsights,
	}
}

// LoadSettings reads settings from a YAML file. Keys missing from the
// file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Taxonomy is the taxonomy file: an ordered list of topics. File order is
// evaluation order.
type Taxonomy struct {
	Topics []ingest.Topic `yaml:"topics"`
}

// LoadTaxonomy loads taxonomy from a YAML file
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, err
	}
	if len(tax.Topics) == 0 {
		return nil, fmt.Errorf("%w: taxonomy %s defines no topics", internalerr.ErrInvalidConfig, path)
	}

	return &tax, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
