package ingest

import (
	"fmt"
	"math"
	"strings"

	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
)

// GeneralLabel is the fallback cluster. It is never a scored topic.
const GeneralLabel = "general"

const (
	// DefaultConfidenceDivisor is the score at which confidence saturates.
	// One literal hit plus one partial hit (3 points) reads as 0.6.
	DefaultConfidenceDivisor = 5.0
	// MaxMatchedKeywords bounds ClusterResult.MatchedKeywords.
	MaxMatchedKeywords = 3

	literalHitScore = 2
	partialHitScore = 1
)

// Topic is one labelled seed list of the taxonomy.
type Topic struct {
	Label  string   `yaml:"label" json:"label"`
	Seeds  []string `yaml:"seeds" json:"seeds"`
	Color  string   `yaml:"color,omitempty" json:"color,omitempty"`
	Accent string   `yaml:"accent,omitempty" json:"accent,omitempty"`
	Icon   string   `yaml:"icon,omitempty" json:"icon,omitempty"`
}

// ClusterResult is the outcome of classifying one text.
type ClusterResult struct {
	Cluster         string   `json:"cluster"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// General is the result for text that matches no topic.
func General() ClusterResult {
	return ClusterResult{Cluster: GeneralLabel, Confidence: 0, MatchedKeywords: []string{}}
}

// generalTopic carries the palette entries for the fallback label.
var generalTopic = Topic{Label: GeneralLabel, Color: "#cbd5e1", Accent: "#6b7280", Icon: "📝"}

// defaultTopics is evaluated top to bottom; on equal scores the earlier
// topic wins.
var defaultTopics = []Topic{
	{Label: "work", Color: "#60a5fa", Accent: "#3b82f6", Icon: "💼",
		Seeds: []string{"project", "meeting", "deadline", "team", "client", "presentation", "report", "review", "call", "email"}},
	{Label: "personal", Color: "#a78bfa", Accent: "#8b5cf6", Icon: "🏠",
		Seeds: []string{"home", "family", "friend", "birthday", "appointment", "doctor", "dentist", "gym", "exercise"}},
	{Label: "learning", Color: "#6ee7b7", Accent: "#10b981", Icon: "📚",
		Seeds: []string{"study", "read", "course", "tutorial", "research", "learn", "practice", "book", "article"}},
	{Label: "creative", Color: "#f9a8d4", Accent: "#ec4899", Icon: "🎨",
		Seeds: []string{"design", "write", "create", "brainstorm", "idea", "sketch", "draft", "concept", "art"}},
	{Label: "finance", Color: "#fcd34d", Accent: "#f59e0b", Icon: "💰",
		Seeds: []string{"budget", "pay", "bill", "invoice", "expense", "tax", "money", "purchase", "subscription"}},
	{Label: "health", Color: "#7dd3fc", Accent: "#06b6d4", Icon: "🏃",
		Seeds: []string{"workout", "meal", "sleep", "meditation", "therapy", "medicine", "health", "wellness", "fitness"}},
	{Label: "social", Color: "#c4b5fd", Accent: "#a855f7", Icon: "👥",
		Seeds: []string{"party", "event", "dinner", "lunch", "coffee", "hangout", "meetup", "celebrate", "visit"}},
	{Label: "tech", Color: "#93c5fd", Accent: "#0ea5e9", Icon: "💻",
		Seeds: []string{"code", "debug", "deploy", "fix", "update", "install", "configure", "setup", "build", "test"}},
}

// DefaultTopics returns a deep copy of the built-in taxonomy in evaluation order.
func DefaultTopics() []Topic {
	out := make([]Topic, len(defaultTopics))
	for i, tp := range defaultTopics {
		tp.Seeds = append([]string(nil), tp.Seeds...)
		out[i] = tp
	}
	return out
}

// Taxonomy scores text against an ordered list of topics.
type Taxonomy struct {
	topics    []Topic
	byLabel   map[string]Topic
	tokenizer *Tokenizer
	divisor   float64
}

// NewTaxonomy validates topics and builds a classifier. Seeds are lowercased.
// Labels must be unique, non-empty and must not reuse the fallback label.
func NewTaxonomy(topics []Topic, tokenizer *Tokenizer, divisor float64) (*Taxonomy, error) {
	if tokenizer == nil {
		tokenizer = DefaultTokenizer()
	}
	if divisor <= 0 || math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return nil, fmt.Errorf("%w: confidence divisor must be positive, got %v", internalerr.ErrInvalidConfig, divisor)
	}

	tax := &Taxonomy{
		topics:    make([]Topic, 0, len(topics)),
		byLabel:   make(map[string]Topic, len(topics)+1),
		tokenizer: tokenizer,
		divisor:   divisor,
	}
	for _, tp := range topics {
		label := strings.ToLower(strings.TrimSpace(tp.Label))
		if label == "" || label == GeneralLabel {
			return nil, fmt.Errorf("%w: invalid topic label %q", internalerr.ErrInvalidConfig, tp.Label)
		}
		if _, dup := tax.byLabel[label]; dup {
			return nil, fmt.Errorf("%w: duplicate topic label %q", internalerr.ErrInvalidConfig, label)
		}
		seeds := make([]string, 0, len(tp.Seeds))
		for _, s := range tp.Seeds {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				seeds = append(seeds, s)
			}
		}
		tp.Label = label
		tp.Seeds = seeds
		tax.topics = append(tax.topics, tp)
		tax.byLabel[label] = tp
	}
	tax.byLabel[GeneralLabel] = generalTopic
	return tax, nil
}

// DefaultTaxonomy returns the built-in eight-topic classifier.
func DefaultTaxonomy() *Taxonomy {
	tax, err := NewTaxonomy(defaultTopics, DefaultTokenizer(), DefaultConfidenceDivisor)
	if err != nil {
		panic(err)
	}
	return tax
}

// Topics returns the topics in evaluation order.
func (t *Taxonomy) Topics() []Topic {
	out := make([]Topic, len(t.topics))
	copy(out, t.topics)
	return out
}

// Labels returns topic labels in evaluation order, without the fallback.
func (t *Taxonomy) Labels() []string {
	labels := make([]string, len(t.topics))
	for i, tp := range t.topics {
		labels[i] = tp.Label
	}
	return labels
}

// Classify picks the best topic for an item's title and description.
//
// Each seed found verbatim in the lowercased text scores 2. Each (seed,
// keyword) pair where one contains the other scores 1, so a generic seed
// can be counted once per matching keyword. The first topic with the
// strictly highest score wins.
func (t *Taxonomy) Classify(title, description string) ClusterResult {
	text := strings.ToLower(title + " " + description)
	keywords := t.tokenizer.ExtractKeywords(text)

	bestScore := 0
	var best *Topic
	var bestMatches []string

	for i := range t.topics {
		tp := &t.topics[i]
		score := 0
		var matches []string

		for _, seed := range tp.Seeds {
			if strings.Contains(text, seed) {
				score += literalHitScore
				matches = append(matches, seed)
			}
			for _, kw := range keywords {
				if strings.Contains(kw, seed) || strings.Contains(seed, kw) {
					score += partialHitScore
					matches = append(matches, kw)
				}
			}
		}

		if score > bestScore {
			bestScore = score
			best = tp
			bestMatches = matches
		}
	}

	if best == nil {
		return General()
	}

	return ClusterResult{
		Cluster:         best.Label,
		Confidence:      math.Min(float64(bestScore)/t.divisor, 1),
		MatchedKeywords: firstUnique(bestMatches, MaxMatchedKeywords),
	}
}

// ClusterColor returns the node color for a cluster label.
func (t *Taxonomy) ClusterColor(label string) string {
	return t.topic(label).Color
}

// ClusterIcon returns the node icon for a cluster label.
func (t *Taxonomy) ClusterIcon(label string) string {
	return t.topic(label).Icon
}

// SuggestColor classifies the text and returns the accent color of the
// winning cluster.
func (t *Taxonomy) SuggestColor(title, description string) string {
	return t.topic(t.Classify(title, description).Cluster).Accent
}

// topic resolves a label, falling back to general for unknown labels or
// topics configured without a palette entry.
func (t *Taxonomy) topic(label string) Topic {
	tp, ok := t.byLabel[label]
	if !ok {
		return generalTopic
	}
	if tp.Color == "" {
		tp.Color = generalTopic.Color
	}
	if tp.Accent == "" {
		tp.Accent = generalTopic.Accent
	}
	if tp.Icon == "" {
		tp.Icon = generalTopic.Icon
	}
	return tp
}

// firstUnique de-duplicates in first-seen order and truncates to limit.
func firstUnique(values []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if len(out) == limit {
			break
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
