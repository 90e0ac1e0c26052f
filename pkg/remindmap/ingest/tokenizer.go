package ingest

import (
	"strings"

	"github.com/theokkk4/remindmap/pkg/remindmap/stoplist"
)

const (
	// DefaultMaxKeywords bounds the length of every extracted keyword set.
	DefaultMaxKeywords = 10
	// DefaultMinTokenLen drops short tokens such as "go", "pr", "a".
	DefaultMinTokenLen = 3
)

// TokenizerOptions configures keyword extraction.
type TokenizerOptions struct {
	MaxKeywords int
	MinTokenLen int
}

// DefaultTokenizerOptions returns the documented extraction limits.
func DefaultTokenizerOptions() TokenizerOptions {
	return TokenizerOptions{
		MaxKeywords: DefaultMaxKeywords,
		MinTokenLen: DefaultMinTokenLen,
	}
}

// Tokenizer turns free text into a bounded, ordered keyword sequence.
type Tokenizer struct {
	stops *stoplist.Manager
	opts  TokenizerOptions
}

// NewTokenizer creates a tokenizer. A nil manager means the default stop list.
// Limits may only tighten the defaults: at most DefaultMaxKeywords keywords,
// none shorter than DefaultMinTokenLen.
func NewTokenizer(stops *stoplist.Manager, opts TokenizerOptions) *Tokenizer {
	if stops == nil {
		stops = stoplist.Default()
	}
	if opts.MaxKeywords <= 0 || opts.MaxKeywords > DefaultMaxKeywords {
		opts.MaxKeywords = DefaultMaxKeywords
	}
	if opts.MinTokenLen < DefaultMinTokenLen {
		opts.MinTokenLen = DefaultMinTokenLen
	}
	return &Tokenizer{stops: stops, opts: opts}
}

// DefaultTokenizer uses the built-in stop list and limits.
func DefaultTokenizer() *Tokenizer {
	return NewTokenizer(nil, DefaultTokenizerOptions())
}

// ExtractKeywords lowercases text, splits on every non-word character,
// drops short tokens and stopwords, and keeps the first MaxKeywords
// survivors in their original order. Duplicates are kept; callers that
// need set semantics use KeywordSet.
func (t *Tokenizer) ExtractKeywords(text string) []string {
	keywords := make([]string, 0, t.opts.MaxKeywords)
	if text == "" {
		return keywords
	}

	var current strings.Builder
	flush := func() bool {
		if current.Len() == 0 {
			return false
		}
		word := current.String()
		current.Reset()
		if !t.keep(word) {
			return false
		}
		keywords = append(keywords, word)
		return len(keywords) == t.opts.MaxKeywords
	}

	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			current.WriteRune(r)
			continue
		}
		if flush() {
			return keywords
		}
	}
	flush()

	return keywords
}

// keep reports whether a lowercase token survives filtering.
func (t *Tokenizer) keep(word string) bool {
	return len(word) >= t.opts.MinTokenLen && !t.stops.IsStop(word)
}

// isWordRune matches the ASCII word class [A-Za-z0-9_]. Everything else,
// accented letters included, separates tokens.
func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stops.Add(word)
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	t.stops.Remove(word)
}

// KeywordSet collapses a keyword sequence into a set.
func KeywordSet(keywords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[kw] = struct{}{}
	}
	return set
}
