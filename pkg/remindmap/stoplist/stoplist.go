// Package stoplist manages the function words dropped during keyword extraction.
package stoplist

import (
	"sort"
	"strings"
)

// defaultTerms are common English function words. They carry no topical
// signal and would otherwise dominate Jaccard overlap between short titles.
var defaultTerms = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "was", "are", "been", "be",
	"have", "has", "had", "do", "does", "did", "will", "would", "should",
	"could", "may", "might", "must", "can", "this", "that", "these", "those",
	"i", "you", "he", "she", "it", "we", "they", "my", "your", "his", "her",
	"its", "our", "their", "me", "him", "them", "us",
}

// DefaultTerms returns a copy of the built-in stop-word list.
func DefaultTerms() []string {
	out := make([]string, len(defaultTerms))
	copy(out, defaultTerms)
	return out
}

// Manager holds a lowercase stop-word set. Lookups are safe for concurrent
// use; Add and Remove are not and belong to setup time.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a manager from the given terms (case-insensitive).
func NewManager(terms []string) *Manager {
	stops := make(map[string]struct{}, len(terms))
	for _, s := range terms {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		stops[s] = struct{}{}
	}
	return &Manager{stops: stops}
}

// Default creates a manager seeded with DefaultTerms.
func Default() *Manager {
	return NewManager(defaultTerms)
}

// IsStop checks if a lowercase token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return
	}
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// Len returns the number of stopwords.
func (m *Manager) Len() int {
	return len(m.stops)
}

// All returns all stopwords in sorted order.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}
