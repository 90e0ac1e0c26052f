package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeTo(t, path, content)
	return path
}

func writeTo(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	assert.Equal(t, Settings{
		RelatedThreshold:            0.2,
		GraphEdgeThreshold:          0.25,
		AnalyzeRelatedThreshold:     0.3,
		MaxRelatedPerQuery:          5,
		MaxEdgesPerItem:             2,
		ConfidenceDivisor:           5,
		ClusterSuggestionConfidence: 0.3,
		StrongEdgeStrength:          0.5,
		MaxKeywords:                 10,
		MinTokenLength:              3,
		UrgentWarning:               3,
		HighWarning:                 5,
		ConceptDiversity:            20,
		MaxInsights:                 3,
	}, s)
}

func TestLoadSettingsKeepsDefaults(t *testing.T) {
	path := writeFile(t, "settings.yaml", `graph_edge_threshold: 0.4
max_edges_per_item: 3
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, s.GraphEdgeThreshold)
	assert.Equal(t, 3, s.MaxEdgesPerItem)
	assert.Equal(t, 0.2, s.RelatedThreshold)
	assert.Equal(t, 10, s.MaxKeywords)

	g := s.GraphOptions()
	assert.Equal(t, 0.4, g.EdgeThreshold)
	assert.Equal(t, 3, g.MaxEdgesPerItem)
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadSettings(writeFile(t, "bad.yaml", "related_threshold: [oops"))
	assert.Error(t, err)

	_, err = LoadSettings(writeFile(t, "range.yaml", "related_threshold: 1.5\n"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{name: "negative threshold", mutate: func(s *Settings) { s.GraphEdgeThreshold = -0.1 }},
		{name: "strength above one", mutate: func(s *Settings) { s.StrongEdgeStrength = 1.1 }},
		{name: "zero keywords", mutate: func(s *Settings) { s.MaxKeywords = 0 }},
		{name: "more than ten keywords", mutate: func(s *Settings) { s.MaxKeywords = 11 }},
		{name: "tokens shorter than three", mutate: func(s *Settings) { s.MinTokenLength = 2 }},
		{name: "negative edge cap", mutate: func(s *Settings) { s.MaxEdgesPerItem = -1 }},
		{name: "zero edges", mutate: func(s *Settings) { s.MaxEdgesPerItem = 0 }},
		{name: "zero divisor", mutate: func(s *Settings) { s.ConfidenceDivisor = 0 }},
		{name: "negative warning", mutate: func(s *Settings) { s.UrgentWarning = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), internalerr.ErrInvalidConfig)
		})
	}
}

func TestLoadStoplist(t *testing.T) {
	path := writeFile(t, "stoplist.yaml", `terms:
  - the
  - a
  - and
`)

	sl, err := LoadStoplist(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "a", "and"}, sl.Terms)
}

func TestLoadTaxonomy(t *testing.T) {
	path := writeFile(t, "taxonomy.yaml", `topics:
  - label: garden
    seeds: [plant, water, roses]
    color: "#86efac"
    accent: "#22c55e"
    icon: "🌱"
  - label: travel
    seeds: [flight, hotel, passport]
`)

	tax, err := LoadTaxonomy(path)
	require.NoError(t, err)
	require.Len(t, tax.Topics, 2)
	assert.Equal(t, "garden", tax.Topics[0].Label)
	assert.Equal(t, []string{"plant", "water", "roses"}, tax.Topics[0].Seeds)
	assert.Equal(t, "🌱", tax.Topics[0].Icon)
	assert.Equal(t, "travel", tax.Topics[1].Label)

	_, err = LoadTaxonomy(writeFile(t, "empty.yaml", "topics: []\n"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}
