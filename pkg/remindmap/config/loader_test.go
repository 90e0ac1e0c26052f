package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
)

func TestLoaderDefaults(t *testing.T) {
	comp, err := (&Loader{}).Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), comp.Settings)
	assert.Equal(t, 57, comp.Stoplist.Len())
	assert.Equal(t, []string{"client", "meeting"}, comp.Tokenizer.ExtractKeywords("the client meeting"))
	assert.Equal(t, "work", comp.Taxonomy.Classify("Team meeting with client tomorrow", "").Cluster)
}

func TestLoaderFromFiles(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.yaml")
	stops := filepath.Join(dir, "stoplist.yaml")
	tax := filepath.Join(dir, "taxonomy.yaml")

	writeTo(t, settings, "max_keywords: 2\nconfidence_divisor: 2\n")
	writeTo(t, stops, "terms: [water]\n")
	writeTo(t, tax, `topics:
  - label: garden
    seeds: [plant, roses]
`)

	comp, err := (&Loader{SettingsPath: settings, StoplistPath: stops, TaxonomyPath: tax}).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"the", "roses"}, comp.Tokenizer.ExtractKeywords("water the roses daily"))
	assert.Equal(t, []string{"garden"}, comp.Taxonomy.Labels())

	res := comp.Taxonomy.Classify("Plant", "")
	assert.Equal(t, "garden", res.Cluster)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := (&Loader{StoplistPath: filepath.Join(dir, "nope.yaml")}).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load stoplist")

	badTax := filepath.Join(dir, "taxonomy.yaml")
	writeTo(t, badTax, "topics:\n  - label: general\n    seeds: [x]\n")
	_, err = (&Loader{TaxonomyPath: badTax}).Load()
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	badSettings := filepath.Join(dir, "settings.yaml")
	writeTo(t, badSettings, "max_insights: 0\n")
	_, err = (&Loader{SettingsPath: badSettings}).Load()
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	loose := filepath.Join(dir, "loose.yaml")
	writeTo(t, loose, "max_keywords: 25\nmin_token_length: 1\n")
	_, err = (&Loader{SettingsPath: loose}).Load()
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}
