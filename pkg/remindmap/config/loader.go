package config

import (
	"fmt"

	"github.com/theokkk4/remindmap/pkg/remindmap/ingest"
	"github.com/theokkk4/remindmap/pkg/remindmap/stoplist"
)

// Loader loads all configuration files and constructs components.
// An empty path selects the built-in default for that file.
type Loader struct {
	SettingsPath string
	StoplistPath string
	TaxonomyPath string
}

// Components holds all loaded configuration components
type Components struct {
	Settings  Settings
	Stoplist  *stoplist.Manager
	Tokenizer *ingest.Tokenizer
	Taxonomy  *ingest.Taxonomy
}

// Defaults returns the components of an engine with no configuration files.
func Defaults() *Components {
	comp, err := (&Loader{}).Load()
	if err != nil {
		panic(err)
	}
	return comp
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{Settings: DefaultSettings()}

	if l.SettingsPath != "" {
		settings, err := LoadSettings(l.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		comp.Settings = settings
	}

	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms)
	} else {
		comp.Stoplist = stoplist.Default()
	}
	comp.Tokenizer = ingest.NewTokenizer(comp.Stoplist, comp.Settings.TokenizerOptions())

	topics := ingest.DefaultTopics()
	if l.TaxonomyPath != "" {
		taxConfig, err := LoadTaxonomy(l.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
		topics = taxConfig.Topics
	}
	tax, err := ingest.NewTaxonomy(topics, comp.Tokenizer, comp.Settings.ConfidenceDivisor)
	if err != nil {
		return nil, fmt.Errorf("build taxonomy: %w", err)
	}
	comp.Taxonomy = tax

	return comp, nil
}
