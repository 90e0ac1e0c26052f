package ingest

// Pipeline runs the per-item text analysis:
// text → keyword extraction → taxonomy classification
type Pipeline struct {
	tokenizer *Tokenizer
	taxonomy  *Taxonomy
}

// NewPipeline creates an analysis pipeline with the given components
func NewPipeline(tokenizer *Tokenizer, taxonomy *Taxonomy) *Pipeline {
	if tokenizer == nil {
		tokenizer = DefaultTokenizer()
	}
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Pipeline{
		tokenizer: tokenizer,
		taxonomy:  taxonomy,
	}
}

// ProcessedItem is an item's text after analysis
type ProcessedItem struct {
	Keywords []string
	Cluster  ClusterResult
}

// Process runs title and description through the full pipeline
func (p *Pipeline) Process(title, description string) ProcessedItem {
	return ProcessedItem{
		Keywords: p.tokenizer.ExtractKeywords(title + " " + description),
		Cluster:  p.taxonomy.Classify(title, description),
	}
}

// Tokenizer returns the pipeline's keyword extractor.
func (p *Pipeline) Tokenizer() *Tokenizer { return p.tokenizer }

// Taxonomy returns the pipeline's classifier.
func (p *Pipeline) Taxonomy() *Taxonomy { return p.taxonomy }
