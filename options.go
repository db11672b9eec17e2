package relayout

import "github.com/tsawler/relayout/layout"

// AnalyzeOptions holds configuration for layout analysis.
type AnalyzeOptions struct {
	// Pipeline configuration
	config layout.AnalyzerConfig

	// Page selection (1-indexed; 0 means first page)
	page int

	// OCR and hOCR filtering
	minConfidence float64
	languages     []string
}

// defaultOptions returns the default analysis options.
func defaultOptions() AnalyzeOptions {
	return AnalyzeOptions{
		config:        layout.DefaultAnalyzerConfig(),
		page:          0,
		minConfidence: 0,
		languages:     nil, // engine default
	}
}

// clone creates a deep copy of AnalyzeOptions.
func (o AnalyzeOptions) clone() AnalyzeOptions {
	newOpts := AnalyzeOptions{
		config:        o.config,
		page:          o.page,
		minConfidence: o.minConfidence,
	}

	// Deep copy languages slice
	if o.languages != nil {
		newOpts.languages = make([]string, len(o.languages))
		copy(newOpts.languages, o.languages)
	}

	return newOpts
}
