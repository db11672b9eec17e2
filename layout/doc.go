// Package layout reconstructs a page's logical reading structure from an
// unordered set of recognized text fragments.
//
// OCR engines yield words with bounding boxes but no notion of column,
// paragraph, or reading order. This package rebuilds that structure in three
// stages, composed per page:
//
//  1. [SplitDetector] - finds an optional vertical column boundary from the
//     spatial distribution of text, using a histogram gap search.
//  2. [LineClusterer] - groups fragments into horizontal lines by vertical
//     overlap and horizontal proximity.
//  3. [BlockClusterer] - groups lines into paragraph-like blocks using
//     adaptive vertical-gap and edge-alignment heuristics.
//
// A detected column boundary acts as a hard barrier: neither clustering stage
// will merge content that straddles it.
//
// # Analysis
//
// The [Analyzer] orchestrates the full pipeline:
//
//	analyzer := layout.NewAnalyzer()
//	result := analyzer.Analyze(fragments, pageWidth, pageHeight)
//	for _, block := range result.Blocks {
//	    fmt.Println(block.Text)
//	}
//
// # Configuration
//
// Each stage has its own configuration with calibrated defaults:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.Line.MaxHorizontalGap = 30
//	analyzer := layout.NewAnalyzerWithConfig(config)
//
// The defaults are tuned for typical OCR box jitter on single- and two-column
// documents (resumes, articles, letters). Behavior on forms, tables, and
// slides is not calibrated.
//
// All components are pure functions of their inputs with no hidden state, so
// pages can be analyzed concurrently with one Analyzer per goroutine or a
// single shared Analyzer (it is stateless after construction).
package layout
