package layout

import (
	"strings"

	"github.com/tsawler/relayout/model"
)

// Side classifies which column a block belongs to relative to a detected
// split.
type Side int

const (
	// SideSpanning indicates a block centered on the split, or any block on
	// a page without a detected split.
	SideSpanning Side = iota
	// SideLeft indicates a block in the left column.
	SideLeft
	// SideRight indicates a block in the right column.
	SideRight
)

// String returns a string representation of the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "spanning"
	}
}

// AnalyzerConfig aggregates the configuration of all pipeline stages.
type AnalyzerConfig struct {
	// Split detection configuration
	Split SplitConfig

	// Line clustering configuration
	Line LineConfig

	// Block clustering configuration
	Block BlockConfig
}

// DefaultAnalyzerConfig returns a configuration with the calibrated defaults
// for every stage.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Split: DefaultSplitConfig(),
		Line:  DefaultLineConfig(),
		Block: DefaultBlockConfig(),
	}
}

// Result holds the reconstructed layout of a single page.
type Result struct {
	// Blocks are the reconstructed text blocks in reading order (top to
	// bottom)
	Blocks []model.Block

	// Lines are the intermediate clustered lines, top to bottom
	Lines []model.Line

	// Split is the detected column boundary, if any
	Split Split

	// Page dimensions, in the same units as the fragment boxes
	PageWidth  float64
	PageHeight float64

	// Config is the configuration used for analysis
	Config AnalyzerConfig
}

// Analyzer runs the full reconstruction pipeline: fragments are examined for
// a column split, clustered into lines, and the lines clustered into blocks,
// with the split acting as a barrier in both clustering stages.
//
// An Analyzer is stateless after construction and safe for concurrent use.
type Analyzer struct {
	config   AnalyzerConfig
	splitter *SplitDetector
	liner    *LineClusterer
	blocker  *BlockClusterer
}

// NewAnalyzer creates an analyzer with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration.
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config:   config,
		splitter: NewSplitDetectorWithConfig(config.Split),
		liner:    NewLineClustererWithConfig(config.Line),
		blocker:  NewBlockClustererWithConfig(config.Block),
	}
}

// Analyze reconstructs the layout of one page. Empty input yields a result
// with no split, no lines, and no blocks; this is not an error.
func (a *Analyzer) Analyze(fragments []model.Fragment, pageWidth, pageHeight float64) *Result {
	result := &Result{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Config:     a.config,
	}

	if len(fragments) == 0 {
		return result
	}

	result.Split = a.splitter.Detect(model.FragmentBoxes(fragments), pageWidth, pageHeight)
	result.Lines = a.liner.Cluster(fragments, result.Split)
	result.Blocks = a.blocker.Cluster(result.Lines, result.Split)

	return result
}

// Result methods

// BlockCount returns the number of reconstructed blocks.
func (r *Result) BlockCount() int {
	if r == nil {
		return 0
	}
	return len(r.Blocks)
}

// LineCount returns the number of clustered lines.
func (r *Result) LineCount() int {
	if r == nil {
		return 0
	}
	return len(r.Lines)
}

// GetBlock returns a specific block by index.
func (r *Result) GetBlock(index int) *model.Block {
	if r == nil || index < 0 || index >= len(r.Blocks) {
		return nil
	}
	return &r.Blocks[index]
}

// HasSplit reports whether a column split was detected.
func (r *Result) HasSplit() bool {
	return r != nil && r.Split.Found
}

// BlockSide classifies a block's column side from its horizontal center
// relative to the detected split. Without a split every block is spanning.
func (r *Result) BlockSide(block *model.Block) Side {
	if r == nil || block == nil || !r.Split.Found {
		return SideSpanning
	}

	center := block.Box.CenterX()
	switch {
	case center < r.Split.X:
		return SideLeft
	case center > r.Split.X:
		return SideRight
	default:
		return SideSpanning
	}
}

// BlocksOnSide returns the blocks on a given column side, in reading order.
func (r *Result) BlocksOnSide(side Side) []model.Block {
	if r == nil {
		return nil
	}

	var blocks []model.Block
	for i := range r.Blocks {
		if r.BlockSide(&r.Blocks[i]) == side {
			blocks = append(blocks, r.Blocks[i])
		}
	}
	return blocks
}

// GetText returns all block text in reading order, blocks separated by
// blank lines.
func (r *Result) GetText() string {
	if r == nil || len(r.Blocks) == 0 {
		return ""
	}

	texts := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		texts[i] = b.Text
	}
	return strings.Join(texts, "\n\n")
}

// ColumnText returns the text of a column side in reading order, blocks
// separated by blank lines.
func (r *Result) ColumnText(side Side) string {
	blocks := r.BlocksOnSide(side)
	if len(blocks) == 0 {
		return ""
	}

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}
	return strings.Join(texts, "\n\n")
}
