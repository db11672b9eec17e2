package layout

import (
	"github.com/tsawler/relayout/model"
)

// Split represents the outcome of column split detection.
type Split struct {
	// X is the x-coordinate of the detected gutter midpoint, in page
	// coordinates. Only meaningful when Found is true.
	X float64

	// Found reports whether a column split was detected.
	Found bool
}

// SplitConfig holds configuration for column split detection.
type SplitConfig struct {
	// Bins is the resolution of the occupancy histogram over the x-axis
	// (default: 400)
	Bins int

	// HeaderFraction excludes boxes whose top edge lies within this fraction
	// of page height. Headers commonly span the full width and would mask a
	// real column gap. (default: 0.15)
	HeaderFraction float64

	// FullWidthFraction excludes boxes wider than this fraction of page width
	// (default: 0.85)
	FullWidthFraction float64

	// SearchStartFraction is the left edge of the gap search window as a
	// fraction of page width (default: 0.20)
	SearchStartFraction float64

	// SearchEndFraction is the right edge of the gap search window as a
	// fraction of page width (default: 0.80)
	SearchEndFraction float64

	// MinGapFraction is the minimum gap width, as a fraction of total bins,
	// for a gap to be accepted as a column split (default: 0.02)
	MinGapFraction float64
}

// DefaultSplitConfig returns the calibrated default configuration.
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		Bins:                400,
		HeaderFraction:      0.15,
		FullWidthFraction:   0.85,
		SearchStartFraction: 0.20,
		SearchEndFraction:   0.80,
		MinGapFraction:      0.02,
	}
}

// SplitDetector detects a vertical column boundary from the horizontal
// distribution of text boxes.
//
// The detector builds a fixed-resolution occupancy histogram over the x-axis,
// filters out likely headers and full-width elements, then searches the
// middle of the page for the widest contiguous run of empty bins. The gap
// search is robust to noisy box edges and assumes no fixed column width; the
// search window and minimum gap width reject spurious gaps near page edges
// and single-word whitespace.
type SplitDetector struct {
	config SplitConfig
}

// NewSplitDetector creates a split detector with default configuration.
func NewSplitDetector() *SplitDetector {
	return &SplitDetector{
		config: DefaultSplitConfig(),
	}
}

// NewSplitDetectorWithConfig creates a split detector with custom configuration.
func NewSplitDetectorWithConfig(config SplitConfig) *SplitDetector {
	return &SplitDetector{
		config: config,
	}
}

// Detect analyzes the boxes and returns the detected column split, if any.
// Empty input and single-column layouts yield Split{Found: false}; there are
// no error conditions.
func (d *SplitDetector) Detect(boxes []model.Box, pageWidth, pageHeight float64) Split {
	if len(boxes) == 0 || pageWidth <= 0 || d.config.Bins <= 0 {
		return Split{}
	}

	// Filter out likely headers and full-width elements so they cannot
	// hide the column gap.
	valid := d.filterBoxes(boxes, pageWidth, pageHeight)

	// If filtering removed everything, fall back to the unfiltered set so
	// detection always attempts a result.
	if len(valid) == 0 {
		valid = boxes
	}

	occupied := d.buildHistogram(valid, pageWidth)

	gaps := d.findGaps(occupied)
	if len(gaps) == 0 {
		return Split{}
	}

	widest := gaps[0]
	for _, g := range gaps[1:] {
		if g.width() > widest.width() {
			widest = g
		}
	}

	// A gap narrower than the minimum fraction of total bins is ordinary
	// inter-word whitespace, not a gutter.
	minWidth := float64(d.config.Bins) * d.config.MinGapFraction
	if float64(widest.width()) <= minWidth {
		return Split{}
	}

	centerBin := float64(widest.start) + float64(widest.width())/2
	return Split{
		X:     centerBin / float64(d.config.Bins) * pageWidth,
		Found: true,
	}
}

// binGap is a contiguous run of unoccupied histogram bins [start, end).
type binGap struct {
	start, end int
}

func (g binGap) width() int {
	return g.end - g.start
}

// filterBoxes removes boxes unlikely to participate in column structure.
func (d *SplitDetector) filterBoxes(boxes []model.Box, pageWidth, pageHeight float64) []model.Box {
	var valid []model.Box
	for _, b := range boxes {
		// Top-of-page content (names, titles, letterheads)
		if b.Y0 < pageHeight*d.config.HeaderFraction {
			continue
		}
		// Full-width elements (horizontal rules, spanning paragraphs)
		if b.Width() > pageWidth*d.config.FullWidthFraction {
			continue
		}
		valid = append(valid, b)
	}
	return valid
}

// buildHistogram marks every bin spanned by a box's x-extent as occupied.
// Box edges outside [0, pageWidth] are clamped to the histogram range.
func (d *SplitDetector) buildHistogram(boxes []model.Box, pageWidth float64) []bool {
	bins := d.config.Bins
	occupied := make([]bool, bins)

	for _, b := range boxes {
		start := int(b.X0 / pageWidth * float64(bins))
		end := int(b.X1 / pageWidth * float64(bins))
		if start < 0 {
			start = 0
		}
		if end > bins {
			end = bins
		}
		for i := start; i < end; i++ {
			occupied[i] = true
		}
	}

	return occupied
}

// findGaps collects maximal runs of unoccupied bins within the search window.
func (d *SplitDetector) findGaps(occupied []bool) []binGap {
	bins := len(occupied)
	searchStart := int(float64(bins) * d.config.SearchStartFraction)
	searchEnd := int(float64(bins) * d.config.SearchEndFraction)

	var gaps []binGap
	gapStart := -1

	for i := searchStart; i < searchEnd; i++ {
		if !occupied[i] {
			if gapStart == -1 {
				gapStart = i
			}
		} else if gapStart != -1 {
			gaps = append(gaps, binGap{start: gapStart, end: i})
			gapStart = -1
		}
	}

	// Close a gap still open at the window edge
	if gapStart != -1 {
		gaps = append(gaps, binGap{start: gapStart, end: searchEnd})
	}

	return gaps
}
