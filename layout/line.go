package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/relayout/model"
)

// LineConfig holds configuration for line clustering.
// The defaults are calibrated for typical OCR box jitter.
type LineConfig struct {
	// MinOverlapRatio is the minimum vertical overlap, as a fraction of the
	// shorter box's height, for two fragments to share a line (default: 0.4)
	MinOverlapRatio float64

	// MaxHorizontalGap is the maximum horizontal distance between the right
	// edge of the previous fragment and the left edge of the next for them
	// to share a line (default: 50)
	MaxHorizontalGap float64

	// BarrierBuffer is the tolerance around a detected column split when
	// testing whether a merge would cross it (default: 5)
	BarrierBuffer float64
}

// DefaultLineConfig returns the calibrated default configuration.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		MinOverlapRatio:  0.4,
		MaxHorizontalGap: 50.0,
		BarrierBuffer:    5.0,
	}
}

// LineClusterer groups fragments into horizontal lines.
//
// Fragments are processed top to bottom; a fragment joins the current line
// when it overlaps the line's last fragment vertically, sits within the
// horizontal gap threshold, and does not straddle a detected column split.
type LineClusterer struct {
	config LineConfig
}

// NewLineClusterer creates a line clusterer with default configuration.
func NewLineClusterer() *LineClusterer {
	return &LineClusterer{
		config: DefaultLineConfig(),
	}
}

// NewLineClustererWithConfig creates a line clusterer with custom configuration.
func NewLineClustererWithConfig(config LineConfig) *LineClusterer {
	return &LineClusterer{
		config: config,
	}
}

// Cluster groups fragments into lines, ordered top to bottom by the
// resulting line box's top edge. The input slice is not modified.
func (c *LineClusterer) Cluster(fragments []model.Fragment, split Split) []model.Line {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Y0 < sorted[j].Box.Y0
	})

	var lines []model.Line
	var current []model.Fragment

	for _, frag := range sorted {
		if len(current) == 0 {
			current = append(current, frag)
			continue
		}

		last := current[len(current)-1]

		if c.sameLine(last, frag, split) {
			current = append(current, frag)
		} else {
			lines = append(lines, buildLine(current))
			current = []model.Fragment{frag}
		}
	}

	if len(current) > 0 {
		lines = append(lines, buildLine(current))
	}

	return lines
}

// sameLine decides whether frag continues the line ending in last.
func (c *LineClusterer) sameLine(last, frag model.Fragment, split Split) bool {
	ratio := overlapRatio(last.Box, frag.Box)
	gap := frag.Box.X0 - last.Box.X1

	return ratio > c.config.MinOverlapRatio &&
		gap < c.config.MaxHorizontalGap &&
		!c.crossesBarrier(last.Box, frag.Box, split)
}

// overlapRatio is the vertical overlap of two boxes as a fraction of the
// shorter box's height. Degenerate boxes force the ratio to 0 rather than
// dividing by zero.
func overlapRatio(a, b model.Box) float64 {
	minHeight := a.Height()
	if b.Height() < minHeight {
		minHeight = b.Height()
	}
	if minHeight <= 0 {
		return 0
	}
	return a.VerticalOverlap(b) / minHeight
}

// crossesBarrier reports whether merging the two boxes would join content
// from opposite sides of the column split. One box must lie entirely left of
// the split and the other entirely right of it (within the buffer) for the
// merge to be forbidden; boxes that straddle the split themselves are
// allowed to merge in either direction.
func (c *LineClusterer) crossesBarrier(last, frag model.Box, split Split) bool {
	if !split.Found {
		return false
	}

	buf := c.config.BarrierBuffer

	lastLeft := last.X1 < split.X+buf
	fragRight := frag.X0 > split.X-buf

	lastRight := last.X0 > split.X-buf
	fragLeft := frag.X1 < split.X+buf

	return (lastLeft && fragRight) || (lastRight && fragLeft)
}

// buildLine merges a group of fragments into a Line: union box, members
// sorted left to right, text joined with single spaces.
func buildLine(fragments []model.Fragment) model.Line {
	members := make([]model.Fragment, len(fragments))
	copy(members, fragments)
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Box.X0 < members[j].Box.X0
	})

	texts := make([]string, len(members))
	for i, f := range members {
		texts[i] = f.Text
	}

	return model.Line{
		Box:       model.BoxUnion(model.FragmentBoxes(members)),
		Fragments: members,
		Text:      strings.Join(texts, " "),
	}
}
