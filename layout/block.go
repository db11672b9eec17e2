package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/relayout/model"
)

// BlockConfig holds configuration for block clustering.
type BlockConfig struct {
	// BodyMultiplier scales the vertical-gap threshold for lines smaller
	// than the page's average line height (default: 1.5)
	BodyMultiplier float64

	// HeadingMultiplier scales the vertical-gap threshold for lines at or
	// above the average line height; larger text has naturally larger
	// leading (default: 2.0)
	HeadingMultiplier float64

	// MinThreshold is the floor for the vertical-gap threshold, preventing
	// degenerate thresholds from zero-height lines (default: 5.0)
	MinThreshold float64

	// AlignmentTolerance is the maximum left-edge or right-edge difference
	// for two lines to be considered aligned. Either edge aligning is
	// sufficient, which covers bullets and indentation. (default: 80)
	AlignmentTolerance float64

	// FallbackLineHeight is the assumed average line height when the line
	// set is empty (default: 20)
	FallbackLineHeight float64
}

// DefaultBlockConfig returns the calibrated default configuration.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		BodyMultiplier:     1.5,
		HeadingMultiplier:  2.0,
		MinThreshold:       5.0,
		AlignmentTolerance: 80.0,
		FallbackLineHeight: 20.0,
	}
}

// BlockClusterer groups lines into paragraph-like blocks.
//
// The vertical-gap threshold adapts to line height: a single fixed cutoff
// cannot serve both dense body text and sparse headline text, so the cutoff
// scales with the taller of the two lines being compared. This yields an
// approximately font-size-invariant paragraph-break detector.
type BlockClusterer struct {
	config BlockConfig
}

// NewBlockClusterer creates a block clusterer with default configuration.
func NewBlockClusterer() *BlockClusterer {
	return &BlockClusterer{
		config: DefaultBlockConfig(),
	}
}

// NewBlockClustererWithConfig creates a block clusterer with custom configuration.
func NewBlockClustererWithConfig(config BlockConfig) *BlockClusterer {
	return &BlockClusterer{
		config: config,
	}
}

// Cluster groups lines into blocks, ordered top to bottom. The input slice
// is not modified.
//
// When a split is present, each column is clustered independently: a
// right-column line vertically interleaved with left-column lines must not
// interrupt the left column's paragraph. The barrier test in sameBlock
// additionally guards against a merge whose union box would drift across
// the split.
func (c *BlockClusterer) Cluster(lines []model.Line, split Split) []model.Block {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]model.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Y0 < sorted[j].Box.Y0
	})

	avgHeight := c.averageLineHeight(sorted)

	if !split.Found {
		return c.clusterRun(sorted, avgHeight, split)
	}

	var left, right []model.Line
	for _, l := range sorted {
		if l.Box.CenterX() < split.X {
			left = append(left, l)
		} else {
			right = append(right, l)
		}
	}

	blocks := c.clusterRun(left, avgHeight, split)
	blocks = append(blocks, c.clusterRun(right, avgHeight, split)...)

	// Reading order: top to bottom, left column first on ties
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Box.Y0 < blocks[j].Box.Y0
	})

	return blocks
}

// clusterRun performs one sequential clustering pass over lines already
// sorted top to bottom.
func (c *BlockClusterer) clusterRun(lines []model.Line, avgHeight float64, split Split) []model.Block {
	if len(lines) == 0 {
		return nil
	}

	var blocks []model.Block
	var current []model.Line

	for _, line := range lines {
		if len(current) == 0 {
			current = append(current, line)
			continue
		}

		if c.sameBlock(current, line, avgHeight, split) {
			current = append(current, line)
		} else {
			blocks = append(blocks, buildBlock(current))
			current = []model.Line{line}
		}
	}

	if len(current) > 0 {
		blocks = append(blocks, buildBlock(current))
	}

	return blocks
}

// averageLineHeight computes the global average line height, used only to
// pick the gap multiplier, never as a hard cutoff.
func (c *BlockClusterer) averageLineHeight(lines []model.Line) float64 {
	if len(lines) == 0 {
		return c.config.FallbackLineHeight
	}

	total := 0.0
	for _, l := range lines {
		total += l.Box.Height()
	}
	return total / float64(len(lines))
}

// sameBlock decides whether line continues the current block.
func (c *BlockClusterer) sameBlock(current []model.Line, line model.Line, avgHeight float64, split Split) bool {
	last := current[len(current)-1]

	verticalGap := line.Box.Y0 - last.Box.Y1

	// Adaptive threshold from the taller of the two lines
	dominant := last.Box.Height()
	if line.Box.Height() > dominant {
		dominant = line.Box.Height()
	}

	multiplier := c.config.HeadingMultiplier
	if dominant < avgHeight {
		multiplier = c.config.BodyMultiplier
	}

	threshold := dominant * multiplier
	if threshold < c.config.MinThreshold {
		threshold = c.config.MinThreshold
	}

	isClose := verticalGap < threshold

	leftDiff := absFloat64(line.Box.X0 - last.Box.X0)
	rightDiff := absFloat64(line.Box.X1 - last.Box.X1)
	isAligned := leftDiff < c.config.AlignmentTolerance ||
		rightDiff < c.config.AlignmentTolerance

	return isClose && isAligned && !c.crossesBarrier(current, line, split)
}

// crossesBarrier reports whether absorbing the line would pull content
// across the column split. The test compares the horizontal center of the
// block accumulated so far against the candidate line's center: if they fall
// on opposite sides of the split, the merge is forbidden even when the line
// is vertically adjacent.
func (c *BlockClusterer) crossesBarrier(current []model.Line, line model.Line, split Split) bool {
	if !split.Found {
		return false
	}

	blockBox := lineBoxUnion(current)

	blockLeft := blockBox.CenterX() < split.X
	lineLeft := line.Box.CenterX() < split.X

	return blockLeft != lineLeft
}

// buildBlock merges a group of lines into a Block: union box, lines kept in
// the vertical order they were merged, text joined with newlines.
func buildBlock(lines []model.Line) model.Block {
	members := make([]model.Line, len(lines))
	copy(members, lines)

	texts := make([]string, len(members))
	for i, l := range members {
		texts[i] = l.Text
	}

	return model.Block{
		Box:   lineBoxUnion(members),
		Lines: members,
		Text:  strings.Join(texts, "\n"),
	}
}

// lineBoxUnion returns the bounding union of a set of lines' boxes.
func lineBoxUnion(lines []model.Line) model.Box {
	boxes := make([]model.Box, len(lines))
	for i, l := range lines {
		boxes[i] = l.Box
	}
	return model.BoxUnion(boxes)
}

// absFloat64 returns the absolute value of x.
func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
