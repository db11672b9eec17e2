package layout

import (
	"testing"

	"github.com/tsawler/relayout/model"
)

// columnBoxes builds a stack of boxes in a vertical band, one per row.
func columnBoxes(x0, x1, yStart, yEnd, rowHeight, rowGap float64) []model.Box {
	var boxes []model.Box
	for y := yStart; y+rowHeight <= yEnd; y += rowHeight + rowGap {
		boxes = append(boxes, model.NewBox(x0, y, x1, y+rowHeight))
	}
	return boxes
}

func TestSplitDetector_EmptyInput(t *testing.T) {
	detector := NewSplitDetector()

	split := detector.Detect(nil, 1000, 1000)

	if split.Found {
		t.Errorf("Expected no split for empty input, got %f", split.X)
	}
}

func TestSplitDetector_TwoColumns(t *testing.T) {
	detector := NewSplitDetector()

	// Left column spans x 100-400, right column x 600-900; the gutter
	// midpoint is 500.
	boxes := append(
		columnBoxes(100, 400, 200, 800, 15, 10),
		columnBoxes(600, 900, 200, 800, 15, 10)...,
	)

	split := detector.Detect(boxes, 1000, 1000)

	if !split.Found {
		t.Fatal("Expected a split for two-column layout")
	}
	if split.X < 490 || split.X > 510 {
		t.Errorf("Expected split near 500, got %f", split.X)
	}
}

func TestSplitDetector_SingleColumn(t *testing.T) {
	detector := NewSplitDetector()

	// Full-width body text leaves no gap in the search window
	boxes := columnBoxes(100, 900, 200, 800, 15, 10)

	split := detector.Detect(boxes, 1000, 1000)

	if split.Found {
		t.Errorf("Expected no split for single-column layout, got %f", split.X)
	}
}

func TestSplitDetector_GapAtThresholdRejected(t *testing.T) {
	detector := NewSplitDetector()

	// Gap from 490 to 510 covers bins [196, 204) - exactly 2% of 400 bins.
	// The threshold is strict, so this must be rejected.
	boxes := append(
		columnBoxes(100, 490, 200, 800, 15, 10),
		columnBoxes(510, 900, 200, 800, 15, 10)...,
	)

	split := detector.Detect(boxes, 1000, 1000)

	if split.Found {
		t.Errorf("Expected 2%% gap to be rejected, got split at %f", split.X)
	}
}

func TestSplitDetector_GapAboveThresholdAccepted(t *testing.T) {
	detector := NewSplitDetector()

	// Gap from 480 to 510 covers bins [192, 204) - 3% of 400 bins
	boxes := append(
		columnBoxes(100, 480, 200, 800, 15, 10),
		columnBoxes(510, 900, 200, 800, 15, 10)...,
	)

	split := detector.Detect(boxes, 1000, 1000)

	if !split.Found {
		t.Fatal("Expected 3% gap to be accepted")
	}
	if split.X < 485 || split.X > 505 {
		t.Errorf("Expected split near 495, got %f", split.X)
	}
}

func TestSplitDetector_HeaderDoesNotMaskGap(t *testing.T) {
	detector := NewSplitDetector()

	// A title in the top 15% of the page covers the gutter region. Without
	// header filtering it would hide the gap between the columns below.
	boxes := []model.Box{
		model.NewBox(300, 20, 700, 80),
	}
	boxes = append(boxes, columnBoxes(100, 400, 200, 800, 15, 10)...)
	boxes = append(boxes, columnBoxes(600, 900, 200, 800, 15, 10)...)

	split := detector.Detect(boxes, 1000, 1000)

	if !split.Found {
		t.Fatal("Expected header filtering to expose the column gap")
	}
	if split.X < 490 || split.X > 510 {
		t.Errorf("Expected split near 500, got %f", split.X)
	}
}

func TestSplitDetector_FullWidthElementFiltered(t *testing.T) {
	detector := NewSplitDetector()

	// A horizontal rule spanning 90% of the page width sits between the
	// columns; the full-width filter must exclude it.
	boxes := []model.Box{
		model.NewBox(50, 500, 950, 505),
	}
	boxes = append(boxes, columnBoxes(100, 400, 200, 800, 15, 10)...)
	boxes = append(boxes, columnBoxes(600, 900, 200, 800, 15, 10)...)

	split := detector.Detect(boxes, 1000, 1000)

	if !split.Found {
		t.Fatal("Expected full-width filtering to expose the column gap")
	}
	if split.X < 490 || split.X > 510 {
		t.Errorf("Expected split near 500, got %f", split.X)
	}
}

func TestSplitDetector_FallbackWhenAllFiltered(t *testing.T) {
	detector := NewSplitDetector()

	// Everything sits in the top 15% of the page, so filtering removes all
	// boxes and detection falls back to the unfiltered set.
	boxes := []model.Box{
		model.NewBox(100, 10, 300, 60),
		model.NewBox(600, 10, 900, 60),
	}

	split := detector.Detect(boxes, 1000, 1000)

	if !split.Found {
		t.Fatal("Expected fallback detection to find the gap")
	}
	// Occupied bins [40,120) and [240,360); gap [120,240) has midpoint
	// bin 180, which maps back to x=450.
	if split.X < 440 || split.X > 460 {
		t.Errorf("Expected split near 450, got %f", split.X)
	}
}

func TestSplitDetector_OutOfRangeBoxesClamped(t *testing.T) {
	detector := NewSplitDetector()

	// Boxes extending past the page edges must not index outside the
	// histogram.
	boxes := append(
		columnBoxes(-50, 400, 200, 800, 15, 10),
		columnBoxes(600, 1100, 200, 800, 15, 10)...,
	)

	split := detector.Detect(boxes, 1000, 1000)

	if !split.Found {
		t.Fatal("Expected a split despite out-of-range boxes")
	}
	if split.X < 490 || split.X > 510 {
		t.Errorf("Expected split near 500, got %f", split.X)
	}
}

func TestSplitDetector_CustomConfig(t *testing.T) {
	config := DefaultSplitConfig()
	config.MinGapFraction = 0.10 // demand a very wide gutter

	detector := NewSplitDetectorWithConfig(config)

	boxes := append(
		columnBoxes(100, 480, 200, 800, 15, 10),
		columnBoxes(510, 900, 200, 800, 15, 10)...,
	)

	split := detector.Detect(boxes, 1000, 1000)

	if split.Found {
		t.Errorf("Expected 3%% gap rejected under 10%% threshold, got %f", split.X)
	}
}
