package layout

import (
	"testing"

	"github.com/tsawler/relayout/model"
)

// makeFragment creates a test fragment from box edge coordinates.
func makeFragment(text string, x0, y0, x1, y1 float64) model.Fragment {
	return model.Fragment{
		Text: text,
		Box:  model.NewBox(x0, y0, x1, y1),
	}
}

func TestLineClusterer_EmptyInput(t *testing.T) {
	clusterer := NewLineClusterer()

	lines := clusterer.Cluster(nil, Split{})

	if lines != nil {
		t.Errorf("Expected nil lines for empty input, got %d", len(lines))
	}
}

func TestLineClusterer_SingleFragment(t *testing.T) {
	clusterer := NewLineClusterer()

	lines := clusterer.Cluster([]model.Fragment{
		makeFragment("Hello", 10, 10, 50, 22),
	}, Split{})

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hello" {
		t.Errorf("Expected 'Hello', got '%s'", lines[0].Text)
	}
}

func TestLineClusterer_MergesAdjacentFragments(t *testing.T) {
	clusterer := NewLineClusterer()

	// Given out of reading order; the line text must come out left to right
	fragments := []model.Fragment{
		makeFragment("World", 60, 10, 100, 22),
		makeFragment("Hello", 10, 10, 50, 22),
	}

	lines := clusterer.Cluster(fragments, Split{})

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0].Text != "Hello World" {
		t.Errorf("Expected 'Hello World', got '%s'", lines[0].Text)
	}

	// Union box covers both fragments exactly
	box := lines[0].Box
	if box.X0 != 10 || box.Y0 != 10 || box.X1 != 100 || box.Y1 != 22 {
		t.Errorf("Unexpected line box: %+v", box)
	}

	// Fragments sorted by ascending X0
	if lines[0].Fragments[0].Text != "Hello" || lines[0].Fragments[1].Text != "World" {
		t.Error("Fragments not in left-to-right order")
	}
}

func TestLineClusterer_SeparateRows(t *testing.T) {
	clusterer := NewLineClusterer()

	fragments := []model.Fragment{
		makeFragment("First", 10, 10, 80, 22),
		makeFragment("Second", 10, 30, 80, 42),
	}

	lines := clusterer.Cluster(fragments, Split{})

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text != "First" || lines[1].Text != "Second" {
		t.Errorf("Lines out of order: %q, %q", lines[0].Text, lines[1].Text)
	}
}

func TestLineClusterer_OverlapRatio(t *testing.T) {
	clusterer := NewLineClusterer()

	tests := []struct {
		name      string
		second    model.Fragment
		wantLines int
	}{
		{
			// Overlap 12 over min height 20 = 0.6 > 0.4
			name:      "sufficient overlap merges",
			second:    makeFragment("next", 60, 18, 100, 40),
			wantLines: 1,
		},
		{
			// Overlap 5 over min height 20 = 0.25 < 0.4
			name:      "insufficient overlap splits",
			second:    makeFragment("next", 60, 25, 100, 50),
			wantLines: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments := []model.Fragment{
				makeFragment("first", 10, 10, 50, 30),
				tt.second,
			}

			lines := clusterer.Cluster(fragments, Split{})

			if len(lines) != tt.wantLines {
				t.Errorf("Expected %d lines, got %d", tt.wantLines, len(lines))
			}
		})
	}
}

func TestLineClusterer_HorizontalGapLimit(t *testing.T) {
	clusterer := NewLineClusterer()

	// Same row, but 70 units apart horizontally (limit is 50)
	fragments := []model.Fragment{
		makeFragment("left", 10, 10, 50, 22),
		makeFragment("right", 120, 10, 160, 22),
	}

	lines := clusterer.Cluster(fragments, Split{})

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines for wide gap, got %d", len(lines))
	}
}

func TestLineClusterer_BarrierBlocksMerge(t *testing.T) {
	clusterer := NewLineClusterer()

	// Vertically aligned, 40-unit gap - mergeable on geometry alone
	fragments := []model.Fragment{
		makeFragment("left", 100, 10, 280, 25),
		makeFragment("right", 320, 10, 450, 25),
	}

	// Without a split the fragments form one line
	lines := clusterer.Cluster(fragments, Split{})
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line without split, got %d", len(lines))
	}

	// With a split at 300 the merge must be refused
	lines = clusterer.Cluster(fragments, Split{X: 300, Found: true})
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines with split, got %d", len(lines))
	}
	if lines[0].Text != "left" || lines[1].Text != "right" {
		t.Errorf("Unexpected lines: %q, %q", lines[0].Text, lines[1].Text)
	}
}

func TestLineClusterer_StraddlingFragmentMerges(t *testing.T) {
	clusterer := NewLineClusterer()

	// The second fragment spans the split itself; it lies entirely on
	// neither side, so the barrier does not apply.
	fragments := []model.Fragment{
		makeFragment("spanning", 100, 10, 350, 25),
		makeFragment("tail", 360, 10, 420, 25),
	}

	lines := clusterer.Cluster(fragments, Split{X: 300, Found: true})

	if len(lines) != 1 {
		t.Fatalf("Expected straddling fragments to merge, got %d lines", len(lines))
	}
}

func TestLineClusterer_DegenerateBoxes(t *testing.T) {
	clusterer := NewLineClusterer()

	// Zero-height box forces the overlap ratio to 0 instead of dividing
	// by zero
	fragments := []model.Fragment{
		makeFragment("normal", 10, 10, 50, 22),
		makeFragment("flat", 60, 10, 100, 10),
	}

	lines := clusterer.Cluster(fragments, Split{})

	if len(lines) != 2 {
		t.Fatalf("Expected degenerate box in its own line, got %d lines", len(lines))
	}
}

func TestLineClusterer_InputNotModified(t *testing.T) {
	clusterer := NewLineClusterer()

	fragments := []model.Fragment{
		makeFragment("b", 10, 30, 50, 42),
		makeFragment("a", 10, 10, 50, 22),
	}

	clusterer.Cluster(fragments, Split{})

	if fragments[0].Text != "b" || fragments[1].Text != "a" {
		t.Error("Input slice was reordered")
	}
}
