package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/tsawler/relayout/layout"
	"github.com/tsawler/relayout/model"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// twoColumnResult builds a result with one block per side of a split at
// x=50 on a 100x100 page.
func twoColumnResult() *layout.Result {
	return &layout.Result{
		Blocks: []model.Block{
			{Box: model.NewBox(10, 10, 40, 30), Text: "left"},
			{Box: model.NewBox(60, 10, 90, 30), Text: "right"},
		},
		Split:      layout.Split{X: 50, Found: true},
		PageWidth:  100,
		PageHeight: 100,
		Config:     layout.DefaultAnalyzerConfig(),
	}
}

func TestAnnotateCanvasSplitLine(t *testing.T) {
	r := New()
	img := r.AnnotateCanvas(twoColumnResult(), 100, 100)

	magenta := DefaultConfig().SplitColor

	// Default width 4 centered on x=50 covers columns 48 through 51
	for _, x := range []int{48, 49, 50, 51} {
		if got := img.RGBAAt(x, 50); got != magenta {
			t.Errorf("Expected split rule at x=%d, got %+v", x, got)
		}
	}
	if got := img.RGBAAt(46, 50); got == magenta {
		t.Error("Split rule wider than configured")
	}

	// The rule runs the full page height
	if img.RGBAAt(50, 0) != magenta || img.RGBAAt(50, 99) != magenta {
		t.Error("Split rule does not span the full height")
	}
}

func TestAnnotateCanvasBlockColors(t *testing.T) {
	r := New()
	img := r.AnnotateCanvas(twoColumnResult(), 100, 100)

	config := DefaultConfig()

	if got := img.RGBAAt(10, 10); got != config.LeftColor {
		t.Errorf("Expected left block outline, got %+v", got)
	}
	if got := img.RGBAAt(60, 10); got != config.RightColor {
		t.Errorf("Expected right block outline, got %+v", got)
	}

	// Outlines are unfilled: block interiors stay white
	if got := img.RGBAAt(25, 20); got != white {
		t.Errorf("Block interior was painted: %+v", got)
	}
}

func TestAnnotateCanvasNoSplit(t *testing.T) {
	result := twoColumnResult()
	result.Split = layout.Split{}

	r := New()
	img := r.AnnotateCanvas(result, 100, 100)

	config := DefaultConfig()

	// Without a split every block is spanning
	if got := img.RGBAAt(10, 10); got != config.SpanningColor {
		t.Errorf("Expected spanning color, got %+v", got)
	}
	if got := img.RGBAAt(60, 10); got != config.SpanningColor {
		t.Errorf("Expected spanning color, got %+v", got)
	}
	if got := img.RGBAAt(50, 50); got == config.SplitColor {
		t.Error("Split rule drawn without a split")
	}
}

func TestAnnotateScalesToImageSize(t *testing.T) {
	// Page coordinates are 100x100 but the canvas is 200x200, so the
	// split at page x=50 lands at pixel column 100
	r := New()
	img := r.AnnotateCanvas(twoColumnResult(), 200, 200)

	magenta := DefaultConfig().SplitColor
	if got := img.RGBAAt(100, 100); got != magenta {
		t.Errorf("Expected scaled split rule at x=100, got %+v", got)
	}
	if got := img.RGBAAt(50, 100); got == magenta {
		t.Error("Split rule drawn at unscaled position")
	}
}

func TestAnnotateCopiesSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			src.SetRGBA(x, y, white)
		}
	}

	r := New()
	dst := r.Annotate(src, twoColumnResult())

	if dst == src {
		t.Fatal("Annotate must not return the source image")
	}
	// Source stays untouched at the split position
	if got := src.RGBAAt(50, 50); got != white {
		t.Errorf("Source image was modified: %+v", got)
	}
	if got := dst.RGBAAt(50, 50); got != DefaultConfig().SplitColor {
		t.Errorf("Annotation missing from copy: %+v", got)
	}
}

func TestAnnotateNilResult(t *testing.T) {
	r := New()
	img := r.AnnotateCanvas(nil, 10, 10)

	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("Unexpected canvas bounds: %v", img.Bounds())
	}
	if got := img.RGBAAt(5, 5); got != white {
		t.Errorf("Nil result painted the canvas: %+v", got)
	}
}

func TestAnnotateClampsOutOfBoundsBlocks(t *testing.T) {
	result := &layout.Result{
		Blocks: []model.Block{
			{Box: model.NewBox(-20, -20, 150, 150)},
		},
		PageWidth:  100,
		PageHeight: 100,
	}

	r := New()
	// Must not panic on boxes extending past the canvas
	img := r.AnnotateCanvas(result, 100, 100)

	if got := img.RGBAAt(0, 50); got != DefaultConfig().SpanningColor {
		t.Errorf("Expected clamped outline at the canvas edge, got %+v", got)
	}
}

func TestAnnotateLabels(t *testing.T) {
	config := DefaultConfig()
	config.DrawLabels = true

	plain := New().AnnotateCanvas(twoColumnResult(), 100, 100)
	labeled := NewWithConfig(config).AnnotateCanvas(twoColumnResult(), 100, 100)

	if countNonWhite(labeled) <= countNonWhite(plain) {
		t.Error("Expected labels to add painted pixels")
	}
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.SetRGBA(x, y, red)
		}
	}

	dst := Scale(src, 5, 5)

	if dst.Bounds().Dx() != 5 || dst.Bounds().Dy() != 5 {
		t.Fatalf("Unexpected scaled bounds: %v", dst.Bounds())
	}
	got := dst.RGBAAt(2, 2)
	if got.R < 250 || got.G > 5 || got.B > 5 {
		t.Errorf("Uniform red image scaled to %+v", got)
	}
}

func countNonWhite(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != white {
				n++
			}
		}
	}
	return n
}
