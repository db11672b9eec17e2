// Package render draws layout analysis results onto page images for visual
// inspection: the detected column split as a vertical rule and each text
// block as a colored outline keyed to its side of the split.
package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/relayout/layout"
	"github.com/tsawler/relayout/model"
)

// Config holds configuration for annotation rendering.
type Config struct {
	// OutlineWidth is the thickness of block outlines in pixels.
	OutlineWidth int

	// SplitLineWidth is the thickness of the split rule in pixels.
	SplitLineWidth int

	// SplitColor is the color of the vertical split rule.
	SplitColor color.RGBA

	// LeftColor outlines blocks on the left side of the split.
	LeftColor color.RGBA

	// RightColor outlines blocks on the right side of the split.
	RightColor color.RGBA

	// SpanningColor outlines blocks that span the split, and every block
	// when no split was found.
	SpanningColor color.RGBA

	// DrawLabels draws the one-based block index beside each outline.
	DrawLabels bool
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{
		OutlineWidth:   3,
		SplitLineWidth: 4,
		SplitColor:     color.RGBA{R: 255, B: 255, A: 255}, // magenta
		LeftColor:      color.RGBA{B: 255, A: 255},         // blue
		RightColor:     color.RGBA{G: 170, A: 255},         // green
		SpanningColor:  color.RGBA{R: 255, A: 255},         // red
		DrawLabels:     false,
	}
}

// Renderer draws layout results onto images.
type Renderer struct {
	config Config
}

// New creates a renderer with default configuration.
func New() *Renderer {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a renderer with custom configuration.
func NewWithConfig(config Config) *Renderer {
	if config.OutlineWidth <= 0 {
		config.OutlineWidth = 1
	}
	if config.SplitLineWidth <= 0 {
		config.SplitLineWidth = 1
	}
	return &Renderer{config: config}
}

// Annotate draws the analysis result over a copy of the source page image
// and returns the annotated copy. The result's page coordinates are scaled
// to the image dimensions, so the image need not match the coordinate space
// the fragments were measured in.
func (r *Renderer) Annotate(src image.Image, result *layout.Result) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	r.annotate(dst, result)
	return dst
}

// AnnotateCanvas draws the analysis result onto a fresh white canvas of the
// given pixel dimensions, for visualizing layouts without the source image.
func (r *Renderer) AnnotateCanvas(result *layout.Result, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	r.annotate(dst, result)
	return dst
}

func (r *Renderer) annotate(dst *image.RGBA, result *layout.Result) {
	if result == nil {
		return
	}

	bounds := dst.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if result.PageWidth > 0 {
		scaleX = float64(bounds.Dx()) / result.PageWidth
	}
	if result.PageHeight > 0 {
		scaleY = float64(bounds.Dy()) / result.PageHeight
	}

	if result.HasSplit() {
		x := bounds.Min.X + int(result.Split.X*scaleX)
		r.drawVerticalRule(dst, x)
	}

	for i := range result.Blocks {
		block := &result.Blocks[i]
		c := r.blockColor(result, block)

		rect := image.Rect(
			bounds.Min.X+int(block.Box.X0*scaleX),
			bounds.Min.Y+int(block.Box.Y0*scaleY),
			bounds.Min.X+int(block.Box.X1*scaleX),
			bounds.Min.Y+int(block.Box.Y1*scaleY),
		)
		r.drawOutline(dst, rect, c)

		if r.config.DrawLabels {
			drawLabel(dst, fmt.Sprintf("%d", i+1), rect.Min, c)
		}
	}
}

// blockColor picks the outline color for a block by its side of the split.
func (r *Renderer) blockColor(result *layout.Result, block *model.Block) color.RGBA {
	switch result.BlockSide(block) {
	case layout.SideLeft:
		return r.config.LeftColor
	case layout.SideRight:
		return r.config.RightColor
	default:
		return r.config.SpanningColor
	}
}

// drawVerticalRule draws the split rule centered on column x, full height.
func (r *Renderer) drawVerticalRule(dst *image.RGBA, x int) {
	bounds := dst.Bounds()
	half := r.config.SplitLineWidth / 2

	for dx := -half; dx < r.config.SplitLineWidth-half; dx++ {
		px := x + dx
		if px < bounds.Min.X || px >= bounds.Max.X {
			continue
		}
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			dst.SetRGBA(px, y, r.config.SplitColor)
		}
	}
}

// drawOutline draws an unfilled rectangle with the configured stroke width,
// growing inward from the rectangle edges.
func (r *Renderer) drawOutline(dst *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}

	w := r.config.OutlineWidth
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			onEdge := x < rect.Min.X+w || x >= rect.Max.X-w ||
				y < rect.Min.Y+w || y >= rect.Max.Y-w
			if onEdge {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLabel draws small text just above a block corner, clamped to stay
// inside the image.
func drawLabel(dst *image.RGBA, text string, at image.Point, c color.RGBA) {
	face := basicfont.Face7x13
	x := at.X + 2
	y := at.Y - 3
	if y < dst.Bounds().Min.Y+face.Ascent {
		y = at.Y + face.Ascent + 2
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Scale resizes a page image to the given pixel dimensions using
// Catmull-Rom interpolation. Useful for normalizing scan resolution before
// OCR or for producing thumbnails of annotated pages.
func Scale(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
