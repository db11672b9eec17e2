package relayout

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	// Registered decoders for reading page image dimensions.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/relayout/format"
	"github.com/tsawler/relayout/hocr"
	"github.com/tsawler/relayout/layout"
	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/ocr"
)

// Analysis provides a fluent interface for reconstructing page layout.
// Each configuration method returns a new Analysis instance, making it
// safe for concurrent use and allowing method chaining.
type Analysis struct {
	// Source
	filename     string
	source       io.Reader
	sourceFormat format.Format

	// Raw source bytes, cached so option changes can re-parse a stream
	// that can only be read once
	raw       []byte
	rawFormat format.Format

	// Loaded fragments and page geometry
	fragments  []model.Fragment
	pageWidth  float64
	pageHeight float64
	pageCount  int
	loaded     bool

	// Configuration
	options AnalyzeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Analysis with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (a *Analysis) clone() *Analysis {
	return &Analysis{
		filename:     a.filename,
		source:       a.source,
		sourceFormat: a.sourceFormat,
		raw:          a.raw,
		rawFormat:    a.rawFormat,
		fragments:    a.fragments,
		pageWidth:    a.pageWidth,
		pageHeight:   a.pageHeight,
		pageCount:    a.pageCount,
		loaded:       a.loaded,
		options:      a.options.clone(),
		err:          a.err,
	}
}

// WithConfig replaces the full pipeline configuration.
//
// Example:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.Line.MaxHorizontalGap = 80
//	result, err := relayout.Open("page.hocr").WithConfig(config).Result()
func (a *Analysis) WithConfig(config layout.AnalyzerConfig) *Analysis {
	newA := a.clone()
	newA.options.config = config
	return newA
}

// Page selects which page of a multi-page source to analyze (1-indexed).
// The default is the first page.
func (a *Analysis) Page(page int) *Analysis {
	newA := a.clone()
	if page < 1 {
		newA.err = fmt.Errorf("invalid page number %d: pages are 1-indexed", page)
		return newA
	}
	if !newA.hasSource() && page > 1 {
		newA.err = fmt.Errorf("page %d out of range: fragment input has a single page", page)
		return newA
	}
	newA.options.page = page
	newA.invalidate()
	return newA
}

// MinConfidence drops hOCR words whose recognition confidence falls below
// the given value (0-100).
func (a *Analysis) MinConfidence(confidence float64) *Analysis {
	newA := a.clone()
	newA.options.minConfidence = confidence
	newA.invalidate()
	return newA
}

// Languages sets the recognition languages for the OCR path, e.g.
// "eng", "deu". Has no effect on hOCR input.
func (a *Analysis) Languages(langs ...string) *Analysis {
	newA := a.clone()
	newA.options.languages = append([]string(nil), langs...)
	newA.invalidate()
	return newA
}

// hasSource reports whether the analysis was created from a file or stream
// rather than from pre-loaded fragments.
func (a *Analysis) hasSource() bool {
	return a.filename != "" || a.source != nil
}

// invalidate forces the next terminal operation to reload from the source.
// Fragment input has nothing to reload, so it stays loaded.
func (a *Analysis) invalidate() {
	if a.hasSource() {
		a.loaded = false
	}
}

// Result runs the analysis pipeline and returns the reconstructed layout.
func (a *Analysis) Result() (*layout.Result, error) {
	if err := a.load(); err != nil {
		return nil, err
	}

	analyzer := layout.NewAnalyzerWithConfig(a.options.config)
	return analyzer.Analyze(a.fragments, a.pageWidth, a.pageHeight), nil
}

// Blocks returns the reconstructed text blocks in reading order.
func (a *Analysis) Blocks() ([]model.Block, error) {
	result, err := a.Result()
	if err != nil {
		return nil, err
	}
	return result.Blocks, nil
}

// Lines returns the clustered text lines in top-to-bottom order.
func (a *Analysis) Lines() ([]model.Line, error) {
	result, err := a.Result()
	if err != nil {
		return nil, err
	}
	return result.Lines, nil
}

// Split returns the detected column split, if any.
func (a *Analysis) Split() (layout.Split, error) {
	result, err := a.Result()
	if err != nil {
		return layout.Split{}, err
	}
	return result.Split, nil
}

// Text returns the full page text with blocks separated by blank lines.
func (a *Analysis) Text() (string, error) {
	result, err := a.Result()
	if err != nil {
		return "", err
	}
	return result.GetText(), nil
}

// ColumnText returns the text of the blocks on one side of the split.
func (a *Analysis) ColumnText(side layout.Side) (string, error) {
	result, err := a.Result()
	if err != nil {
		return "", err
	}
	return result.ColumnText(side), nil
}

// Fragments returns the raw positioned fragments after loading and
// filtering, before any clustering.
func (a *Analysis) Fragments() ([]model.Fragment, error) {
	if err := a.load(); err != nil {
		return nil, err
	}
	return a.fragments, nil
}

// PageCount returns the number of pages in the source. Fragment input
// always counts as a single page.
func (a *Analysis) PageCount() (int, error) {
	if err := a.load(); err != nil {
		return 0, err
	}
	return a.pageCount, nil
}

// load resolves the source into fragments and page geometry.
func (a *Analysis) load() error {
	if a.err != nil {
		return a.err
	}
	if a.loaded {
		return nil
	}

	data, f, err := a.readSource()
	if err != nil {
		a.err = err
		return err
	}

	switch {
	case f == format.HOCR:
		err = a.loadHOCR(data)
	case f.IsImage():
		err = a.loadImage(data)
	default:
		err = fmt.Errorf("unsupported input format for %q", a.filename)
	}
	if err != nil {
		a.err = err
		return err
	}

	a.loaded = true
	return nil
}

// readSource reads the raw bytes and determines their format, preferring
// the filename extension and falling back to magic bytes.
func (a *Analysis) readSource() ([]byte, format.Format, error) {
	if a.raw != nil {
		return a.raw, a.rawFormat, nil
	}

	var data []byte
	var f format.Format
	switch {
	case a.source != nil:
		var err error
		data, err = io.ReadAll(a.source)
		if err != nil {
			return nil, format.Unknown, fmt.Errorf("reading source: %w", err)
		}
		f = a.sourceFormat
	case a.filename != "":
		var err error
		data, err = os.ReadFile(a.filename)
		if err != nil {
			return nil, format.Unknown, fmt.Errorf("reading %s: %w", a.filename, err)
		}
		f = format.Detect(a.filename)
	default:
		return nil, format.Unknown, fmt.Errorf("no input specified")
	}

	if f == format.Unknown {
		f = format.DetectFromMagic(data)
	}

	a.raw = data
	a.rawFormat = f
	return data, f, nil
}

// loadHOCR parses an hOCR document and selects the configured page.
func (a *Analysis) loadHOCR(data []byte) error {
	pages, err := hocr.ParseWithConfig(bytes.NewReader(data), hocr.Config{
		MinConfidence: a.options.minConfidence,
	})
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("hOCR document contains no pages")
	}

	index := 0
	if a.options.page > 0 {
		index = a.options.page - 1
	}
	if index >= len(pages) {
		return fmt.Errorf("page %d out of range: document has %d page(s)", a.options.page, len(pages))
	}

	page := pages[index]
	a.fragments = page.Fragments
	a.pageWidth = page.Width
	a.pageHeight = page.Height
	a.pageCount = len(pages)
	return nil
}

// loadImage recognizes fragments in a page image via OCR.
func (a *Analysis) loadImage(data []byte) error {
	if a.options.page > 1 {
		return fmt.Errorf("page %d out of range: image input has a single page", a.options.page)
	}

	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding image dimensions: %w", err)
	}

	client, err := ocr.New()
	if err != nil {
		return err
	}
	defer client.Close()

	if len(a.options.languages) > 0 {
		if err := client.SetLanguage(a.options.languages...); err != nil {
			return err
		}
	}

	fragments, err := client.RecognizeFragments(data)
	if err != nil {
		return err
	}

	a.fragments = fragments
	a.pageWidth = float64(config.Width)
	a.pageHeight = float64(config.Height)
	a.pageCount = 1
	return nil
}
