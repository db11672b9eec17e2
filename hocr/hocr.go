// Package hocr parses hOCR documents, the HTML-based interchange format most
// OCR engines (Tesseract among them) can emit, into positioned text
// fragments for layout reconstruction.
//
// Only the elements relevant to layout reconstruction are read: ocr_page for
// page dimensions and ocrx_word for word fragments. The intermediate
// grouping levels (ocr_carea, ocr_par, ocr_line) are deliberately ignored -
// reconstructing that structure from word geometry is the layout engine's
// job.
//
// Word text is normalized to Unicode NFC, since OCR engines frequently emit
// decomposed combining sequences.
package hocr

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/relayout/model"
)

// Page holds the fragments of one recognized page.
type Page struct {
	// Width and Height are the page dimensions from the ocr_page bbox,
	// in the same pixel units as the fragment boxes.
	Width  float64
	Height float64

	// Image is the source image reference from the ocr_page title, if any.
	Image string

	// Fragments are the recognized words in document order.
	Fragments []model.Fragment
}

// Config holds configuration for hOCR parsing.
type Config struct {
	// MinConfidence drops words whose x_wconf falls below this value
	// (0-100). Zero keeps every word, including those without a
	// confidence property.
	MinConfidence float64
}

// DefaultConfig returns the default parsing configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0,
	}
}

// Open reads and parses an hOCR file.
func Open(filename string) ([]Page, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses hOCR content with the default configuration.
func Parse(r io.Reader) ([]Page, error) {
	return ParseWithConfig(r, DefaultConfig())
}

// ParseWithConfig parses hOCR content from an io.Reader.
func ParseWithConfig(r io.Reader, config Config) ([]Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	p := &parser{config: config}
	p.walk(doc)

	return p.pages, nil
}

type parser struct {
	config Config
	pages  []Page
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch {
		case hasClass(n, "ocr_page"):
			p.startPage(n)
		case hasClass(n, "ocrx_word"):
			p.addWord(n)
			return // word elements have no nested words
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

// startPage opens a new page from an ocr_page element.
func (p *parser) startPage(n *html.Node) {
	props := parseProperties(attr(n, "title"))

	page := Page{
		Image: strings.Trim(props["image"], `"`),
	}

	if box, ok := parseBBox(props["bbox"]); ok {
		page.Width = box.X1
		page.Height = box.Y1
	}

	p.pages = append(p.pages, page)
}

// addWord appends an ocrx_word element to the current page.
func (p *parser) addWord(n *html.Node) {
	if len(p.pages) == 0 {
		// Word outside any ocr_page; tolerate malformed output by
		// opening an implicit page.
		p.pages = append(p.pages, Page{})
	}
	page := &p.pages[len(p.pages)-1]

	props := parseProperties(attr(n, "title"))

	box, ok := parseBBox(props["bbox"])
	if !ok {
		return // a word without geometry is useless for layout
	}

	if p.config.MinConfidence > 0 {
		if conf, err := strconv.ParseFloat(props["x_wconf"], 64); err == nil {
			if conf < p.config.MinConfidence {
				return
			}
		}
	}

	text := strings.TrimSpace(textContent(n))
	if text == "" {
		return
	}

	page.Fragments = append(page.Fragments, model.Fragment{
		Text: norm.NFC.String(text),
		Box:  box,
	})
}

// parseProperties splits an hOCR title attribute into its properties,
// e.g. `bbox 452 196 667 239; x_wconf 95` yields
// {"bbox": "452 196 667 239", "x_wconf": "95"}.
func parseProperties(title string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(title, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, " ")
		props[key] = strings.TrimSpace(value)
	}
	return props
}

// parseBBox parses the four integers of an hOCR bbox property.
func parseBBox(value string) (model.Box, bool) {
	fields := strings.Fields(value)
	if len(fields) != 4 {
		return model.Box{}, false
	}

	coords := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return model.Box{}, false
		}
		coords[i] = v
	}

	return model.NewBox(coords[0], coords[1], coords[2], coords[3]), true
}

// attr returns the value of a named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClass checks whether a node carries a CSS class.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent returns the concatenated text of a node's descendants.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}
