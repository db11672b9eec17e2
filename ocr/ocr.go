//go:build ocr

// Package ocr recognizes text fragments in page images using the Tesseract
// OCR engine via gosseract, producing the positioned fragments the layout
// engine consumes.
//
// This implementation requires Tesseract to be installed and the "ocr" build
// tag to be set. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Fragment boxes are reported in image pixel coordinates with a top-left
// origin, which is the coordinate system the layout engine expects.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/relayout/model"
)

// Client wraps Tesseract for fragment recognition.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeFragments performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns one fragment per recognized word, each with its bounding box in
// pixel coordinates. Empty words are dropped.
func (c *Client) RecognizeFragments(imageData []byte) ([]model.Fragment, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	fragments := make([]model.Fragment, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		fragments = append(fragments, model.Fragment{
			Text: word,
			Box: model.NewBox(
				float64(b.Box.Min.X),
				float64(b.Box.Min.Y),
				float64(b.Box.Max.X),
				float64(b.Box.Max.Y),
			),
		})
	}

	return fragments, nil
}

// RecognizeText performs OCR on image data and returns the plain recognized
// text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeText(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified (e.g. "eng", "fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(langs ...string) error {
	return c.client.SetLanguage(langs...)
}

// SetPageSegMode sets the page segmentation mode.
// Sparse or automatic modes work best as layout reconstruction input, since
// the layout engine performs its own line and block grouping.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
