// Package relayout provides a fluent API for reconstructing the reading
// layout of a page from unordered, positioned text fragments.
//
// Basic usage with an hOCR file produced by an OCR engine:
//
//	result, err := relayout.Open("page.hocr").Result()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.GetText())
//
// With fragments you already have:
//
//	text, err := relayout.FromFragments(fragments, 612, 792).Text()
//
// With options:
//
//	blocks, err := relayout.Open("scan.hocr").
//	    Page(2).
//	    MinConfidence(60).
//	    Blocks()
//
// Opening a page image (PNG, JPEG, TIFF, BMP, WebP, GIF) runs OCR first,
// which requires building with the "ocr" build tag and a local Tesseract
// installation. For advanced use cases the lower-level layout, hocr, and
// ocr packages are also available.
package relayout

import (
	"io"

	"github.com/tsawler/relayout/format"
	"github.com/tsawler/relayout/model"
)

// Open opens a fragment source file and returns an Analysis for fluent
// configuration. The format is detected from the filename extension and,
// failing that, from the file's magic bytes: hOCR documents are parsed
// directly, page images are sent through OCR.
//
// Example:
//
//	result, err := relayout.Open("page.hocr").Result()
func Open(filename string) *Analysis {
	return &Analysis{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromFragments creates an Analysis from fragments you already have, with
// the page dimensions they were measured against.
//
// Example:
//
//	result, err := relayout.FromFragments(fragments, 612, 792).Result()
func FromFragments(fragments []model.Fragment, pageWidth, pageHeight float64) *Analysis {
	return &Analysis{
		fragments:  append([]model.Fragment(nil), fragments...),
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		pageCount:  1,
		loaded:     true,
		options:    defaultOptions(),
	}
}

// FromHOCR creates an Analysis from an already-opened hOCR stream.
// This is useful when the document does not live on disk.
//
// Example:
//
//	result, err := relayout.FromHOCR(resp.Body).Result()
func FromHOCR(r io.Reader) *Analysis {
	return &Analysis{
		source:       r,
		sourceFormat: format.HOCR,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	text := relayout.Must(relayout.Open("page.hocr").Text())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
