// Package format provides input format detection for the relayout library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a PNG page image.
	PNG
	// JPEG indicates a JPEG page image.
	JPEG
	// TIFF indicates a TIFF page image.
	TIFF
	// BMP indicates a Windows bitmap page image.
	BMP
	// WebP indicates a WebP page image.
	WebP
	// GIF indicates a GIF page image.
	GIF
	// HOCR indicates an hOCR document with pre-recognized text.
	HOCR
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	case BMP:
		return "BMP"
	case WebP:
		return "WebP"
	case GIF:
		return "GIF"
	case HOCR:
		return "hOCR"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tiff"
	case BMP:
		return ".bmp"
	case WebP:
		return ".webp"
	case GIF:
		return ".gif"
	case HOCR:
		return ".hocr"
	default:
		return ""
	}
}

// IsImage reports whether the format is a raster page image that can be fed
// to OCR, as opposed to a document carrying pre-recognized text.
func (f Format) IsImage() bool {
	switch f {
	case PNG, JPEG, TIFF, BMP, WebP, GIF:
		return true
	default:
		return false
	}
}

// Detect determines input format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	case ".bmp":
		return BMP
	case ".webp":
		return WebP
	case ".gif":
		return GIF
	case ".hocr":
		return HOCR
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PNG magic: \x89PNG\r\n\x1a\n
	if bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		return PNG
	}

	// JPEG magic: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return JPEG
	}

	// TIFF magic, either byte order: II*\x00 or MM\x00*
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return TIFF
	}

	// BMP magic: BM
	if data[0] == 'B' && data[1] == 'M' {
		return BMP
	}

	// WebP sits inside a RIFF container: RIFF....WEBP
	if len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return WebP
	}

	// GIF magic: GIF87a or GIF89a
	if bytes.HasPrefix(data, []byte("GIF8")) {
		return GIF
	}

	if detectHOCRMagic(data) {
		return HOCR
	}

	return Unknown
}

// DetectFromReader inspects leading content to determine format.
// This is more reliable than extension-based detection.
func DetectFromReader(r io.Reader) (Format, error) {
	// 1KB is enough for every image signature and for the hOCR markers,
	// which appear in the document head or the first ocr_page element.
	head := make([]byte, 1024)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}

	return DetectFromMagic(head[:n]), nil
}

// detectHOCRMagic checks if the data looks like an hOCR document: HTML
// content carrying the hOCR class markers or capability metadata.
func detectHOCRMagic(data []byte) bool {
	// Trim leading whitespace
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	// Must look like HTML at all
	upper := strings.ToUpper(string(data))
	if !strings.HasPrefix(upper, "<!DOCTYPE HTML") &&
		!strings.HasPrefix(upper, "<HTML") &&
		!strings.HasPrefix(upper, "<?XML") {
		return false
	}

	// hOCR markers: the capability meta tag or the page/word classes
	content := string(data)
	return strings.Contains(content, "ocr-capabilities") ||
		strings.Contains(content, "ocr_page") ||
		strings.Contains(content, "ocrx_word")
}
