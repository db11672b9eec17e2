// Package export serializes layout analysis results to machine-readable
// formats for downstream pipelines: JSON, JSON Lines, CSV, and TSV.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tsawler/relayout/layout"
)

// ExportFormat defines the available export formats
type ExportFormat int

const (
	// ExportFormatJSONL exports as JSON Lines (one block per line)
	ExportFormatJSONL ExportFormat = iota
	// ExportFormatJSON exports as a single JSON document
	ExportFormatJSON
	// ExportFormatCSV exports as comma-separated values
	ExportFormatCSV
	// ExportFormatTSV exports as tab-separated values
	ExportFormatTSV
)

// String returns a human-readable representation of the export format
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSONL:
		return "jsonl"
	case ExportFormatJSON:
		return "json"
	case ExportFormatCSV:
		return "csv"
	case ExportFormatTSV:
		return "tsv"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (ef ExportFormat) FileExtension() string {
	switch ef {
	case ExportFormatJSONL:
		return ".jsonl"
	case ExportFormatJSON:
		return ".json"
	case ExportFormatCSV:
		return ".csv"
	case ExportFormatTSV:
		return ".tsv"
	default:
		return ".txt"
	}
}

// ExportConfig holds configuration options for export
type ExportConfig struct {
	// Format specifies the export format
	Format ExportFormat

	// IncludeLines includes per-line detail inside each exported block
	// (JSON formats only)
	IncludeLines bool

	// PrettyPrint enables indented output for the JSON format
	PrettyPrint bool

	// CSVDelimiter specifies the delimiter for CSV export (default: comma)
	CSVDelimiter rune

	// IncludeHeader includes a header row in CSV/TSV exports
	IncludeHeader bool
}

// DefaultExportConfig returns sensible defaults for export configuration
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:        ExportFormatJSONL,
		IncludeLines:  false,
		PrettyPrint:   false,
		CSVDelimiter:  ',',
		IncludeHeader: true,
	}
}

// JSONExportConfig returns config for a single pretty-printed JSON document
func JSONExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatJSON
	config.PrettyPrint = true
	return config
}

// CSVExportConfig returns config optimized for CSV export
func CSVExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatCSV
	return config
}

// TSVExportConfig returns config optimized for TSV export
func TSVExportConfig() ExportConfig {
	config := DefaultExportConfig()
	config.Format = ExportFormatTSV
	config.CSVDelimiter = '\t'
	return config
}

// Exporter serializes layout results
type Exporter struct {
	config ExportConfig
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{
		config: DefaultExportConfig(),
	}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config ExportConfig) *Exporter {
	if config.CSVDelimiter == 0 {
		config.CSVDelimiter = ','
	}
	return &Exporter{
		config: config,
	}
}

// ExportedBlock represents a text block prepared for export
type ExportedBlock struct {
	// Index is the zero-based reading-order position of the block
	Index int `json:"index"`

	// Side reports which side of the column split the block sits on
	Side string `json:"side"`

	// Text is the block content with lines joined by newlines
	Text string `json:"text"`

	// Bounding box in page coordinates
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`

	LineCount int `json:"line_count"`
	WordCount int `json:"word_count"`

	// Lines holds per-line detail when IncludeLines is set
	Lines []ExportedLine `json:"lines,omitempty"`
}

// ExportedLine represents one line of a block prepared for export
type ExportedLine struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// ExportedDocument is the top-level object of the JSON format
type ExportedDocument struct {
	PageWidth  float64         `json:"page_width"`
	PageHeight float64         `json:"page_height"`
	SplitX     *float64        `json:"split_x,omitempty"`
	Blocks     []ExportedBlock `json:"blocks"`
}

// Export writes the result to the specified writer
func (e *Exporter) Export(result *layout.Result, w io.Writer) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}

	switch e.config.Format {
	case ExportFormatJSONL:
		return e.exportJSONL(result, w)
	case ExportFormatJSON:
		return e.exportJSON(result, w)
	case ExportFormatCSV, ExportFormatTSV:
		return e.exportCSV(result, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile writes the result to a file
func (e *Exporter) ExportToFile(result *layout.Result, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	return e.Export(result, f)
}

// ExportToString renders the result as a string
func (e *Exporter) ExportToString(result *layout.Result) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(result, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// prepareBlock converts a block to its export representation
func (e *Exporter) prepareBlock(result *layout.Result, index int) ExportedBlock {
	block := &result.Blocks[index]

	exported := ExportedBlock{
		Index:     index,
		Side:      result.BlockSide(block).String(),
		Text:      block.Text,
		X0:        block.Box.X0,
		Y0:        block.Box.Y0,
		X1:        block.Box.X1,
		Y1:        block.Box.Y1,
		LineCount: block.LineCount(),
		WordCount: block.WordCount(),
	}

	if e.config.IncludeLines {
		for _, line := range block.Lines {
			exported.Lines = append(exported.Lines, ExportedLine{
				Text: line.Text,
				X0:   line.Box.X0,
				Y0:   line.Box.Y0,
				X1:   line.Box.X1,
				Y1:   line.Box.Y1,
			})
		}
	}

	return exported
}

// exportJSONL writes one JSON object per block, newline-delimited
func (e *Exporter) exportJSONL(result *layout.Result, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for i := range result.Blocks {
		if err := encoder.Encode(e.prepareBlock(result, i)); err != nil {
			return fmt.Errorf("encoding block %d: %w", i, err)
		}
	}
	return nil
}

// exportJSON writes a single document object with page metadata
func (e *Exporter) exportJSON(result *layout.Result, w io.Writer) error {
	doc := ExportedDocument{
		PageWidth:  result.PageWidth,
		PageHeight: result.PageHeight,
		Blocks:     make([]ExportedBlock, 0, len(result.Blocks)),
	}
	if result.HasSplit() {
		x := result.Split.X
		doc.SplitX = &x
	}
	for i := range result.Blocks {
		doc.Blocks = append(doc.Blocks, e.prepareBlock(result, i))
	}

	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// exportCSV writes one row per block using the configured delimiter
func (e *Exporter) exportCSV(result *layout.Result, w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = e.config.CSVDelimiter

	if e.config.IncludeHeader {
		header := []string{"index", "side", "x0", "y0", "x1", "y1", "line_count", "word_count", "text"}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i := range result.Blocks {
		block := e.prepareBlock(result, i)
		row := []string{
			strconv.Itoa(block.Index),
			block.Side,
			formatFloat(block.X0),
			formatFloat(block.Y0),
			formatFloat(block.X1),
			formatFloat(block.Y1),
			strconv.Itoa(block.LineCount),
			strconv.Itoa(block.WordCount),
			block.Text,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing block %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatFloat renders a coordinate without trailing zeros
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
