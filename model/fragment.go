package model

import "strings"

// Fragment is the minimal unit of recognized text: a string and the
// bounding box it occupies on the page. Fragments are produced by an OCR
// collaborator (the ocr or hocr packages, or any external source) and are
// consumed read-only by the layout engine.
type Fragment struct {
	Text string
	Box  Box
}

// Line is a horizontal run of fragments in reading order.
type Line struct {
	// Box is the bounding union of the constituent fragments' boxes.
	Box Box

	// Fragments are the members of the line, sorted left to right by X0.
	Fragments []Fragment

	// Text is the fragments' text joined with single spaces, left to right.
	Text string
}

// Block is a paragraph-like group of lines.
type Block struct {
	// Box is the bounding union of the constituent lines' boxes.
	Box Box

	// Lines are the members of the block in the vertical order they were
	// merged (top to bottom).
	Lines []Line

	// Text is the lines' text joined with newlines, top to bottom.
	Text string
}

// FragmentCount returns the number of fragments in the line.
func (l *Line) FragmentCount() int {
	if l == nil {
		return 0
	}
	return len(l.Fragments)
}

// IsEmpty returns true if the line has no text content.
func (l *Line) IsEmpty() bool {
	if l == nil {
		return true
	}
	return strings.TrimSpace(l.Text) == ""
}

// LineCount returns the number of lines in the block.
func (b *Block) LineCount() int {
	if b == nil {
		return 0
	}
	return len(b.Lines)
}

// FragmentCount returns the total number of fragments across all lines.
func (b *Block) FragmentCount() int {
	if b == nil {
		return 0
	}
	count := 0
	for _, line := range b.Lines {
		count += len(line.Fragments)
	}
	return count
}

// WordCount returns an approximate word count for the block.
func (b *Block) WordCount() int {
	if b == nil || b.Text == "" {
		return 0
	}
	return len(strings.Fields(b.Text))
}

// FragmentBoxes extracts the boxes from a slice of fragments.
func FragmentBoxes(fragments []Fragment) []Box {
	boxes := make([]Box, len(fragments))
	for i, f := range fragments {
		boxes[i] = f.Box
	}
	return boxes
}
