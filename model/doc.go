// Package model defines the shared geometric and textual types used
// throughout the relayout library.
//
// All coordinates use a top-left origin with Y increasing downward, matching
// the pixel coordinate system of rasterized pages and OCR engine output. The
// units (pixels or points) are whatever the fragment producer used; the only
// requirement is that fragment boxes and page dimensions agree.
//
// The three aggregate levels mirror the reconstruction pipeline:
//
//   - [Fragment] - a single recognized text unit with its bounding box
//   - [Line] - fragments merged by vertical overlap and horizontal proximity
//   - [Block] - lines merged by adaptive vertical spacing and edge alignment
//
// A merged box is always the bounding union (min/max over constituents),
// never an intersection or average.
package model
