package model

import (
	"sort"
	"strings"
)

// ColumnDelimiter separates fragment texts when a line's text is
// assembled. A tab keeps loosely-spaced fragments (such as table
// columns recognized as one row) distinguishable in the output.
const ColumnDelimiter = "\t"

// TextFragment represents a single recognized word or run with its
// bounding rectangle. Fragments are produced entirely by the external
// recognizer and are immutable.
type TextFragment struct {
	Text string
	BBox Rect
}

// TextLine is an ordered group of fragments judged to lie on the same
// visual row. Fragments are sorted left to right by their left edge.
// Lines are created only by the layout assembler.
type TextLine struct {
	Fragments []TextFragment
}

// NewTextLine creates a line from fragments, sorting them left to right
func NewTextLine(fragments []TextFragment) TextLine {
	sorted := make([]TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.X < sorted[j].BBox.X
	})
	return TextLine{Fragments: sorted}
}

// Text returns the combined text of the line, joining fragment strings
// with the column delimiter
func (l TextLine) Text() string {
	if len(l.Fragments) == 0 {
		return ""
	}

	parts := make([]string, 0, len(l.Fragments))
	for _, frag := range l.Fragments {
		parts = append(parts, frag.Text)
	}
	return strings.Join(parts, ColumnDelimiter)
}

// Top returns the minimum top coordinate over all fragments
func (l TextLine) Top() float64 {
	if len(l.Fragments) == 0 {
		return 0
	}

	top := l.Fragments[0].BBox.Y
	for _, frag := range l.Fragments[1:] {
		if frag.BBox.Y < top {
			top = frag.BBox.Y
		}
	}
	return top
}

// BBox returns the union of all fragment bounds
func (l TextLine) BBox() Rect {
	if len(l.Fragments) == 0 {
		return Rect{}
	}

	bbox := l.Fragments[0].BBox
	for _, frag := range l.Fragments[1:] {
		bbox = bbox.Union(frag.BBox)
	}
	return bbox
}

// Height returns the height of the line's bounding box
func (l TextLine) Height() float64 {
	return l.BBox().Height
}

// IsEmpty returns true if the line has no non-whitespace text
func (l TextLine) IsEmpty() bool {
	for _, frag := range l.Fragments {
		if strings.TrimSpace(frag.Text) != "" {
			return false
		}
	}
	return true
}

// FragmentsBBox returns the union of the bounds of all fragments.
// Returns the zero Rect for an empty slice.
func FragmentsBBox(fragments []TextFragment) Rect {
	if len(fragments) == 0 {
		return Rect{}
	}

	bbox := fragments[0].BBox
	for _, frag := range fragments[1:] {
		bbox = bbox.Union(frag.BBox)
	}
	return bbox
}

// LinesBBox returns the union of the bounds of all lines.
// Returns the zero Rect for an empty slice.
func LinesBBox(lines []TextLine) Rect {
	if len(lines) == 0 {
		return Rect{}
	}

	bbox := lines[0].BBox()
	for _, line := range lines[1:] {
		bbox = bbox.Union(line.BBox())
	}
	return bbox
}
