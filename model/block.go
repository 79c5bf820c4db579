package model

import "strings"

// BlockKind represents the kind of a document block
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindParagraph
	KindList
	KindTable
	KindImage
)

// String returns a string representation of the block kind
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// MarkerKind represents the family of markers used by a list
type MarkerKind int

const (
	MarkerUnknown MarkerKind = iota
	MarkerBullet             // • and similar glyphs
	MarkerHyphen             // -
	MarkerDecimal            // 1. 2. 3.
	MarkerLowerLatin         // a. b. c.
	MarkerUpperLatin         // A. B. C.
)

// String returns a string representation of the marker kind
func (m MarkerKind) String() string {
	switch m {
	case MarkerBullet:
		return "bullet"
	case MarkerHyphen:
		return "hyphen"
	case MarkerDecimal:
		return "decimal"
	case MarkerLowerLatin:
		return "lower-latin"
	case MarkerUpperLatin:
		return "upper-latin"
	default:
		return "unknown"
	}
}

// Span is a half-open range of rows or columns occupied by a table
// cell. Length > 1 indicates a merged cell.
type Span struct {
	Start  int
	Length int
}

// NewSpan creates a span covering a single index
func NewSpan(start int) Span {
	return Span{Start: start, Length: 1}
}

// End returns the first index past the span
func (s Span) End() int {
	return s.Start + s.Length
}

// ListItem represents a single item of a list block
type ListItem struct {
	// Text is the item text with any marker prefix stripped
	Text string

	// Marker is the literal marker string recognized for this item
	// (empty when the recognizer supplied none)
	Marker string

	// BBox is the bounding box of the item's text
	BBox Rect

	// Lines are the text lines assigned to this item
	Lines []TextLine
}

// TableCell represents a single cell of a table block
type TableCell struct {
	// RowSpan is the range of rows this cell occupies
	RowSpan Span

	// ColSpan is the range of columns this cell occupies
	ColSpan Span

	// Text is the assembled cell text
	Text string

	// BBox is the bounding box of the cell
	BBox Rect

	// Lines are the text lines assigned to this cell
	Lines []TextLine
}

// DocumentBlock is a structured unit of document content. It is a
// tagged union: Kind selects which of the per-kind fields are
// populated. Blocks are immutable once composed; refinement produces
// new blocks rather than mutating existing ones.
type DocumentBlock struct {
	// Kind selects the block variant
	Kind BlockKind

	// BBox is the union of the bounds of all text the block contains,
	// or the detector's raw rectangle for images
	BBox Rect

	// Text is the paragraph text, lines joined by "\n" (paragraph only)
	Text string

	// Lines are the text lines of a paragraph (paragraph only, non-empty)
	Lines []TextLine

	// Marker is the marker family of a list (list only)
	Marker MarkerKind

	// Items are the list items (list only)
	Items []ListItem

	// Rows are the table cells organized by row (table only)
	Rows [][]TableCell

	// Caption is the image caption, if any (image only)
	Caption string
}

// NewParagraphBlock creates a paragraph block from its lines. The
// paragraph text joins line texts with newlines and the bounding box is
// the union of the line bounds. The lines must be non-empty.
func NewParagraphBlock(lines []TextLine) DocumentBlock {
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, line.Text())
	}

	return DocumentBlock{
		Kind:  KindParagraph,
		BBox:  LinesBBox(lines),
		Text:  strings.Join(texts, "\n"),
		Lines: lines,
	}
}

// NewListBlock creates a list block from its items. The bounding box is
// the union of the item bounds.
func NewListBlock(marker MarkerKind, items []ListItem) DocumentBlock {
	var bbox Rect
	for i, item := range items {
		if i == 0 {
			bbox = item.BBox
		} else {
			bbox = bbox.Union(item.BBox)
		}
	}

	return DocumentBlock{
		Kind:   KindList,
		BBox:   bbox,
		Marker: marker,
		Items:  items,
	}
}

// NewTableBlock creates a table block from its rows. The bounding box
// is the union of the cell bounds.
func NewTableBlock(rows [][]TableCell) DocumentBlock {
	var bbox Rect
	first := true
	for _, row := range rows {
		for _, cell := range row {
			if first {
				bbox = cell.BBox
				first = false
			} else {
				bbox = bbox.Union(cell.BBox)
			}
		}
	}

	return DocumentBlock{
		Kind: KindTable,
		BBox: bbox,
		Rows: rows,
	}
}

// NewImageBlock creates an image block at the detector's raw rectangle
func NewImageBlock(bounds Rect, caption string) DocumentBlock {
	return DocumentBlock{
		Kind:    KindImage,
		BBox:    bounds,
		Caption: caption,
	}
}

// PlainText returns the block's text content without any structural
// decoration. Image blocks have no text content and return "".
func (b DocumentBlock) PlainText() string {
	switch b.Kind {
	case KindParagraph:
		return b.Text
	case KindList:
		texts := make([]string, 0, len(b.Items))
		for _, item := range b.Items {
			texts = append(texts, item.Text)
		}
		return strings.Join(texts, "\n")
	case KindTable:
		var sb strings.Builder
		for i, row := range b.Rows {
			if i > 0 {
				sb.WriteString("\n")
			}
			for j, cell := range row {
				if j > 0 {
					sb.WriteString(ColumnDelimiter)
				}
				sb.WriteString(cell.Text)
			}
		}
		return sb.String()
	default:
		return ""
	}
}

// LineTexts returns the non-empty trimmed line texts the block carries,
// in block-internal order. Used to verify that composition does not
// silently lose input lines.
func (b DocumentBlock) LineTexts() []string {
	var texts []string
	appendLine := func(lines []TextLine) {
		for _, line := range lines {
			if t := strings.TrimSpace(line.Text()); t != "" {
				texts = append(texts, t)
			}
		}
	}

	switch b.Kind {
	case KindParagraph:
		appendLine(b.Lines)
	case KindList:
		for _, item := range b.Items {
			appendLine(item.Lines)
		}
	case KindTable:
		for _, row := range b.Rows {
			for _, cell := range row {
				appendLine(cell.Lines)
			}
		}
	}
	return texts
}
