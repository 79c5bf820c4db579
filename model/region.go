package model

// SemanticRegion is an externally supplied geometric hint proposing
// that a given area contains a paragraph, list, table, or image. A
// region mirrors the DocumentBlock kinds but carries only geometry and
// optional recognized text; no text lines are assigned to it yet.
type SemanticRegion struct {
	// Kind selects the region variant
	Kind BlockKind

	// Bounds is the region's rectangle in the page frame
	Bounds Rect

	// Text is the recognizer's raw transcript for the region, used as a
	// last-resort fallback when no lines match the geometry
	Text string

	// TextLines are the recognizer's per-line text observations, used
	// as a fallback before Text
	TextLines []string

	// Marker is the marker family proposed for a list region
	Marker MarkerKind

	// Items are the item sub-regions of a list region
	Items []RegionItem

	// Cells are the cell sub-regions of a table region
	Cells []RegionCell

	// Caption is the proposed caption of an image region
	Caption string
}

// RegionItem is the sub-region of a single list item
type RegionItem struct {
	// Bounds is the item's rectangle
	Bounds Rect

	// Marker is the literal marker string the recognizer observed
	// (for example "1." or "•"), if any
	Marker string

	// Text is the raw transcript fallback for the item
	Text string

	// TextLines are per-line text observation fallbacks
	TextLines []string
}

// RegionCell is the sub-region of a single table cell. Row and column
// ranges pass through composition unchanged.
type RegionCell struct {
	// Bounds is the cell's rectangle
	Bounds Rect

	// RowSpan is the range of rows the cell occupies
	RowSpan Span

	// ColSpan is the range of columns the cell occupies
	ColSpan Span

	// Text is the raw transcript fallback for the cell
	Text string

	// TextLines are per-line text observation fallbacks
	TextLines []string
}
