package layout

import (
	"strings"
	"unicode"

	"github.com/tsawler/textura/model"
)

// RefinerConfig holds configuration for paragraph refinement
type RefinerConfig struct {
	// SplitGapFactor is the line-height multiple a gap must exceed for
	// a paragraph to be cut at that boundary (default: 0.85)
	SplitGapFactor float64

	// SplitGapFloor is the minimum absolute gap for a cut (default: 4)
	SplitGapFloor float64

	// SplitWidthRatio is the maximum width ratio of the line above the
	// gap to the line below it; a narrow intro line before a wider
	// block indicates two paragraphs (default: 0.75)
	SplitWidthRatio float64

	// MergeGapFactor is the line-height multiple bounding the gap for
	// two paragraphs to merge (default: 0.9)
	MergeGapFactor float64

	// MergeGapSlack is the absolute slack added to one line height as
	// an alternative upper bound on the merge gap (default: 6)
	MergeGapSlack float64

	// MergeGapMin is the minimum upper bound on the merge gap
	// (default: 3)
	MergeGapMin float64

	// MergeOverlapFactor is the line-height multiple of allowed
	// negative gap (overlapping paragraphs) when merging (default: 0.6)
	MergeOverlapFactor float64

	// LeftEdgeTolerance is the maximum absolute left-edge delta between
	// merge candidates (default: 4)
	LeftEdgeTolerance float64

	// LeftEdgeRatio is the maximum left-edge delta as a fraction of the
	// page width; the larger of the two bounds applies (default: 0.015)
	LeftEdgeRatio float64

	// HeadingMaxLength is the maximum character count for a line to
	// look like a heading (default: 30)
	HeadingMaxLength int
}

// DefaultRefinerConfig returns sensible default configuration
func DefaultRefinerConfig() RefinerConfig {
	return RefinerConfig{
		SplitGapFactor:     0.85,
		SplitGapFloor:      4.0,
		SplitWidthRatio:    0.75,
		MergeGapFactor:     0.9,
		MergeGapSlack:      6.0,
		MergeGapMin:        3.0,
		MergeOverlapFactor: 0.6,
		LeftEdgeTolerance:  4.0,
		LeftEdgeRatio:      0.015,
		HeadingMaxLength:   30,
	}
}

// ParagraphRefiner merges adjacent paragraph blocks that are really one
// paragraph and splits paragraph blocks whose internal line gaps
// indicate two. Heading boundaries are preserved. Refinement produces
// new blocks; input blocks are not mutated.
type ParagraphRefiner struct {
	config RefinerConfig
}

// NewParagraphRefiner creates a paragraph refiner with default configuration
func NewParagraphRefiner() *ParagraphRefiner {
	return &ParagraphRefiner{
		config: DefaultRefinerConfig(),
	}
}

// NewParagraphRefinerWithConfig creates a paragraph refiner with custom configuration
func NewParagraphRefinerWithConfig(config RefinerConfig) *ParagraphRefiner {
	return &ParagraphRefiner{
		config: config,
	}
}

// Refine runs the split pass and then the merge pass over a
// reading-order-sorted block list. Splitting runs first so that merge
// candidates are correctly exposed; callers re-run deduplication and
// final ordering afterwards since splitting can change neighbors.
func (r *ParagraphRefiner) Refine(blocks []model.DocumentBlock, pageSize model.Size) []model.DocumentBlock {
	model.SortBlocksByReadingOrder(blocks, pageSize)
	blocks = r.splitParagraphs(blocks)
	model.SortBlocksByReadingOrder(blocks, pageSize)
	return r.mergeParagraphs(blocks, pageSize)
}

// splitParagraphs cuts each qualifying paragraph into two at the first
// qualifying gap. Only the first gap in a contiguous run triggers a
// cut; the two halves are not re-evaluated.
func (r *ParagraphRefiner) splitParagraphs(blocks []model.DocumentBlock) []model.DocumentBlock {
	result := make([]model.DocumentBlock, 0, len(blocks))

	for _, block := range blocks {
		if block.Kind != model.KindParagraph || len(block.Lines) < 2 {
			result = append(result, block)
			continue
		}

		cut := -1
		for i := 0; i < len(block.Lines)-1; i++ {
			upper := block.Lines[i].BBox()
			lower := block.Lines[i+1].BBox()

			gap := lower.Top() - upper.Bottom()
			threshold := maxFloat(r.config.SplitGapFactor*upper.Height, r.config.SplitGapFloor)
			if gap <= threshold {
				continue
			}
			if lower.Width <= 0 || upper.Width/lower.Width >= r.config.SplitWidthRatio {
				continue
			}
			cut = i + 1
			break
		}

		if cut < 0 {
			result = append(result, block)
			continue
		}

		result = append(result,
			model.NewParagraphBlock(block.Lines[:cut]),
			model.NewParagraphBlock(block.Lines[cut:]))
	}

	return result
}

// mergeParagraphs merges consecutive paragraph blocks in a single
// forward pass. A merged block may continue absorbing its following
// neighbor, but blocks further back are never revisited.
func (r *ParagraphRefiner) mergeParagraphs(blocks []model.DocumentBlock, pageSize model.Size) []model.DocumentBlock {
	var result []model.DocumentBlock

	for _, block := range blocks {
		if len(result) == 0 || block.Kind != model.KindParagraph {
			result = append(result, block)
			continue
		}

		prev := result[len(result)-1]
		if prev.Kind != model.KindParagraph || !r.shouldMerge(prev, block, pageSize) {
			result = append(result, block)
			continue
		}

		merged := append(append([]model.TextLine{}, prev.Lines...), block.Lines...)
		result[len(result)-1] = model.NewParagraphBlock(merged)
	}

	return result
}

// shouldMerge reports whether two consecutive paragraphs are really one
func (r *ParagraphRefiner) shouldMerge(prev, curr model.DocumentBlock, pageSize model.Size) bool {
	if len(prev.Lines) == 0 || len(curr.Lines) == 0 {
		return false
	}

	// Headings never merge with a neighbor in either direction
	if r.looksLikeHeading(prev.Lines[0].Text()) || r.looksLikeHeading(curr.Lines[0].Text()) {
		return false
	}

	last := prev.Lines[len(prev.Lines)-1].BBox()
	first := curr.Lines[0].BBox()
	lineHeight := maxFloat(last.Height, first.Height)

	gap := first.Top() - last.Bottom()
	upper := maxFloat(minFloat(r.config.MergeGapFactor*lineHeight, lineHeight+r.config.MergeGapSlack), r.config.MergeGapMin)
	if gap < -r.config.MergeOverlapFactor*lineHeight || gap > upper {
		return false
	}

	leftDelta := absFloat(prev.BBox.X - curr.BBox.X)
	leftLimit := r.config.LeftEdgeTolerance
	if pageSize.Width > 0 {
		leftLimit = maxFloat(leftLimit, pageSize.Width*r.config.LeftEdgeRatio)
	}
	return leftDelta < leftLimit
}

// looksLikeHeading reports whether a line reads as a heading: short,
// starting with an uppercase letter, and ending with a colon
func (r *ParagraphRefiner) looksLikeHeading(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	runes := []rune(text)
	if len(runes) > r.config.HeadingMaxLength {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return strings.HasSuffix(text, ":")
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
