// Package layout reconstructs logical document structure from
// positioned text fragments and optional semantic region hints.
package layout

import (
	"sort"

	"github.com/tsawler/textura/model"
)

// AssemblerConfig holds configuration for line assembly
type AssemblerConfig struct {
	// SplitVertical controls whether tall, narrow fragments are pulled
	// out of horizontal clustering and emitted as their own lines
	// (default: false)
	SplitVertical bool

	// VerticalAspectRatio is the minimum height/width ratio for a
	// fragment to be considered vertical (default: 2.0)
	VerticalAspectRatio float64

	// VerticalHeightFactor is the minimum fragment height as a multiple
	// of the typical fragment height for a fragment to be considered
	// vertical (default: 1.5)
	VerticalHeightFactor float64
}

// DefaultAssemblerConfig returns sensible default configuration
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		SplitVertical:        false,
		VerticalAspectRatio:  2.0,
		VerticalHeightFactor: 1.5,
	}
}

// LineAssembler groups raw positioned fragments into ordered text lines
type LineAssembler struct {
	config AssemblerConfig
}

// NewLineAssembler creates a line assembler with default configuration
func NewLineAssembler() *LineAssembler {
	return &LineAssembler{
		config: DefaultAssemblerConfig(),
	}
}

// NewLineAssemblerWithConfig creates a line assembler with custom configuration
func NewLineAssemblerWithConfig(config AssemblerConfig) *LineAssembler {
	return &LineAssembler{
		config: config,
	}
}

// Assemble groups fragments into text lines in reading order.
// Empty input yields empty output; assembly never fails.
//
// Horizontal fragments are clustered greedily: the unconsumed fragment
// with the smallest left edge seeds a line, and every other unconsumed
// fragment whose vertical midpoint falls within the seed's vertical
// span joins it. Two fragments can both overlap a tall seed's span
// without overlapping each other and are still merged into one line;
// clustering is deliberately non-transitive.
func (a *LineAssembler) Assemble(fragments []model.TextFragment) []model.TextLine {
	if len(fragments) == 0 {
		return nil
	}

	typicalHeight := medianFragmentHeight(fragments)

	var horizontal, vertical []model.TextFragment
	for _, frag := range fragments {
		if a.isVertical(frag, typicalHeight) {
			vertical = append(vertical, frag)
		} else {
			horizontal = append(horizontal, frag)
		}
	}

	lines := a.clusterHorizontal(horizontal)

	// Vertical fragments become singleton lines
	for _, frag := range vertical {
		lines = append(lines, model.NewTextLine([]model.TextFragment{frag}))
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Top() < lines[j].Top()
	})

	return lines
}

// isVertical checks whether a fragment should be split out as vertical
// text rather than clustered into a horizontal line
func (a *LineAssembler) isVertical(frag model.TextFragment, typicalHeight float64) bool {
	if !a.config.SplitVertical {
		return false
	}
	if frag.BBox.Height < frag.BBox.Width*a.config.VerticalAspectRatio {
		return false
	}
	return frag.BBox.Height >= typicalHeight*a.config.VerticalHeightFactor
}

// clusterHorizontal greedily clusters fragments into lines using the
// seed-and-collect approach: smallest left edge seeds, vertical-midpoint
// overlap with the seed's span collects
func (a *LineAssembler) clusterHorizontal(fragments []model.TextFragment) []model.TextLine {
	var lines []model.TextLine
	consumed := make([]bool, len(fragments))

	for {
		seed := -1
		for i, frag := range fragments {
			if consumed[i] {
				continue
			}
			if seed < 0 || frag.BBox.X < fragments[seed].BBox.X {
				seed = i
			}
		}
		if seed < 0 {
			break
		}

		group := []model.TextFragment{fragments[seed]}
		consumed[seed] = true
		top := fragments[seed].BBox.Top()
		bottom := fragments[seed].BBox.Bottom()

		for i, frag := range fragments {
			if consumed[i] {
				continue
			}
			mid := frag.BBox.CenterY()
			if mid >= top && mid <= bottom {
				group = append(group, frag)
				consumed[i] = true
			}
		}

		lines = append(lines, model.NewTextLine(group))
	}

	return lines
}

// medianFragmentHeight returns the median of all strictly-positive
// fragment heights, or 0 when there are none
func medianFragmentHeight(fragments []model.TextFragment) float64 {
	heights := make([]float64, 0, len(fragments))
	for _, frag := range fragments {
		if frag.BBox.Height > 0 {
			heights = append(heights, frag.BBox.Height)
		}
	}
	if len(heights) == 0 {
		return 0
	}

	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}
