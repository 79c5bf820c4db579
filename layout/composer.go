package layout

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/textura/model"
)

// ComposerConfig holds configuration for block composition
type ComposerConfig struct {
	// RegionToleranceRatio is the vertical matching tolerance as a
	// fraction of the region height (default: 0.15)
	RegionToleranceRatio float64

	// RegionToleranceFloor is the minimum absolute matching tolerance
	// in page units (default: 4)
	RegionToleranceFloor float64

	// StandaloneGapFactor is the line-height multiple beyond which a
	// vertical gap starts a new standalone paragraph (default: 1.2)
	StandaloneGapFactor float64

	// StandaloneGapFloor is the minimum absolute gap to start a new
	// standalone paragraph (default: 12)
	StandaloneGapFloor float64

	// MinImageAreaRatio is the minimum candidate area as a fraction of
	// the page area (default: 0.01)
	MinImageAreaRatio float64

	// MaxImageSideRatio is the maximum candidate width/height as a
	// fraction of the corresponding page dimension (default: 0.95)
	MaxImageSideRatio float64

	// MaxStructuredOverlap is the maximum overlap ratio a candidate may
	// have with any structured block (default: 0.35)
	MaxStructuredOverlap float64

	// MaxImageOverlap is the maximum overlap ratio a candidate may have
	// with an already-accepted image candidate; nested duplicate
	// detections above this are dropped (default: 0.65)
	MaxImageOverlap float64
}

// DefaultComposerConfig returns sensible default configuration
func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{
		RegionToleranceRatio: 0.15,
		RegionToleranceFloor: 4.0,
		StandaloneGapFactor:  1.2,
		StandaloneGapFloor:   12.0,
		MinImageAreaRatio:    0.01,
		MaxImageSideRatio:    0.95,
		MaxStructuredOverlap: 0.35,
		MaxImageOverlap:      0.65,
	}
}

// BlockComposer assigns text lines to semantic regions and produces
// document blocks. Every input line ends up in exactly one block:
// lines not claimed by any region are grouped into standalone
// paragraphs.
type BlockComposer struct {
	config ComposerConfig
}

// NewBlockComposer creates a block composer with default configuration
func NewBlockComposer() *BlockComposer {
	return &BlockComposer{
		config: DefaultComposerConfig(),
	}
}

// NewBlockComposerWithConfig creates a block composer with custom configuration
func NewBlockComposerWithConfig(config ComposerConfig) *BlockComposer {
	return &BlockComposer{
		config: config,
	}
}

// Compose builds document blocks from lines, optional semantic regions,
// and optional raw image rectangle candidates. The returned blocks are
// unordered; callers apply reading order after refinement.
func (c *BlockComposer) Compose(lines []model.TextLine, regions []model.SemanticRegion, imageRects []model.Rect, pageSize model.Size) []model.DocumentBlock {
	assigned := make([]bool, len(lines))
	var blocks []model.DocumentBlock

	for _, region := range regions {
		switch region.Kind {
		case model.KindParagraph:
			if block, ok := c.composeParagraph(region, lines, assigned); ok {
				blocks = append(blocks, block)
			}
		case model.KindList:
			if block, ok := c.composeList(region, lines, assigned); ok {
				blocks = append(blocks, block)
			}
		case model.KindTable:
			if block, ok := c.composeTable(region, lines, assigned); ok {
				blocks = append(blocks, block)
			}
		case model.KindImage:
			blocks = append(blocks, model.NewImageBlock(region.Bounds, region.Caption))
		}
	}

	blocks = append(blocks, c.standaloneParagraphs(lines, assigned, pageSize)...)
	blocks = append(blocks, c.filterImageCandidates(imageRects, blocks, pageSize)...)

	return blocks
}

// collectLines claims every unassigned line whose vertical center lies
// within the bounds (expanded by the tolerance) and whose horizontal
// extent overlaps the bounds within the same tolerance
func (c *BlockComposer) collectLines(bounds model.Rect, lines []model.TextLine, assigned []bool) []model.TextLine {
	tolerance := bounds.Height * c.config.RegionToleranceRatio
	if tolerance < c.config.RegionToleranceFloor {
		tolerance = c.config.RegionToleranceFloor
	}

	var matched []model.TextLine
	for i, line := range lines {
		if assigned[i] {
			continue
		}
		bbox := line.BBox()
		centerY := bbox.CenterY()
		if centerY < bounds.Top()-tolerance || centerY > bounds.Bottom()+tolerance {
			continue
		}
		if bbox.Right() < bounds.Left()-tolerance || bbox.Left() > bounds.Right()+tolerance {
			continue
		}
		matched = append(matched, line)
		assigned[i] = true
	}
	return matched
}

// fallbackLines synthesizes lines from a region's own text
// observations when no assembled line matched its geometry. Each
// observation becomes an opaque single-fragment line at the region
// bounds; a raw transcript becomes one such line.
func fallbackLines(bounds model.Rect, observations []string, transcript string) []model.TextLine {
	texts := observations
	if len(texts) == 0 {
		transcript = strings.TrimSpace(transcript)
		if transcript == "" {
			return nil
		}
		texts = []string{transcript}
	}

	var lines []model.TextLine
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, model.NewTextLine([]model.TextFragment{
			{Text: text, BBox: bounds},
		}))
	}
	return lines
}

// composeParagraph builds a paragraph block from a paragraph region.
// Returns false when the region yields no usable lines; an empty
// paragraph is never emitted.
func (c *BlockComposer) composeParagraph(region model.SemanticRegion, lines []model.TextLine, assigned []bool) (model.DocumentBlock, bool) {
	matched := c.collectLines(region.Bounds, lines, assigned)
	if len(matched) == 0 {
		matched = fallbackLines(region.Bounds, region.TextLines, region.Text)
	}
	if len(matched) == 0 {
		return model.DocumentBlock{}, false
	}
	return model.NewParagraphBlock(matched), true
}

// composeList builds a list block from a list region, matching lines
// per item sub-region and stripping marker prefixes from item text
func (c *BlockComposer) composeList(region model.SemanticRegion, lines []model.TextLine, assigned []bool) (model.DocumentBlock, bool) {
	var items []model.ListItem
	for _, itemRegion := range region.Items {
		matched := c.collectLines(itemRegion.Bounds, lines, assigned)
		if len(matched) == 0 {
			matched = fallbackLines(itemRegion.Bounds, itemRegion.TextLines, itemRegion.Text)
		}
		if len(matched) == 0 {
			continue
		}

		texts := make([]string, 0, len(matched))
		for _, line := range matched {
			texts = append(texts, line.Text())
		}
		text := stripMarkerPrefix(strings.Join(texts, "\n"), itemRegion.Marker)

		items = append(items, model.ListItem{
			Text:   text,
			Marker: itemRegion.Marker,
			BBox:   model.LinesBBox(matched),
			Lines:  matched,
		})
	}

	if len(items) == 0 {
		return model.DocumentBlock{}, false
	}
	return model.NewListBlock(region.Marker, items), true
}

// composeTable builds a table block from a table region. Cell row and
// column ranges pass through unchanged.
func (c *BlockComposer) composeTable(region model.SemanticRegion, lines []model.TextLine, assigned []bool) (model.DocumentBlock, bool) {
	byRow := make(map[int][]model.TableCell)
	usable := false

	for _, cellRegion := range region.Cells {
		matched := c.collectLines(cellRegion.Bounds, lines, assigned)
		if len(matched) == 0 {
			matched = fallbackLines(cellRegion.Bounds, cellRegion.TextLines, cellRegion.Text)
		}

		texts := make([]string, 0, len(matched))
		for _, line := range matched {
			texts = append(texts, line.Text())
		}
		text := strings.Join(texts, "\n")
		if strings.TrimSpace(text) != "" {
			usable = true
		}

		bbox := cellRegion.Bounds
		if len(matched) > 0 {
			bbox = model.LinesBBox(matched)
		}

		byRow[cellRegion.RowSpan.Start] = append(byRow[cellRegion.RowSpan.Start], model.TableCell{
			RowSpan: cellRegion.RowSpan,
			ColSpan: cellRegion.ColSpan,
			Text:    text,
			BBox:    bbox,
			Lines:   matched,
		})
	}

	if !usable {
		return model.DocumentBlock{}, false
	}

	rowStarts := make([]int, 0, len(byRow))
	for start := range byRow {
		rowStarts = append(rowStarts, start)
	}
	sort.Ints(rowStarts)

	rows := make([][]model.TableCell, 0, len(rowStarts))
	for _, start := range rowStarts {
		row := byRow[start]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].ColSpan.Start < row[j].ColSpan.Start
		})
		rows = append(rows, row)
	}

	return model.NewTableBlock(rows), true
}

// standaloneParagraphs groups lines not claimed by any region into
// paragraph blocks, starting a new group whenever the vertical gap to
// the previous line exceeds the configured threshold
func (c *BlockComposer) standaloneParagraphs(lines []model.TextLine, assigned []bool, pageSize model.Size) []model.DocumentBlock {
	var remaining []model.TextLine
	for i, line := range lines {
		if !assigned[i] {
			remaining = append(remaining, line)
		}
	}
	if len(remaining) == 0 {
		return nil
	}

	model.SortLinesByReadingOrder(remaining, pageSize)

	var blocks []model.DocumentBlock
	var group []model.TextLine

	for _, line := range remaining {
		if len(group) == 0 {
			group = append(group, line)
			continue
		}

		prev := group[len(group)-1]
		gap := line.BBox().Top() - prev.BBox().Bottom()
		threshold := c.config.StandaloneGapFactor * maxFloat(prev.Height(), line.Height())
		if threshold < c.config.StandaloneGapFloor {
			threshold = c.config.StandaloneGapFloor
		}

		if gap > threshold {
			blocks = append(blocks, model.NewParagraphBlock(group))
			group = []model.TextLine{line}
		} else {
			group = append(group, line)
		}
	}
	if len(group) > 0 {
		blocks = append(blocks, model.NewParagraphBlock(group))
	}

	return blocks
}

// filterImageCandidates filters raw rectangle candidates into image
// blocks, rejecting tiny rects, near-page-sized rects, rects that
// overlap structured content, and nested duplicate detections
func (c *BlockComposer) filterImageCandidates(candidates []model.Rect, structured []model.DocumentBlock, pageSize model.Size) []model.DocumentBlock {
	if len(candidates) == 0 || pageSize.IsEmpty() {
		return nil
	}

	pageArea := pageSize.Area()
	var accepted []model.DocumentBlock

	for _, rect := range candidates {
		if rect.Area() < pageArea*c.config.MinImageAreaRatio {
			continue
		}
		if rect.Width >= pageSize.Width*c.config.MaxImageSideRatio ||
			rect.Height >= pageSize.Height*c.config.MaxImageSideRatio {
			continue
		}

		overlapsStructured := false
		for _, block := range structured {
			if rect.OverlapRatio(block.BBox) > c.config.MaxStructuredOverlap {
				overlapsStructured = true
				break
			}
		}
		if overlapsStructured {
			continue
		}

		duplicate := false
		for _, img := range accepted {
			if rect.OverlapRatio(img.BBox) > c.config.MaxImageOverlap {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		accepted = append(accepted, model.NewImageBlock(rect, ""))
	}

	return accepted
}

// genericOrdinalPrefix matches a numeric list marker such as "1." or
// "12)" at the start of item text
var genericOrdinalPrefix = regexp.MustCompile(`^\d+[.)\s]+\s*`)

// stripMarkerPrefix removes a leading marker string from item text,
// tolerating case and trailing punctuation differences. When the
// explicit marker does not match, a generic numeric prefix is stripped
// instead.
func stripMarkerPrefix(text, marker string) string {
	trimmed := strings.TrimLeft(text, " \t")

	marker = strings.TrimSpace(marker)
	if marker != "" {
		bare := strings.TrimRightFunc(marker, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSpace(r)
		})
		for _, prefix := range []string{marker, bare} {
			if prefix == "" {
				continue
			}
			if len(trimmed) >= len(prefix) && strings.EqualFold(trimmed[:len(prefix)], prefix) {
				rest := trimmed[len(prefix):]
				rest = strings.TrimLeftFunc(rest, func(r rune) bool {
					return unicode.IsSpace(r) || r == '.' || r == ')'
				})
				return rest
			}
		}
	}

	if loc := genericOrdinalPrefix.FindStringIndex(trimmed); loc != nil {
		return trimmed[loc[1]:]
	}
	return trimmed
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
