package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/textura/model"
)

// PathResolver maps an image block's bounds to the output path of the
// extracted image file. Resolution is performed by the caller, which
// knows where images were written.
type PathResolver interface {
	// Resolve returns the path for an image at the given bounds, and
	// false when no path is registered for it
	Resolve(bounds model.Rect) (string, bool)
}

// BoundsPathResolver implements PathResolver with a rounded-bounds
// lookup. Multiple paths may be registered for near-identical bounds;
// the first unclaimed path for a key wins, so repeated renders of
// images sharing bounds each receive their own path.
type BoundsPathResolver struct {
	paths map[string][]string
}

// NewBoundsPathResolver creates an empty resolver
func NewBoundsPathResolver() *BoundsPathResolver {
	return &BoundsPathResolver{
		paths: make(map[string][]string),
	}
}

// Register associates a path with the given image bounds
func (r *BoundsPathResolver) Register(bounds model.Rect, path string) {
	key := boundsKey(bounds)
	r.paths[key] = append(r.paths[key], path)
}

// Resolve claims and returns the first unclaimed path registered for
// the given bounds
func (r *BoundsPathResolver) Resolve(bounds model.Rect) (string, bool) {
	key := boundsKey(bounds)
	queue := r.paths[key]
	if len(queue) == 0 {
		return "", false
	}
	r.paths[key] = queue[1:]
	return queue[0], true
}

// boundsKey rounds bounds to whole units so that near-identical
// rectangles produced at slightly different offsets share a key
func boundsKey(bounds model.Rect) string {
	return fmt.Sprintf("%d:%d:%d:%d",
		int(math.Round(bounds.X)),
		int(math.Round(bounds.Y)),
		int(math.Round(bounds.Width)),
		int(math.Round(bounds.Height)))
}

// Markdown renders blocks as Markdown. The traversal matches
// Transcript, but tables emit a separator row after the header row and
// image blocks render as image links using the resolver. A nil
// resolver, or one with no path for a block, falls back to the
// transcript image form.
func Markdown(blocks []model.DocumentBlock, resolver PathResolver) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if rendered := markdownBlock(block, resolver); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, "\n\n")
}

func markdownBlock(block model.DocumentBlock, resolver PathResolver) string {
	switch block.Kind {
	case model.KindParagraph:
		return block.Text
	case model.KindList:
		return renderList(block)
	case model.KindTable:
		return renderMarkdownTable(block)
	case model.KindImage:
		if resolver != nil {
			if path, ok := resolver.Resolve(block.BBox); ok {
				return fmt.Sprintf("![Image](%s)", path)
			}
		}
		if block.Caption != "" {
			return fmt.Sprintf("[Image: %s]", block.Caption)
		}
		return "[Image]"
	default:
		return ""
	}
}

// renderMarkdownTable emits a pipe table with a separator row after the
// header row
func renderMarkdownTable(block model.DocumentBlock) string {
	if len(block.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, row := range block.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeMarkdownRow(&sb, row)

		if i == 0 {
			sb.WriteString("\n|")
			for range row {
				sb.WriteString(" --- |")
			}
		}
	}
	return sb.String()
}

func writeMarkdownRow(sb *strings.Builder, row []model.TableCell) {
	sb.WriteString("|")
	for _, cell := range row {
		sb.WriteString(" ")
		sb.WriteString(flattenCellText(cell.Text))
		sb.WriteString(" |")
	}
}
