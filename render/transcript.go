// Package render produces textual output from reconstructed document
// blocks: a plain transcript and Markdown.
package render

import (
	"fmt"
	"strings"

	"github.com/tsawler/textura/model"
)

// Transcript renders blocks as plain text, joining blocks with a blank
// line. List items render as "<marker> <text>" with continuation lines
// indented to the marker's width; table rows render as cells joined by
// " | "; image blocks render as "[Image: <caption>]" or "[Image]".
func Transcript(blocks []model.DocumentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if rendered := transcriptBlock(block); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, "\n\n")
}

func transcriptBlock(block model.DocumentBlock) string {
	switch block.Kind {
	case model.KindParagraph:
		return block.Text
	case model.KindList:
		return renderList(block)
	case model.KindTable:
		return renderTableRows(block)
	case model.KindImage:
		if block.Caption != "" {
			return fmt.Sprintf("[Image: %s]", block.Caption)
		}
		return "[Image]"
	default:
		return ""
	}
}

// renderList renders list items with resolved markers and hanging
// indentation for multi-line items
func renderList(block model.DocumentBlock) string {
	var sb strings.Builder
	for i, item := range block.Items {
		if i > 0 {
			sb.WriteString("\n")
		}

		marker := ResolveMarker(block.Marker, item.Marker, i)
		indent := strings.Repeat(" ", len(marker)+1)

		for j, line := range strings.Split(item.Text, "\n") {
			if j == 0 {
				sb.WriteString(marker)
				sb.WriteString(" ")
			} else {
				sb.WriteString("\n")
				sb.WriteString(indent)
			}
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// renderTableRows renders table rows as cells joined by " | "
func renderTableRows(block model.DocumentBlock) string {
	var sb strings.Builder
	for i, row := range block.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(flattenCellText(cell.Text))
		}
	}
	return sb.String()
}

func flattenCellText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ResolveMarker returns the marker string to render for a list item.
// An explicit marker from the recognizer wins; otherwise the marker
// family generates one: bullet and hyphen families render "-", Latin
// families cycle a-z or A-Z by item index, and the decimal family
// renders "<index+1>.".
func ResolveMarker(kind model.MarkerKind, explicit string, index int) string {
	if explicit != "" {
		return explicit
	}

	switch kind {
	case model.MarkerLowerLatin:
		return string(rune('a' + index%26))
	case model.MarkerUpperLatin:
		return string(rune('A' + index%26))
	case model.MarkerDecimal:
		return fmt.Sprintf("%d.", index+1)
	default:
		return "-"
	}
}
