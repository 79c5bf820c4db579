package layout

import (
	"testing"

	"github.com/tsawler/textura/model"
)

var testPage = model.Size{Width: 612, Height: 792}

func makeLine(text string, x, y, width, height float64) model.TextLine {
	return model.NewTextLine([]model.TextFragment{makeFragment(text, x, y, width, height)})
}

func TestBlockComposer_ParagraphRegionClaimsLines(t *testing.T) {
	composer := NewBlockComposer()

	lines := []model.TextLine{
		makeLine("Inside the region", 50, 100, 200, 12),
		makeLine("Also inside", 50, 120, 180, 12),
		makeLine("Far below", 50, 500, 150, 12),
	}
	regions := []model.SemanticRegion{
		{Kind: model.KindParagraph, Bounds: model.NewRect(40, 90, 250, 50)},
	}

	blocks := composer.Compose(lines, regions, nil, testPage)

	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks (region + standalone), got %d", len(blocks))
	}
	if blocks[0].Kind != model.KindParagraph {
		t.Errorf("Expected paragraph block, got %v", blocks[0].Kind)
	}
	if blocks[0].Text != "Inside the region\nAlso inside" {
		t.Errorf("Unexpected region paragraph text: %q", blocks[0].Text)
	}
	if blocks[1].Text != "Far below" {
		t.Errorf("Unexpected standalone paragraph text: %q", blocks[1].Text)
	}
}

func TestBlockComposer_ParagraphRegionFallbacks(t *testing.T) {
	composer := NewBlockComposer()
	bounds := model.NewRect(0, 0, 100, 30)

	t.Run("text observations", func(t *testing.T) {
		regions := []model.SemanticRegion{{
			Kind:      model.KindParagraph,
			Bounds:    bounds,
			TextLines: []string{"first observation", "second observation"},
			Text:      "ignored transcript",
		}}
		blocks := composer.Compose(nil, regions, nil, testPage)
		if len(blocks) != 1 {
			t.Fatalf("Expected 1 block, got %d", len(blocks))
		}
		if blocks[0].Text != "first observation\nsecond observation" {
			t.Errorf("Unexpected text: %q", blocks[0].Text)
		}
	})

	t.Run("raw transcript", func(t *testing.T) {
		regions := []model.SemanticRegion{{
			Kind:   model.KindParagraph,
			Bounds: bounds,
			Text:   "only the transcript",
		}}
		blocks := composer.Compose(nil, regions, nil, testPage)
		if len(blocks) != 1 {
			t.Fatalf("Expected 1 block, got %d", len(blocks))
		}
		if blocks[0].Text != "only the transcript" {
			t.Errorf("Unexpected text: %q", blocks[0].Text)
		}
	})

	t.Run("nothing usable yields no block", func(t *testing.T) {
		regions := []model.SemanticRegion{{
			Kind:   model.KindParagraph,
			Bounds: bounds,
		}}
		blocks := composer.Compose(nil, regions, nil, testPage)
		if len(blocks) != 0 {
			t.Fatalf("Expected no blocks for empty region, got %d", len(blocks))
		}
	})
}

func TestBlockComposer_ListMarkerStripping(t *testing.T) {
	composer := NewBlockComposer()

	lines := []model.TextLine{
		makeLine("1. First thing", 50, 100, 200, 12),
		makeLine("2) Second thing", 50, 130, 200, 12),
	}
	regions := []model.SemanticRegion{{
		Kind:   model.KindList,
		Bounds: model.NewRect(40, 90, 250, 60),
		Marker: model.MarkerDecimal,
		Items: []model.RegionItem{
			{Bounds: model.NewRect(40, 95, 250, 20), Marker: "1."},
			{Bounds: model.NewRect(40, 125, 250, 20)},
		},
	}}

	blocks := composer.Compose(lines, regions, nil, testPage)

	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	list := blocks[0]
	if list.Kind != model.KindList || len(list.Items) != 2 {
		t.Fatalf("Expected list with 2 items, got %+v", list)
	}
	if list.Items[0].Text != "First thing" {
		t.Errorf("Expected explicit marker stripped, got %q", list.Items[0].Text)
	}
	if list.Items[1].Text != "Second thing" {
		t.Errorf("Expected generic numeric prefix stripped, got %q", list.Items[1].Text)
	}
}

func TestBlockComposer_TablePreservesSpans(t *testing.T) {
	composer := NewBlockComposer()

	lines := []model.TextLine{
		makeLine("Header", 50, 100, 300, 12),
		makeLine("left", 50, 130, 100, 12),
		makeLine("right", 250, 130, 100, 12),
	}
	merged := model.Span{Start: 0, Length: 2}
	regions := []model.SemanticRegion{{
		Kind:   model.KindTable,
		Bounds: model.NewRect(40, 90, 320, 60),
		Cells: []model.RegionCell{
			{Bounds: model.NewRect(40, 95, 320, 20), RowSpan: model.NewSpan(0), ColSpan: merged},
			{Bounds: model.NewRect(40, 125, 150, 20), RowSpan: model.NewSpan(1), ColSpan: model.NewSpan(0)},
			{Bounds: model.NewRect(200, 125, 160, 20), RowSpan: model.NewSpan(1), ColSpan: model.NewSpan(1)},
		},
	}}

	blocks := composer.Compose(lines, regions, nil, testPage)

	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	table := blocks[0]
	if table.Kind != model.KindTable || len(table.Rows) != 2 {
		t.Fatalf("Expected table with 2 rows, got %+v", table)
	}

	header := table.Rows[0][0]
	if header.ColSpan != merged {
		t.Errorf("Expected merged column span preserved, got %+v", header.ColSpan)
	}
	if header.Text != "Header" {
		t.Errorf("Unexpected header text: %q", header.Text)
	}
	if table.Rows[1][0].Text != "left" || table.Rows[1][1].Text != "right" {
		t.Errorf("Unexpected second row: %+v", table.Rows[1])
	}
}

func TestBlockComposer_ImageRegionPassesThrough(t *testing.T) {
	composer := NewBlockComposer()
	regions := []model.SemanticRegion{{
		Kind:    model.KindImage,
		Bounds:  model.NewRect(100, 100, 200, 150),
		Caption: "Figure 1",
	}}

	blocks := composer.Compose(nil, regions, nil, testPage)

	if len(blocks) != 1 || blocks[0].Kind != model.KindImage {
		t.Fatalf("Expected 1 image block, got %+v", blocks)
	}
	if blocks[0].Caption != "Figure 1" {
		t.Errorf("Unexpected caption: %q", blocks[0].Caption)
	}
}

func TestBlockComposer_StandaloneGrouping(t *testing.T) {
	composer := NewBlockComposer()

	// Two tight lines, then a wide gap, then another line
	lines := []model.TextLine{
		makeLine("first", 50, 100, 100, 12),
		makeLine("second", 50, 116, 100, 12),
		makeLine("third", 50, 200, 100, 12),
	}

	blocks := composer.Compose(lines, nil, nil, testPage)

	if len(blocks) != 2 {
		t.Fatalf("Expected 2 standalone paragraphs, got %d", len(blocks))
	}
	if blocks[0].Text != "first\nsecond" {
		t.Errorf("Unexpected first group: %q", blocks[0].Text)
	}
	if blocks[1].Text != "third" {
		t.Errorf("Unexpected second group: %q", blocks[1].Text)
	}
}

func TestBlockComposer_EveryLineEndsUpInABlock(t *testing.T) {
	composer := NewBlockComposer()

	lines := []model.TextLine{
		makeLine("claimed by region", 50, 100, 200, 12),
		makeLine("stray one", 50, 400, 100, 12),
		makeLine("stray two", 400, 700, 100, 12),
	}
	regions := []model.SemanticRegion{
		{Kind: model.KindParagraph, Bounds: model.NewRect(40, 90, 250, 30)},
	}

	blocks := composer.Compose(lines, regions, nil, testPage)

	var got []string
	for _, block := range blocks {
		got = append(got, block.LineTexts()...)
	}
	if len(got) != len(lines) {
		t.Fatalf("Expected %d line texts across blocks, got %d: %v", len(lines), len(got), got)
	}
}

func TestBlockComposer_ImageCandidateFiltering(t *testing.T) {
	composer := NewBlockComposer()
	page := model.Size{Width: 1000, Height: 1000}

	paragraph := model.NewParagraphBlock([]model.TextLine{
		makeLine("structured text", 100, 100, 300, 20),
	})

	candidates := []model.Rect{
		model.NewRect(50, 500, 200, 200),  // valid
		model.NewRect(60, 510, 180, 180),  // nested duplicate of the first
		model.NewRect(0, 0, 50, 50),       // too small (0.25% of page)
		model.NewRect(10, 10, 960, 400),   // side exceeds 95% of page width
		model.NewRect(100, 95, 320, 40),   // overlaps the paragraph
	}

	blocks := composer.filterImageCandidates(candidates, []model.DocumentBlock{paragraph}, page)

	if len(blocks) != 1 {
		t.Fatalf("Expected 1 accepted candidate, got %d", len(blocks))
	}
	if blocks[0].BBox != candidates[0] {
		t.Errorf("Unexpected accepted rect: %+v", blocks[0].BBox)
	}
}

func TestStripMarkerPrefix(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		marker   string
		expected string
	}{
		{"explicit marker", "1. First", "1.", "First"},
		{"explicit marker case tolerant", "a) item", "A)", "item"},
		{"explicit marker punctuation tolerant", "3 Third", "3.", "Third"},
		{"generic numeric fallback", "12) Twelfth", "", "Twelfth"},
		{"no marker present", "Plain text", "", "Plain text"},
		{"marker not matching falls back", "2. Second", "x.", "Second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripMarkerPrefix(tt.text, tt.marker); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
