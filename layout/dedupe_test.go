package layout

import (
	"testing"

	"github.com/tsawler/textura/model"
)

func paragraphAt(text string, x, y float64) model.DocumentBlock {
	return model.NewParagraphBlock([]model.TextLine{
		makeLine(text, x, y, float64(len(text))*6, 12),
	})
}

func TestDeduplicator_DropsExactEcho(t *testing.T) {
	deduper := NewDeduplicator()

	blocks := []model.DocumentBlock{
		paragraphAt("Quarterly results were strong.", 50, 100),
		paragraphAt("quarterly results were strong", 50, 500),
		paragraphAt("Unrelated paragraph.", 50, 300),
	}

	kept := deduper.Deduplicate(blocks, testPage)

	if len(kept) != 2 {
		t.Fatalf("Expected exact echo dropped, got %d blocks", len(kept))
	}
	// First occurrence in reading order wins
	if kept[0].Text != "Quarterly results were strong." {
		t.Errorf("Expected the earlier block kept, got %q", kept[0].Text)
	}
	if kept[1].Text != "Unrelated paragraph." {
		t.Errorf("Unexpected surviving block: %q", kept[1].Text)
	}
}

func TestDeduplicator_DropsContainedEcho(t *testing.T) {
	deduper := NewDeduplicator()

	full := "The committee voted unanimously to approve the revised budget for the coming fiscal year."
	partial := "voted unanimously to approve the revised budget"

	blocks := []model.DocumentBlock{
		paragraphAt(full, 50, 100),
		paragraphAt(partial, 50, 600),
	}

	kept := deduper.Deduplicate(blocks, testPage)

	if len(kept) != 1 {
		t.Fatalf("Expected contained echo dropped, got %d blocks", len(kept))
	}
	if kept[0].Text != full {
		t.Errorf("Expected the containing block kept, got %q", kept[0].Text)
	}
}

func TestDeduplicator_ShortSubstringsSurvive(t *testing.T) {
	deduper := NewDeduplicator()

	blocks := []model.DocumentBlock{
		paragraphAt("The annual report discusses revenue in detail.", 50, 100),
		// Substring of the first, but far below the contained-echo
		// length threshold: a real short paragraph, not an artifact.
		paragraphAt("revenue", 50, 600),
	}

	kept := deduper.Deduplicate(blocks, testPage)

	if len(kept) != 2 {
		t.Fatalf("Expected short substring kept, got %d blocks", len(kept))
	}
}

func TestDeduplicator_OrdinalAndPunctuationInsensitive(t *testing.T) {
	deduper := NewDeduplicator()

	blocks := []model.DocumentBlock{
		paragraphAt("1. Appendix follows here", 50, 100),
		paragraphAt("Appendix, follows here!", 50, 600),
	}

	kept := deduper.Deduplicate(blocks, testPage)

	if len(kept) != 1 {
		t.Fatalf("Expected ordinal/punctuation variants collapsed, got %d blocks", len(kept))
	}
}

func TestDeduplicator_ImagesAlwaysKept(t *testing.T) {
	deduper := NewDeduplicator()

	blocks := []model.DocumentBlock{
		model.NewImageBlock(model.NewRect(50, 100, 200, 150), ""),
		model.NewImageBlock(model.NewRect(50, 400, 200, 150), ""),
	}

	kept := deduper.Deduplicate(blocks, testPage)

	if len(kept) != 2 {
		t.Fatalf("Expected both image blocks kept, got %d", len(kept))
	}
}

func TestDeduplicator_SortsByReadingOrder(t *testing.T) {
	deduper := NewDeduplicator()

	blocks := []model.DocumentBlock{
		paragraphAt("comes second", 50, 400),
		paragraphAt("comes first", 50, 100),
	}

	kept := deduper.Deduplicate(blocks, testPage)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(kept))
	}
	if kept[0].Text != "comes first" || kept[1].Text != "comes second" {
		t.Errorf("Blocks not in reading order: %q then %q", kept[0].Text, kept[1].Text)
	}
}

func TestDeduplicatorKey(t *testing.T) {
	deduper := NewDeduplicator()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"case folded", "Hello World", "hello world"},
		{"ordinal stripped", "3) Third item", "third item"},
		{"punctuation collapsed", "well -- known; fact", "well known fact"},
		{"whitespace normalized", "  spaced \t out  ", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := paragraphAt(tt.text, 0, 0)
			if got := deduper.key(block); got != tt.expected {
				t.Errorf("Expected key %q, got %q", tt.expected, got)
			}
		})
	}
}
