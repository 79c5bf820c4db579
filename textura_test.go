package textura

import (
	"strings"
	"testing"

	"github.com/tsawler/textura/model"
	"github.com/tsawler/textura/render"
)

var testPage = model.Size{Width: 612, Height: 792}

func makeFragment(text string, x, y, width, height float64) model.TextFragment {
	return model.TextFragment{
		Text: text,
		BBox: model.NewRect(x, y, width, height),
	}
}

func TestFromFragments_Blocks(t *testing.T) {
	fragments := []model.TextFragment{
		makeFragment("Hello", 50, 100, 50, 12),
		makeFragment("World", 110, 100, 50, 12),
		makeFragment("Second line", 50, 116, 100, 12),
	}

	blocks := FromFragments(fragments, testPage).Blocks()

	if len(blocks) != 1 {
		t.Fatalf("Expected 1 paragraph block, got %d", len(blocks))
	}
	if blocks[0].Text != "Hello\tWorld\nSecond line" {
		t.Errorf("Unexpected text: %q", blocks[0].Text)
	}
}

func TestDocument_WithRegionsAndTranscript(t *testing.T) {
	fragments := []model.TextFragment{
		makeFragment("- alpha", 50, 100, 80, 12),
		makeFragment("- beta", 50, 130, 70, 12),
	}
	region := model.SemanticRegion{
		Kind:   model.KindList,
		Bounds: model.NewRect(40, 96, 200, 50),
		Marker: model.MarkerHyphen,
		Items: []model.RegionItem{
			{Bounds: model.NewRect(40, 96, 200, 20), Marker: "-"},
			{Bounds: model.NewRect(40, 126, 200, 20), Marker: "-"},
		},
	}

	got := FromFragments(fragments, testPage).
		WithRegions(region).
		Transcript()

	expected := "- alpha\n- beta"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestDocument_Markdown(t *testing.T) {
	bounds := model.NewRect(100, 300, 200, 150)
	resolver := render.NewBoundsPathResolver()
	resolver.Register(bounds, "out/fig.png")

	fragments := []model.TextFragment{
		makeFragment("Caption text above", 100, 100, 150, 12),
	}

	got := FromFragments(fragments, testPage).
		WithImageRects(bounds).
		Markdown(resolver)

	if !strings.Contains(got, "Caption text above") {
		t.Errorf("Paragraph missing from markdown: %q", got)
	}
	if !strings.Contains(got, "![Image](out/fig.png)") {
		t.Errorf("Image link missing from markdown: %q", got)
	}
}

func TestDocument_WithRegionsAccumulates(t *testing.T) {
	fragments := []model.TextFragment{
		makeFragment("shared text", 50, 100, 100, 12),
	}
	region := model.SemanticRegion{
		Kind:   model.KindParagraph,
		Bounds: model.NewRect(40, 90, 200, 30),
	}

	base := FromFragments(fragments, testPage)
	withRegion := base.WithRegions(region)

	if len(withRegion.options.regions) != 1 {
		t.Fatalf("Expected 1 region on derived document, got %d", len(withRegion.options.regions))
	}

	// The derived document still reconstructs the same single paragraph
	blocks := withRegion.Blocks()
	if len(blocks) != 1 || blocks[0].Text != "shared text" {
		t.Errorf("Unexpected blocks: %+v", blocks)
	}
}

func TestDocument_EmptyInput(t *testing.T) {
	doc := FromFragments(nil, testPage)

	if blocks := doc.Blocks(); len(blocks) != 0 {
		t.Errorf("Expected no blocks, got %d", len(blocks))
	}
	if transcript := doc.Transcript(); transcript != "" {
		t.Errorf("Expected empty transcript, got %q", transcript)
	}
}
