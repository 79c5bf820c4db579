package layout

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/tsawler/textura/model"
)

// fakeSampler returns a fixed image for any bounds
type fakeSampler struct {
	img image.Image
	err error
}

func (s *fakeSampler) Sample(bounds model.Rect) (image.Image, error) {
	return s.img, s.err
}

// makeCrop builds a grayscale crop that is fully inked except for the
// given blank column ranges
func makeCrop(width, height int, blankRanges ...[2]int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		blank := false
		for _, r := range blankRanges {
			if x >= r[0] && x < r[1] {
				blank = true
				break
			}
		}
		lum := color.Gray{Y: 0} // ink
		if blank {
			lum = color.Gray{Y: 255}
		}
		for y := 0; y < height; y++ {
			img.SetGray(x, y, lum)
		}
	}
	return img
}

func TestGapSplitter_SplitsAtBlankColumns(t *testing.T) {
	crop := makeCrop(90, 10, [2]int{40, 50})
	splitter := NewGapSplitter(&fakeSampler{img: crop})

	frag := makeFragment("Hello World", 0, 0, 90, 10)
	parts := splitter.Split(frag)

	if len(parts) != 2 {
		t.Fatalf("Expected 2 sub-fragments, got %d", len(parts))
	}
	if parts[0].Text != "Hello" || parts[1].Text != "World" {
		t.Errorf("Unexpected tokens: %q, %q", parts[0].Text, parts[1].Text)
	}

	// Cut at the gap midpoint: column 45
	if parts[0].BBox.X != 0 || parts[0].BBox.Right() != 45 {
		t.Errorf("Unexpected first bounds: %+v", parts[0].BBox)
	}
	if parts[1].BBox.X != 45 || parts[1].BBox.Right() != 90 {
		t.Errorf("Unexpected second bounds: %+v", parts[1].BBox)
	}
	if parts[0].BBox.Y != frag.BBox.Y || parts[0].BBox.Height != frag.BBox.Height {
		t.Errorf("Expected vertical extent preserved, got %+v", parts[0].BBox)
	}
}

func TestGapSplitter_PrefersWidestGap(t *testing.T) {
	// Two candidate gaps; the wider right-hand one wins
	crop := makeCrop(100, 10, [2]int{20, 23}, [2]int{60, 70})
	splitter := NewGapSplitter(&fakeSampler{img: crop})

	parts := splitter.Split(makeFragment("a b", 0, 0, 100, 10))

	if len(parts) != 2 {
		t.Fatalf("Expected 2 sub-fragments, got %d", len(parts))
	}
	if parts[0].BBox.Right() != 65 {
		t.Errorf("Expected cut at 65 (widest gap midpoint), got %f", parts[0].BBox.Right())
	}
}

func TestGapSplitter_ReturnsUnchanged(t *testing.T) {
	frag := makeFragment("Hello World", 0, 0, 90, 10)

	tests := []struct {
		name     string
		splitter *GapSplitter
		frag     model.TextFragment
	}{
		{
			name:     "nil sampler",
			splitter: NewGapSplitter(nil),
			frag:     frag,
		},
		{
			name:     "sampler error",
			splitter: NewGapSplitter(&fakeSampler{err: errors.New("no pixels")}),
			frag:     frag,
		},
		{
			name:     "crop too small",
			splitter: NewGapSplitter(&fakeSampler{img: makeCrop(3, 1)}),
			frag:     frag,
		},
		{
			name:     "single token",
			splitter: NewGapSplitter(&fakeSampler{img: makeCrop(90, 10, [2]int{40, 50})}),
			frag:     makeFragment("Hello", 0, 0, 90, 10),
		},
		{
			name:     "fewer gaps than tokens",
			splitter: NewGapSplitter(&fakeSampler{img: makeCrop(90, 10)}),
			frag:     frag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := tt.splitter.Split(tt.frag)
			if len(parts) != 1 {
				t.Fatalf("Expected fragment unchanged, got %d parts", len(parts))
			}
			if parts[0] != tt.frag {
				t.Errorf("Expected original fragment, got %+v", parts[0])
			}
		})
	}
}

func TestGapSplitter_ThreeTokens(t *testing.T) {
	crop := makeCrop(120, 10, [2]int{30, 36}, [2]int{80, 86})
	splitter := NewGapSplitter(&fakeSampler{img: crop})

	parts := splitter.Split(makeFragment("one two three", 0, 0, 120, 10))

	if len(parts) != 3 {
		t.Fatalf("Expected 3 sub-fragments, got %d", len(parts))
	}
	expected := []string{"one", "two", "three"}
	for i, want := range expected {
		if parts[i].Text != want {
			t.Errorf("Part %d: expected %q, got %q", i, want, parts[i].Text)
		}
	}

	// Sub-fragments tile the original horizontally
	if parts[0].BBox.X != 0 || parts[2].BBox.Right() != 120 {
		t.Errorf("Expected parts to span original bounds")
	}
	if parts[0].BBox.Right() != parts[1].BBox.X || parts[1].BBox.Right() != parts[2].BBox.X {
		t.Errorf("Expected contiguous cuts, got %+v %+v %+v",
			parts[0].BBox, parts[1].BBox, parts[2].BBox)
	}
}

func TestGapSplitter_DownscalesWideCrops(t *testing.T) {
	config := DefaultGapSplitterConfig()
	config.MaxCropWidth = 100

	// 200px crop with one wide blank band; downscaling to 100 must
	// keep the band detectable and the cut near the proportional spot
	crop := makeCrop(200, 10, [2]int{90, 110})
	splitter := NewGapSplitterWithConfig(&fakeSampler{img: crop}, config)

	parts := splitter.Split(makeFragment("a b", 0, 0, 200, 10))

	if len(parts) != 2 {
		t.Fatalf("Expected 2 sub-fragments, got %d", len(parts))
	}
	cut := parts[0].BBox.Right()
	if cut < 180*0.5 || cut > 220*0.5 {
		t.Errorf("Expected cut near 100, got %f", cut)
	}
}
