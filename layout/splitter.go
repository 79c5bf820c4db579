package layout

import (
	"image"
	"image/draw"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/tsawler/textura/model"
)

// LuminanceSampler provides pixel data for a region of the page image.
// It is supplied by the rasterizing collaborator; the pipeline never
// decodes images itself.
type LuminanceSampler interface {
	// Sample returns the pixels covering the given page-frame bounds.
	// Implementations may return any image type; the splitter converts
	// to grayscale internally.
	Sample(bounds model.Rect) (image.Image, error)
}

// GapSplitterConfig holds configuration for whitespace-gap splitting
type GapSplitterConfig struct {
	// InkThreshold is the maximum per-column ink ratio (fraction of
	// dark pixels) for a column to count as blank (default: 0.05)
	InkThreshold float64

	// InkLuminance is the luminance below which a pixel counts as ink,
	// on a 0-255 scale (default: 128)
	InkLuminance uint8

	// MinGapDivisor sets the minimum gap width to
	// max(1, cropWidth/MinGapDivisor) pixels (default: 80)
	MinGapDivisor int

	// MaxCropWidth bounds the pixel scan: wider crops are downscaled
	// to this width before measuring ink (default: 2048)
	MaxCropWidth int
}

// DefaultGapSplitterConfig returns sensible default configuration
func DefaultGapSplitterConfig() GapSplitterConfig {
	return GapSplitterConfig{
		InkThreshold:  0.05,
		InkLuminance:  128,
		MinGapDivisor: 80,
		MaxCropWidth:  2048,
	}
}

// GapSplitter cuts a fragment whose recognized text contains embedded
// whitespace into one sub-fragment per whitespace-separated token, using
// low-ink pixel columns in the fragment's crop as cut lines. It is used
// by callers needing finer granularity than whole recognized runs.
type GapSplitter struct {
	config  GapSplitterConfig
	sampler LuminanceSampler
}

// NewGapSplitter creates a gap splitter with default configuration.
// A nil sampler disables splitting: Split returns fragments unchanged.
func NewGapSplitter(sampler LuminanceSampler) *GapSplitter {
	return &GapSplitter{
		config:  DefaultGapSplitterConfig(),
		sampler: sampler,
	}
}

// NewGapSplitterWithConfig creates a gap splitter with custom configuration
func NewGapSplitterWithConfig(sampler LuminanceSampler, config GapSplitterConfig) *GapSplitter {
	return &GapSplitter{
		config:  config,
		sampler: sampler,
	}
}

// pixelGap is a maximal run of blank columns in the crop
type pixelGap struct {
	start, end int // column range, end exclusive
}

func (g pixelGap) width() int {
	return g.end - g.start
}

func (g pixelGap) mid() float64 {
	return float64(g.start+g.end) / 2
}

// Split cuts the fragment at detected whitespace gaps, one sub-fragment
// per whitespace-separated token of its text. The fragment is returned
// unchanged whenever pixel data is unavailable, the crop is smaller
// than 4x2 pixels, or fewer gaps are detected than tokens require.
func (s *GapSplitter) Split(frag model.TextFragment) []model.TextFragment {
	single := []model.TextFragment{frag}

	tokens := strings.Fields(frag.Text)
	if len(tokens) < 2 || s.sampler == nil || frag.BBox.IsEmpty() {
		return single
	}

	img, err := s.sampler.Sample(frag.BBox)
	if err != nil || img == nil {
		return single
	}

	gray := s.grayscale(img)
	width := gray.Bounds().Dx()
	height := gray.Bounds().Dy()
	if width < 4 || height < 2 {
		return single
	}

	gaps := s.findGaps(gray)
	needed := len(tokens) - 1
	if len(gaps) < needed {
		return single
	}

	gaps = selectGaps(gaps, needed)

	// Map gap midpoints from crop columns back into the fragment frame
	scale := frag.BBox.Width / float64(width)
	cuts := make([]float64, 0, len(gaps))
	for _, gap := range gaps {
		cuts = append(cuts, frag.BBox.X+gap.mid()*scale)
	}

	result := make([]model.TextFragment, 0, len(tokens))
	left := frag.BBox.X
	for i, token := range tokens {
		right := frag.BBox.Right()
		if i < len(cuts) {
			right = cuts[i]
		}
		result = append(result, model.TextFragment{
			Text: token,
			BBox: model.NewRect(left, frag.BBox.Y, right-left, frag.BBox.Height),
		})
		left = right
	}

	return result
}

// grayscale converts the sampled image to grayscale, downscaling crops
// wider than MaxCropWidth to bound the per-column scan
func (s *GapSplitter) grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if s.config.MaxCropWidth > 0 && width > s.config.MaxCropWidth {
		scaled := image.NewGray(image.Rect(0, 0, s.config.MaxCropWidth, height))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)
		return scaled
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// findGaps scans per-column ink ratios and returns every maximal run of
// blank columns wide enough to count as a gap
func (s *GapSplitter) findGaps(gray *image.Gray) []pixelGap {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	minGapWidth := width / s.config.MinGapDivisor
	if minGapWidth < 1 {
		minGapWidth = 1
	}

	var gaps []pixelGap
	runStart := -1

	for col := 0; col < width; col++ {
		ink := 0
		for row := 0; row < height; row++ {
			if gray.GrayAt(bounds.Min.X+col, bounds.Min.Y+row).Y < s.config.InkLuminance {
				ink++
			}
		}
		blank := float64(ink)/float64(height) < s.config.InkThreshold

		if blank {
			if runStart < 0 {
				runStart = col
			}
			continue
		}
		if runStart >= 0 {
			if col-runStart >= minGapWidth {
				gaps = append(gaps, pixelGap{start: runStart, end: col})
			}
			runStart = -1
		}
	}
	if runStart >= 0 && width-runStart >= minGapWidth {
		gaps = append(gaps, pixelGap{start: runStart, end: width})
	}

	return gaps
}

// selectGaps picks the required number of gaps, preferring the widest
// and then the left-most, and returns them in left-to-right order
func selectGaps(gaps []pixelGap, needed int) []pixelGap {
	if len(gaps) <= needed {
		return gaps
	}

	ranked := make([]pixelGap, len(gaps))
	copy(ranked, gaps)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].width() != ranked[j].width() {
			return ranked[i].width() > ranked[j].width()
		}
		return ranked[i].start < ranked[j].start
	})

	chosen := ranked[:needed]
	sort.SliceStable(chosen, func(i, j int) bool {
		return chosen[i].start < chosen[j].start
	})
	return chosen
}
