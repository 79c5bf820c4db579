// Package textura provides a fluent API for reconstructing logical
// document structure - paragraphs, lists, tables, and images in
// reading order - from positioned text fragments produced by an
// external recognizer.
//
// Basic usage:
//
//	blocks := textura.FromFragments(fragments, pageSize).Blocks()
//
// With semantic region hints and rendering:
//
//	markdown := textura.FromFragments(fragments, pageSize).
//	    WithRegions(regions...).
//	    WithImageRects(candidates...).
//	    Markdown(resolver)
//
// For advanced use cases, the lower-level layout package is also
// available.
package textura

import (
	"github.com/tsawler/textura/layout"
	"github.com/tsawler/textura/model"
	"github.com/tsawler/textura/render"
)

// Document accumulates the inputs for one page's reconstruction and
// exposes terminal operations producing blocks or rendered text.
type Document struct {
	fragments []model.TextFragment
	pageSize  model.Size
	options   ReconstructOptions
}

// FromFragments starts reconstruction from recognized fragments within
// the given reference page size.
//
// Example:
//
//	blocks := textura.FromFragments(fragments, pageSize).Blocks()
func FromFragments(fragments []model.TextFragment, pageSize model.Size) *Document {
	return &Document{
		fragments: fragments,
		pageSize:  pageSize,
		options:   defaultOptions(),
	}
}

// WithRegions adds semantic region hints from the external
// segmentation stage.
func (d *Document) WithRegions(regions ...model.SemanticRegion) *Document {
	d.options = d.options.clone()
	d.options.regions = append(d.options.regions, regions...)
	return d
}

// WithImageRects adds raw image rectangle candidates to be filtered
// into image blocks.
func (d *Document) WithImageRects(rects ...model.Rect) *Document {
	d.options = d.options.clone()
	d.options.imageRects = append(d.options.imageRects, rects...)
	return d
}

// WithConfig replaces the pipeline configuration.
func (d *Document) WithConfig(config layout.AnalyzerConfig) *Document {
	d.options = d.options.clone()
	d.options.config = config
	return d
}

// SplitVerticalText enables splitting tall, narrow fragments into
// their own lines during assembly.
func (d *Document) SplitVerticalText() *Document {
	d.options = d.options.clone()
	d.options.config.Assembler.SplitVertical = true
	return d
}

// Analyze runs the reconstruction pipeline and returns the full result.
func (d *Document) Analyze() *layout.AnalysisResult {
	analyzer := layout.NewAnalyzerWithConfig(d.options.config)
	return analyzer.Analyze(d.fragments, d.options.regions, d.options.imageRects, d.pageSize)
}

// Blocks runs the reconstruction pipeline and returns the document
// blocks in reading order.
func (d *Document) Blocks() []model.DocumentBlock {
	return d.Analyze().Blocks
}

// Transcript runs the pipeline and renders the result as plain text.
func (d *Document) Transcript() string {
	return render.Transcript(d.Blocks())
}

// Markdown runs the pipeline and renders the result as Markdown. The
// resolver maps image blocks to extracted image paths; it may be nil,
// in which case images render in their transcript form.
func (d *Document) Markdown(resolver render.PathResolver) string {
	return render.Markdown(d.Blocks(), resolver)
}
