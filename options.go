package textura

import (
	"github.com/tsawler/textura/layout"
	"github.com/tsawler/textura/model"
)

// ReconstructOptions holds configuration for document reconstruction.
type ReconstructOptions struct {
	// External hints
	regions    []model.SemanticRegion
	imageRects []model.Rect

	// Pipeline configuration
	config layout.AnalyzerConfig
}

// defaultOptions returns the default reconstruction options.
func defaultOptions() ReconstructOptions {
	return ReconstructOptions{
		regions:    nil, // nil means no semantic hints
		imageRects: nil, // nil means no image candidates
		config:     layout.DefaultAnalyzerConfig(),
	}
}

// clone creates a deep copy of ReconstructOptions.
func (o ReconstructOptions) clone() ReconstructOptions {
	newOpts := ReconstructOptions{
		config: o.config,
	}

	if o.regions != nil {
		newOpts.regions = make([]model.SemanticRegion, len(o.regions))
		copy(newOpts.regions, o.regions)
	}
	if o.imageRects != nil {
		newOpts.imageRects = make([]model.Rect, len(o.imageRects))
		copy(newOpts.imageRects, o.imageRects)
	}

	return newOpts
}
