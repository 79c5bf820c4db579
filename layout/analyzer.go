package layout

import "github.com/tsawler/textura/model"

// AnalyzerConfig holds configuration for the full reconstruction pipeline
type AnalyzerConfig struct {
	// Assembler configures fragment-to-line assembly
	Assembler AssemblerConfig

	// Composer configures block composition from region hints
	Composer ComposerConfig

	// Refiner configures paragraph merging and splitting
	Refiner RefinerConfig

	// Deduper configures duplicate block removal
	Deduper DeduperConfig
}

// DefaultAnalyzerConfig returns sensible default configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Assembler: DefaultAssemblerConfig(),
		Composer:  DefaultComposerConfig(),
		Refiner:   DefaultRefinerConfig(),
		Deduper:   DefaultDeduperConfig(),
	}
}

// AnalysisResult holds the reconstructed document structure for one page
type AnalysisResult struct {
	// Blocks are the document blocks in final reading order
	Blocks []model.DocumentBlock

	// Lines are the assembled text lines before composition
	Lines []model.TextLine

	// PageSize is the reference frame used for ordering
	PageSize model.Size
}

// Analyzer orchestrates the reconstruction pipeline: fragments are
// assembled into lines, composed into blocks using region hints,
// refined, deduplicated, and sorted into reading order. The pipeline
// is a pure synchronous computation over immutable inputs; pages can
// be analyzed concurrently with no shared state.
type Analyzer struct {
	config AnalyzerConfig
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		config: DefaultAnalyzerConfig(),
	}
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config: config,
	}
}

// Analyze reconstructs document structure from fragments plus optional
// semantic regions and image rectangle candidates. Empty input yields
// an empty result; analysis never fails.
func (a *Analyzer) Analyze(fragments []model.TextFragment, regions []model.SemanticRegion, imageRects []model.Rect, pageSize model.Size) *AnalysisResult {
	assembler := NewLineAssemblerWithConfig(a.config.Assembler)
	lines := assembler.Assemble(fragments)

	composer := NewBlockComposerWithConfig(a.config.Composer)
	blocks := composer.Compose(lines, regions, imageRects, pageSize)

	refiner := NewParagraphRefinerWithConfig(a.config.Refiner)
	blocks = refiner.Refine(blocks, pageSize)

	// Splitting can change which neighbor a block should merge with, so
	// deduplication and final ordering run after refinement
	deduper := NewDeduplicatorWithConfig(a.config.Deduper)
	blocks = deduper.Deduplicate(blocks, pageSize)

	return &AnalysisResult{
		Blocks:   blocks,
		Lines:    lines,
		PageSize: pageSize,
	}
}

// BlockCount returns the number of reconstructed blocks
func (r *AnalysisResult) BlockCount() int {
	if r == nil {
		return 0
	}
	return len(r.Blocks)
}

// GetBlock returns a specific block by index
func (r *AnalysisResult) GetBlock(index int) *model.DocumentBlock {
	if r == nil || index < 0 || index >= len(r.Blocks) {
		return nil
	}
	return &r.Blocks[index]
}

// BlocksOfKind returns the blocks of a specific kind, in reading order
func (r *AnalysisResult) BlocksOfKind(kind model.BlockKind) []model.DocumentBlock {
	if r == nil {
		return nil
	}

	var result []model.DocumentBlock
	for _, block := range r.Blocks {
		if block.Kind == kind {
			result = append(result, block)
		}
	}
	return result
}

// Paragraphs returns the paragraph blocks in reading order
func (r *AnalysisResult) Paragraphs() []model.DocumentBlock {
	return r.BlocksOfKind(model.KindParagraph)
}

// Tables returns the table blocks in reading order
func (r *AnalysisResult) Tables() []model.DocumentBlock {
	return r.BlocksOfKind(model.KindTable)
}
