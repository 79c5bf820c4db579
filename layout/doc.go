// Package layout reconstructs logical document structure - paragraphs,
// lists, tables, and images in reading order - from a flat collection
// of positioned text fragments plus optional semantic region hints.
//
// # Pipeline
//
// The [Analyzer] orchestrates the full reconstruction:
//
//	analyzer := layout.NewAnalyzer()
//	result := analyzer.Analyze(fragments, regions, imageRects, pageSize)
//
// Individual stages can also be run directly:
//
//   - [LineAssembler] - groups fragments into ordered text lines
//   - [GapSplitter] - cuts multi-word fragments at whitespace gaps
//     using pixel data from a [LuminanceSampler]
//   - [BlockComposer] - assigns lines to semantic regions and builds
//     blocks; unclaimed lines become standalone paragraphs
//   - [ParagraphRefiner] - merges and splits paragraph blocks
//   - [Deduplicator] - removes recognition echo duplicates and applies
//     the final reading-order sort
//
// # Configuration
//
// Each stage has a config struct with field-level defaults tuned on
// real-world scans:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.Assembler.SplitVertical = true
//	analyzer := layout.NewAnalyzerWithConfig(config)
//
// # Approximation limits
//
// The pipeline uses fast greedy heuristics throughout and does not
// guarantee a globally optimal reconstruction. Known approximations are
// documented on the methods that carry them (see
// [LineAssembler.Assemble]).
package layout
