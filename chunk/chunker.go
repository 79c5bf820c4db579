// Package chunk splits reconstructed document blocks into retrieval-
// sized chunks for RAG (Retrieval-Augmented Generation) workflows.
// Chunking respects block structure: lists and tables stay atomic,
// heading-style paragraphs start a new chunk and label the chunks that
// follow them, and only oversized paragraphs are cut mid-text, at
// sentence boundaries.
package chunk

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tsawler/textura/model"
	"github.com/tsawler/textura/render"
)

// ChunkerConfig holds configuration options for the chunker
type ChunkerConfig struct {
	// MaxSize is the hard limit for chunk size in characters; block
	// runs are cut before exceeding it (default: 2000)
	MaxSize int

	// MinSize is the minimum chunk size in characters; smaller chunks
	// are merged into the preceding chunk of the same section when the
	// merge fits MaxSize (default: 100)
	MinSize int

	// OverlapSentences is the number of trailing sentences of the
	// previous chunk prepended to a chunk's ContextText (default: 1)
	OverlapSentences int

	// PreserveStructure keeps list and table blocks atomic even when
	// their text exceeds MaxSize (default: true)
	PreserveStructure bool

	// IncludeSectionContext prepends the section heading to ContextText
	// (default: true)
	IncludeSectionContext bool

	// HeadingMaxLength is the maximum character count for a paragraph
	// to be treated as a section heading (default: 30)
	HeadingMaxLength int

	// IDPrefix is the prefix for generated chunk IDs (default: "chunk")
	IDPrefix string
}

// DefaultChunkerConfig returns sensible default configuration
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		MaxSize:               2000,
		MinSize:               100,
		OverlapSentences:      1,
		PreserveStructure:     true,
		IncludeSectionContext: true,
		HeadingMaxLength:      30,
		IDPrefix:              "chunk",
	}
}

// Chunk is a retrieval-sized unit of document text
type Chunk struct {
	// ID is a unique identifier for this chunk
	ID string

	// Index is the position of this chunk in the document (0-indexed)
	Index int

	// Text is the chunk content, blocks joined by blank lines
	Text string

	// ContextText is the text with section heading and overlap from the
	// previous chunk prepended, for better retrieval
	ContextText string

	// SectionTitle is the heading governing this chunk, if any
	SectionTitle string

	// BBox is the union of the contributing blocks' bounding boxes
	BBox model.Rect

	// Kinds lists the distinct block kinds contained, in first-seen order
	Kinds []model.BlockKind

	// CharCount is the number of bytes in Text
	CharCount int

	// WordCount is the number of words in Text
	WordCount int

	// EstimatedTokens is a rough token estimate (CharCount / 4)
	EstimatedTokens int
}

// ContainsKind reports whether the chunk carries a block of the given kind
func (c Chunk) ContainsKind(kind model.BlockKind) bool {
	for _, k := range c.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Stats summarizes a chunking run
type Stats struct {
	TotalChunks     int
	TotalCharacters int
	TotalWords      int
	EstimatedTokens int
	AvgChunkSize    int
	MinChunkSize    int
	MaxChunkSize    int
}

// Result contains the chunking output
type Result struct {
	// Chunks are the generated chunks in reading order
	Chunks []Chunk

	// Stats summarizes the run
	Stats Stats
}

// Chunker performs structure-aware chunking of document blocks
type Chunker struct {
	config ChunkerConfig
}

// NewChunker creates a chunker with default configuration
func NewChunker() *Chunker {
	return &Chunker{
		config: DefaultChunkerConfig(),
	}
}

// NewChunkerWithConfig creates a chunker with custom configuration
func NewChunkerWithConfig(config ChunkerConfig) *Chunker {
	return &Chunker{
		config: config,
	}
}

// ChunkBlocks chunks blocks assumed to be in reading order. Empty input
// yields an empty result; chunking never fails.
func (c *Chunker) ChunkBlocks(blocks []model.DocumentBlock) *Result {
	var chunks []Chunk
	var cur draft

	flush := func() {
		if chunk, ok := cur.take(); ok {
			chunks = append(chunks, chunk)
		}
	}

	for _, block := range blocks {
		text := render.Transcript([]model.DocumentBlock{block})
		if strings.TrimSpace(text) == "" {
			continue
		}

		if block.Kind == model.KindParagraph && c.looksLikeSectionHeading(text) {
			flush()
			cur.section = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ":"))
		}

		atomic := c.config.PreserveStructure &&
			(block.Kind == model.KindList || block.Kind == model.KindTable)

		if len(text) > c.config.MaxSize && !atomic {
			flush()
			chunks = append(chunks, c.sentenceChunks(text, block, cur.section)...)
			continue
		}

		if cur.size() > 0 && cur.size()+2+len(text) > c.config.MaxSize {
			flush()
		}
		cur.add(text, block)
	}
	flush()

	chunks = c.mergeUndersized(chunks)
	c.finalize(chunks)

	return &Result{
		Chunks: chunks,
		Stats:  calculateStats(chunks),
	}
}

// draft accumulates blocks for the chunk under construction. The
// section title survives take() so that later chunks in the same
// section stay labeled.
type draft struct {
	texts   []string
	kinds   []model.BlockKind
	bbox    model.Rect
	section string
}

func (d *draft) size() int {
	n := 0
	for i, text := range d.texts {
		if i > 0 {
			n += 2
		}
		n += len(text)
	}
	return n
}

func (d *draft) add(text string, block model.DocumentBlock) {
	d.texts = append(d.texts, text)

	seen := false
	for _, k := range d.kinds {
		if k == block.Kind {
			seen = true
			break
		}
	}
	if !seen {
		d.kinds = append(d.kinds, block.Kind)
	}

	if len(d.texts) == 1 {
		d.bbox = block.BBox
	} else {
		d.bbox = d.bbox.Union(block.BBox)
	}
}

func (d *draft) take() (Chunk, bool) {
	if len(d.texts) == 0 {
		return Chunk{}, false
	}
	chunk := Chunk{
		Text:         strings.Join(d.texts, "\n\n"),
		SectionTitle: d.section,
		BBox:         d.bbox,
		Kinds:        d.kinds,
	}
	d.texts = nil
	d.kinds = nil
	d.bbox = model.Rect{}
	return chunk, true
}

// looksLikeSectionHeading mirrors the refinement heuristic: a short
// paragraph starting with an uppercase letter and ending with a colon
func (c *Chunker) looksLikeSectionHeading(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsRune(text, '\n') {
		return false
	}
	runes := []rune(text)
	if len(runes) > c.config.HeadingMaxLength {
		return false
	}
	return unicode.IsUpper(runes[0]) && strings.HasSuffix(text, ":")
}

// sentenceChunks cuts oversized block text at sentence boundaries,
// greedily packing sentences up to MaxSize
func (c *Chunker) sentenceChunks(text string, block model.DocumentBlock, section string) []Chunk {
	var chunks []Chunk
	var sb strings.Builder

	emit := func() {
		if sb.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:         sb.String(),
			SectionTitle: section,
			BBox:         block.BBox,
			Kinds:        []model.BlockKind{block.Kind},
		})
		sb.Reset()
	}

	for _, sentence := range splitSentences(text) {
		added := len(sentence)
		if sb.Len() > 0 {
			added++
		}
		if sb.Len() > 0 && sb.Len()+added > c.config.MaxSize {
			emit()
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(sentence)
	}
	emit()

	return chunks
}

// mergeUndersized folds chunks below MinSize into their preceding chunk
// when both belong to the same section and the merge fits MaxSize
func (c *Chunker) mergeUndersized(chunks []Chunk) []Chunk {
	if len(chunks) < 2 {
		return chunks
	}

	result := chunks[:1]
	for _, chunk := range chunks[1:] {
		prev := &result[len(result)-1]
		if len(chunk.Text) < c.config.MinSize &&
			chunk.SectionTitle == prev.SectionTitle &&
			len(prev.Text)+2+len(chunk.Text) <= c.config.MaxSize {
			prev.Text += "\n\n" + chunk.Text
			prev.BBox = prev.BBox.Union(chunk.BBox)
			for _, kind := range chunk.Kinds {
				if !prev.ContainsKind(kind) {
					prev.Kinds = append(prev.Kinds, kind)
				}
			}
			continue
		}
		result = append(result, chunk)
	}
	return result
}

// finalize assigns IDs, indexes, statistics, and contextual text
func (c *Chunker) finalize(chunks []Chunk) {
	for i := range chunks {
		chunk := &chunks[i]
		chunk.Index = i
		chunk.ID = fmt.Sprintf("%s_%d", c.config.IDPrefix, i)
		chunk.CharCount = len(chunk.Text)
		chunk.WordCount = len(strings.Fields(chunk.Text))
		chunk.EstimatedTokens = chunk.CharCount / 4

		context := chunk.Text
		if i > 0 && c.config.OverlapSentences > 0 {
			if overlap := trailingSentences(chunks[i-1].Text, c.config.OverlapSentences); overlap != "" {
				context = overlap + "\n\n" + context
			}
		}
		if c.config.IncludeSectionContext && chunk.SectionTitle != "" {
			context = fmt.Sprintf("[%s]\n\n%s", chunk.SectionTitle, context)
		}
		chunk.ContextText = context
	}
}

func calculateStats(chunks []Chunk) Stats {
	stats := Stats{
		TotalChunks:  len(chunks),
		MinChunkSize: -1,
	}

	for _, chunk := range chunks {
		stats.TotalCharacters += chunk.CharCount
		stats.TotalWords += chunk.WordCount
		stats.EstimatedTokens += chunk.EstimatedTokens

		if stats.MinChunkSize < 0 || chunk.CharCount < stats.MinChunkSize {
			stats.MinChunkSize = chunk.CharCount
		}
		if chunk.CharCount > stats.MaxChunkSize {
			stats.MaxChunkSize = chunk.CharCount
		}
	}

	if len(chunks) > 0 {
		stats.AvgChunkSize = stats.TotalCharacters / len(chunks)
	}
	if stats.MinChunkSize < 0 {
		stats.MinChunkSize = 0
	}
	return stats
}

// splitSentences splits text at sentence-ending punctuation, skipping
// likely abbreviations (a terminator followed by a lowercase letter, or
// preceded by a lone capital such as "Mr.")
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			continue
		}
		if i >= 1 && unicode.IsUpper(runes[i-1]) &&
			(i < 2 || unicode.IsSpace(runes[i-2])) {
			continue
		}

		if sentence := strings.TrimSpace(current.String()); sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		sentences = append(sentences, remaining)
	}
	return sentences
}

// trailingSentences returns the last n sentences of text joined by a
// single space
func trailingSentences(text string, n int) string {
	sentences := splitSentences(text)
	if len(sentences) > n {
		sentences = sentences[len(sentences)-n:]
	}
	return strings.Join(sentences, " ")
}
