package layout

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/textura/model"
)

// DeduperConfig holds configuration for duplicate block removal
type DeduperConfig struct {
	// MinContainedLength is the minimum key length for the contained-
	// duplicate check; shorter keys are only dropped on exact matches
	// (default: 40)
	MinContainedLength int

	// ContainerMargin is the minimum number of characters by which a
	// containing key must exceed the contained key (default: 10)
	ContainerMargin int
}

// DefaultDeduperConfig returns sensible default configuration
func DefaultDeduperConfig() DeduperConfig {
	return DeduperConfig{
		MinContainedLength: 40,
		ContainerMargin:    10,
	}
}

// Deduplicator removes duplicate blocks produced by recognition echo
// artifacts, where a large block's text is partially re-recognized as a
// smaller stray block elsewhere, and applies the final reading-order
// sort.
type Deduplicator struct {
	config DeduperConfig
	folder cases.Caser
}

// NewDeduplicator creates a deduplicator with default configuration
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{
		config: DefaultDeduperConfig(),
		folder: cases.Fold(),
	}
}

// NewDeduplicatorWithConfig creates a deduplicator with custom configuration
func NewDeduplicatorWithConfig(config DeduperConfig) *Deduplicator {
	return &Deduplicator{
		config: config,
		folder: cases.Fold(),
	}
}

// leadingOrdinal matches a leading ordinal marker such as "1." or "2)"
var leadingOrdinal = regexp.MustCompile(`^\d+[.)\s]+`)

// nonWordRuns matches runs of punctuation and other non-word characters
var nonWordRuns = regexp.MustCompile(`[^\pL\pN]+`)

// Deduplicate drops blocks whose comparable key exactly matches an
// already-kept key, and blocks whose long key is a literal substring of
// a sufficiently longer kept key. The first occurrence in reading order
// wins. Surviving blocks are returned in reading order.
func (d *Deduplicator) Deduplicate(blocks []model.DocumentBlock, pageSize model.Size) []model.DocumentBlock {
	model.SortBlocksByReadingOrder(blocks, pageSize)

	seen := make(map[string]bool)
	var keptKeys []string
	kept := make([]model.DocumentBlock, 0, len(blocks))

	for _, block := range blocks {
		key := d.key(block)
		if key == "" {
			// Image blocks carry no text and are never deduplicated here
			kept = append(kept, block)
			continue
		}
		if seen[key] {
			continue
		}
		if len(key) > d.config.MinContainedLength && d.containedInKept(key, keptKeys) {
			continue
		}

		seen[key] = true
		keptKeys = append(keptKeys, key)
		kept = append(kept, block)
	}

	model.SortBlocksByReadingOrder(kept, pageSize)
	return kept
}

// key builds the comparable key for a block: case-folded text with
// leading ordinal markers stripped, punctuation collapsed to single
// spaces, and whitespace normalized
func (d *Deduplicator) key(block model.DocumentBlock) string {
	text := block.PlainText()
	if strings.TrimSpace(text) == "" {
		return ""
	}

	folded := d.folder.String(text)
	folded = leadingOrdinal.ReplaceAllString(folded, "")
	folded = nonWordRuns.ReplaceAllString(folded, " ")
	return strings.Join(strings.Fields(folded), " ")
}

// containedInKept reports whether the key is a literal substring of an
// already-kept key that is at least ContainerMargin characters longer
func (d *Deduplicator) containedInKept(key string, keptKeys []string) bool {
	for _, kept := range keptKeys {
		if len(kept) >= len(key)+d.config.ContainerMargin && strings.Contains(kept, key) {
			return true
		}
	}
	return false
}
