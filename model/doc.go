// Package model defines the geometric and structural types shared by
// the reconstruction pipeline.
//
// # Coordinate system
//
// All geometry uses a top-left origin with Y increasing downward. A
// [Rect] whose coordinates are fractions of a reference [Size] in
// [0,1] is a normalized rectangle, produced by [Rect.Normalized] and
// projected back with [Rect.Scaled]. Normalized rectangles let
// geometry produced at different raster resolutions be compared.
//
// # Core types
//
//   - [TextFragment] - a recognized word/run with its bounding box
//   - [TextLine] - fragments judged to lie on the same visual row
//   - [DocumentBlock] - a paragraph, list, table, or image with
//     geometry and reading-order position
//   - [SemanticRegion] - an external hint proposing block structure
//     for an area, before any text is assigned
//
// DocumentBlock is a tagged union: the Kind field selects which of the
// per-kind fields (Text/Lines, Items, Rows, Caption) are populated.
//
// # Reading order
//
// [ReadingOrderLess] defines the total order used everywhere blocks or
// lines must be sequenced: top row before bottom row, left before
// right within a row, with a small tolerance band deciding what counts
// as the same row.
package model
