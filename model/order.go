package model

import (
	"math"
	"sort"
)

// readingOrderTolerance is the vertical band, as a fraction of the frame
// height, within which two rectangles are treated as lying on the same
// visual row and ordered left to right instead of top to bottom.
const readingOrderTolerance = 0.01

// absoluteRowTolerance is the fallback vertical band in absolute
// coordinates, used when no reference frame is available.
const absoluteRowTolerance = 1.0

// ReadingOrderLess reports whether a comes before b in reading order:
// top row before bottom row, left before right within a row. Both
// rectangles are normalized by the frame before comparison so that
// geometry produced at different raster resolutions orders consistently.
// This defines a strict weak ordering over a fixed frame.
func ReadingOrderLess(a, b Rect, frame Size) bool {
	tolerance := absoluteRowTolerance
	if !frame.IsEmpty() {
		a = a.Normalized(frame)
		b = b.Normalized(frame)
		tolerance = readingOrderTolerance
	}

	dy := a.Y - b.Y
	if math.Abs(dy) > tolerance {
		return dy < 0
	}
	return a.X < b.X
}

// SortBlocksByReadingOrder sorts blocks into reading order within the
// given reference frame. The sort is stable so blocks on the same row
// with equal left edges keep their relative order.
func SortBlocksByReadingOrder(blocks []DocumentBlock, frame Size) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return ReadingOrderLess(blocks[i].BBox, blocks[j].BBox, frame)
	})
}

// SortLinesByReadingOrder sorts text lines into reading order within the
// given reference frame
func SortLinesByReadingOrder(lines []TextLine, frame Size) {
	sort.SliceStable(lines, func(i, j int) bool {
		return ReadingOrderLess(lines[i].BBox(), lines[j].BBox(), frame)
	})
}
