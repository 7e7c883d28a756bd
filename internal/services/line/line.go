// Package line implements the slide-and-merge rule for a single row or column.
package line

import (
	"slices"

	"github.com/mcoot/merge2048/internal/model"
)

// Compact slides every tile in values toward the given edge and merges equal
// neighbours. A tile produced by a merge does not merge again in the same pass,
// so [2 2 2 2] toward the start becomes [4 4 0 0]. It returns a new slice of
// the same length and the sum of the merged tile values. Tiles at
// model.MaxTileValue stay put. values is not modified.
func Compact(values []int, toward model.Edge) ([]int, int) {
	if toward == model.EdgeEnd {
		reversed := slices.Clone(values)
		slices.Reverse(reversed)
		result, delta := compactStart(reversed)
		slices.Reverse(result)
		return result, delta
	}
	return compactStart(values)
}

// compactStart compacts toward index 0: strip gaps, merge adjacent pairs once
// from the edge inward, then pad back out to the original length.
func compactStart(values []int) ([]int, int) {
	tiles := make([]int, 0, len(values))
	for _, v := range values {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	delta := 0
	merged := make([]int, 0, len(tiles))
	for i := 0; i < len(tiles); i++ {
		if i+1 < len(tiles) && model.CanMerge(tiles[i], tiles[i+1]) {
			v := tiles[i] * 2
			merged = append(merged, v)
			delta = model.AddScore(delta, v)
			i++
			continue
		}
		merged = append(merged, tiles[i])
	}

	result := make([]int, len(values))
	copy(result, merged)
	return result, delta
}

// CanCompact reports whether Compact would change values, by direct scan: some
// tile has an empty slot right beside it on the edge side, or two adjacent
// tiles are equal.
func CanCompact(values []int, toward model.Edge) bool {
	for i := 0; i+1 < len(values); i++ {
		near, far := values[i], values[i+1]
		if toward == model.EdgeEnd {
			near, far = far, near
		}
		if far == 0 {
			continue
		}
		if near == 0 || model.CanMerge(near, far) {
			return true
		}
	}
	return false
}
