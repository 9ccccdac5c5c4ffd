/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import (
	"math"

	"guidekit/internal/geom"
)

// DefaultCellSize is the recommended bucket size in canvas units: large
// enough that typical per-cell element counts stay small, small enough that
// a full-page query does not collapse into a single bucket.
const DefaultCellSize = 100

type cellKey struct{ cx, cy int32 }

// SpatialIndex is a uniform-grid bucket index over element bounds. It is a
// coarse pre-filter: queries over-approximate at cell granularity and never
// miss an intersecting element. Built once per drag gesture (excluding the
// dragged element), read-only afterwards, discarded at gesture end.
type SpatialIndex struct {
	cellSize float32
	elems    []ElementBounds
	buckets  map[cellKey][]int // values index into elems
	bounds   geom.Rect         // union of all indexed bounds, valid when Len() > 0
}

// NewSpatialIndex creates an empty index. A non-positive cellSize falls back
// to DefaultCellSize.
func NewSpatialIndex(cellSize float32) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{cellSize: cellSize, buckets: map[cellKey][]int{}}
}

// CellSize returns the bucket size fixed at construction.
func (s *SpatialIndex) CellSize() float32 { return s.cellSize }

// Len returns the number of indexed elements.
func (s *SpatialIndex) Len() int { return len(s.elems) }

// Elements returns the indexed elements in insertion order.
func (s *SpatialIndex) Elements() []ElementBounds { return s.elems }

// Build replaces all indexed content. Hidden and below-minimum-size elements
// are skipped; degenerate geometry is normalized first, which collapses it
// to zero size and therefore also skips it. Every kept element is registered
// in each grid cell its bounding box overlaps. Empty input yields an empty
// index.
func (s *SpatialIndex) Build(elements []ElementBounds) {
	s.elems = s.elems[:0]
	s.buckets = map[cellKey][]int{}
	for _, e := range elements {
		e = e.Normalized()
		if !e.indexable() {
			continue
		}
		i := len(s.elems)
		if i == 0 {
			s.bounds = e.Rect()
		} else {
			s.bounds = s.bounds.Union(e.Rect())
		}
		s.elems = append(s.elems, e)
		c0x, c0y, c1x, c1y := s.cellRange(e.X, e.Y, e.W, e.H)
		for cy := c0y; cy <= c1y; cy++ {
			for cx := c0x; cx <= c1x; cx++ {
				k := cellKey{cx, cy}
				s.buckets[k] = append(s.buckets[k], i)
			}
		}
	}
}

// QueryRegion returns the de-duplicated elements registered in any bucket
// cell intersecting the query rectangle. The result may include elements
// whose exact bounds do not overlap the rectangle; callers refine with exact
// checks when precision matters. Order is deterministic (insertion order).
func (s *SpatialIndex) QueryRegion(x, y, w, h float32) []ElementBounds {
	if len(s.elems) == 0 {
		return nil
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	c0x, c0y, c1x, c1y := s.cellRange(x, y, w, h)
	seen := make([]bool, len(s.elems))
	var hit []int
	for cy := c0y; cy <= c1y; cy++ {
		for cx := c0x; cx <= c1x; cx++ {
			for _, i := range s.buckets[cellKey{cx, cy}] {
				if !seen[i] {
					seen[i] = true
					hit = append(hit, i)
				}
			}
		}
	}
	if len(hit) == 0 {
		return nil
	}
	// insertion order keeps downstream tie-breaking deterministic
	sortInts(hit)
	out := make([]ElementBounds, len(hit))
	for n, i := range hit {
		out[n] = s.elems[i]
	}
	return out
}

// Bounds returns the union of all indexed element bounds. ok is false for an
// empty index.
func (s *SpatialIndex) Bounds() (r geom.Rect, ok bool) {
	if len(s.elems) == 0 {
		return geom.Rect{}, false
	}
	return s.bounds, true
}

// QueryPoint is QueryRegion with a zero-size rectangle, useful for
// centerpoint lookups.
func (s *SpatialIndex) QueryPoint(x, y float32) []ElementBounds {
	return s.QueryRegion(x, y, 0, 0)
}

func (s *SpatialIndex) cellRange(x, y, w, h float32) (c0x, c0y, c1x, c1y int32) {
	c0x = int32(math.Floor(float64(x / s.cellSize)))
	c0y = int32(math.Floor(float64(y / s.cellSize)))
	c1x = int32(math.Floor(float64((x + w) / s.cellSize)))
	c1y = int32(math.Floor(float64((y + h) / s.cellSize)))
	return
}

// sortInts is a small insertion sort; query hit lists are short.
func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}
