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
	"sort"

	"guidekit/internal/geom"
)

// detectSpacing looks for equal-gap relationships along the given axis
// between the moving element (at its corrected position) and the neighbors
// sharing its perpendicular band. Gaps equal within SpacingTol count as
// equal. The result is at most one guide:
//
//   - distribute: the moving element extends a run of 2+ equal gaps
//     (3+ elements evenly spaced),
//   - spacing: the moving element's gap to its adjacent neighbor matches a
//     gap already established between two other neighbors in the band.
//
// A zero-size moving element produces nothing; it can still edge-align, but
// a gap to a degenerate rect is not a meaningful spacing cue.
func detectSpacing(axis Axis, moved geom.Rect, neighbors []ElementBounds) *Guide {
	if moved.W <= 0 || moved.H <= 0 {
		return nil
	}

	// exact perpendicular overlap filter on the over-approximated band
	var rects []geom.Rect
	for _, n := range neighbors {
		r := n.Rect()
		if axis == AxisY {
			if r.Left() < moved.Right() && moved.Left() < r.Right() {
				rects = append(rects, r)
			}
		} else {
			if r.Top() < moved.Bottom() && moved.Top() < r.Bottom() {
				rects = append(rects, r)
			}
		}
	}
	if len(rects) < 2 {
		return nil
	}

	lo := func(r geom.Rect) float32 {
		if axis == AxisY {
			return r.Top()
		}
		return r.Left()
	}
	hi := func(r geom.Rect) float32 {
		if axis == AxisY {
			return r.Bottom()
		}
		return r.Right()
	}

	all := append(append([]geom.Rect(nil), rects...), moved)
	sort.Slice(all, func(i, j int) bool {
		if lo(all[i]) != lo(all[j]) {
			return lo(all[i]) < lo(all[j])
		}
		return hi(all[i]) < hi(all[j])
	})
	mi := -1
	for i, r := range all {
		if r == moved {
			mi = i
			break
		}
	}
	if mi < 0 {
		return nil
	}

	gap := func(i int) float32 { // gap between rect i and i+1, negative if overlapping
		return lo(all[i+1]) - hi(all[i])
	}
	eq := func(a, b float32) bool {
		return float32(math.Abs(float64(a-b))) <= SpacingTol
	}

	// pick the moving element's adjacent gap: prefer the side that forms the
	// longer equal run, checking the side before it first for determinism.
	type side struct {
		g     float32
		run   int // equal gaps in a row including this one
		after bool
	}
	var sides []side
	if mi > 0 {
		g := gap(mi - 1)
		if g > 0 {
			run := 1
			for i := mi - 2; i >= 0; i-- {
				if gv := gap(i); gv > 0 && eq(gv, g) {
					run++
				} else {
					break
				}
			}
			sides = append(sides, side{g, run, false})
		}
	}
	if mi < len(all)-1 {
		g := gap(mi)
		if g > 0 {
			run := 1
			for i := mi + 1; i < len(all)-1; i++ {
				if gv := gap(i); gv > 0 && eq(gv, g) {
					run++
				} else {
					break
				}
			}
			sides = append(sides, side{g, run, true})
		}
	}
	if len(sides) == 0 {
		return nil
	}
	best := sides[0]
	if len(sides) == 2 && sides[1].run > best.run {
		best = sides[1]
	}

	kind := GuideSpacing
	if best.run >= 2 {
		kind = GuideDistribute
	} else {
		// single gap: only meaningful if it matches a gap established
		// between two non-moving neighbors somewhere in the band
		matched := false
		for i := 0; i < len(all)-1; i++ {
			if i == mi || i+1 == mi {
				continue
			}
			if gv := gap(i); gv > 0 && eq(gv, best.g) {
				matched = true
				break
			}
		}
		if !matched {
			return nil
		}
	}

	// guide line sits in the middle of the moving element's adjacent gap
	var pos float32
	if best.after {
		pos = hi(all[mi]) + best.g/2
	} else {
		pos = lo(all[mi]) - best.g/2
	}

	span := all[0]
	for _, r := range all[1:] {
		span = span.Union(r)
	}
	g := Guide{Kind: kind, Axis: axis, Pos: geom.FloatRound(pos, 3), Gap: geom.FloatRound(best.g, 3)}
	if axis == AxisY {
		g.Span1, g.Span2 = geom.FloatRound(span.Left(), 3), geom.FloatRound(span.Right(), 3)
	} else {
		g.Span1, g.Span2 = geom.FloatRound(span.Top(), 3), geom.FloatRound(span.Bottom(), 3)
	}
	return &g
}
