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
	"strconv"

	"guidekit/internal/geom"
)

// GuideKind distinguishes the rendered guide styles.
type GuideKind string

const (
	GuideAlign      GuideKind = "align"
	GuideDistribute GuideKind = "distribute"
	GuideSpacing    GuideKind = "spacing"
)

// Axis identifies the snapping axis of a guide or snap decision.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Guide describes one detected relationship for rendering. Pos is the
// canvas-unit coordinate of the guide line; Span1/Span2 is the perpendicular
// extent the line should cover so it does not cross the whole page.
// For deterministic output all values are rounded to 3 decimal places.
type Guide struct {
	Kind  GuideKind
	Axis  Axis
	Pos   float32
	Span1 float32
	Span2 float32
	// Gap carries the measured gap in canvas units for distribute/spacing
	// guides, zero otherwise.
	Gap float32
}

// LastSnap is the per-axis memory of the previous frame's snap decision,
// used only for hysteresis. Key is opaque to callers. A stale Key (target
// removed mid-drag) is simply ignored on the next frame.
type LastSnap struct {
	Key string
	Pos float32
}

// Result is the outcome of one frame's guide computation. SnapKeyX/SnapKeyY
// are empty when the axis did not snap; the host feeds them back as the next
// frame's LastSnap.
type Result struct {
	CorrectedX float32
	CorrectedY float32
	Guides     []Guide
	SnapKeyX   string
	SnapKeyY   string
}

// candidate is one (moving-edge, target) pair on a single axis.
type candidate struct {
	key       string
	target    float32 // coordinate the moving edge lands on
	corrected float32 // element origin after snapping this pair
	dist      float32
	center    bool      // center-to-center alignment
	centroid  float32   // tie-break: centroid distance to the moving element
	id        string    // target identifier ("page" for page targets)
	rect      geom.Rect // target bounds; zero for page targets
	hasRect   bool
}

// ComputeGuides decides, for one pointer-move frame, whether the moving
// element's raw position should be overridden per axis and which guide lines
// explain the decision. It is a pure function: all history arrives through
// lastX/lastY and leaves through the returned snap keys.
//
// pageHeight is the current dynamic canvas height; positive multiples of
// cfg.PageHeight up to (and one past) it are Y alignment candidates.
func ComputeGuides(moving ElementBounds, rawX, rawY, zoom float32, idx *SpatialIndex, cfg Config, lastX, lastY *LastSnap, pageHeight float32) Result {
	if zoom <= 0 || math.IsNaN(float64(zoom)) || math.IsInf(float64(zoom), 0) {
		zoom = 1
	}
	moving = moving.Normalized()
	rawX = finite(rawX)
	rawY = finite(rawY)
	pageHeight = finite(pageHeight)

	thr := cfg.SnapThresholdPx / zoom
	inflated := (cfg.SnapThresholdPx + cfg.HysteresisPx) / zoom

	neighborsX := axisBand(idx, AxisX, rawX-inflated, rawX+moving.W+inflated)
	neighborsY := axisBand(idx, AxisY, rawY-inflated, rawY+moving.H+inflated)

	candX := axisCandidates(AxisX, moving, rawX, rawY, neighborsX, cfg, pageHeight, inflated)
	candY := axisCandidates(AxisY, moving, rawX, rawY, neighborsY, cfg, pageHeight, inflated)

	correctedX, keyX, chosenX := pickCandidate(candX, rawX, thr, inflated, lastX, cfg.GridSize)
	correctedY, keyY, chosenY := pickCandidate(candY, rawY, thr, inflated, lastY, cfg.GridSize)

	res := Result{
		CorrectedX: geom.FloatRound(correctedX, 3),
		CorrectedY: geom.FloatRound(correctedY, 3),
		SnapKeyX:   keyX,
		SnapKeyY:   keyY,
	}

	movedRect := geom.R(res.CorrectedX, res.CorrectedY, moving.W, moving.H)
	if chosenX != nil {
		res.Guides = append(res.Guides, alignGuide(AxisX, chosenX, movedRect))
	}
	if chosenY != nil {
		res.Guides = append(res.Guides, alignGuide(AxisY, chosenY, movedRect))
	}
	if g := detectSpacing(AxisX, movedRect, neighborsY); g != nil {
		res.Guides = append(res.Guides, *g)
	}
	if g := detectSpacing(AxisY, movedRect, neighborsX); g != nil {
		res.Guides = append(res.Guides, *g)
	}
	return res
}

// axisBand queries the index for all elements whose cells intersect the
// band [lo,hi] on the given axis, across the index's full perpendicular
// extent. The band width derives from the snap threshold; candidates far
// away along the snapping axis can never pass the distance filter anyway.
func axisBand(idx *SpatialIndex, axis Axis, lo, hi float32) []ElementBounds {
	if idx == nil {
		return nil
	}
	b, ok := idx.Bounds()
	if !ok {
		return nil
	}
	if axis == AxisX {
		return idx.QueryRegion(lo, b.Y, hi-lo, b.H)
	}
	return idx.QueryRegion(b.X, lo, b.W, hi-lo)
}

// axisCandidates generates every (moving-edge, target) pair within the
// hysteresis-inflated threshold. Edge pairs follow the usual editor set:
// like edges, abutting opposite edges, and center-to-center.
func axisCandidates(axis Axis, moving ElementBounds, rawX, rawY float32, neighbors []ElementBounds, cfg Config, pageHeight, inflated float32) []candidate {
	var (
		extent  float32 // moving size along the axis
		raw     float32
		mcx     = rawX + moving.W/2
		mcy     = rawY + moving.H/2
		movingC = geom.Pt{X: mcx, Y: mcy}
	)
	if axis == AxisX {
		extent, raw = moving.W, rawX
	} else {
		extent, raw = moving.H, rawY
	}

	type edge struct {
		name   string
		off    float32
		center bool
	}
	edges := []edge{
		{"lo", 0, false},
		{"hi", extent, false},
		{"c", extent / 2, true},
	}

	var cands []candidate
	add := func(id string, targetName string, e edge, target float32, rect geom.Rect, hasRect bool) {
		if e.center != (targetName == "c") {
			return // centers only pair with centers
		}
		d := float32(math.Abs(float64(raw + e.off - target)))
		if d > inflated {
			return
		}
		centroid := float32(math.MaxFloat32)
		if hasRect {
			centroid = geom.Dist(movingC, rect.Center())
		}
		cands = append(cands, candidate{
			key:       id + ":" + targetName + ">" + e.name,
			target:    target,
			corrected: target - e.off,
			dist:      d,
			center:    e.center,
			centroid:  centroid,
			id:        id,
			rect:      rect,
			hasRect:   hasRect,
		})
	}

	for _, n := range neighbors {
		if n.ID == moving.ID {
			continue
		}
		r := n.Rect()
		var tLo, tHi, tC float32
		if axis == AxisX {
			tLo, tHi, tC = r.Left(), r.Right(), r.CenterX()
		} else {
			tLo, tHi, tC = r.Top(), r.Bottom(), r.CenterY()
		}
		for _, e := range edges {
			if e.center {
				add(n.ID, "c", e, tC, r, true)
				continue
			}
			add(n.ID, "lo", e, tLo, r, true)
			add(n.ID, "hi", e, tHi, r, true)
		}
	}

	// Page targets: edges and center on X; page-height multiples on Y
	// (k=0 is the page top, k=1 the first page break, and so on).
	if axis == AxisX && cfg.PageWidth > 0 {
		for _, e := range edges {
			if e.center {
				add("page", "c", e, cfg.PageWidth/2, geom.Rect{}, false)
				continue
			}
			add("page", "lo", e, 0, geom.Rect{}, false)
			add("page", "hi", e, cfg.PageWidth, geom.Rect{}, false)
		}
	}
	if axis == AxisY && cfg.PageHeight > 0 {
		limit := max(pageHeight, cfg.PageHeight)
		maxK := int(math.Ceil(float64(limit/cfg.PageHeight))) + 1
		for k := 0; k <= maxK; k++ {
			target := float32(k) * cfg.PageHeight
			for _, e := range edges {
				if e.center {
					continue
				}
				add("page", pageMultipleName(k), e, target, geom.Rect{}, false)
			}
		}
	}
	return cands
}

func pageMultipleName(k int) string {
	return "h" + strconv.Itoa(k)
}

// pickCandidate selects the axis winner. Among candidates within the plain
// threshold the minimum distance wins, with ties broken center-over-edge,
// then nearer centroid, then lowest target id, then key. If the previous
// frame's key is still within the hysteresis-inflated threshold it is kept
// even when a different candidate is now marginally closer. With no winner
// the raw coordinate is rounded to the grid.
func pickCandidate(cands []candidate, raw, thr, inflated float32, last *LastSnap, gridSize float32) (corrected float32, key string, chosen *candidate) {
	var best *candidate
	for i := range cands {
		c := &cands[i]
		if c.dist > thr {
			continue
		}
		if best == nil || better(c, best) {
			best = c
		}
	}
	if last != nil && last.Key != "" {
		for i := range cands {
			c := &cands[i]
			if c.key != last.Key {
				continue
			}
			if c.dist <= inflated && (best == nil || best.key != c.key) {
				best = c
			}
			break
		}
		// key not found: target vanished mid-drag, treated as no history
	}
	if best == nil {
		return geom.RoundToStep(raw, gridSize), "", nil
	}
	return best.corrected, best.key, best
}

func better(a, b *candidate) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.center != b.center {
		return a.center
	}
	if a.centroid != b.centroid {
		return a.centroid < b.centroid
	}
	if a.id != b.id {
		return a.id < b.id
	}
	return a.key < b.key
}

// alignGuide builds the align guide for a chosen candidate: the line sits at
// the target coordinate and spans the perpendicular union of the moving
// element (at its corrected position) and the matched target.
func alignGuide(axis Axis, c *candidate, moved geom.Rect) Guide {
	span := moved
	if c.hasRect {
		span = span.Union(c.rect)
	}
	g := Guide{Kind: GuideAlign, Axis: axis, Pos: geom.FloatRound(c.target, 3)}
	if axis == AxisX {
		g.Span1, g.Span2 = geom.FloatRound(span.Top(), 3), geom.FloatRound(span.Bottom(), 3)
	} else {
		g.Span1, g.Span2 = geom.FloatRound(span.Left(), 3), geom.FloatRound(span.Right(), 3)
	}
	return g
}

func finite(v float32) float32 {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	return v
}
