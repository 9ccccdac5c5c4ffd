/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package guides implements the alignment-guide and snapping engine of an
// interactive 2D canvas editor: a spatial hash index over element bounds, a
// per-frame guide/snap computation with hysteresis, and the drag-session
// glue that owns both for the duration of a gesture. All coordinates are in
// canvas units; screen-pixel thresholds are converted by the current zoom.
package guides

import "guidekit/internal/geom"

// MinTargetSize is the smallest width/height (canvas units) an element must
// have to be indexed. Smaller elements cannot act as meaningful alignment
// targets and are skipped during Build.
const MinTargetSize = 5

// ElementBounds describes one on-canvas item for alignment purposes.
// Translation from the host's object model (and filtering of host-specific
// roles such as backgrounds or existing guides) happens before construction;
// the engine only ever sees this clean form.
type ElementBounds struct {
	ID     string
	X, Y   float32 // top-left, canvas units
	W, H   float32
	Hidden bool
	IsText bool // bookkeeping only; baselines are not modeled
}

// Rect returns the element's bounding rectangle.
func (e ElementBounds) Rect() geom.Rect { return geom.R(e.X, e.Y, e.W, e.H) }

// Normalized returns a copy with degenerate geometry (NaN, infinite,
// negative size) collapsed per geom.Rect.Normalized.
func (e ElementBounds) Normalized() ElementBounds {
	r := e.Rect().Normalized()
	e.X, e.Y, e.W, e.H = r.X, r.Y, r.W, r.H
	return e
}

// indexable reports whether the (already normalized) element may enter the
// spatial index.
func (e ElementBounds) indexable() bool {
	return !e.Hidden && e.W >= MinTargetSize && e.H >= MinTargetSize
}
