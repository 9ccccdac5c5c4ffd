/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func TestRectEdgesAndCenter(t *testing.T) {
	r := R(10, 20, 30, 40)
	if r.Left() != 10 || r.Right() != 40 || r.Top() != 20 || r.Bottom() != 60 {
		t.Fatalf("unexpected edges: %v %v %v %v", r.Left(), r.Right(), r.Top(), r.Bottom())
	}
	if c := r.Center(); c.X != 25 || c.Y != 40 {
		t.Fatalf("unexpected center %+v", c)
	}
}

func TestRectIntersects(t *testing.T) {
	a := R(0, 0, 10, 10)
	if !a.Intersects(R(5, 5, 10, 10)) {
		t.Fatalf("overlapping rects should intersect")
	}
	if !a.Intersects(R(10, 0, 5, 5)) {
		t.Fatalf("touching rects should intersect")
	}
	if a.Intersects(R(11, 0, 5, 5)) {
		t.Fatalf("separated rects should not intersect")
	}
}

func TestRectUnion(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(20, 5, 10, 10))
	if u != (Rect{X: 0, Y: 0, W: 30, H: 15}) {
		t.Fatalf("unexpected union %+v", u)
	}
}

func TestNormalizedHandlesNaNAndNegative(t *testing.T) {
	nan := float32(math.NaN())
	r := Rect{X: nan, Y: 5, W: -3, H: float32(math.Inf(1))}.Normalized()
	if r.X != 0 || r.Y != 5 || r.W != 0 || r.H != 0 {
		t.Fatalf("unexpected normalized rect %+v", r)
	}
}

func TestRoundToStep(t *testing.T) {
	if v := RoundToStep(98, 10); v != 100 {
		t.Fatalf("expected 100, got %v", v)
	}
	if v := RoundToStep(94.9, 10); v != 90 {
		t.Fatalf("expected 90, got %v", v)
	}
	if v := RoundToStep(42, 0); v != 42 {
		t.Fatalf("step<=0 must be identity, got %v", v)
	}
}
