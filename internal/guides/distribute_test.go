/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import "testing"

func TestComputeGuides_DistributeEqualVerticalGaps(t *testing.T) {
	// three elements stacked 40 units apart; the moving one lands exactly
	// 40 units below the last
	idx := buildIndex(
		ElementBounds{ID: "A", X: 100, Y: 0, W: 50, H: 20},
		ElementBounds{ID: "B", X: 100, Y: 60, W: 50, H: 20},
		ElementBounds{ID: "C", X: 100, Y: 120, W: 50, H: 20},
	)
	moving := ElementBounds{ID: "M", W: 50, H: 20}

	res := ComputeGuides(moving, 100, 180, 1, idx, testCfg(), nil, nil, 842)
	g := findGuide(res.Guides, GuideDistribute, AxisY)
	if g == nil {
		t.Fatalf("expected a distribute guide, got %+v", res.Guides)
	}
	if g.Gap != 40 {
		t.Fatalf("expected measured gap 40, got %v", g.Gap)
	}
	// line sits in the middle of the moving element's gap
	if g.Pos != 160 {
		t.Fatalf("expected guide line at y=160, got %v", g.Pos)
	}
	if g.Span1 != 100 || g.Span2 != 150 {
		t.Fatalf("unexpected span %v..%v", g.Span1, g.Span2)
	}
}

func TestComputeGuides_SpacingMatchesEstablishedGap(t *testing.T) {
	// A and B establish a 40-unit gap; the moving element reproduces it
	// against the far-away C
	idx := buildIndex(
		ElementBounds{ID: "A", X: 100, Y: 0, W: 50, H: 20},
		ElementBounds{ID: "B", X: 100, Y: 60, W: 50, H: 20},
		ElementBounds{ID: "C", X: 100, Y: 300, W: 50, H: 20},
	)
	moving := ElementBounds{ID: "M", W: 50, H: 20}

	res := ComputeGuides(moving, 100, 360, 1, idx, testCfg(), nil, nil, 842)
	g := findGuide(res.Guides, GuideSpacing, AxisY)
	if g == nil {
		t.Fatalf("expected a spacing guide, got %+v", res.Guides)
	}
	if g.Gap != 40 {
		t.Fatalf("expected gap 40, got %v", g.Gap)
	}
}

func TestComputeGuides_UnequalGapsProduceNoSpacingGuide(t *testing.T) {
	idx := buildIndex(
		ElementBounds{ID: "A", X: 100, Y: 0, W: 50, H: 20},
		ElementBounds{ID: "B", X: 100, Y: 60, W: 50, H: 20}, // gap 40
	)
	moving := ElementBounds{ID: "M", W: 50, H: 20}

	// gap of 70 below B matches nothing
	res := ComputeGuides(moving, 100, 150, 1, idx, testCfg(), nil, nil, 842)
	if g := findGuide(res.Guides, GuideDistribute, AxisY); g != nil {
		t.Fatalf("unexpected distribute guide %+v", g)
	}
	if g := findGuide(res.Guides, GuideSpacing, AxisY); g != nil {
		t.Fatalf("unexpected spacing guide %+v", g)
	}
}

func TestComputeGuides_GapToleranceTwoUnits(t *testing.T) {
	// gaps of 40 and 41.5 count as equal (tolerance 2), 40 and 43 do not
	idx := buildIndex(
		ElementBounds{ID: "A", X: 100, Y: 0, W: 50, H: 20},
		ElementBounds{ID: "B", X: 100, Y: 60, W: 50, H: 20},
	)
	moving := ElementBounds{ID: "M", W: 50, H: 20}

	res := ComputeGuides(moving, 100, 121.5, 1, idx, Config{
		PageWidth: 595, PageHeight: 842, SnapThresholdPx: 8, HysteresisPx: 4, CellSize: 100,
	}, nil, nil, 842)
	if g := findGuide(res.Guides, GuideDistribute, AxisY); g == nil {
		t.Fatalf("gap within tolerance should distribute, got %+v", res.Guides)
	}

	res = ComputeGuides(moving, 100, 123, 1, idx, Config{
		PageWidth: 595, PageHeight: 842, SnapThresholdPx: 8, HysteresisPx: 4, CellSize: 100,
	}, nil, nil, 842)
	if g := findGuide(res.Guides, GuideDistribute, AxisY); g != nil {
		t.Fatalf("gap outside tolerance must not distribute, got %+v", g)
	}
}

func TestComputeGuides_HorizontalDistribute(t *testing.T) {
	// same relationship rotated: three elements in a row, 30 apart
	idx := buildIndex(
		ElementBounds{ID: "A", X: 0, Y: 100, W: 20, H: 50},
		ElementBounds{ID: "B", X: 50, Y: 100, W: 20, H: 50},
		ElementBounds{ID: "C", X: 100, Y: 100, W: 20, H: 50},
	)
	moving := ElementBounds{ID: "M", W: 20, H: 50}

	res := ComputeGuides(moving, 150, 100, 1, idx, testCfg(), nil, nil, 842)
	g := findGuide(res.Guides, GuideDistribute, AxisX)
	if g == nil {
		t.Fatalf("expected a horizontal distribute guide, got %+v", res.Guides)
	}
	if g.Gap != 30 {
		t.Fatalf("expected gap 30, got %v", g.Gap)
	}
}
