/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package overlay rasterizes guide lines into a transparent RGBA layer the
// host composites over its canvas. All drawing happens in screen pixels;
// canvas units are converted through the viewport before any line is emitted.
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"guidekit/internal/guides"
)

// Viewport maps canvas units to overlay pixels: px = (canvas - Origin) * Zoom.
type Viewport struct {
	OriginX  float32
	OriginY  float32
	Zoom     float32
	WidthPx  int
	HeightPx int
}

// Style controls the overlay appearance. Colors follow the common editor
// convention: dashed blue for alignment, solid magenta for distribution,
// solid green for spacing.
type Style struct {
	AlignColor      color.RGBA
	DistributeColor color.RGBA
	SpacingColor    color.RGBA
	LineWidth       float64
	DashOn          float64
	DashOff         float64
	ShowGapLabels   bool
}

// DefaultStyle returns the stock appearance.
func DefaultStyle() Style {
	return Style{
		AlignColor:      color.RGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff},
		DistributeColor: color.RGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0xff},
		SpacingColor:    color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
		LineWidth:       1,
		DashOn:          4,
		DashOff:         3,
		ShowGapLabels:   true,
	}
}

// Render draws the guides into a fresh transparent layer of the viewport's
// pixel size. Guides entirely outside the viewport are skipped. The output is
// deterministic for identical inputs.
func Render(gs []guides.Guide, vp Viewport, style Style) *image.RGBA {
	if vp.WidthPx <= 0 || vp.HeightPx <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	if vp.Zoom <= 0 || math.IsNaN(float64(vp.Zoom)) || math.IsInf(float64(vp.Zoom), 0) {
		vp.Zoom = 1
	}

	dc := gg.NewContext(vp.WidthPx, vp.HeightPx)
	dc.Clear()
	dc.SetLineWidth(style.LineWidth)

	type label struct {
		text string
		x, y int
		col  color.RGBA
	}
	var labels []label

	for _, g := range gs {
		x1, y1, x2, y2, ok := lineFor(g, vp)
		if !ok {
			continue
		}
		switch g.Kind {
		case guides.GuideAlign:
			dc.SetColor(style.AlignColor)
			dc.SetDash(style.DashOn, style.DashOff)
		case guides.GuideDistribute:
			dc.SetColor(style.DistributeColor)
			dc.SetDash()
		case guides.GuideSpacing:
			dc.SetColor(style.SpacingColor)
			dc.SetDash()
		default:
			continue
		}
		dc.DrawLine(x1, y1, x2, y2)
		_ = dc.Stroke()

		if style.ShowGapLabels && g.Gap > 0 {
			col := style.DistributeColor
			if g.Kind == guides.GuideSpacing {
				col = style.SpacingColor
			}
			labels = append(labels, label{
				text: formatGap(g.Gap),
				x:    int((x1+x2)/2) + 4,
				y:    int((y1+y2)/2) - 4,
				col:  col,
			})
		}
	}

	img := toRGBA(dc.Image())
	for _, l := range labels {
		drawLabel(img, l.text, l.x, l.y, l.col)
	}
	return img
}

// lineFor converts one guide to a pixel segment, reporting false when the
// segment cannot intersect the viewport.
func lineFor(g guides.Guide, vp Viewport) (x1, y1, x2, y2 float64, ok bool) {
	px := func(v float32) float64 { return float64((v - vp.OriginX) * vp.Zoom) }
	py := func(v float32) float64 { return float64((v - vp.OriginY) * vp.Zoom) }

	if g.Axis == guides.AxisX {
		x1, x2 = px(g.Pos), px(g.Pos)
		y1, y2 = py(g.Span1), py(g.Span2)
	} else {
		y1, y2 = py(g.Pos), py(g.Pos)
		x1, x2 = px(g.Span1), px(g.Span2)
	}
	w, h := float64(vp.WidthPx), float64(vp.HeightPx)
	if math.Max(x1, x2) < 0 || math.Min(x1, x2) > w {
		return 0, 0, 0, 0, false
	}
	if math.Max(y1, y2) < 0 || math.Min(y1, y2) > h {
		return 0, 0, 0, 0, false
	}
	return x1, y1, x2, y2, true
}

// formatGap renders the measured gap with at most one decimal, dropping ".0".
func formatGap(gap float32) string {
	v := math.Round(float64(gap)*10) / 10
	if v == math.Trunc(v) {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// drawLabel stamps the gap text using a fixed bitmap face so output never
// depends on system fonts.
func drawLabel(img *image.RGBA, s string, x, y int, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
