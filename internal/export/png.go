/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders scenes with their guide overlays to PNG and PDF for
// debugging snap behavior outside a live canvas.
package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"guidekit/internal/guides"
	"guidekit/internal/overlay"
	"guidekit/internal/scene"
)

// PNGOptions controls raster export.
type PNGOptions struct {
	Scale float32 // pixels per canvas unit, default 1
	Style overlay.Style
}

// ScenePNG draws the scene's elements plus the guide overlay and writes a
// PNG. The image height grows past the page when elements extend below it.
func ScenePNG(doc scene.Document, gs []guides.Guide, outPath string, opt PNGOptions) error {
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	canvasH := contentHeight(doc)
	w := int(math.Ceil(float64(doc.Page.Width * scale)))
	h := int(math.Ceil(float64(canvasH * scale)))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("scene has no drawable area (%dx%d)", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill background: %w", err)
	}

	// page break hairlines
	dc.SetRGBA(0.7, 0.7, 0.7, 1)
	dc.SetLineWidth(1)
	for y := doc.Page.Height; y < canvasH; y += doc.Page.Height {
		py := float64(y * scale)
		dc.DrawLine(0, py, float64(w), py)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke page break: %w", err)
		}
	}

	for _, e := range doc.Elements {
		if e.Hidden {
			continue
		}
		x, y := float64(e.X*scale), float64(e.Y*scale)
		ww, hh := float64(e.W*scale), float64(e.H*scale)
		dc.SetRGBA(0.85, 0.88, 0.92, 1)
		dc.DrawRectangle(x, y, ww, hh)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill element %s: %w", e.ID, err)
		}
		dc.SetRGBA(0.25, 0.3, 0.38, 1)
		dc.DrawRectangle(x, y, ww, hh)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke element %s: %w", e.ID, err)
		}
	}

	base := toDrawable(dc.Image())
	layer := overlay.Render(gs, overlay.Viewport{Zoom: scale, WidthPx: w, HeightPx: h}, opt.Style)
	draw.Draw(base, base.Bounds(), layer, image.Point{}, draw.Over)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, base); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// contentHeight returns the dynamic canvas height: at least one page, grown
// to cover the lowest element.
func contentHeight(doc scene.Document) float32 {
	h := doc.Page.Height
	for _, e := range doc.Elements {
		if bottom := e.Y + e.H; bottom > h {
			h = bottom
		}
	}
	return h
}

func toDrawable(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
