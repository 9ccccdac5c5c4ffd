/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"guidekit/internal/guides"
	"guidekit/internal/scene"
)

// PDFOptions controls PDF export behavior. Units are points; the scene's
// canvas units map 1:1 onto the page.
type PDFOptions struct {
	IncludeGuides bool
	GapLabels     bool
}

// ScenePDF writes the scene as a single-page vector PDF sized to the dynamic
// content height. Guides are drawn on top: dashed for alignment, solid for
// distribution and spacing, with the measured gap as a small text label.
func ScenePDF(doc scene.Document, gs []guides.Guide, outPath string, opt PDFOptions) error {
	if doc.Page.Width <= 0 || doc.Page.Height <= 0 {
		return fmt.Errorf("scene page size is degenerate: %+v", doc.Page)
	}
	w := float64(doc.Page.Width)
	h := float64(contentHeight(doc))

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetTitle(doc.Name, false)
	pdf.SetFont("Helvetica", "", 8)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})

	// page break hairlines
	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.3)
	for y := float64(doc.Page.Height); y < h; y += float64(doc.Page.Height) {
		pdf.Line(0, y, w, y)
	}

	pdf.SetLineWidth(0.6)
	for _, e := range doc.Elements {
		if e.Hidden {
			continue
		}
		pdf.SetFillColor(217, 224, 235)
		pdf.SetDrawColor(64, 77, 97)
		pdf.Rect(float64(e.X), float64(e.Y), float64(e.W), float64(e.H), "FD")
	}

	if opt.IncludeGuides {
		for _, g := range gs {
			drawGuidePDF(pdf, g, opt.GapLabels)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawGuidePDF(pdf *gofpdf.Fpdf, g guides.Guide, labels bool) {
	switch g.Kind {
	case guides.GuideAlign:
		pdf.SetDrawColor(33, 150, 243)
		pdf.SetDashPattern([]float64{3, 2}, 0)
	case guides.GuideDistribute:
		pdf.SetDrawColor(233, 30, 99)
		pdf.SetDashPattern(nil, 0)
	case guides.GuideSpacing:
		pdf.SetDrawColor(76, 175, 80)
		pdf.SetDashPattern(nil, 0)
	default:
		return
	}
	pdf.SetLineWidth(0.5)

	var x1, y1, x2, y2 float64
	if g.Axis == guides.AxisX {
		x1, x2 = float64(g.Pos), float64(g.Pos)
		y1, y2 = float64(g.Span1), float64(g.Span2)
	} else {
		y1, y2 = float64(g.Pos), float64(g.Pos)
		x1, x2 = float64(g.Span1), float64(g.Span2)
	}
	pdf.Line(x1, y1, x2, y2)
	pdf.SetDashPattern(nil, 0)

	if labels && g.Gap > 0 {
		pdf.SetTextColor(64, 64, 64)
		pdf.Text((x1+x2)/2+3, (y1+y2)/2-3, formatGapLabel(g.Gap))
	}
}

func formatGapLabel(gap float32) string {
	return fmt.Sprintf("%.1f", gap)
}
