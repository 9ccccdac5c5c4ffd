//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/gg"

	"guidekit/internal/config"
	"guidekit/internal/crash"
	"guidekit/internal/guides"
	applog "guidekit/internal/log"
	"guidekit/internal/overlay"
	"guidekit/internal/scene"
	"guidekit/internal/version"
)

// Run starts the Fyne-based snap demo: arrow keys drag the selected element
// with live guides, Tab cycles the selection, Escape drops the drag.
func Run(scenePath string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting demo UI")
	defer crash.Recover()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	var doc scene.Document
	if scenePath != "" {
		doc, err = scene.Load(scenePath)
		if err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
	} else {
		doc = scene.Generate(12, 1, scene.Page{Width: cfg.Guides.PageWidth, Height: cfg.Guides.PageHeight})
	}
	if len(doc.Elements) == 0 {
		return fmt.Errorf("scene has no elements")
	}

	fyneApp := app.NewWithID("guidekit")
	w := fyneApp.NewWindow("GuideKit Demo — " + version.String())

	state := &demoState{
		doc:     doc,
		cfg:     cfg.Guides.SnapConfig(),
		session: guides.NewSession(cfg.Guides.SnapConfig()),
	}

	img := canvas.NewImageFromImage(state.render(nil))
	img.FillMode = canvas.ImageFillOriginal
	status := widget.NewLabel("Tab: select  Arrows: drag  Esc: release")

	refresh := func(res *guides.Result) {
		img.Image = state.render(res)
		img.Refresh()
		sel := state.doc.Elements[state.selected]
		status.SetText(fmt.Sprintf("element %s at (%.1f, %.1f)", sel.ID, sel.X, sel.Y))
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyTab:
			state.endDrag()
			state.selected = (state.selected + 1) % len(state.doc.Elements)
			refresh(nil)
		case fyne.KeyEscape:
			state.endDrag()
			refresh(nil)
		case fyne.KeyUp:
			refresh(state.nudge(0, -1))
		case fyne.KeyDown:
			refresh(state.nudge(0, 1))
		case fyne.KeyLeft:
			refresh(state.nudge(-1, 0))
		case fyne.KeyRight:
			refresh(state.nudge(1, 0))
		}
	})

	w.SetContent(container.NewBorder(nil, status, nil, nil, img))
	w.Resize(fyne.NewSize(cfg.Guides.PageWidth+40, cfg.Guides.PageHeight/2))
	w.ShowAndRun()
	return nil
}

type demoState struct {
	doc      scene.Document
	cfg      guides.Config
	session  *guides.Session
	selected int
	dragging bool
	rawX     float32
	rawY     float32
}

func (s *demoState) nudge(dx, dy float32) *guides.Result {
	el := &s.doc.Elements[s.selected]
	if !s.dragging {
		s.dragging = true
		s.rawX, s.rawY = el.X, el.Y
		s.session.Begin(s.doc.Bounds(), el.ID, s.contentHeight())
	}
	s.rawX += dx
	s.rawY += dy
	res := s.session.Move(s.rawX, s.rawY, 1)
	el.X, el.Y = res.CorrectedX, res.CorrectedY
	return &res
}

func (s *demoState) endDrag() {
	if s.dragging {
		s.session.End()
		s.dragging = false
	}
}

func (s *demoState) contentHeight() float32 {
	h := s.doc.Page.Height
	for _, e := range s.doc.Elements {
		if bottom := e.Y + e.H; bottom > h {
			h = bottom
		}
	}
	return h
}

// render draws the scene plus the current guides into a fresh frame.
func (s *demoState) render(res *guides.Result) image.Image {
	w := int(s.doc.Page.Width)
	h := int(s.contentHeight())
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	_ = dc.Fill()

	for i, e := range s.doc.Elements {
		if e.Hidden {
			continue
		}
		if i == s.selected {
			dc.SetRGBA(0.75, 0.85, 1, 1)
		} else {
			dc.SetRGBA(0.85, 0.88, 0.92, 1)
		}
		dc.DrawRectangle(float64(e.X), float64(e.Y), float64(e.W), float64(e.H))
		_ = dc.Fill()
		dc.SetRGBA(0.25, 0.3, 0.38, 1)
		dc.DrawRectangle(float64(e.X), float64(e.Y), float64(e.W), float64(e.H))
		_ = dc.Stroke()
	}

	frame := toRGBA(dc.Image())
	if res != nil && len(res.Guides) > 0 {
		layer := overlay.Render(res.Guides, overlay.Viewport{Zoom: 1, WidthPx: w, HeightPx: h}, overlay.DefaultStyle())
		draw.Draw(frame, frame.Bounds(), layer, image.Point{}, draw.Over)
	}
	return frame
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
