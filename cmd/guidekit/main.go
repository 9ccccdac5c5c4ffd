/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"guidekit/internal/benchstore"
	"guidekit/internal/config"
	"guidekit/internal/crash"
	"guidekit/internal/export"
	"guidekit/internal/guides"
	applog "guidekit/internal/log"
	"guidekit/internal/overlay"
	"guidekit/internal/scene"
	"guidekit/internal/telemetry"
	"guidekit/internal/ui"
	"guidekit/internal/version"
)

func usage() {
	fmt.Println("GuideKit — alignment guide and snapping engine")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  guidekit version|-v|--version                     Show version")
	fmt.Println("  guidekit gen <out.json> [count] [seed]            Generate a random scene")
	fmt.Println("  guidekit render <scene.json> <out.png> [id x y]   Render a scene; optionally drag element <id> to (x, y) and show guides")
	fmt.Println("  guidekit export-pdf <scene.json> <out.pdf> [id x y]  Same as render, as a vector PDF")
	fmt.Println("  guidekit bench [count] [frames]                   Time guide computation and store the run")
	fmt.Println("  guidekit demo [scene.json]                        Launch the interactive demo (build with -tags fyne)")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("GuideKit — alignment guide and snapping engine")
			fmt.Println(version.String())
			return
		case "gen":
			cmdGen(l, args[2:])
			return
		case "render":
			cmdRender(l, args[2:])
			return
		case "export-pdf":
			cmdExportPDF(l, args[2:])
			return
		case "bench":
			cmdBench(l, args[2:])
			return
		case "demo":
			var path string
			if len(args) >= 3 {
				path = args[2]
			}
			if err := ui.Run(path); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}
	usage()
}

func fatal(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func cmdGen(l *slog.Logger, args []string) {
	if len(args) < 1 {
		fmt.Println("gen requires <out.json>")
		usage()
		os.Exit(2)
	}
	count := 20
	seed := int64(1)
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			count = n
		}
	}
	if len(args) >= 3 {
		if n, err := strconv.ParseInt(args[2], 10, 64); err == nil {
			seed = n
		}
	}
	cfg := mustConfig(l)
	doc := scene.Generate(count, seed, scene.Page{Width: cfg.Guides.PageWidth, Height: cfg.Guides.PageHeight})
	if err := scene.Save(args[0], doc); err != nil {
		fatal(l, "gen failed", err)
	}
	fmt.Printf("Wrote %s (%d elements)\n", args[0], len(doc.Elements))
}

// dragResult loads the scene and, when a move is requested, runs one drag
// frame to produce corrected coordinates and guides.
func dragResult(l *slog.Logger, scenePath string, move []string, cfg config.AppConfig) (scene.Document, []guides.Guide) {
	doc, err := scene.Load(scenePath)
	if err != nil {
		fatal(l, "load scene failed", err)
	}
	if len(move) < 3 {
		return doc, nil
	}
	id := move[0]
	rawX, errX := strconv.ParseFloat(move[1], 32)
	rawY, errY := strconv.ParseFloat(move[2], 32)
	if errX != nil || errY != nil {
		fatal(l, "bad move coordinates", fmt.Errorf("%q %q are not numbers", move[1], move[2]))
	}
	el, ok := doc.Find(id)
	if !ok {
		fatal(l, "bad move target", fmt.Errorf("no element %q in scene", id))
	}

	s := guides.NewSession(cfg.Guides.SnapConfig())
	s.Begin(doc.Bounds(), id, contentHeight(doc))
	res := s.Move(float32(rawX), float32(rawY), 1)
	s.End()

	for i := range doc.Elements {
		if doc.Elements[i].ID == id {
			doc.Elements[i].X = res.CorrectedX
			doc.Elements[i].Y = res.CorrectedY
		}
	}
	fmt.Printf("Moved %s: raw (%.1f, %.1f) -> snapped (%.1f, %.1f), %d guide(s)\n",
		el.ID, rawX, rawY, res.CorrectedX, res.CorrectedY, len(res.Guides))
	return doc, res.Guides
}

func cmdRender(l *slog.Logger, args []string) {
	if len(args) < 2 {
		fmt.Println("render requires <scene.json> and <out.png>")
		usage()
		os.Exit(2)
	}
	cfg := mustConfig(l)
	doc, gs := dragResult(l, args[0], args[2:], cfg)
	err := export.ScenePNG(doc, gs, args[1], export.PNGOptions{Scale: 1, Style: overlay.DefaultStyle()})
	if err != nil {
		fatal(l, "render failed", err)
	}
	fmt.Println("Wrote", args[1])
}

func cmdExportPDF(l *slog.Logger, args []string) {
	if len(args) < 2 {
		fmt.Println("export-pdf requires <scene.json> and <out.pdf>")
		usage()
		os.Exit(2)
	}
	cfg := mustConfig(l)
	doc, gs := dragResult(l, args[0], args[2:], cfg)
	err := export.ScenePDF(doc, gs, args[1], export.PDFOptions{IncludeGuides: true, GapLabels: true})
	if err != nil {
		fatal(l, "export-pdf failed", err)
	}
	fmt.Println("Wrote", args[1])
}

func cmdBench(l *slog.Logger, args []string) {
	count := 500
	frames := 1000
	if len(args) >= 1 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 1 {
			count = n
		}
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			frames = n
		}
	}
	cfg := mustConfig(l)
	snapCfg := cfg.Guides.SnapConfig()
	doc := scene.Generate(count, 42, scene.Page{Width: cfg.Guides.PageWidth, Height: cfg.Guides.PageHeight})
	movingID := doc.Elements[0].ID

	s := guides.NewSession(snapCfg)
	s.Begin(doc.Bounds(), movingID, contentHeight(doc))

	var total, worst time.Duration
	for i := 0; i < frames; i++ {
		x := float32(i%int(cfg.Guides.PageWidth)) + float32(i)*0.25
		y := float32(i % int(cfg.Guides.PageHeight))
		start := time.Now()
		s.Move(x, y, 1)
		d := time.Since(start)
		total += d
		if d > worst {
			worst = d
		}
	}
	s.End()

	avgUS := float64(total.Microseconds()) / float64(frames)
	maxUS := float64(worst.Microseconds())
	fmt.Printf("%d elements, %d frames: avg %.1fµs, max %.1fµs per frame\n", count, frames, avgUS, maxUS)
	telemetry.Event("bench", map[string]any{"elements": count, "frames": frames})

	store, err := benchstore.Open(benchDBPath(l))
	if err != nil {
		fatal(l, "open bench store failed", err)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.Record(ctx, benchstore.Run{
		SceneElements:  count,
		Frames:         frames,
		AvgFrameMicros: avgUS,
		MaxFrameMicros: maxUS,
	}); err != nil {
		fatal(l, "record bench run failed", err)
	}

	runs, err := store.Recent(ctx, 5)
	if err != nil {
		fatal(l, "load bench history failed", err)
	}
	fmt.Println("Recent runs:")
	for _, r := range runs {
		fmt.Printf("  %s  %5d el  %5d fr  avg %7.1fµs  max %7.1fµs  (%s)\n",
			r.At.Format("2006-01-02 15:04"), r.SceneElements, r.Frames,
			r.AvgFrameMicros, r.MaxFrameMicros, r.Version)
	}
}

func benchDBPath(l *slog.Logger) string {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		l.Warn("config path unavailable, using temp dir", slog.Any("err", err))
		return filepath.Join(os.TempDir(), "guidekit-bench.sqlite")
	}
	return filepath.Join(filepath.Dir(cfgPath), "bench.sqlite")
}

func mustConfig(l *slog.Logger) config.AppConfig {
	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		return config.Defaults()
	}
	return cfg
}

func contentHeight(doc scene.Document) float32 {
	h := doc.Page.Height
	for _, e := range doc.Elements {
		if bottom := e.Y + e.H; bottom > h {
			h = bottom
		}
	}
	return h
}
