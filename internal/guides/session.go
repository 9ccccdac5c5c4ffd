/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import (
	"log/slog"
	"time"

	applog "guidekit/internal/log"
	"guidekit/internal/telemetry"
)

// Session owns the per-gesture state the pure computation cannot: the
// spatial index built at drag start and the per-axis LastSnap memory mutated
// every frame. A host editor creates one Session per drag gesture; all its
// methods are for single-goroutine use from the UI loop.
type Session struct {
	cfg        Config
	idx        *SpatialIndex
	moving     ElementBounds
	pageHeight float32
	lastX      *LastSnap
	lastY      *LastSnap

	frames  int
	compute time.Duration
	log     *slog.Logger
}

// NewSession creates an idle session with the given tuning.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg, log: applog.WithComponent("guides")}
}

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool { return s.idx != nil }

// Begin starts a gesture: the index is rebuilt from the given snapshot with
// the dragged element excluded, and snap memory is cleared. elements is the
// host's already-filtered, de-duplicated ElementBounds snapshot.
func (s *Session) Begin(elements []ElementBounds, movingID string, pageHeight float32) {
	rest := make([]ElementBounds, 0, len(elements))
	for _, e := range elements {
		if e.ID == movingID {
			s.moving = e
			continue
		}
		rest = append(rest, e)
	}
	s.idx = NewSpatialIndex(s.cfg.CellSize)
	s.idx.Build(rest)
	s.pageHeight = pageHeight
	s.lastX, s.lastY = nil, nil
	s.frames = 0
	s.compute = 0
	s.log.Debug("drag begin",
		slog.String("moving", movingID),
		slog.Int("indexed", s.idx.Len()))
}

// Move computes one frame. The returned Result carries the corrected
// position for the host to apply and the guides to render; snap memory is
// advanced internally.
func (s *Session) Move(rawX, rawY, zoom float32) Result {
	if s.idx == nil {
		// gesture never started; degrade to a bare grid computation
		s.idx = NewSpatialIndex(s.cfg.CellSize)
	}
	start := time.Now()
	res := ComputeGuides(s.moving, rawX, rawY, zoom, s.idx, s.cfg, s.lastX, s.lastY, s.pageHeight)
	s.compute += time.Since(start)
	s.frames++

	s.lastX = snapMemory(res.SnapKeyX, res.CorrectedX)
	s.lastY = snapMemory(res.SnapKeyY, res.CorrectedY)
	return res
}

// End discards the index and snap memory and emits an opt-in summary event.
func (s *Session) End() {
	if s.idx == nil {
		return
	}
	if s.frames > 0 {
		avg := s.compute / time.Duration(s.frames)
		s.log.Debug("drag end",
			slog.Int("frames", s.frames),
			slog.Duration("avg_compute", avg))
		telemetry.Event("drag_session", map[string]any{
			"frames":         s.frames,
			"indexed":        s.idx.Len(),
			"avg_compute_us": avg.Microseconds(),
		})
	}
	s.idx = nil
	s.lastX, s.lastY = nil, nil
}

func snapMemory(key string, pos float32) *LastSnap {
	if key == "" {
		return nil
	}
	return &LastSnap{Key: key, Pos: pos}
}
