/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package benchstore persists guide-computation benchmark runs to an embedded
// SQLite database so regressions show up across invocations, not just within
// one.
package benchstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	applog "guidekit/internal/log"
	"guidekit/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Run is one recorded benchmark execution.
type Run struct {
	ID             string
	At             time.Time
	SceneElements  int
	Frames         int
	AvgFrameMicros float64
	MaxFrameMicros float64
	Version        string
}

// Store wraps the embedded database.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open creates or opens the bench history database at path, enables WAL mode,
// and ensures the schema exists.
func Open(path string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("benchstore"), "open").With(
		slog.String("path", path),
	)
	if path == "" {
		return nil, errors.New("bench store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bench store dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("bench store ready")
	return &Store{db: db, log: applog.WithComponent("benchstore")}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id               TEXT PRIMARY KEY,
			at               TEXT NOT NULL,
			scene_elements   INTEGER NOT NULL,
			frames           INTEGER NOT NULL,
			avg_frame_us     REAL NOT NULL,
			max_frame_us     REAL NOT NULL,
			app_version      TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(at);`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES('schema', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
		fmt.Sprintf("%d", schemaVersion))
	return err
}

// Record inserts one run. A zero ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}
	if r.Version == "" {
		r.Version = version.String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id, at, scene_elements, frames, avg_frame_us, max_frame_us, app_version)
		 VALUES(?,?,?,?,?,?,?)`,
		r.ID, r.At.Format(time.RFC3339Nano), r.SceneElements, r.Frames,
		r.AvgFrameMicros, r.MaxFrameMicros, r.Version)
	if err != nil {
		return r, fmt.Errorf("record run: %w", err)
	}
	s.log.Debug("run recorded", slog.String("id", r.ID), slog.Int("frames", r.Frames))
	return r, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, scene_elements, frames, avg_frame_us, max_frame_us, app_version
		 FROM runs ORDER BY at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var r Run
		var at string
		if err := rows.Scan(&r.ID, &at, &r.SceneElements, &r.Frames,
			&r.AvgFrameMicros, &r.MaxFrameMicros, &r.Version); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			r.At = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
