/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigVersion != 1 {
		t.Fatalf("config_version = %d, want 1", cfg.ConfigVersion)
	}
	if cfg.Guides.SnapThresholdPx != 8 || cfg.Guides.HysteresisPx != 4 {
		t.Fatalf("snap defaults wrong: %+v", cfg.Guides)
	}
	if cfg.Guides.PageWidth != 595 || cfg.Guides.PageHeight != 842 {
		t.Fatalf("page defaults wrong: %+v", cfg.Guides)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("logging defaults wrong: %+v", cfg.Logging)
	}
}

func TestMergeInto_FileOverridesOnlySetFields(t *testing.T) {
	cfg := Defaults()
	var fileCfg AppConfig
	data := []byte("guides:\n  snap_threshold_px: 12\n  page_width: 1000\nlogging:\n  level: DEBUG\n")
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	mergeInto(&cfg, &fileCfg)
	if cfg.Guides.SnapThresholdPx != 12 {
		t.Fatalf("snap_threshold_px = %v, want 12", cfg.Guides.SnapThresholdPx)
	}
	if cfg.Guides.PageWidth != 1000 {
		t.Fatalf("page_width = %v, want 1000", cfg.Guides.PageWidth)
	}
	// untouched fields keep defaults
	if cfg.Guides.HysteresisPx != 4 || cfg.Guides.GridSize != 10 {
		t.Fatalf("unset fields changed: %+v", cfg.Guides)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level not normalized: %q", cfg.Logging.Level)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvSnapThresholdPx, "16")
	t.Setenv(EnvTelemetryOptIn, "yes")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvGridSize, "not-a-number")

	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Guides.SnapThresholdPx != 16 {
		t.Fatalf("env snap threshold not applied: %v", cfg.Guides.SnapThresholdPx)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("env telemetry opt-in not applied")
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("env log format not applied: %q", cfg.Logging.Format)
	}
	if cfg.Guides.GridSize != 10 {
		t.Fatalf("invalid env value must not clobber default: %v", cfg.Guides.GridSize)
	}

	if env, ok := EnvOverrideFor("guides.snap_threshold_px"); !ok || env != EnvSnapThresholdPx {
		t.Fatalf("EnvOverrideFor mismatch: %q %v", env, ok)
	}
	if _, ok := EnvOverrideFor("guides.cell_size"); ok {
		t.Fatalf("cell_size should not report an override")
	}
}

func TestSnapConfigConversion(t *testing.T) {
	g := Defaults().Guides
	sc := g.SnapConfig()
	if sc.SnapThresholdPx != g.SnapThresholdPx || sc.GridSize != g.GridSize ||
		sc.PageWidth != g.PageWidth || sc.PageHeight != g.PageHeight ||
		sc.CellSize != g.CellSize || sc.HysteresisPx != g.HysteresisPx {
		t.Fatalf("conversion lost fields: %+v vs %+v", sc, g)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := Defaults()
	cfg.Guides.SnapThresholdPx = 11
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Guides.SnapThresholdPx != 11 {
		t.Fatalf("round trip lost value: %v", got.Guides.SnapThresholdPx)
	}
}
