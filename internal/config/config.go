/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"guidekit/internal/guides"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
}

type GuidesConfig struct {
	SnapThresholdPx float32 `yaml:"snap_threshold_px"`
	HysteresisPx    float32 `yaml:"hysteresis_px"`
	GridSize        float32 `yaml:"grid_size"`
	CellSize        float32 `yaml:"cell_size"`
	PageWidth       float32 `yaml:"page_width"`
	PageHeight      float32 `yaml:"page_height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Guides        GuidesConfig  `yaml:"guides"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults. The guide values match an A4
// page in PDF points with an 8px snap threshold at 100% zoom.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Guides: GuidesConfig{
			SnapThresholdPx: 8,
			HysteresisPx:    4,
			GridSize:        10,
			CellSize:        100,
			PageWidth:       595,
			PageHeight:      842,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTelemetryOptIn  = "GK_TELEMETRY_OPT_IN"
	EnvSnapThresholdPx = "GK_SNAP_THRESHOLD_PX"
	EnvHysteresisPx    = "GK_HYSTERESIS_PX"
	EnvGridSize        = "GK_GRID_SIZE"
	EnvCellSize        = "GK_CELL_SIZE"
	EnvPageWidth       = "GK_PAGE_WIDTH"
	EnvPageHeight      = "GK_PAGE_HEIGHT"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GK_LOG_LEVEL"
	EnvLogFormat = "GK_LOG_FORMAT"
	EnvLogFile   = "GK_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GuideKit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GuideKit")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "guidekit")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SnapConfig converts the guides section into the engine's runtime config.
func (g GuidesConfig) SnapConfig() guides.Config {
	return guides.Config{
		GridSize:        g.GridSize,
		PageWidth:       g.PageWidth,
		PageHeight:      g.PageHeight,
		SnapThresholdPx: g.SnapThresholdPx,
		HysteresisPx:    g.HysteresisPx,
		CellSize:        g.CellSize,
	}
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	// guides: zero means "not set in file"
	if src.Guides.SnapThresholdPx > 0 {
		dst.Guides.SnapThresholdPx = src.Guides.SnapThresholdPx
	}
	if src.Guides.HysteresisPx > 0 {
		dst.Guides.HysteresisPx = src.Guides.HysteresisPx
	}
	if src.Guides.GridSize > 0 {
		dst.Guides.GridSize = src.Guides.GridSize
	}
	if src.Guides.CellSize > 0 {
		dst.Guides.CellSize = src.Guides.CellSize
	}
	if src.Guides.PageWidth > 0 {
		dst.Guides.PageWidth = src.Guides.PageWidth
	}
	if src.Guides.PageHeight > 0 {
		dst.Guides.PageHeight = src.Guides.PageHeight
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		lv := strings.ToLower(v)
		cfg.General.TelemetryOptIn = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	envFloat := func(name string, dst *float32) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
				*dst = float32(f)
			}
		}
	}
	envFloat(EnvSnapThresholdPx, &cfg.Guides.SnapThresholdPx)
	envFloat(EnvHysteresisPx, &cfg.Guides.HysteresisPx)
	envFloat(EnvGridSize, &cfg.Guides.GridSize)
	envFloat(EnvCellSize, &cfg.Guides.CellSize)
	envFloat(EnvPageWidth, &cfg.Guides.PageWidth)
	envFloat(EnvPageHeight, &cfg.Guides.PageHeight)
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	m := map[string]string{
		"general.telemetry_opt_in":  EnvTelemetryOptIn,
		"guides.snap_threshold_px":  EnvSnapThresholdPx,
		"guides.hysteresis_px":      EnvHysteresisPx,
		"guides.grid_size":          EnvGridSize,
		"guides.cell_size":          EnvCellSize,
		"guides.page_width":         EnvPageWidth,
		"guides.page_height":        EnvPageHeight,
		"logging.level":             EnvLogLevel,
		"logging.format":            EnvLogFormat,
		"logging.file":              EnvLogFile,
	}
	if env, ok := m[key]; ok && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
