/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene defines the JSON document the CLI tools consume: a page plus
// a flat list of element bounds. Documents are schema-validated on load so a
// malformed file fails early instead of producing silent geometry garbage.
package scene

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"guidekit/internal/guides"
)

//go:embed schema.json
var schemaBytes []byte

// Page is the logical page size in canvas units.
type Page struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Element mirrors guides.ElementBounds on the wire.
type Element struct {
	ID     string  `json:"id"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	W      float32 `json:"w"`
	H      float32 `json:"h"`
	Hidden bool    `json:"hidden,omitempty"`
	Text   bool    `json:"text,omitempty"`
}

// Document is one scene file.
//
// scene_version: bump when the structure changes in a backward-incompatible way.
type Document struct {
	SceneVersion int       `json:"scene_version"`
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Page         Page      `json:"page"`
	Elements     []Element `json:"elements"`
}

// Validate checks raw JSON bytes against the embedded schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("scene schema validate: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("scene does not conform to schema: %s", errs[0])
		}
		return fmt.Errorf("scene does not conform to schema")
	}
	return nil
}

// Load reads, validates, and decodes a scene file.
func Load(path string) (Document, error) {
	var doc Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read scene %s: %w", path, err)
	}
	if err := Validate(data); err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode scene %s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document as indented JSON.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := Validate(data); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Bounds converts the elements into the snap engine's input type.
func (d Document) Bounds() []guides.ElementBounds {
	out := make([]guides.ElementBounds, 0, len(d.Elements))
	for _, e := range d.Elements {
		out = append(out, guides.ElementBounds{
			ID:     e.ID,
			X:      e.X,
			Y:      e.Y,
			W:      e.W,
			H:      e.H,
			Hidden: e.Hidden,
			IsText: e.Text,
		})
	}
	return out
}

// Find returns the element with the given id.
func (d Document) Find(id string) (Element, bool) {
	for _, e := range d.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}
