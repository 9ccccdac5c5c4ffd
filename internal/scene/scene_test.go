/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	doc := Document{
		SceneVersion: 1,
		ID:           "test-scene",
		Name:         "round trip",
		Page:         Page{Width: 595, Height: 842},
		Elements: []Element{
			{ID: "a", X: 10, Y: 20, W: 100, H: 50},
			{ID: "b", X: 10, Y: 120, W: 100, H: 50, Hidden: true},
			{ID: "c", X: 200, Y: 20, W: 80, H: 30, Text: true},
		},
	}
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(doc, got) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", doc, got)
	}
}

func TestValidateRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"missing page":   `{"scene_version":1,"id":"x","elements":[]}`,
		"negative width": `{"scene_version":1,"id":"x","page":{"width":-1,"height":10},"elements":[]}`,
		"element no id":  `{"scene_version":1,"id":"x","page":{"width":10,"height":10},"elements":[{"x":0,"y":0,"w":5,"h":5}]}`,
		"negative size":  `{"scene_version":1,"id":"x","page":{"width":10,"height":10},"elements":[{"id":"a","x":0,"y":0,"w":-5,"h":5}]}`,
	}
	for name, data := range cases {
		if err := Validate([]byte(data)); err == nil {
			t.Fatalf("%s: expected a validation error", name)
		}
	}
	valid := `{"scene_version":1,"id":"x","page":{"width":10,"height":10},"elements":[]}`
	if err := Validate([]byte(valid)); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}
}

func TestBoundsConversion(t *testing.T) {
	doc := Document{Elements: []Element{
		{ID: "a", X: 1, Y: 2, W: 3, H: 4, Hidden: true, Text: true},
	}}
	b := doc.Bounds()
	if len(b) != 1 {
		t.Fatalf("len = %d", len(b))
	}
	e := b[0]
	if e.ID != "a" || e.X != 1 || e.Y != 2 || e.W != 3 || e.H != 4 || !e.Hidden || !e.IsText {
		t.Fatalf("conversion lost fields: %+v", e)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(25, 42, Page{Width: 595, Height: 842})
	b := Generate(25, 42, Page{Width: 595, Height: 842})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different scenes")
	}
	c := Generate(25, 43, Page{Width: 595, Height: 842})
	if reflect.DeepEqual(a.Elements, c.Elements) {
		t.Fatalf("different seeds produced identical scenes")
	}
	if len(a.Elements) != 25 {
		t.Fatalf("element count = %d", len(a.Elements))
	}
	// generated elements stay within the page horizontally
	for _, e := range a.Elements {
		if e.X < 0 || e.X+e.W > 595.001 {
			t.Fatalf("element out of page: %+v", e)
		}
	}
}

func TestFind(t *testing.T) {
	doc := Generate(5, 7, Page{Width: 100, Height: 100})
	want := doc.Elements[3]
	got, ok := doc.Find(want.ID)
	if !ok || got.ID != want.ID {
		t.Fatalf("Find failed: %v %v", got, ok)
	}
	if _, ok := doc.Find("nope"); ok {
		t.Fatalf("Find matched a missing id")
	}
}
