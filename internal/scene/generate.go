/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Generate builds a pseudo-random scene for demos and benchmarks. The same
// seed always yields the same document: element positions come from a seeded
// source and ids are name-based UUIDs derived from the seed and index.
func Generate(n int, seed int64, page Page) Document {
	if n < 0 {
		n = 0
	}
	if page.Width <= 0 {
		page.Width = 595
	}
	if page.Height <= 0 {
		page.Height = 842
	}
	rng := rand.New(rand.NewSource(seed))

	doc := Document{
		SceneVersion: 1,
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("guidekit-scene-%d", seed))).String(),
		Name:         fmt.Sprintf("generated-%d", seed),
		Page:         page,
		Elements:     make([]Element, 0, n),
	}
	for i := 0; i < n; i++ {
		w := 20 + rng.Float32()*120
		h := 20 + rng.Float32()*120
		doc.Elements = append(doc.Elements, Element{
			ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("guidekit-el-%d-%d", seed, i))).String(),
			X:  rng.Float32() * (page.Width - w),
			Y:  rng.Float32() * (page.Height * 2),
			W:  w,
			H:  h,
			// a sprinkle of text frames so host filtering has something to do
			Text: i%7 == 0,
		})
	}
	return doc
}
