/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

// Config is the immutable tuning for one session/gesture. The engine has no
// hidden defaults; callers obtain populated values from the application
// config layer and pass them in explicitly.
type Config struct {
	// GridSize is the fallback grid step in canvas units. When no snap
	// candidate is in range the raw coordinate is rounded to the nearest
	// multiple. Non-positive disables grid rounding.
	GridSize float32
	// PageWidth and PageHeight describe one page in canvas units. Page
	// edges and centers are alignment candidates; positive multiples of
	// PageHeight are Y candidates for page-break-aware placement.
	PageWidth  float32
	PageHeight float32
	// SnapThresholdPx is the snap radius in screen pixels. It is divided by
	// the current zoom before comparison, since alignment is judged in
	// canvas units but the user's sense of "close" is on screen.
	SnapThresholdPx float32
	// HysteresisPx inflates the threshold for the previous frame's snap
	// target so an established guide survives small oscillations instead
	// of flickering between near-equal candidates.
	HysteresisPx float32
	// CellSize is the spatial index bucket size in canvas units.
	CellSize float32
}

// SpacingTol is the tolerance (canvas units) within which two gaps count as
// equal for distribute/spacing detection.
const SpacingTol = 2
