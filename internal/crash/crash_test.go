/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecoverWritesReportAndExits(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GK_CRASH_DIR", dir)

	exitCode := -1
	exitFn = func(code int) { exitCode = code }
	defer func() { exitFn = os.Exit }()

	func() {
		defer Recover()
		panic("boom for test")
	}()

	if exitCode != 2 {
		t.Fatalf("exit code = %d, want 2", exitCode)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected a crash report in %s: %v", dir, err)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, "boom for test") || !strings.Contains(body, "Stack:") {
		t.Fatalf("report incomplete:\n%s", body)
	}
}

func TestRecoverNoPanicIsNoOp(t *testing.T) {
	exitFn = func(int) { t.Fatalf("exit called without a panic") }
	defer func() { exitFn = os.Exit }()
	func() {
		defer Recover()
	}()
}
