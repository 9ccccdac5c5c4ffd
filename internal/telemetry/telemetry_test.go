/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("GK_TELEMETRY_OPT_IN", "")
	t.Setenv("GK_TELEMETRY_URL", "")
	cfg := FromEnv()
	if cfg.OptIn || cfg.EventsURL != "" {
		t.Fatalf("telemetry must be off by default: %+v", cfg)
	}
	if cfg.Timeout != 1500*time.Millisecond {
		t.Fatalf("default timeout wrong: %v", cfg.Timeout)
	}
}

func TestDisabledClientDropsEvents(t *testing.T) {
	c := New(Config{OptIn: false, EventsURL: "http://localhost:1"})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("client must not be enabled without opt-in")
	}
	c.Event("should_not_send", nil)
	if len(c.q) != 0 {
		t.Fatalf("disabled client queued an event")
	}
}

func TestEventDeliveredWhenEnabled(t *testing.T) {
	var mu sync.Mutex
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		_ = json.Unmarshal(body, &got)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()
	c.Event("drag_session", map[string]any{"frames": 12})
	c.Flush(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		ok := got != nil
		mu.Unlock()
		if ok || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if got == nil {
		t.Fatalf("event never arrived")
	}
	if got["name"] != "drag_session" {
		t.Fatalf("unexpected event name: %v", got["name"])
	}
	if _, ok := got["version"]; !ok {
		t.Fatalf("event missing version field: %v", got)
	}
	if got["frames"] != float64(12) {
		t.Fatalf("prop not carried: %v", got["frames"])
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " on "} {
		if !parseBool(v) {
			t.Fatalf("parseBool(%q) = false", v)
		}
	}
	for _, v := range []string{"", "0", "off", "nope"} {
		if parseBool(v) {
			t.Fatalf("parseBool(%q) = true", v)
		}
	}
}
