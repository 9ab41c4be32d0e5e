// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"testing"
	"time"
)

func TestRegistryOpenGetClose(t *testing.T) {
	r := NewRegistry()

	s := r.Open()
	if s == nil || s.ID() == "" {
		t.Fatal("Open returned invalid session")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	if got := r.Get(s.ID()); got != s {
		t.Error("Get did not return the registered session")
	}
	if r.Get("missing") != nil {
		t.Error("Get of unknown id should return nil")
	}

	if !r.Close(s.ID()) {
		t.Error("Close should report the session was present")
	}
	if r.Close(s.ID()) {
		t.Error("second Close should report absence")
	}
	if r.Len() != 0 {
		t.Errorf("Len after Close = %d, want 0", r.Len())
	}
}

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry()
	stale := r.Open()
	fresh := r.Open()

	now := time.Now()
	stale.touch(now.Add(-20 * time.Minute))
	fresh.touch(now)

	removed := r.Sweep(15*time.Minute, now)
	if removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if r.Get(stale.ID()) != nil {
		t.Error("stale session should be gone")
	}
	if r.Get(fresh.ID()) == nil {
		t.Error("fresh session should survive")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := r.Open()
			r.Get(s.ID())
			r.Close(s.ID())
		}()
	}
	wg.Wait()

	if r.Len() != 0 {
		t.Errorf("Len after concurrent open/close = %d, want 0", r.Len())
	}
}
