// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// registry.go - Concurrent session registry.
package session

import (
	"sync"
	"time"
)

// Registry tracks live sessions by id. The interactive front ends own a
// single session each; the registry exists for embedders that serve many
// concurrent conversations (one goroutine per session) and need to find,
// enumerate, and retire them. Sessions themselves are single-owner; only
// the map is shared.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Open creates and registers a new session.
func (r *Registry) Open() *Session {
	s := New()
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with the given id, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

// Close removes a session from the registry. Reports whether it was
// present.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// IDs returns the ids of all registered sessions.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Sweep removes every session whose inactivity exceeds timeout and
// returns the number removed. Callers that keep long-lived registries
// should run this periodically; the interactive front ends never need it.
func (r *Registry) Sweep(timeout time.Duration, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.LastActivity()) > timeout {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
