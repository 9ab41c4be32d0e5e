// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the record store and lookup engine for order data.
package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// FILE WATCHER INTERFACE
// =============================================================================

// FileWatcher is the interface for data-file watching implementations.
type FileWatcher interface {
	// Watch starts watching for file changes
	Watch() error

	// Close stops watching and releases resources
	Close() error
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// fsnotifyWatcher watches the directory containing the data file and
// invokes the refresh callback, debounced, when the file is written or
// recreated. Watching the directory rather than the file itself survives
// the write-temp-then-rename pattern spreadsheet exporters use.
type fsnotifyWatcher struct {
	path     string
	refresh  func()
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	pending time.Time // zero when no change is pending

	ctx    context.Context
	cancel context.CancelFunc
}

func newFsnotifyWatcher(path string, debounce time.Duration, refresh func()) (*fsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &fsnotifyWatcher{
		path:     path,
		refresh:  refresh,
		watcher:  watcher,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Watch starts watching for file changes.
func (fw *fsnotifyWatcher) Watch() error {
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}

	go fw.processEvents()
	go fw.processPending()

	return nil
}

// processEvents records change events for the watched file.
func (fw *fsnotifyWatcher) processEvents() {
	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(fw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fw.mu.Lock()
				fw.pending = time.Now()
				fw.mu.Unlock()
			}

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Watcher errors are non-fatal; the polling fallback covers
			// platforms where fsnotify misbehaves.
		}
	}
}

// processPending fires the refresh callback once the debounce window
// after the last change has passed.
func (fw *fsnotifyWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case <-ticker.C:
			fw.mu.Lock()
			fire := !fw.pending.IsZero() && time.Since(fw.pending) >= fw.debounce
			if fire {
				fw.pending = time.Time{}
			}
			fw.mu.Unlock()

			if fire {
				fw.refresh()
			}
		}
	}
}

// Close stops watching and releases resources.
func (fw *fsnotifyWatcher) Close() error {
	fw.cancel()
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// pollingWatcher implements FileWatcher by checking the file's
// modification time on an interval.
type pollingWatcher struct {
	path     string
	refresh  func()
	interval time.Duration

	mu      sync.Mutex
	modTime time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

func newPollingWatcher(path string, interval time.Duration, refresh func()) *pollingWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &pollingWatcher{
		path:     path,
		refresh:  refresh,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Watch starts watching for file changes.
func (pw *pollingWatcher) Watch() error {
	if info, err := os.Stat(pw.path); err == nil {
		pw.modTime = info.ModTime()
	}

	go pw.poll()
	return nil
}

// poll periodically checks for modification-time changes.
func (pw *pollingWatcher) poll() {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(pw.path)
			if err != nil {
				continue
			}

			pw.mu.Lock()
			changed := !info.ModTime().Equal(pw.modTime)
			if changed {
				pw.modTime = info.ModTime()
			}
			pw.mu.Unlock()

			if changed {
				pw.refresh()
			}
		}
	}
}

// Close stops watching.
func (pw *pollingWatcher) Close() error {
	pw.cancel()
	return nil
}

// =============================================================================
// WATCHER FACTORY
// =============================================================================

// startWatcher starts a file watcher (fsnotify or polling fallback) for
// the given data file.
func startWatcher(path string, debounce time.Duration, refresh func()) (FileWatcher, error) {
	fw, err := newFsnotifyWatcher(path, debounce, refresh)
	if err == nil {
		if err := fw.Watch(); err == nil {
			return fw, nil
		}
		fw.Close()
	}

	// Fallback to polling watcher
	pw := newPollingWatcher(path, 5*time.Second, refresh)
	if err := pw.Watch(); err != nil {
		return nil, err
	}
	return pw, nil
}
