// Package discovery is the "module loader that discovers route files"
// collaborator (spec §6): it supplies (cacheKey, source) pairs to the
// facade and, in watch mode, re-emits them on file-system change events.
// It is a thin collaborator, not part of the core: nothing here influences
// chunkability.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// RoutePair is one discovered file: cacheKey is its path (used verbatim as
// the core's opaque cache key), source is its current file contents.
type RoutePair struct {
	CacheKey string
	Source   string
}

// DefaultGlob matches the default route-module file naming convention.
const DefaultGlob = "*.route.{ts,tsx,js,jsx}"

// Walk finds every file under root matching glob (a filepath.Match pattern;
// brace groups like "*.{ts,tsx}" are expanded before matching, since
// filepath.Match itself has no brace syntax) and returns one RoutePair per
// file, reading its contents eagerly.
func Walk(root string, glob string) ([]RoutePair, error) {
	patterns := expandBraces(glob)
	var pairs []RoutePair
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !matchesAny(patterns, filepath.Base(path)) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		pairs = append(pairs, RoutePair{CacheKey: path, Source: string(data)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// expandBraces expands a single "{a,b,c}" group in pattern into one
// filepath.Match pattern per alternative; a pattern without a brace group
// expands to itself.
func expandBraces(pattern string) []string {
	start := -1
	for i, r := range pattern {
		if r == '{' {
			start = i
			break
		}
	}
	if start < 0 {
		return []string{pattern}
	}
	end := -1
	for i := start; i < len(pattern); i++ {
		if pattern[i] == '}' {
			end = i
			break
		}
	}
	if end < 0 {
		return []string{pattern}
	}
	prefix, suffix := pattern[:start], pattern[end+1:]
	var out []string
	alt := ""
	for _, r := range pattern[start+1 : end] {
		if r == ',' {
			out = append(out, prefix+alt+suffix)
			alt = ""
			continue
		}
		alt += string(r)
	}
	out = append(out, prefix+alt+suffix)
	return out
}

// Watcher re-reads the changed file on every write or create event fsnotify
// reports for a name matching its glob, pushing a fresh RoutePair for that
// file to Changes. Callers
// are expected to invalidate the corresponding cache entry (see
// routechunk.Service.Delete) before re-running the facade on the new
// source.
type Watcher struct {
	root    string
	glob    string
	fw      *fsnotify.Watcher
	Changes chan RoutePair
	Errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts watching root (non-recursively per directory; each
// subdirectory discovered by an initial Walk is added explicitly) for
// changes to files matching glob.
func NewWatcher(root string, glob string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("discovery: failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		root:    root,
		glob:    glob,
		fw:      fw,
		Changes: make(chan RoutePair, 64),
		Errors:  make(chan error, 8),
		done:    make(chan struct{}),
	}

	if err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fw.Add(path)
		}
		return nil
	}); err != nil {
		fw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	patterns := expandBraces(w.glob)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !matchesAny(patterns, filepath.Base(event.Name)) {
				continue
			}
			data, err := os.ReadFile(event.Name)
			if err != nil {
				select {
				case w.Errors <- err:
				case <-w.done:
					return
				}
				continue
			}
			select {
			case w.Changes <- RoutePair{CacheKey: event.Name, Source: string(data)}:
			case <-w.done:
				return
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	close(w.done)
	w.wg.Wait()
	err := w.fw.Close()
	close(w.Changes)
	close(w.Errors)
	return err
}
