package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docscribe/internal/logger"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls a function whenever files under its roots change.
// Bursts of events within the debounce window produce one call, and calls
// never overlap.
type Watcher struct {
	roots    []string
	onChange func(ctx context.Context)
	debounce time.Duration

	mu    sync.Mutex
	files map[string]bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before onChange is called.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher over the given files and directories.
// Directories are watched recursively, skipping hidden ones.
func NewWatcher(roots []string, onChange func(ctx context.Context), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		roots:    roots,
		onChange: onChange,
		debounce: DefaultDebounce,
		files:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, root := range w.roots {
		if err := w.addRoot(fsw, root); err != nil {
			return err
		}
	}
	logger.Debug("Watching %d roots", len(w.roots))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Change detected: %s %s", event.Op, event.Name)
			if event.Has(fsnotify.Create) {
				w.watchNewDir(fsw, event.Name)
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error: %v", err)

		case <-timer.C:
			w.onChange(ctx)
		}
	}
}

// addRoot watches a directory tree, or the parent directory of a single file.
func (w *Watcher) addRoot(fsw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if !info.IsDir() {
		w.mu.Lock()
		w.files[filepath.Clean(root)] = true
		w.mu.Unlock()
		if err := fsw.Add(filepath.Dir(root)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		return nil
	}

	return w.addTree(fsw, root)
}

func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// watchNewDir starts watching a directory created under a watched tree.
func (w *Watcher) watchNewDir(fsw *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(fsw, path); err != nil {
		logger.Warn("Cannot watch new directory %s: %v", path, err)
	}
}

// relevant filters out permission changes, hidden entries and, for roots
// that are single files, events on their siblings.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if isHidden(filepath.Base(event.Name)) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.files) == 0 {
		return true
	}
	if w.files[filepath.Clean(event.Name)] {
		return true
	}
	// Sibling of a watched file: only relevant if it lies in a watched tree.
	for _, root := range w.roots {
		if w.files[filepath.Clean(root)] {
			continue
		}
		rel, err := filepath.Rel(root, event.Name)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
