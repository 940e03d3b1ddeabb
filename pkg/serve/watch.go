package serve

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// WatcherConfig configures the source watcher.
type WatcherConfig struct {
	// Paths are files or directories to watch.
	Paths []string

	// Interval is how often the paths are polled (default: 500ms).
	Interval time.Duration
}

// Watcher polls files for modification time changes.
type Watcher struct {
	config     WatcherConfig
	timestamps map[string]time.Time
}

// NewWatcher creates a watcher. The current state of the paths is taken
// as the baseline, so only later changes are reported.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval <= 0 {
		config.Interval = 500 * time.Millisecond
	}
	w := &Watcher{config: config}
	w.timestamps = w.scan()
	return w
}

// Start polls until ctx is cancelled, calling onChange with the sorted
// list of paths that were modified, created or removed since the last poll.
func (w *Watcher) Start(ctx context.Context, onChange func(changed []string)) error {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if changed := w.Poll(); len(changed) > 0 {
				onChange(changed)
			}
		}
	}
}

// Poll scans once and returns the changed paths. Start calls it on every
// tick; it is exported for callers that drive polling themselves.
func (w *Watcher) Poll() []string {
	current := w.scan()

	var changed []string
	for path, mod := range current {
		if last, ok := w.timestamps[path]; !ok || !mod.Equal(last) {
			changed = append(changed, path)
		}
	}
	for path := range w.timestamps {
		if _, ok := current[path]; !ok {
			changed = append(changed, path)
		}
	}

	w.timestamps = current
	sort.Strings(changed)
	return changed
}

func (w *Watcher) scan() map[string]time.Time {
	stamps := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		if root == "" {
			continue
		}
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if p != root && isHidden(info.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			stamps[p] = info.ModTime()
			return nil
		})
	}
	return stamps
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
