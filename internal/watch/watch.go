// Package watch reloads configuration files when they change on disk.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/cognicore/rake/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher invokes a callback when one of a set of files is written or
// replaced. The parent directories are watched, so editors that save by
// renaming a temporary file are handled.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	onChange func(path string)
	debounce time.Duration
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	timers   map[string]*time.Timer
	done     chan struct{}
	started  bool
	stopOnce sync.Once
	logger   *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for watch events.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = logging.OrNop(l) }
}

// WithDebounce sets how long a file must stay quiet before onChange runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher for paths. onChange receives the cleaned
// absolute path of the file that changed.
func NewWatcher(paths []string, onChange func(path string), opts ...Option) (*Watcher, error) {
	w := &Watcher{
		onChange: onChange,
		debounce: defaultDebounce,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
		logger:   zap.NewNop(),
	}
	files, dirs, err := resolve(paths)
	if err != nil {
		return nil, err
	}
	w.files, w.dirs = files, dirs
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func resolve(paths []string) (map[string]struct{}, []string, error) {
	files := make(map[string]struct{}, len(paths))
	seen := make(map[string]struct{})
	var dirs []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, err
		}
		abs = filepath.Clean(abs)
		files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}
	return files, dirs, nil
}

// SetFiles replaces the watched set with paths. On a running watcher,
// directories of new files are added and directories no longer needed are
// dropped. If a new directory cannot be watched the previous set is kept.
func (w *Watcher) SetFiles(paths []string) error {
	files, dirs, err := resolve(paths)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		old := make(map[string]struct{}, len(w.dirs))
		for _, d := range w.dirs {
			old[d] = struct{}{}
		}
		var added []string
		for _, d := range dirs {
			if _, ok := old[d]; ok {
				delete(old, d)
				continue
			}
			if err := w.watcher.Add(d); err != nil {
				for _, a := range added {
					_ = w.watcher.Remove(a)
				}
				return err
			}
			added = append(added, d)
		}
		for d := range old {
			_ = w.watcher.Remove(d)
		}
	}
	for path, t := range w.timers {
		if _, ok := files[path]; !ok {
			t.Stop()
			delete(w.timers, path)
		}
	}
	w.files, w.dirs = files, dirs
	w.logger.Debug("watch set updated", zap.Strings("dirs", dirs))
	return nil
}

// Files returns the cleaned absolute paths being watched.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Start starts watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return err
		}
	}
	w.watcher = watcher
	w.started = true
	w.logger.Debug("watcher starting", zap.Strings("dirs", w.dirs))

	go w.run(ctx, watcher)
	return nil
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Warn("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	w.mu.Lock()
	_, ok := w.files[path]
	w.mu.Unlock()
	if !ok {
		return
	}
	w.logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", path))

	switch {
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
		w.schedule(path)
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		// keep the current state until a replacement shows up
		w.logger.Info("watched file removed", zap.String("path", path))
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.logger.Debug("watched file changed (debounced)", zap.String("path", path))
		if w.onChange != nil {
			w.onChange(path)
		}
	})
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
