package confloader

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaolacci/murmur3"
	"golang.org/x/time/rate"

	"github.com/yndnr/migrations-go/internal/telemetry/logger"
)

// DefaultReloadInterval is the minimum spacing between two reloads of the
// same file.
const DefaultReloadInterval = 250 * time.Millisecond

// Watcher watches configuration files for content changes.
//
// Events for other files in the same directory are ignored. A change is
// only reported when the file content differs from the last reported
// content, and bursts of writes collapse into at most one callback per
// reload interval, with a trailing callback for the last write.
type Watcher struct {
	watcher   *fsnotify.Watcher
	callbacks []func(string)
	mu        sync.RWMutex
	done      chan struct{}
	stopOnce  sync.Once
	logger    logger.Logger
	interval  time.Duration

	filesMu sync.Mutex
	files   map[string]*watchedFile
}

type watchedFile struct {
	limiter     *rate.Limiter
	fingerprint uint64
	pending     *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(lg logger.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = lg
	}
}

// WithReloadInterval sets the minimum spacing between reloads. Zero
// disables throttling.
func WithReloadInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// NewWatcher creates a new configuration file watcher.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:   fw,
		callbacks: make([]func(string), 0),
		done:      make(chan struct{}),
		logger:    logger.Default(),
		interval:  DefaultReloadInterval,
		files:     make(map[string]*watchedFile),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Watch starts watching the file at path.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// Watch the directory, not the file, to catch vim-style renames
	dir := filepath.Dir(abs)
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Error("failed to watch directory",
			"path", dir,
			logger.KeyError, err,
		)
		return err
	}

	limit := rate.Inf
	if w.interval > 0 {
		limit = rate.Every(w.interval)
	}
	wf := &watchedFile{limiter: rate.NewLimiter(limit, 1)}
	if data, err := os.ReadFile(abs); err == nil {
		wf.fingerprint = fingerprint(data)
	}

	w.filesMu.Lock()
	w.files[abs] = wf
	w.filesMu.Unlock()

	w.logger.Debug("watching directory for changes",
		"path", dir,
		logger.KeyFile, filepath.Base(abs),
	)
	return nil
}

// OnChange registers a callback to be called when a watched file changes.
// The callback receives the absolute path of the changed file.
func (w *Watcher) OnChange(callback func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start starts watching for changes.
// This function blocks until Stop() is called.
func (w *Watcher) Start() {
	w.logger.Info("configuration watcher started")

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.logger.Debug("watcher events channel closed")
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.handle(filepath.Clean(event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.logger.Debug("watcher errors channel closed")
				return
			}
			w.logger.Error("configuration watcher error",
				logger.KeyError, err,
			)
		case <-w.done:
			w.logger.Debug("watcher received stop signal")
			return
		}
	}
}

// StartAsync starts watching in a goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop stops the watcher. Pending reloads are dropped. Stop may be called
// more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.filesMu.Lock()
		for _, wf := range w.files {
			if wf.pending != nil {
				wf.pending.Stop()
			}
		}
		w.filesMu.Unlock()

		if err = w.watcher.Close(); err != nil {
			w.logger.Error("failed to close watcher",
				logger.KeyError, err,
			)
			return
		}
		w.logger.Info("configuration watcher stopped")
	})
	return err
}

// handle throttles events for a watched file. An event arriving within the
// reload interval schedules one trailing check instead of being dropped.
func (w *Watcher) handle(path string) {
	w.filesMu.Lock()
	defer w.filesMu.Unlock()

	wf, ok := w.files[path]
	if !ok {
		return
	}
	if wf.pending != nil {
		return
	}

	r := wf.limiter.Reserve()
	delay := r.Delay()
	if delay == 0 {
		go w.check(path)
		return
	}

	w.logger.Debug("configuration reload throttled",
		logger.KeyFile, path,
		"delay", delay,
	)
	wf.pending = time.AfterFunc(delay, func() {
		w.filesMu.Lock()
		wf.pending = nil
		w.filesMu.Unlock()
		w.check(path)
	})
}

// check notifies callbacks if the content of path changed since the last
// notification.
func (w *Watcher) check(path string) {
	select {
	case <-w.done:
		return
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("configuration file not readable after change",
			logger.KeyFile, path,
			logger.KeyError, err,
		)
		return
	}
	sum := fingerprint(data)

	w.filesMu.Lock()
	wf, ok := w.files[path]
	unchanged := ok && wf.fingerprint == sum
	if ok {
		wf.fingerprint = sum
	}
	w.filesMu.Unlock()

	if !ok {
		return
	}
	if unchanged {
		w.logger.Debug("configuration file content unchanged", logger.KeyFile, path)
		return
	}

	w.logger.Debug("configuration file changed", logger.KeyFile, path)
	w.notifyCallbacks(path)
}

// notifyCallbacks calls all registered callbacks.
func (w *Watcher) notifyCallbacks(path string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, cb := range w.callbacks {
		cb(path)
	}
}

func fingerprint(data []byte) uint64 {
	return murmur3.Sum64(data)
}
