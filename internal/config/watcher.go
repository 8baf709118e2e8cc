// ABOUTME: Polling watcher that reloads settings when a config file changes
// ABOUTME: Compares file stamps at a fixed interval and hands the fresh Settings to a callback

package config

import (
	"maps"
	"os"
	"sync"
	"time"

	"github.com/mauromedda/blinko-go/internal/log"
)

// stamp identifies one version of a config file. A missing file has no stamp.
type stamp struct {
	mod  int64
	size int64
}

// Watcher reloads settings when the global or project config file changes.
type Watcher struct {
	projectRoot string
	overrides   Overrides
	onReload    func(*Settings)
	interval    time.Duration

	mu      sync.Mutex
	seen    map[string]stamp
	started bool
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher creates a watcher for the config files of projectRoot.
func NewWatcher(projectRoot string, ov Overrides, onReload func(*Settings)) *Watcher {
	return &Watcher{
		projectRoot: projectRoot,
		overrides:   ov,
		onReload:    onReload,
		interval:    2 * time.Second,
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// SetInterval overrides the default polling interval (2s). Call before Start.
func (w *Watcher) SetInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// stamps reads the current stamp of every watched file.
func (w *Watcher) stamps() map[string]stamp {
	out := make(map[string]stamp, 2)
	for _, path := range []string{GlobalConfigFile(), ProjectConfigFile(w.projectRoot)} {
		if info, err := os.Stat(path); err == nil {
			out[path] = stamp{mod: info.ModTime().UnixNano(), size: info.Size()}
		}
	}
	return out
}

// Start records the current files and begins polling. Later calls are no-ops.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	w.seen = w.stamps()
	go w.loop(w.interval)
}

// Stop halts polling and waits for an in-flight reload. Safe to call
// multiple times, and before Start.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.quit) })
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.done
	}
}

// Check compares the files with the last seen state and reloads on change.
// It reports whether onReload ran.
func (w *Watcher) Check() bool {
	now := w.stamps()
	w.mu.Lock()
	changed := !maps.Equal(now, w.seen)
	w.seen = now
	w.mu.Unlock()
	if !changed {
		return false
	}

	s, err := Load(w.projectRoot, w.overrides)
	if err != nil {
		log.Warn("config reload failed: %v", err)
		return false
	}
	log.Debug("config reloaded")
	w.onReload(s)
	return true
}

func (w *Watcher) loop(interval time.Duration) {
	defer close(w.done)
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-w.quit:
			return
		case <-tick.C:
			w.Check()
		}
	}
}
