package persist

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/codelovable/codelovable/internal/events"
	"github.com/codelovable/codelovable/internal/store"
)

// Watcher reloads the store when another process rewrites the snapshot
// file. Reloads are debounced so a burst of writes hydrates once, and
// skipped while a generation is in flight so a reload never clobbers a
// result about to be written back.
type Watcher struct {
	snapshot *Snapshot
	store    *store.Store
	bus      *events.EventBus
	watcher  *fsnotify.Watcher
	reload   func(func())
}

// NewWatcher watches the snapshot's directory. bus may be nil.
func NewWatcher(snapshot *Snapshot, st *store.Store, bus *events.EventBus) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(snapshot.Path())); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{
		snapshot: snapshot,
		store:    st,
		bus:      bus,
		watcher:  w,
		reload:   debounce.New(300 * time.Millisecond),
	}, nil
}

// Start runs the watch loop until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(ev.Name) != filepath.Base(w.snapshot.Path()) {
				continue
			}
			w.reload(w.hydrate)
		case <-w.watcher.Errors:
			// ignore
		}
	}
}

func (w *Watcher) hydrate() {
	if w.store.IsGenerating() {
		return
	}
	projects, user, err := w.snapshot.Load()
	if err != nil {
		if w.bus != nil {
			w.bus.EmitSystemError(err)
		}
		return
	}
	w.store.Hydrate(projects, user)
}
