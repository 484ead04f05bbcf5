// Copyright © 2025 The javals authors

package workspace

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher translates OS file events in the workspace root directories
// into external create/change/delete notifications on the index. Each
// root directory is watched by itself: files in its subdirectories
// produce no events. The watch is made on the OS filesystem whatever
// afero.Fs the workspace uses.
type Watcher struct {
	w       *Workspace
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts a watcher over the workspace's current roots.
func Watch(w *Workspace) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, root := range w.Roots() {
		if err := fsw.Add(root); err != nil {
			log.Printf("watch %s: %v", root, err)
		}
	}
	wt := &Watcher{w: w, watcher: fsw, done: make(chan struct{})}
	go wt.run()
	return wt, nil
}

func (wt *Watcher) run() {
	for {
		select {
		case <-wt.done:
			return
		case ev, ok := <-wt.watcher.Events:
			if !ok {
				return
			}
			wt.dispatch(ev)
		case err, ok := <-wt.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		}
	}
}

func (wt *Watcher) dispatch(ev fsnotify.Event) {
	switch {
	case ev.Op.Has(fsnotify.Create):
		wt.w.ExternalCreate(ev.Name)
	case ev.Op.Has(fsnotify.Write):
		wt.w.ExternalChange(ev.Name)
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		wt.w.ExternalDelete(ev.Name)
	}
}

// Close stops the watcher.
func (wt *Watcher) Close() error {
	close(wt.done)
	return wt.watcher.Close()
}
