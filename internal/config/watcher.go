package config

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a configuration file and reloads it on change,
// delivering the result through a Notifier. Editors often replace a
// file by rename, so the watch is placed on the containing directory
// and filtered to the target path.
type Watcher struct {
	mu sync.Mutex

	path     string
	watcher  *fsnotify.Watcher
	notifier *Notifier

	closed  bool
	closeCh chan struct{}
	done    sync.WaitGroup
}

// NewWatcher starts watching path and delivers reloads to notifier.
func NewWatcher(path string, notifier *Notifier) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		watcher:  fsw,
		notifier: notifier,
		closeCh:  make(chan struct{}),
	}

	w.done.Add(1)
	go w.loop()

	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.done.Wait()
	return err
}

// loop consumes fsnotify events until the watcher is closed.
func (w *Watcher) loop() {
	defer w.done.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config: watch error: %v", err)
		}
	}
}

// relevant reports whether an event concerns the watched file's content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Name != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

// reload loads the file and notifies observers. Load failures are
// logged and skipped; the previous configuration stays in effect.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("config: reload %s: %v", w.path, err)
		return
	}
	w.notifier.Notify(cfg)
}
