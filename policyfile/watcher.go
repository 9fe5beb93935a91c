package policyfile

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a policy file loaded and reloads it when it changes on
// disk. A reload that fails to parse keeps the last good policy active.
//
// Close the watcher when done to release the underlying file watch.
type Watcher struct {
	mu        sync.RWMutex
	current   *File
	callbacks []func(*File)

	path string
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch loads path and starts watching it for changes. The watch is set
// on the parent directory so atomic rename-style rewrites are seen too.
func Watch(path string) (*Watcher, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		current: f,
		path:    path,
		fw:      fw,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Current returns the most recently loaded policy.
func (w *Watcher) Current() *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// AllowlistFor resolves an upload context against the current policy.
func (w *Watcher) AllowlistFor(context string) []string {
	return w.Current().AllowlistFor(context)
}

// OnReload registers a callback invoked with each successfully reloaded
// policy. The returned function unregisters it.
func (w *Watcher) OnReload(callback func(*File)) (unregister func()) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, callback)
	index := len(w.callbacks) - 1
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if index < len(w.callbacks) {
			// Set to nil instead of removing to avoid index shifting
			w.callbacks[index] = nil
		}
	}
}

// Close stops watching and releases the file watch.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) reload() {
	f, err := Load(w.path)
	if err != nil {
		return // keep the last good policy
	}

	w.mu.Lock()
	w.current = f
	callbacks := make([]func(*File), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(f)
		}
	}
}
