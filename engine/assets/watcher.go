package assets

import (
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/hubastard/groveshade/engine/core"
)

// Watcher collects the names of shader files edited on disk. The render
// thread polls Drain once per frame and rebuilds whatever changed.
type Watcher struct {
	w    *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending map[string]struct{}
}

func isShader(name string) bool {
	switch filepath.Ext(name) {
	case ".vert", ".frag", ".glsl":
		return true
	}
	return false
}

// Watch starts watching the loader's shader directory.
func (l *Loader) Watch() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(l.Root, ShaderDir)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		w:       fw,
		done:    make(chan struct{}),
		pending: make(map[string]struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	core.Logger().Info("watching shaders", "dir", dir)
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			// editors save via write, create or rename-over
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(ev.Name)
			if !isShader(name) {
				continue
			}
			w.mu.Lock()
			w.pending[name] = struct{}{}
			w.mu.Unlock()
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			core.Logger().Warn("shader watcher", "err", err)
		}
	}
}

// Drain returns the shader files changed since the last call, sorted.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	names := make([]string, 0, len(w.pending))
	for n := range w.pending {
		names = append(names, n)
	}
	clear(w.pending)
	slices.Sort(names)
	return names
}

func (w *Watcher) Close() error {
	close(w.done)
	err := w.w.Close()
	w.wg.Wait()
	return err
}
