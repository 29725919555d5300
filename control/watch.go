// control/watch.go
// Author: momentics <momentics@gmail.com>
//
// fsnotify-driven config hot reload: watches a TOML file and re-parses
// it on change, handing the result to a caller-supplied hook.

package control

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-loads a config file whenever it changes on disk.
type Watcher struct {
	path string
	fw   *fsnotify.Watcher
	done chan struct{}
}

// WatchFile starts watching path. onChange runs on the watcher goroutine
// for every rewrite of the file, with either the parsed config or the
// parse/read error. Editors that replace files atomically emit Create
// events, so both Write and Create trigger a reload.
func WatchFile(path string, onChange func(cfg *FileConfig, err error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: the file itself may be renamed away and
	// recreated by atomic-save editors.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		path: path,
		fw:   fw,
		done: make(chan struct{}),
	}
	go w.run(onChange)
	return w, nil
}

func (w *Watcher) run(onChange func(*FileConfig, error)) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			onChange(LoadFile(w.path))
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			onChange(nil, err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
