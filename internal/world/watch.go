// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package world

import (
	"encoding/json"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/typst-community/typlsp/internal/log"
)

// LockFile is the opaque JSON document a lock database names as its
// document root (spec.md §6 "the lock file format is opaque JSON").
// Only MainFile is interpreted; any other keys are preserved for
// round-tripping by tools that read LockFile through RawExtra.
type LockFile struct {
	MainFile  string          `json:"main"`
	RawExtra  json.RawMessage `json:"-"`
}

func parseLockFile(data []byte) (LockFile, error) {
	var lf LockFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return LockFile{}, err
	}
	lf.RawExtra = data
	return lf, nil
}

// LockWatcher watches a single lock file on disk and reports its
// parsed contents on Changes whenever the file is written, used only
// when projectResolution=lockDatabase (spec.md §6). Grounded on
// gopls's former internal/filewatcher package, which wrapped
// fsnotify the same way for workspace file watching.
type LockWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Changes chan LockFile
	Errors  chan error
}

// WatchLockFile starts watching path, an absolute path to the lock
// file. The caller must call Close when done.
func WatchLockFile(path string) (*LockWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}
	lw := &LockWatcher{
		watcher: w,
		path:    path,
		Changes: make(chan LockFile, 1),
		Errors:  make(chan error, 1),
	}
	go lw.run()
	return lw, nil
}

func (lw *LockWatcher) run() {
	for {
		select {
		case ev, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			data, err := os.ReadFile(lw.path)
			if err != nil {
				log.Warnf("world: reading lock file %s: %v", lw.path, err)
				continue
			}
			lf, err := parseLockFile(data)
			if err != nil {
				log.Warnf("world: parsing lock file %s: %v", lw.path, err)
				continue
			}
			select {
			case lw.Changes <- lf:
			default:
			}
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case lw.Errors <- err:
			default:
			}
		}
	}
}

// Close stops watching.
func (lw *LockWatcher) Close() error { return lw.watcher.Close() }
