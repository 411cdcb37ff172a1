// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"znkr.io/docsync"
	"znkr.io/docsync/internal/snapshot"
	"znkr.io/docsync/transport"
)

func runWatch(ctx context.Context, a *app, args []string) error {
	return a.watch(ctx, args[0], nil)
}

// watch prints one transport encoded diff per line whenever the snapshot at path changes. It returns
// when ctx is done. ready is called, if not nil, once the watcher is in place.
func (a *app) watch(ctx context.Context, path string, ready func()) error {
	prev, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %v", err)
	}
	defer w.Close()

	// Watch the directory, editors often replace files instead of writing them.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %v", path, err)
	}
	a.log.Info("watching", "path", path)
	if ready != nil {
		ready()
	}

	clean := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != clean || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cur, err := snapshot.Load(path)
			if err != nil {
				// Most likely a partial write, the next event will bring the rest.
				a.log.Warn("skipping unreadable snapshot", "err", err)
				continue
			}
			if err := a.emit(prev, cur); err != nil {
				return err
			}
			prev = cur
		}
	}
}

// emit writes the diff from prev to cur unless nothing changed.
func (a *app) emit(prev, cur docsync.Document) error {
	d := docsync.Compute(prev, cur, a.cfg.makeOptions()...)
	if d.IsIdentity() && d.Rows().IsIdentity() && d.Ranges().IsIdentity() {
		a.log.Debug("no change")
		return nil
	}
	data, err := transport.Marshal(d.Record())
	if err != nil {
		return fmt.Errorf("encoding diff: %v", err)
	}
	a.log.Debug("emitting diff", "hunks", d.Patch().Len())
	_, err = a.stdout.Write(append(data, '\n'))
	return err
}
