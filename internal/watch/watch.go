// Package watch reports changes to a single script file.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op describes what happened to the watched file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event is a change notification for the watched file.
type Event struct {
	Path string
	Op   Op
}

// Watcher watches one file through its parent directory, so editors that
// save by renaming a temporary file are still seen.
type Watcher struct {
	w      *fsnotify.Watcher
	target string
	evC    chan Event
	erC    chan error

	done      chan struct{}
	closeOnce sync.Once
}

// New starts watching path.
func New(path string) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, err
	}

	fw := &Watcher{
		w:      w,
		target: target,
		evC:    make(chan Event, 16),
		erC:    make(chan error, 1),
		done:   make(chan struct{}),
	}
	go fw.loop()
	return fw, nil
}

func translateOp(op fsnotify.Op) Op {
	var out Op
	if op&fsnotify.Create != 0 {
		out |= OpCreate
	}
	if op&fsnotify.Write != 0 {
		out |= OpWrite
	}
	if op&fsnotify.Remove != 0 {
		out |= OpRemove
	}
	if op&fsnotify.Rename != 0 {
		out |= OpRename
	}
	if op&fsnotify.Chmod != 0 {
		out |= OpChmod
	}
	return out
}

func (fw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.target {
				continue
			}
			select {
			case fw.evC <- Event{Path: ev.Name, Op: translateOp(ev.Op)}:
			case <-fw.done:
				return
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			case <-fw.done:
				return
			}
		case <-fw.done:
			return
		}
	}
}

func (fw *Watcher) Events() <-chan Event { return fw.evC }
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Close stops the watcher. It is safe to call more than once.
func (fw *Watcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)
		err = fw.w.Close()
	})
	return err
}

// Run calls onChange after each burst of content changes, waiting for
// debounce of quiet first. It returns nil when ctx is cancelled and the
// first error from onChange or the underlying watcher otherwise.
func (fw *Watcher) Run(ctx context.Context, debounce time.Duration, onChange func() error) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-fw.erC:
			return err
		case ev := <-fw.evC:
			if ev.Op&(OpCreate|OpWrite|OpRename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}
