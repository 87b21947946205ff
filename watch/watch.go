// Package watch delivers batches of changed template files.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Handler is called with paths changed since the previous batch, in order
// of first change. Errors are logged, watching continues.
type Handler func(ctx context.Context, paths []string) error

// Watcher accumulates file system events and flushes them as batches either
// when batch delay passes after the first event of the batch or when batch
// reaches its maximum size.
type Watcher struct {
	fsw      *fsnotify.Watcher
	delay    time.Duration
	maxBatch int
	// explicitly requested files, their directories are watched
	files map[string]struct{}
	dirs  map[string]struct{}
	match func(path string) bool
	log   *zap.Logger
}

// New creates watcher. match filters interesting files, nil accepts all.
func New(delay time.Duration, maxBatch int, match func(path string) bool, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if maxBatch < 1 {
		maxBatch = 1
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create file system watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		delay:    delay,
		maxBatch: maxBatch,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
		match:    match,
		log:      log.Named("watch"),
	}, nil
}

// Add starts watching path. Directories are watched recursively, for files
// their parent directory is watched and events are limited to the file.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		w.files[abs] = struct{}{}
		return w.fsw.Add(filepath.Dir(abs))
	}
	return w.addTree(abs)
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("unable to watch %s: %w", path, err)
		}
		w.dirs[path] = struct{}{}
		w.log.Debug("Watching directory", zap.String("dir", path))
		return nil
	})
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// relevant reports whether event should be part of the batch.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if _, ok := w.files[ev.Name]; ok {
		return true
	}
	if _, ok := w.dirs[filepath.Dir(ev.Name)]; !ok {
		// file in directory watched for explicitly requested file
		return false
	}
	return w.match == nil || w.match(ev.Name)
}

// Run processes events until context is cancelled or watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	var (
		pending []string
		seen    = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)

	flush := func() {
		if timer != nil {
			timer.Stop()
		}
		fire = nil
		if len(pending) == 0 {
			return
		}
		batch := pending
		pending = nil
		clear(seen)

		w.log.Debug("Processing batch", zap.Int("files", len(batch)))
		if err := fn(ctx, batch); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.log.Error("Unable to process batch", zap.Strings("files", batch), zap.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				flush()
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if _, watched := w.dirs[filepath.Dir(ev.Name)]; watched {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						if err := w.addTree(ev.Name); err != nil {
							w.log.Warn("Unable to watch new directory", zap.String("dir", ev.Name), zap.Error(err))
						}
						continue
					}
				}
			}
			if !w.relevant(ev) {
				continue
			}
			if _, dup := seen[ev.Name]; dup {
				continue
			}
			seen[ev.Name] = struct{}{}
			pending = append(pending, ev.Name)

			if len(pending) >= w.maxBatch {
				flush()
				continue
			}
			if fire == nil {
				timer = time.NewTimer(w.delay)
				fire = timer.C
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				flush()
				return nil
			}
			w.log.Warn("File system watcher error", zap.Error(err))

		case <-fire:
			flush()
		}
	}
}
