// Package watch runs a command whenever files below a set of paths change,
// debouncing bursts of file system events into a single run.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/internal/config"
)

// Runner is run with the last event of each debounced burst.
type Runner interface {
	Run(ctx context.Context, event fsnotify.Event) error
}

// Watcher watches paths recursively and debounces changes into Runner calls.
type Watcher struct {
	cfg    config.WatchConfig
	runner Runner
	log    zerolog.Logger
	d      *debounce.Debouncer[context.Context, fsnotify.Event]
}

// New returns a Watcher for cfg. Extra options are applied after the ones
// derived from dcfg.
func New(
	cfg config.WatchConfig,
	dcfg config.DebounceConfig,
	runner Runner,
	log zerolog.Logger,
	opts ...debounce.Option,
) (*Watcher, error) {
	if err := dcfg.Validate(); err != nil {
		return nil, err
	}

	w := &Watcher{
		cfg:    cfg,
		runner: runner,
		log:    log,
	}

	opts = append(dcfg.Options(), append([]debounce.Option{
		debounce.WithLogger(log),
		debounce.OnError(func(err error) {
			log.Error().Err(err).Msg("command failed")
		}),
	}, opts...)...)

	d, err := debounce.New(dcfg.Wait, w.run, opts...)
	if err != nil {
		return nil, err
	}
	w.d = d

	return w, nil
}

// Run watches until ctx is done. Any pending run is discarded on return, and
// a run already in progress is waited for.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()
	defer func() {
		w.d.Cancel()
		w.d.Wait()
	}()

	for _, path := range w.cfg.Paths {
		if err := w.addRecursive(fw, path); err != nil {
			return err
		}
	}

	w.log.Info().Strs("paths", w.cfg.Paths).Msg("watching for changes")

	if w.cfg.RunOnStart {
		if err := w.runner.Run(ctx, fsnotify.Event{}); err != nil {
			w.log.Error().Err(err).Msg("command failed")
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fw, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handle(ctx context.Context, fw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op == fsnotify.Chmod || w.ignored(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fw, event.Name); err != nil {
				w.log.Warn().Err(err).Str("path", event.Name).
					Msg("failed to watch new directory")
			}
		}
	}

	w.log.Debug().Str("path", event.Name).Stringer("op", event.Op).
		Msg("change detected")

	if err := w.d.Invoke(ctx, event); err != nil {
		w.log.Error().Err(err).Msg("command failed")
	}
}

// run is the debounced target.
func (w *Watcher) run(ctx context.Context, events ...fsnotify.Event) error {
	if ctx.Err() != nil || len(events) == 0 {
		return nil
	}

	event := events[len(events)-1]
	w.log.Info().Str("path", event.Name).Stringer("op", event.Op).
		Msg("running command")

	return w.runner.Run(ctx, event)
}

// addRecursive watches root and every directory below it which is neither
// hidden nor ignored.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (isHidden(d.Name()) || w.ignored(path)) {
			return filepath.SkipDir
		}

		return fw.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	return nil
}

// ignored reports whether path matches one of the ignore patterns, either by
// its base name or as a whole.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.cfg.Ignore {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.ToSlash(path)); ok {
			return true
		}
	}

	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}
