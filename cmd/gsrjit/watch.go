package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fschutt/gsr-jit/internal/config"
)

// watch rebuilds and reruns the source file on every change until ctx is
// canceled. Build failures are printed and the previous region stays
// loaded, so a typo never loses the last working program.
func (s *session) watch(ctx context.Context, cfg config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: most editors replace the
	// file on save, which drops a direct file watch.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", s.path, err)
	}

	s.frame(cfg)

	// Saves arrive as bursts of events; a quiet period coalesces each
	// burst into one rebuild.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !touchesTarget(ev, target) {
				continue
			}
			slog.Debug("file event", "op", ev.Op, "name", ev.Name)
			pending = time.After(cfg.Debounce())

		case <-pending:
			pending = nil
			s.frame(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(s.out, "watch error: %v\n", err)
		}
	}
}

// frame runs one watch iteration: clear, rebuild, execute. Errors are
// printed and the loop keeps going.
func (s *session) frame(cfg config.Config) {
	if cfg.ClearEnabled() {
		clearScreen(s.out)
	}
	if err := s.rebuild(); err != nil {
		fmt.Fprintf(s.out, "gsrjit: %v\n", err)
		if s.region != nil {
			fmt.Fprintln(s.out, "(previous build still loaded)")
		}
		return
	}
	s.execute()
}

func touchesTarget(ev fsnotify.Event, target string) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == target
}
