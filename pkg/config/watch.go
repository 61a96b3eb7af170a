package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Update is a configuration reload result. Exactly one of Config and Err is set.
type Update struct {
	Config *Config
	Err    error
}

// Watch loads path and then reloads it every time it is written.
// The first Update carries the current contents. The channel is closed when ctx ends.
func Watch(ctx context.Context, path string) (<-chan Update, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory: editors often replace files instead of writing in place.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	out := make(chan Update)
	target := filepath.Clean(path)

	go func() {
		defer close(out)
		defer watcher.Close()

		emit := func() bool {
			cfg, err := Load(path)
			select {
			case out <- Update{Config: cfg, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				// Only reload on write or create events
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !emit() {
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return out, nil
}
