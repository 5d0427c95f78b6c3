package file

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/stacklight-labs/sitesmith/internal/logger"
)

// PromptWatcher invalidates a PromptStore's cache when prompt files change
// on disk, so long-running servers pick up edits without a restart.
type PromptWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchPrompts starts watching the store's prompt directory. The directory
// must exist; call store.Load once beforehand to initialise it.
func WatchPrompts(store *PromptStore) (*PromptWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create prompt watcher: %w", err)
	}

	if err := watcher.Add(store.Dir()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch prompt directory: %w", err)
	}

	w := &PromptWatcher{
		watcher: watcher,
		done:    make(chan struct{}),
	}

	go w.run(store)
	return w, nil
}

func (w *PromptWatcher) run(store *PromptStore) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".txt") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("prompts: %s changed, clearing cache", event.Name)
			store.Reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("prompts: watch error: %v", err)

		case <-w.done:
			return
		}
	}
}

// Close stops watching and releases the watcher.
func (w *PromptWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
