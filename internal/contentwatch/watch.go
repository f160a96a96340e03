// Package contentwatch re-runs a callback when content files change.
package contentwatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nirbhaysingh/portfolio/internal/platform/timeouts"
)

// Watch calls onChange once per burst of file events under paths, waiting
// debounce after the last event. Paths may name directories or single files.
// A file is watched through its parent directory so saves that replace it by
// rename stay visible, and it may not exist yet. New subdirectories of a
// watched directory are watched as they appear. Watch blocks until ctx is
// done and then returns nil.
func Watch(ctx context.Context, paths []string, debounce time.Duration, onChange func()) error {
	if onChange == nil {
		return errors.New("change callback is required")
	}
	if debounce <= 0 {
		debounce = timeouts.ContentDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	s := scope{dirs: map[string]bool{}, files: map[string]bool{}, added: map[string]bool{}}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := s.add(watcher, filepath.Clean(path)); err != nil {
			return err
		}
	}
	if len(s.added) == 0 {
		return errors.New("no content paths to watch")
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				name := filepath.Clean(event.Name)
				if err := watcher.Add(name); err != nil {
					log.Printf("watch add failed path=%s err=%v", name, err)
				} else {
					s.dirs[name] = true
				}
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		case <-timer.C:
			onChange()
		}
	}
}

// scope tracks what the watcher listens to: whole directories, and single
// files seen through their parent directory.
type scope struct {
	dirs  map[string]bool
	files map[string]bool
	added map[string]bool
}

func (s scope) add(watcher *fsnotify.Watcher, path string) error {
	target := path
	if isDir(path) {
		s.dirs[path] = true
	} else {
		target = filepath.Dir(path)
		if !isDir(target) {
			log.Printf("watch skipped missing path=%s", path)
			return nil
		}
		s.files[path] = true
	}
	if s.added[target] {
		return nil
	}
	if err := watcher.Add(target); err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}
	s.added[target] = true
	return nil
}

func (s scope) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return s.dirs[filepath.Dir(name)] || s.dirs[name] || s.files[name]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
