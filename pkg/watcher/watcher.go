// Package watcher reports debounced changes to config files.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events editors emit on save
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher watches files and posts their paths to a channel once writes settle.
// The event pump never calls back into the application; consumers drain Changes.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	files    map[string]struct{}
	dirs     map[string]int
	debounce time.Duration
	timers   map[string]*time.Timer
	changes  chan string
	done     chan struct{}
	once     sync.Once
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		changes:  make(chan string, 8),
		done:     make(chan struct{}),
	}, nil
}

// Watch adds files to the watch set. The parent directory is watched so that
// atomic saves (write to temp, rename over) are still seen.
func (fw *FileWatcher) Watch(files ...string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if _, ok := fw.files[absPath]; ok {
			continue
		}

		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++
		fw.files[absPath] = struct{}{}
	}

	return nil
}

// Changes delivers the absolute path of each changed file
func (fw *FileWatcher) Changes() <-chan string {
	return fw.changes
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case <-fw.done:
				return
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					fw.handleFileChange(event.Name)
				}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watcher error", "error", err)
			}
		}
	}()
}

// handleFileChange restarts the debounce timer for a watched file
func (fw *FileWatcher) handleFileChange(name string) {
	filePath, err := filepath.Abs(name)
	if err != nil {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, watched := fw.files[filePath]; !watched {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		fw.post(filePath)
	})
}

// post never blocks; a pending notification for the same file already covers this one
func (fw *FileWatcher) post(filePath string) {
	select {
	case <-fw.done:
	case fw.changes <- filePath:
	default:
		slog.Debug("dropping change notification, queue full", "path", filePath)
	}
}

// Close stops the watcher. Pending debounce timers are cancelled.
func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)

		fw.mu.Lock()
		for _, timer := range fw.timers {
			timer.Stop()
		}
		fw.timers = make(map[string]*time.Timer)
		fw.mu.Unlock()

		err = fw.watcher.Close()
	})
	return err
}
