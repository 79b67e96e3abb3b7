package app

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"

	"github.com/philipparndt/quadview/pkg/config"
	"github.com/philipparndt/quadview/pkg/openscad"
	"github.com/philipparndt/quadview/pkg/scene"
	"github.com/philipparndt/quadview/pkg/watcher"
)

// LoadMesh reads an STL or glTF file, or renders an OpenSCAD source
func LoadMesh(path string) (*scene.Mesh, error) {
	if openscad.IsSource(path) {
		r := openscad.NewRenderer(filepath.Dir(path))
		return r.RenderMesh(context.Background(), path)
	}
	return scene.Load(path)
}

// LoadPrimitives loads a mesh and registers its points, edges and faces as snap targets
func (w *Workspace) LoadPrimitives(path string) (scene.Summary, error) {
	mesh, err := LoadMesh(path)
	if err != nil {
		return scene.Summary{}, fmt.Errorf("failed to load primitives: %w", err)
	}

	summary := mesh.Register(w.snap)
	slog.Info("loaded snap primitives",
		"file", path,
		"triangles", summary.Triangles,
		"points", summary.Points,
		"edges", summary.Edges,
		"faces", summary.Faces)
	return summary, nil
}

// ClearPrimitives removes all registered snap targets
func (w *Workspace) ClearPrimitives() {
	w.snap.ClearSnapTargets()
}

// WatchPrimitives loads path and reloads it on the next Tick whenever it, or
// any OpenSCAD file it uses or includes, changes on disk
func (w *Workspace) WatchPrimitives(path string) (scene.Summary, error) {
	summary, err := w.LoadPrimitives(path)
	if err != nil {
		return summary, err
	}

	files := []string{path}
	if openscad.IsSource(path) {
		deps, err := openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(path)
		if err != nil {
			return summary, err
		}
		files = deps
	}

	fw, err := startWatcher(files...)
	if err != nil {
		return summary, err
	}
	if w.sources != nil {
		closeWatcher(w.sources, "primitives")
	}
	w.sources = fw
	w.sourcePath = path
	slog.Debug("watching primitives", "file", path, "files", len(files))
	return summary, nil
}

// WatchConfig reloads the config file whenever it changes on disk. Reloads
// are applied on the next Tick.
func (w *Workspace) WatchConfig(path string) error {
	fw, err := startWatcher(path)
	if err != nil {
		return err
	}
	if w.watcher != nil {
		closeWatcher(w.watcher, "config")
	}
	w.watcher = fw
	w.configPath = path
	slog.Debug("watching config", "file", path)
	return nil
}

func startWatcher(files ...string) (*watcher.FileWatcher, error) {
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce)
	if err != nil {
		return nil, err
	}
	if err := fw.Watch(files...); err != nil {
		closeWatcher(fw, "new")
		return nil, err
	}
	fw.Start()
	return fw, nil
}

// drainChanges applies queued reloads without blocking
func (w *Workspace) drainChanges() bool {
	reloaded := false
	if w.watcher != nil {
		for path := range pending(w.watcher) {
			if err := w.ReloadConfig(path); err != nil {
				slog.Warn("config reload failed", "file", path, "error", err)
				continue
			}
			reloaded = true
		}
	}
	if w.sources != nil {
		changed := false
		for range pending(w.sources) {
			changed = true
		}
		if changed && w.reloadPrimitives() {
			reloaded = true
		}
	}
	return reloaded
}

// reloadPrimitives replaces the registered primitives with a fresh load of
// the watched source. A failed load keeps the previous primitives.
func (w *Workspace) reloadPrimitives() bool {
	mesh, err := LoadMesh(w.sourcePath)
	if err != nil {
		slog.Warn("primitive reload failed, keeping previous primitives", "file", w.sourcePath, "error", err)
		return false
	}
	w.ClearPrimitives()
	summary := mesh.Register(w.snap)
	slog.Info("reloaded snap primitives",
		"file", w.sourcePath,
		"points", summary.Points,
		"edges", summary.Edges,
		"faces", summary.Faces)
	return true
}

// closeWatcher stops fw and logs a failure
func closeWatcher(fw *watcher.FileWatcher, what string) {
	if err := fw.Close(); err != nil {
		slog.Warn("failed to close watcher", "watcher", what, "error", err)
	}
}

// pending yields the changes already queued on fw
func pending(fw *watcher.FileWatcher) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			select {
			case path := <-fw.Changes():
				if !yield(path) {
					return
				}
			default:
				return
			}
		}
	}
}

// ReloadConfig reads path and applies it to the shared config
func (w *Workspace) ReloadConfig(path string) error {
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := w.cfg.Apply(loaded); err != nil {
		return err
	}
	w.snap.ApplyConfig(w.cfg)
	for _, c := range w.controllers {
		c.updateGizmoSize()
	}
	slog.Info("config reloaded", "file", path, "grid_size", w.cfg.GridSize)
	return nil
}
