// Package watch converts images to SVG as they appear in a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/ironsheep/image-vectorize/internal/imaging"
	"github.com/ironsheep/image-vectorize/internal/vectorize"
)

// Watcher vectorizes every image created or rewritten in InDir and writes
// <name>.svg into OutDir.
type Watcher struct {
	InDir  string
	OutDir string
	Opts   vectorize.Options

	logger *slog.Logger
}

// New returns a Watcher. An empty outDir writes next to the input files.
func New(inDir, outDir string, opts vectorize.Options) *Watcher {
	if outDir == "" {
		outDir = inDir
	}
	return &Watcher{
		InDir:  inDir,
		OutDir: outDir,
		Opts:   opts,
		logger: vectorize.Logger().With("component", "watch"),
	}
}

// OutputPath returns the SVG path for the image at path.
func (w *Watcher) OutputPath(path string) string {
	base := filepath.Base(path)
	return filepath.Join(w.OutDir, strings.TrimSuffix(base, filepath.Ext(base))+".svg")
}

// Run watches InDir until ctx is cancelled. Conversion failures are logged
// and do not stop the watcher; a file that is still being written fails to
// decode and is retried on its next write event.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.InDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.InDir, err)
	}
	w.logger.Info("watching", "dir", w.InDir, "out", w.OutDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if _, err := w.handleFsEvent(ctx, event); err != nil {
				w.logger.Warn("conversion failed", "file", event.Name, "error", err)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Scan converts every image already present in InDir and returns the
// number of files written.
func (w *Watcher) Scan(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.InDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", w.InDir, err)
	}
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	n := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		path := filepath.Join(w.InDir, e.Name())
		if e.IsDir() || !wanted(path) {
			continue
		}
		if _, err := w.Convert(ctx, path); err != nil {
			w.logger.Warn("conversion failed", "file", path, "error", err)
			continue
		}
		n++
	}
	return n, nil
}

// handleFsEvent converts the file named by event if it is a visible image
// that was created or written. It returns the SVG path, or "" when the event
// was ignored.
func (w *Watcher) handleFsEvent(ctx context.Context, event fsnotify.Event) (string, error) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", nil
	}
	if !wanted(event.Name) {
		return "", nil
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Removed before we got to it.
			return "", nil
		}
		return "", err
	}
	if info.IsDir() {
		return "", nil
	}
	return w.Convert(ctx, event.Name)
}

// Convert vectorizes the image at path into OutputPath(path). An image
// without foreground still produces an empty SVG.
func (w *Watcher) Convert(ctx context.Context, path string) (string, error) {
	logger := w.logger.With("job", uuid.NewString(), "file", filepath.Base(path))
	logger.Debug("converting")

	res, err := vectorize.VectorizeFile(ctx, path, w.Opts)
	if err != nil {
		return "", err
	}
	if res.Empty() {
		logger.Warn("no foreground found")
	}

	out := w.OutputPath(path)
	if err := writeFileAtomic(out, res.Document.SVG()); err != nil {
		return "", err
	}
	logger.Info("wrote svg", "out", out, "regions", res.RegionCount)
	return out, nil
}

// wanted reports whether path names a visible file with an image extension.
func wanted(path string) bool {
	base := filepath.Base(path)
	return !strings.HasPrefix(base, ".") && imaging.SupportedExtension(base)
}

// writeFileAtomic writes data to a temporary file beside path and renames
// it into place so readers never see a partial SVG.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vectorize-*.svg")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
