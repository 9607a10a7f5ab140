package capture

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/textgrab/textgrab/internal/model"
)

// ScreenshotConfig configures the screenshot directory watch.
type ScreenshotConfig struct {
	// Dir is the directory screenshots land in.
	Dir string
	// Settle is how long to wait after a create event before reading the
	// file, so the OS has finished writing it.
	Settle time.Duration
	// Buffer sizes the event channel.
	Buffer int
}

// ScreenshotWatcher emits a capture event for each new screenshot file
// appearing in the watched directory.
type ScreenshotWatcher struct {
	watcher *fsnotify.Watcher
	events  chan model.CaptureEvent
	config  ScreenshotConfig
}

// NewScreenshotWatcher creates a watcher for the given directory.
func NewScreenshotWatcher(config ScreenshotConfig) *ScreenshotWatcher {
	if config.Settle <= 0 {
		config.Settle = 200 * time.Millisecond
	}
	if config.Buffer <= 0 {
		config.Buffer = defaultBuffer
	}
	return &ScreenshotWatcher{
		events: make(chan model.CaptureEvent, config.Buffer),
		config: config,
	}
}

// Name identifies the source in logs.
func (w *ScreenshotWatcher) Name() string { return string(model.SourceScreenshot) }

// Events returns the channel screenshot events are delivered on.
func (w *ScreenshotWatcher) Events() <-chan model.CaptureEvent { return w.events }

// Start opens the file-system watch and begins delivering events until the
// context is canceled.
func (w *ScreenshotWatcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(w.config.Dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.config.Dir, err)
	}
	w.watcher = watcher

	slog.Info("Watching for screenshots", "dir", w.config.Dir)
	go w.loop(ctx)
	return nil
}

// Stop releases the file-system watch handle.
func (w *ScreenshotWatcher) Stop() {
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

func (w *ScreenshotWatcher) loop(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) || !IsScreenshotFile(event.Name) {
				continue
			}

			// Give the OS time to finish writing the file.
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.config.Settle):
			}

			capture := model.CaptureEvent{
				At:     time.Now(),
				Source: model.SourceScreenshot,
				Path:   event.Name,
			}
			select {
			case w.events <- capture:
			default:
				slog.Debug("Screenshot event channel full, dropping", "path", event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Debug("File watcher error", "error", err)
		}
	}
}

// IsScreenshotFile reports whether a new file in the watched directory looks
// like a screenshot: a visible image file. Hidden files are skipped because
// the OS composes screenshots under a dotted temporary name before renaming.
func IsScreenshotFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".png", ".jpg", ".jpeg", ".tiff", ".gif":
		return true
	}
	return false
}
