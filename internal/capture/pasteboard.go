package capture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.design/x/clipboard"

	"github.com/textgrab/textgrab/internal/common"
	"github.com/textgrab/textgrab/internal/model"
)

// PasteboardWatcher emits a capture event each time an image lands on the
// system clipboard. Text writes (including this process's own commits) do
// not trigger image change notifications, so the watcher never feeds on its
// own output.
type PasteboardWatcher struct {
	events chan model.CaptureEvent
}

// NewPasteboardWatcher creates a clipboard image watcher.
func NewPasteboardWatcher() *PasteboardWatcher {
	return &PasteboardWatcher{
		events: make(chan model.CaptureEvent, defaultBuffer),
	}
}

// Name identifies the source in logs.
func (w *PasteboardWatcher) Name() string { return string(model.SourcePasteboard) }

// Events returns the channel pasteboard events are delivered on.
func (w *PasteboardWatcher) Events() <-chan model.CaptureEvent { return w.events }

// Start begins watching the clipboard for images until the context is
// canceled.
func (w *PasteboardWatcher) Start(ctx context.Context) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrWatchUnavailable, err)
	}

	ch := clipboard.Watch(ctx, clipboard.FmtImage)
	slog.Info("Watching pasteboard for images")

	go func() {
		defer close(w.events)
		for img := range ch {
			if len(img) == 0 {
				continue
			}
			capture := model.CaptureEvent{
				At:     time.Now(),
				Source: model.SourcePasteboard,
				Image:  img,
			}
			select {
			case w.events <- capture:
			default:
				slog.Debug("Pasteboard event channel full, dropping")
			}
		}
	}()

	return nil
}

// Stop is a no-op: the clipboard watch ends with the Start context.
func (w *PasteboardWatcher) Stop() {}
