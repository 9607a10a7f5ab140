package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/textgrab/textgrab/internal/common"
	"github.com/textgrab/textgrab/internal/model"
	"github.com/textgrab/textgrab/internal/service"
)

// Engine consumes capture events one at a time, runs recognition, decides
// via the result pipeline and executes the resulting action through the
// presentation shell collaborators. Events are processed strictly in order;
// at most one recognition call is in flight.
type Engine struct {
	prefs      service.PreferenceStore
	recognizer service.Recognizer
	pasteboard service.Pasteboard
	notifier   service.Notifier
	confirmer  service.Confirmer
	config     Config
	stats      Stats
	lastTx     *model.ClipboardTransaction
}

// Config holds configuration options for the engine.
type Config struct {
	// NotificationTitle heads the desktop notification after a commit.
	NotificationTitle string
	// PreviewRunes bounds the notification body length.
	PreviewRunes int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NotificationTitle: "Text copied to clipboard",
		PreviewRunes:      80,
	}
}

// Stats counts event outcomes for one engine run.
type Stats struct {
	Processed  int
	Committed  int
	Suppressed int
	Rejected   int
}

// New creates a new engine with the given dependencies.
func New(prefs service.PreferenceStore, recognizer service.Recognizer, pasteboard service.Pasteboard, notifier service.Notifier, confirmer service.Confirmer) *Engine {
	return NewWithConfig(prefs, recognizer, pasteboard, notifier, confirmer, DefaultConfig())
}

// NewWithConfig creates a new engine with custom configuration.
func NewWithConfig(prefs service.PreferenceStore, recognizer service.Recognizer, pasteboard service.Pasteboard, notifier service.Notifier, confirmer service.Confirmer, config Config) *Engine {
	if config.PreviewRunes <= 0 {
		config.PreviewRunes = DefaultConfig().PreviewRunes
	}
	if config.NotificationTitle == "" {
		config.NotificationTitle = DefaultConfig().NotificationTitle
	}
	return &Engine{
		prefs:      prefs,
		recognizer: recognizer,
		pasteboard: pasteboard,
		notifier:   notifier,
		confirmer:  confirmer,
		config:     config,
	}
}

// Run consumes events until the channel closes or the context is canceled.
func (e *Engine) Run(ctx context.Context, events <-chan model.CaptureEvent) error {
	slog.Info("Result pipeline started")
	defer func() {
		slog.Info("Result pipeline stopped",
			"processed", e.stats.Processed,
			"committed", e.stats.Committed,
			"suppressed", e.stats.Suppressed,
			"rejected", e.stats.Rejected)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			e.HandleEvent(ctx, event)
		}
	}
}

// HandleEvent runs one full capture → recognize → decide → present cycle.
// Every failure mode suppresses the event silently: the user simply retries
// the manual action.
func (e *Engine) HandleEvent(ctx context.Context, event model.CaptureEvent) {
	e.stats.Processed++
	prefs := e.prefs.Snapshot()

	// Don't even issue the recognition call while paused.
	if prefs.Paused {
		e.stats.Suppressed++
		slog.Debug("Paused, ignoring capture event", "source", event.Source)
		return
	}

	result, err := e.recognize(ctx, event, prefs)
	if err != nil {
		e.stats.Suppressed++
		if !errors.Is(err, common.ErrRecognitionUnavailable) {
			common.LogDebug("Recognition failed", common.Fields{"source": event.Source, "error": err.Error()})
		}
		return
	}

	prev := ""
	if prefs.AppendToClipboard && !prefs.ClearClipboardFirst {
		if current, readErr := e.pasteboard.ReadText(); readErr == nil {
			prev = current
		}
	}

	action := Decide(result, prev, prefs)
	switch action.Kind {
	case model.ActionSuppressed:
		e.stats.Suppressed++
		slog.Debug("Nothing above confidence threshold", "source", event.Source)
	case model.ActionWriteWithConfirm:
		accepted, confirmErr := e.confirmer.Confirm(ctx, action.Text)
		if confirmErr != nil {
			e.stats.Suppressed++
			common.LogError(confirmErr, "Confirmation prompt failed", common.Fields{"source": event.Source})
			return
		}
		if !accepted {
			e.stats.Rejected++
			slog.Debug("User rejected detected text", "source", event.Source)
			return
		}
		e.commit(action.Text, event.Source, prefs)
	case model.ActionWriteClipboard:
		e.commit(action.Text, event.Source, prefs)
	}
}

// Stats returns a copy of the counters for the current run.
func (e *Engine) Stats() Stats {
	return e.stats
}

// LastTransaction returns the most recent clipboard transaction of this run,
// committed or not, and whether one exists.
func (e *Engine) LastTransaction() (model.ClipboardTransaction, bool) {
	if e.lastTx == nil {
		return model.ClipboardTransaction{}, false
	}
	return *e.lastTx, true
}

func (e *Engine) recognize(ctx context.Context, event model.CaptureEvent, prefs model.Preferences) (model.RecognitionResult, error) {
	opts := RecognizeOptionsFor(prefs)
	if event.Path != "" {
		return e.recognizer.RecognizeFile(ctx, event.Path, opts)
	}
	return e.recognizer.RecognizeImage(ctx, event.Image, opts)
}

func (e *Engine) commit(text string, source model.CaptureSourceKind, prefs model.Preferences) {
	tx := model.ClipboardTransaction{
		CommittedAt: time.Now(),
		Source:      source,
		Text:        text,
	}
	if err := e.pasteboard.WriteText(text); err != nil {
		// No retry: the event is dropped and the user can re-capture.
		e.stats.Suppressed++
		e.lastTx = &tx
		common.LogError(fmt.Errorf("%w: %v", common.ErrClipboardWriteFailed, err),
			"Dropping capture event", common.Fields{"source": source})
		return
	}
	tx.Committed = true
	e.lastTx = &tx
	e.stats.Committed++
	slog.Debug("Committed text to clipboard", "source", source, "chars", utf8.RuneCountInString(text))

	if prefs.Notify {
		if err := e.notifier.Notify(e.config.NotificationTitle, Preview(text, e.config.PreviewRunes)); err != nil {
			common.LogDebug("Notification failed", common.Fields{"error": err.Error()})
		}
	}
}

// RecognizeOptionsFor maps a preference snapshot to recognition options.
func RecognizeOptionsFor(prefs model.Preferences) service.RecognizeOptions {
	return service.RecognizeOptions{
		Languages:     RecognitionLanguages(prefs),
		DetectQRCodes: prefs.DetectQRCodes,
	}
}

// RecognitionLanguages maps preferences to the recognizer language list:
// the primary language plus English when "always detect English" is on.
func RecognitionLanguages(prefs model.Preferences) []string {
	langs := []string{prefs.PrimaryLanguage}
	if prefs.AlwaysDetectEnglish && prefs.PrimaryLanguage != "eng" {
		langs = append(langs, "eng")
	}
	return langs
}

// Preview returns text truncated to at most n runes for notification bodies.
func Preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "…"
}
