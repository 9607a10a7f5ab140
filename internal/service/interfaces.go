// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/textgrab/textgrab/internal/model"
)

// RecognizeOptions controls a single recognition call.
type RecognizeOptions struct {
	// Languages lists recognition languages in priority order, using
	// tesseract codes ("eng", "deu", ...).
	Languages []string
	// DetectQRCodes also runs barcode decoding over the image.
	DetectQRCodes bool
}

// Recognizer is the contract for the engine-level text recognition capability.
// Implementations return ErrRecognitionUnavailable when the image cannot be
// processed; callers treat that the same as an empty result.
type Recognizer interface {
	RecognizeFile(ctx context.Context, path string, opts RecognizeOptions) (model.RecognitionResult, error)
	RecognizeImage(ctx context.Context, img []byte, opts RecognizeOptions) (model.RecognitionResult, error)
}

// Pasteboard is the contract for system clipboard access.
type Pasteboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// Notifier raises a user-visible desktop notification.
type Notifier interface {
	Notify(title, body string) error
}

// Confirmer shows candidate text to the user before a clipboard commit.
// A false return with nil error is an ordinary rejection, not a failure.
type Confirmer interface {
	Confirm(ctx context.Context, text string) (bool, error)
}

// PreferenceStore owns the persisted preference record. Snapshot returns an
// immutable copy; every mutator flushes to storage before returning.
type PreferenceStore interface {
	Snapshot() model.Preferences
	SetConfidence(level model.ConfidenceLevel) error
	SetPrimaryLanguage(code string) error
	SetScreenshotDir(dir string) error
	SetAppendSeparator(sep string) error
	SetBool(key string, value bool) error
	Close() error
}

// CaptureSource produces raw image events. Start begins delivery into the
// channel returned by Events; Stop releases the underlying watch handle.
type CaptureSource interface {
	Name() string
	Events() <-chan model.CaptureEvent
	Start(ctx context.Context) error
	Stop()
}
