package model

import "time"

// CaptureSourceKind identifies which producer emitted a capture event.
type CaptureSourceKind string

// Capture source constants.
const (
	SourceScreenshot CaptureSourceKind = "screenshot"
	SourcePasteboard CaptureSourceKind = "pasteboard"
	SourceManual     CaptureSourceKind = "manual"
)

// CaptureEvent is one raw image event from a capture source. Exactly one of
// Path and Image is set: screenshot events carry the file path, pasteboard
// events carry the image bytes.
type CaptureEvent struct {
	At     time.Time
	Source CaptureSourceKind
	Path   string
	Image  []byte
}
