package model

import "time"

// ActionKind is the decision the result pipeline reaches for one event.
type ActionKind string

// Action kind constants.
const (
	ActionSuppressed       ActionKind = "SUPPRESSED"
	ActionWriteClipboard   ActionKind = "WRITE_CLIPBOARD"
	ActionWriteWithConfirm ActionKind = "WRITE_CLIPBOARD_WITH_CONFIRMATION"
)

// Action is the pipeline's verdict for a single capture event. Text is only
// meaningful for the two write kinds.
type Action struct {
	Kind ActionKind
	Text string
}

// Suppressed is the Action returned when nothing should reach the clipboard.
var Suppressed = Action{Kind: ActionSuppressed}

// ClipboardTransaction records the outcome of committing one action.
type ClipboardTransaction struct {
	CommittedAt time.Time
	Source      CaptureSourceKind
	Text        string
	Committed   bool
}
