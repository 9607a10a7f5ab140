// Package engine implements the result pipeline that turns recognition
// results into clipboard actions.
package engine

import (
	"strings"

	"github.com/textgrab/textgrab/internal/model"
)

// spanSeparator joins recognized spans when linebreaks are kept.
const spanSeparator = "\n"

// Decide is the pure decision function for one capture event. It maps a
// recognition result, the previous clipboard content and a preference
// snapshot to the action the presentation shell must take. It never touches
// the clipboard or any other resource itself.
func Decide(result model.RecognitionResult, prevClipboard string, prefs model.Preferences) model.Action {
	// Capture sources are expected to stop delivering while paused, but a
	// stale event may still arrive.
	if prefs.Paused {
		return model.Suppressed
	}

	threshold := prefs.Confidence.Threshold()
	spans := make([]string, 0, len(result.Spans)+len(result.QRPayloads))
	for _, span := range result.Spans {
		if span.Confidence >= threshold {
			spans = append(spans, span.Text)
		}
	}

	// QR payloads carry no confidence score and bypass the threshold; they
	// follow the ordinary spans in detection order.
	if prefs.DetectQRCodes {
		spans = append(spans, result.QRPayloads...)
	}

	if len(spans) == 0 {
		return model.Suppressed
	}

	sep := spanSeparator
	if !prefs.KeepLinebreaks {
		for i, s := range spans {
			spans[i] = collapseLinebreaks(s)
		}
		sep = " "
	}
	text := strings.Join(spans, sep)

	switch {
	case prefs.ClearClipboardFirst:
		// Previous clipboard content is irrelevant.
	case prefs.AppendToClipboard && prevClipboard != "":
		text = prevClipboard + prefs.AppendSeparator + text
	}

	if prefs.ConfirmBeforeCommit {
		return model.Action{Kind: model.ActionWriteWithConfirm, Text: text}
	}
	return model.Action{Kind: model.ActionWriteClipboard, Text: text}
}

var linebreakReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// collapseLinebreaks replaces each linebreak inside a span with a single space.
func collapseLinebreaks(s string) string {
	return linebreakReplacer.Replace(s)
}
