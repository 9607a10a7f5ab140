package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/textgrab/textgrab/internal/model"
)

func prefsWith(modify func(*model.Preferences)) model.Preferences {
	prefs := model.DefaultPreferences()
	if modify != nil {
		modify(&prefs)
	}
	return prefs
}

func spans(texts ...string) []model.TextSpan {
	out := make([]model.TextSpan, len(texts))
	for i, t := range texts {
		out[i] = model.TextSpan{Text: t, Confidence: 1.0}
	}
	return out
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		result model.RecognitionResult
		prev   string
		prefs  model.Preferences
		want   model.Action
	}{
		{
			name:   "all spans below threshold are suppressed",
			result: model.RecognitionResult{Spans: []model.TextSpan{{Text: "faint", Confidence: 0.2}, {Text: "blur", Confidence: 0.25}}},
			prefs:  prefsWith(nil),
			want:   model.Suppressed,
		},
		{
			name: "threshold filtering keeps detection order",
			result: model.RecognitionResult{Spans: []model.TextSpan{
				{Text: "first", Confidence: 0.9},
				{Text: "noise", Confidence: 0.1},
				{Text: "second", Confidence: 0.6},
			}},
			prefs: prefsWith(func(p *model.Preferences) {
				p.Confidence = model.ConfidenceMedium
				p.KeepLinebreaks = true
			}),
			want: model.Action{Kind: model.ActionWriteClipboard, Text: "first\nsecond"},
		},
		{
			name:   "empty result is suppressed",
			result: model.RecognitionResult{},
			prefs:  prefsWith(nil),
			want:   model.Suppressed,
		},
		{
			name:   "pause wins over a non-empty result",
			result: model.RecognitionResult{Spans: spans("hello")},
			prefs:  prefsWith(func(p *model.Preferences) { p.Paused = true }),
			want:   model.Suppressed,
		},
		{
			name:   "linebreaks collapsed by default",
			result: model.RecognitionResult{Spans: spans("ab\ncd")},
			prefs:  prefsWith(nil),
			want:   model.Action{Kind: model.ActionWriteClipboard, Text: "ab cd"},
		},
		{
			name:   "linebreaks kept when requested",
			result: model.RecognitionResult{Spans: spans("ab\ncd")},
			prefs:  prefsWith(func(p *model.Preferences) { p.KeepLinebreaks = true }),
			want:   model.Action{Kind: model.ActionWriteClipboard, Text: "ab\ncd"},
		},
		{
			name:   "append mode joins previous content with separator",
			result: model.RecognitionResult{Spans: spans("Y")},
			prev:   "X",
			prefs:  prefsWith(func(p *model.Preferences) { p.AppendToClipboard = true }),
			want:   model.Action{Kind: model.ActionWriteClipboard, Text: "X\nY"},
		},
		{
			name:   "append mode with empty clipboard writes new text only",
			result: model.RecognitionResult{Spans: spans("Y")},
			prev:   "",
			prefs:  prefsWith(func(p *model.Preferences) { p.AppendToClipboard = true }),
			want:   model.Action{Kind: model.ActionWriteClipboard, Text: "Y"},
		},
		{
			name:   "custom append separator",
			result: model.RecognitionResult{Spans: spans("Y")},
			prev:   "X",
			prefs: prefsWith(func(p *model.Preferences) {
				p.AppendToClipboard = true
				p.AppendSeparator = " | "
			}),
			want: model.Action{Kind: model.ActionWriteClipboard, Text: "X | Y"},
		},
		{
			name:   "clear-first ignores previous clipboard",
			result: model.RecognitionResult{Spans: spans("Y")},
			prev:   "X",
			prefs:  prefsWith(func(p *model.Preferences) { p.ClearClipboardFirst = true }),
			want:   model.Action{Kind: model.ActionWriteClipboard, Text: "Y"},
		},
		{
			name:   "confirmation preference selects the confirm action",
			result: model.RecognitionResult{Spans: spans("hello")},
			prefs:  prefsWith(func(p *model.Preferences) { p.ConfirmBeforeCommit = true }),
			want:   model.Action{Kind: model.ActionWriteWithConfirm, Text: "hello"},
		},
		{
			name:   "qr payload follows text spans in detection order",
			result: model.RecognitionResult{Spans: spans("hello"), QRPayloads: []string{"qr-data"}},
			prefs: prefsWith(func(p *model.Preferences) {
				p.DetectQRCodes = true
				p.KeepLinebreaks = true
			}),
			want: model.Action{Kind: model.ActionWriteClipboard, Text: "hello\nqr-data"},
		},
		{
			name:   "qr payload ignored when detection is off",
			result: model.RecognitionResult{QRPayloads: []string{"qr-data"}},
			prefs:  prefsWith(nil),
			want:   model.Suppressed,
		},
		{
			name:   "qr-only result still commits",
			result: model.RecognitionResult{QRPayloads: []string{"qr-data"}},
			prefs:  prefsWith(func(p *model.Preferences) { p.DetectQRCodes = true }),
			want:   model.Action{Kind: model.ActionWriteClipboard, Text: "qr-data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.result, tt.prev, tt.prefs)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecide_Pure(t *testing.T) {
	result := model.RecognitionResult{
		Spans:      []model.TextSpan{{Text: "ab\ncd", Confidence: 0.7}, {Text: "ef", Confidence: 0.4}},
		QRPayloads: []string{"payload"},
	}
	prefs := prefsWith(func(p *model.Preferences) {
		p.Confidence = model.ConfidenceMedium
		p.DetectQRCodes = true
		p.AppendToClipboard = true
	})

	first := Decide(result, "X", prefs)
	second := Decide(result, "X", prefs)
	assert.Equal(t, first, second, "Decide must be deterministic for the same inputs")

	// The input result must not be mutated by the linebreak handling.
	assert.Equal(t, "ab\ncd", result.Spans[0].Text)
}
