package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textgrab/textgrab/internal/common"
	"github.com/textgrab/textgrab/internal/model"
)

func screenshotEvent(path string) model.CaptureEvent {
	return model.CaptureEvent{At: time.Now(), Source: model.SourceScreenshot, Path: path}
}

func TestEngine_HandleEvent_CommitsAndNotifies(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("hello world")}}
	pasteboard := &mockPasteboard{}
	notifier := &mockNotifier{}
	confirmer := &mockConfirmer{}
	prefs := newMockPrefStore(prefsWith(nil))

	e := New(prefs, recognizer, pasteboard, notifier, confirmer)
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	assert.Equal(t, "hello world", pasteboard.content)
	require.Len(t, notifier.bodies, 1)
	assert.Equal(t, "hello world", notifier.bodies[0])
	assert.Empty(t, confirmer.asked)
	assert.Equal(t, Stats{Processed: 1, Committed: 1}, e.Stats())
}

func TestEngine_HandleEvent_PausedSkipsRecognition(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("hello")}}
	pasteboard := &mockPasteboard{}
	prefs := newMockPrefStore(prefsWith(func(p *model.Preferences) { p.Paused = true }))

	e := New(prefs, recognizer, pasteboard, &mockNotifier{}, &mockConfirmer{})
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	assert.Zero(t, recognizer.calls, "no recognition call should be issued while paused")
	assert.Empty(t, pasteboard.writes)
	assert.Equal(t, Stats{Processed: 1, Suppressed: 1}, e.Stats())
}

func TestEngine_HandleEvent_RecognitionFailureIsSilent(t *testing.T) {
	recognizer := &mockRecognizer{err: common.ErrRecognitionUnavailable}
	pasteboard := &mockPasteboard{}
	notifier := &mockNotifier{}
	prefs := newMockPrefStore(prefsWith(nil))

	e := New(prefs, recognizer, pasteboard, notifier, &mockConfirmer{})
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	assert.Empty(t, pasteboard.writes)
	assert.Empty(t, notifier.bodies)
	assert.Equal(t, Stats{Processed: 1, Suppressed: 1}, e.Stats())
}

func TestEngine_HandleEvent_ConfirmRejectNeverWrites(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("secret")}}
	pasteboard := &mockPasteboard{content: "untouched"}
	notifier := &mockNotifier{}
	confirmer := &mockConfirmer{accept: false}
	prefs := newMockPrefStore(prefsWith(func(p *model.Preferences) {
		p.ConfirmBeforeCommit = true
		p.Notify = true
	}))

	e := New(prefs, recognizer, pasteboard, notifier, confirmer)
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	require.Len(t, confirmer.asked, 1)
	assert.Equal(t, "untouched", pasteboard.content, "rejection must not mutate the clipboard")
	assert.Empty(t, notifier.bodies, "rejection must not notify even with notify enabled")
	assert.Equal(t, Stats{Processed: 1, Rejected: 1}, e.Stats())
}

func TestEngine_HandleEvent_ConfirmAcceptCommits(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("approved")}}
	pasteboard := &mockPasteboard{}
	confirmer := &mockConfirmer{accept: true}
	prefs := newMockPrefStore(prefsWith(func(p *model.Preferences) { p.ConfirmBeforeCommit = true }))

	e := New(prefs, recognizer, pasteboard, &mockNotifier{}, confirmer)
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	assert.Equal(t, "approved", pasteboard.content)
	assert.Equal(t, Stats{Processed: 1, Committed: 1}, e.Stats())
}

func TestEngine_HandleEvent_AppendReadsPreviousClipboard(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("new")}}
	pasteboard := &mockPasteboard{content: "old"}
	prefs := newMockPrefStore(prefsWith(func(p *model.Preferences) { p.AppendToClipboard = true }))

	e := New(prefs, recognizer, pasteboard, &mockNotifier{}, &mockConfirmer{})
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	assert.Equal(t, "old\nnew", pasteboard.content)
}

func TestEngine_HandleEvent_ClipboardWriteFailureDropsEvent(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("text")}}
	pasteboard := &mockPasteboard{writeErr: errors.New("pasteboard denied")}
	notifier := &mockNotifier{}
	prefs := newMockPrefStore(prefsWith(nil))

	e := New(prefs, recognizer, pasteboard, notifier, &mockConfirmer{})
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	assert.Empty(t, notifier.bodies)
	assert.Equal(t, Stats{Processed: 1, Suppressed: 1}, e.Stats())
}

func TestEngine_HandleEvent_NotifyDisabled(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("quiet")}}
	notifier := &mockNotifier{}
	prefs := newMockPrefStore(prefsWith(func(p *model.Preferences) { p.Notify = false }))

	e := New(prefs, recognizer, &mockPasteboard{}, notifier, &mockConfirmer{})
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	assert.Empty(t, notifier.bodies)
}

func TestEngine_HandleEvent_ImageEventUsesImageRecognition(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("from clipboard")}}
	prefs := newMockPrefStore(prefsWith(nil))

	e := New(prefs, recognizer, &mockPasteboard{}, &mockNotifier{}, &mockConfirmer{})
	e.HandleEvent(context.Background(), model.CaptureEvent{
		At:     time.Now(),
		Source: model.SourcePasteboard,
		Image:  []byte{0x89, 0x50},
	})

	assert.Equal(t, []byte{0x89, 0x50}, recognizer.lastImage)
	assert.Empty(t, recognizer.lastPath)
}

func TestEngine_Run_ProcessesEventsInOrder(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("a")}}
	pasteboard := &mockPasteboard{}
	prefs := newMockPrefStore(prefsWith(nil))

	e := New(prefs, recognizer, pasteboard, &mockNotifier{}, &mockConfirmer{})

	events := make(chan model.CaptureEvent, 3)
	events <- screenshotEvent("/tmp/1.png")
	events <- screenshotEvent("/tmp/2.png")
	events <- screenshotEvent("/tmp/3.png")
	close(events)

	err := e.Run(context.Background(), events)
	require.NoError(t, err)
	assert.Equal(t, 3, recognizer.calls)
	assert.Equal(t, "/tmp/3.png", recognizer.lastPath)
	assert.Len(t, pasteboard.writes, 3)
}

func TestEngine_Run_StopsOnContextCancel(t *testing.T) {
	prefs := newMockPrefStore(prefsWith(nil))
	e := New(prefs, &mockRecognizer{}, &mockPasteboard{}, &mockNotifier{}, &mockConfirmer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Run(ctx, make(chan model.CaptureEvent))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LastTransaction(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("copied")}}
	prefs := newMockPrefStore(prefsWith(nil))

	e := New(prefs, recognizer, &mockPasteboard{}, &mockNotifier{}, &mockConfirmer{})

	_, ok := e.LastTransaction()
	assert.False(t, ok, "no transaction before the first commit")

	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	tx, ok := e.LastTransaction()
	require.True(t, ok)
	assert.True(t, tx.Committed)
	assert.Equal(t, "copied", tx.Text)
	assert.Equal(t, model.SourceScreenshot, tx.Source)
	assert.False(t, tx.CommittedAt.IsZero())
}

func TestEngine_LastTransaction_WriteFailure(t *testing.T) {
	recognizer := &mockRecognizer{result: model.RecognitionResult{Spans: spans("lost")}}
	pasteboard := &mockPasteboard{writeErr: errors.New("pasteboard denied")}
	prefs := newMockPrefStore(prefsWith(nil))

	e := New(prefs, recognizer, pasteboard, &mockNotifier{}, &mockConfirmer{})
	e.HandleEvent(context.Background(), screenshotEvent("/tmp/shot.png"))

	tx, ok := e.LastTransaction()
	require.True(t, ok)
	assert.False(t, tx.Committed)
	assert.Equal(t, "lost", tx.Text)
}

func TestRecognitionLanguages(t *testing.T) {
	prefs := prefsWith(func(p *model.Preferences) {
		p.PrimaryLanguage = "deu"
		p.AlwaysDetectEnglish = true
	})
	assert.Equal(t, []string{"deu", "eng"}, RecognitionLanguages(prefs))

	prefs.PrimaryLanguage = "eng"
	assert.Equal(t, []string{"eng"}, RecognitionLanguages(prefs))

	prefs.AlwaysDetectEnglish = false
	prefs.PrimaryLanguage = "fra"
	assert.Equal(t, []string{"fra"}, RecognitionLanguages(prefs))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 80))
	long := make([]rune, 0, 100)
	for i := 0; i < 100; i++ {
		long = append(long, 'x')
	}
	got := Preview(string(long), 80)
	assert.Equal(t, 81, len([]rune(got)))
	assert.Equal(t, '…', []rune(got)[80])
}
