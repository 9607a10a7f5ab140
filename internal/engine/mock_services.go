package engine

import (
	"context"
	"sync"

	"github.com/textgrab/textgrab/internal/model"
	"github.com/textgrab/textgrab/internal/service"
)

// mockPrefStore is a test implementation of service.PreferenceStore.
type mockPrefStore struct {
	mu    sync.Mutex
	prefs model.Preferences
}

func newMockPrefStore(prefs model.Preferences) *mockPrefStore {
	return &mockPrefStore{prefs: prefs}
}

func (m *mockPrefStore) Snapshot() model.Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

func (m *mockPrefStore) SetConfidence(level model.ConfidenceLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.Confidence = level
	return nil
}

func (m *mockPrefStore) SetPrimaryLanguage(code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.PrimaryLanguage = code
	return nil
}

func (m *mockPrefStore) SetScreenshotDir(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.ScreenshotDir = dir
	return nil
}

func (m *mockPrefStore) SetAppendSeparator(sep string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.AppendSeparator = sep
	return nil
}

func (m *mockPrefStore) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key == "paused" {
		m.prefs.Paused = value
	}
	return nil
}

func (m *mockPrefStore) Close() error { return nil }

// mockRecognizer returns a canned result and records calls.
type mockRecognizer struct {
	result    model.RecognitionResult
	err       error
	calls     int
	lastOpts  service.RecognizeOptions
	lastPath  string
	lastImage []byte
}

func (m *mockRecognizer) RecognizeFile(_ context.Context, path string, opts service.RecognizeOptions) (model.RecognitionResult, error) {
	m.calls++
	m.lastPath = path
	m.lastOpts = opts
	return m.result, m.err
}

func (m *mockRecognizer) RecognizeImage(_ context.Context, img []byte, opts service.RecognizeOptions) (model.RecognitionResult, error) {
	m.calls++
	m.lastImage = img
	m.lastOpts = opts
	return m.result, m.err
}

// mockPasteboard is an in-memory clipboard.
type mockPasteboard struct {
	content  string
	readErr  error
	writeErr error
	writes   []string
}

func (m *mockPasteboard) ReadText() (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.content, nil
}

func (m *mockPasteboard) WriteText(text string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.content = text
	m.writes = append(m.writes, text)
	return nil
}

// mockNotifier records notifications.
type mockNotifier struct {
	titles []string
	bodies []string
	err    error
}

func (m *mockNotifier) Notify(title, body string) error {
	if m.err != nil {
		return m.err
	}
	m.titles = append(m.titles, title)
	m.bodies = append(m.bodies, body)
	return nil
}

// mockConfirmer answers every prompt with a fixed verdict.
type mockConfirmer struct {
	accept bool
	err    error
	asked  []string
}

func (m *mockConfirmer) Confirm(_ context.Context, text string) (bool, error) {
	m.asked = append(m.asked, text)
	if m.err != nil {
		return false, m.err
	}
	return m.accept, nil
}
