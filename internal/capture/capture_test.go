package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textgrab/textgrab/internal/model"
)

func TestIsScreenshotFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/home/user/Desktop/Screenshot 2026-08-25 at 10.15.01.png", true},
		{"/home/user/Desktop/shot.PNG", true},
		{"/home/user/Desktop/photo.jpeg", true},
		{"/home/user/Desktop/photo.jpg", true},
		{"/home/user/Desktop/scan.tiff", true},
		{"/home/user/Desktop/anim.gif", true},
		{"/home/user/Desktop/.Screenshot in progress.png", false},
		{"/home/user/Desktop/notes.txt", false},
		{"/home/user/Desktop/archive.tar.gz", false},
		{"/home/user/Desktop/noextension", false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, IsScreenshotFile(tt.path))
		})
	}
}

func TestScreenshotWatcher_EmitsEventForNewImage(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewScreenshotWatcher(ScreenshotConfig{Dir: dir, Settle: 10 * time.Millisecond})
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	path := filepath.Join(dir, "Screenshot 2026-08-25 at 10.15.01.png")
	require.NoError(t, os.WriteFile(path, []byte("fake png"), 0o600))

	select {
	case event := <-w.Events():
		assert.Equal(t, model.SourceScreenshot, event.Source)
		assert.Equal(t, path, event.Path)
		assert.Empty(t, event.Image)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for screenshot event")
	}
}

func TestScreenshotWatcher_IgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewScreenshotWatcher(ScreenshotConfig{Dir: dir, Settle: 10 * time.Millisecond})
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.png"), []byte("png"), 0o600))

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event for %q", event.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestScreenshotWatcher_StartFailsForMissingDir(t *testing.T) {
	w := NewScreenshotWatcher(ScreenshotConfig{Dir: "/nonexistent/screenshots"})
	err := w.Start(context.Background())
	assert.Error(t, err)
}

// stubSource is a CaptureSource fed by the test.
type stubSource struct {
	name     string
	events   chan model.CaptureEvent
	startErr error
	stopped  bool
}

func (s *stubSource) Name() string                      { return s.name }
func (s *stubSource) Events() <-chan model.CaptureEvent { return s.events }
func (s *stubSource) Start(_ context.Context) error     { return s.startErr }
func (s *stubSource) Stop()                             { s.stopped = true }

func TestMerge_ForwardsFromAllSources(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &stubSource{name: "a", events: make(chan model.CaptureEvent, 2)}
	b := &stubSource{name: "b", events: make(chan model.CaptureEvent, 2)}

	merged, err := Merge(ctx, a, b)
	require.NoError(t, err)

	a.events <- model.CaptureEvent{Source: model.SourceScreenshot, Path: "/tmp/1.png"}
	b.events <- model.CaptureEvent{Source: model.SourcePasteboard, Image: []byte{1}}

	seen := map[model.CaptureSourceKind]int{}
	for i := 0; i < 2; i++ {
		select {
		case event := <-merged:
			seen[event.Source]++
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for merged events")
		}
	}
	assert.Equal(t, 1, seen[model.SourceScreenshot])
	assert.Equal(t, 1, seen[model.SourcePasteboard])
}

func TestMerge_PreservesPerSourceOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &stubSource{name: "a", events: make(chan model.CaptureEvent, 3)}
	src.events <- model.CaptureEvent{Path: "/tmp/1.png"}
	src.events <- model.CaptureEvent{Path: "/tmp/2.png"}
	src.events <- model.CaptureEvent{Path: "/tmp/3.png"}

	merged, err := Merge(ctx, src)
	require.NoError(t, err)

	var got []string
	for i := 0; i < 3; i++ {
		select {
		case event := <-merged:
			got = append(got, event.Path)
		case <-time.After(time.Second):
			t.Fatal("timed out")
		}
	}
	assert.Equal(t, []string{"/tmp/1.png", "/tmp/2.png", "/tmp/3.png"}, got)
}

func TestMerge_ClosesWhenSourcesClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &stubSource{name: "a", events: make(chan model.CaptureEvent)}
	merged, err := Merge(ctx, src)
	require.NoError(t, err)

	close(src.events)

	select {
	case _, ok := <-merged:
		assert.False(t, ok, "merged channel should close after sources close")
	case <-time.After(time.Second):
		t.Fatal("merged channel did not close")
	}
	assert.True(t, src.stopped)
}

func TestMerge_ReportsStartFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bad := &stubSource{name: "bad", events: make(chan model.CaptureEvent), startErr: assert.AnError}
	good := &stubSource{name: "good", events: make(chan model.CaptureEvent, 1)}

	merged, err := Merge(ctx, bad, good)
	assert.ErrorIs(t, err, assert.AnError)

	// The good source still delivers.
	good.events <- model.CaptureEvent{Path: "/tmp/ok.png"}
	select {
	case event := <-merged:
		assert.Equal(t, "/tmp/ok.png", event.Path)
	case <-time.After(time.Second):
		t.Fatal("good source did not deliver after partial failure")
	}
}
