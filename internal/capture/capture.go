// Package capture produces raw image events from the screenshot directory
// and the system pasteboard. All sources feed a single merged channel so the
// downstream pipeline consumes events one at a time, in arrival order.
package capture

import (
	"context"
	"sync"

	"github.com/textgrab/textgrab/internal/model"
	"github.com/textgrab/textgrab/internal/service"
)

// defaultBuffer bounds each source's event channel. Triggers are human-scale
// (manual screenshots), so a small buffer is plenty.
const defaultBuffer = 16

// Merge starts every source and forwards their events into one channel.
// The returned channel closes once the context is canceled and all sources
// have drained. Sources that fail to start are skipped; the error of the
// first failure is returned alongside the merged channel so the caller can
// decide whether a partial watch is acceptable.
func Merge(ctx context.Context, sources ...service.CaptureSource) (<-chan model.CaptureEvent, error) {
	out := make(chan model.CaptureEvent)

	var wg sync.WaitGroup
	var firstErr error

	for _, src := range sources {
		if err := src.Start(ctx); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		wg.Add(1)
		go func(src service.CaptureSource) {
			defer wg.Done()
			defer src.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case event, ok := <-src.Events():
					if !ok {
						return
					}
					select {
					case out <- event:
					case <-ctx.Done():
						return
					}
				}
			}
		}(src)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, firstErr
}
