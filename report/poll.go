package report

import (
	"time"

	"github.com/riadafridishibly/dedupscan/scanner"
)

const DefaultInterval = 500 * time.Millisecond

// Source is what the reporter polls. *scanner.Scanner satisfies it.
type Source interface {
	Snapshot() scanner.Stats
	Done() <-chan struct{}
	ElapsedTime() time.Duration
}

type Frame struct {
	Stats   scanner.Stats
	Elapsed time.Duration
	Final   bool
}

type Renderer interface {
	Render(f Frame)
}

type RendererFunc func(f Frame)

func (fn RendererFunc) Render(f Frame) { fn(f) }

// Poll renders a snapshot of src every interval until the worker finishes.
// Completion is observed before the snapshot is taken, so the last frame
// always reflects a state at or after completion.
func Poll(src Source, interval time.Duration, r Renderer) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	done := src.Done()
	for {
		select {
		case <-ticker.C:
		case <-done:
		}

		finished := isClosed(done)
		r.Render(Frame{
			Stats:   src.Snapshot(),
			Elapsed: src.ElapsedTime(),
			Final:   finished,
		})
		if finished {
			return
		}
	}
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
