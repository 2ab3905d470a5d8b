package tui

import (
	"codeberg.org/tslocum/cview"
	"github.com/riadafridishibly/dedupscan/report"
)

func (a *App) trySendUIUpdate(f func()) {
	select {
	case a.uiUpdates <- f:
	default:
	}
}

// setRoot queues a SetRoot operation to avoid data races
func (a *App) setRoot(primitive cview.Primitive, focus bool) {
	a.app.QueueUpdateDraw(func() {
		a.app.SetRoot(primitive, focus)
	})
}

// Render implements report.Renderer. Intermediate frames may be dropped when
// the UI falls behind; the final one never is.
func (a *App) Render(f report.Frame) {
	update := func() {
		a.frame = f
		a.buildTable()
		a.updateStatus()
	}
	if !f.Final {
		a.trySendUIUpdate(update)
		return
	}
	a.uiUpdates <- update
	a.finished.Store(true)
}
