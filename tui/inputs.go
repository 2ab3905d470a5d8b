package tui

import "github.com/gdamore/tcell/v3"

func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if a.showTheme {
		// vi key binding for modal button selection
		switch event.Str() {
		case "l":
			return tcell.NewEventKey(tcell.KeyRight, tcell.KeyNames[tcell.KeyRight], tcell.ModNone)
		case "h":
			return tcell.NewEventKey(tcell.KeyLeft, tcell.KeyNames[tcell.KeyLeft], tcell.ModNone)
		}
		return event
	}

	switch event.Str() {
	case "q", "Q":
		// The scan has no cancellation path; quitting ends the process.
		a.app.Stop()
		return nil
	case "t", "T":
		a.showThemeSelector()
		return nil
	}

	return event
}
