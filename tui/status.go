package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func (a *App) replaceHomeWithTilde(p string) string {
	if a.userHomeDir == "" {
		return p
	}
	if after, ok := strings.CutPrefix(p, a.userHomeDir); ok {
		p = "~" + after
	}
	return p
}

func headerStatus(theme *Theme, rootPath string, elapsed time.Duration, final bool) string {
	state := fmt.Sprintf("[%s]Scanning[-]", theme.yellow.String())
	if final {
		state = fmt.Sprintf("[%s]Done[-]", theme.green.String())
	}
	return fmt.Sprintf(" %s %s | Elapsed: %s ", state, rootPath, elapsed.Round(time.Second))
}

func footerStatusMenu() string {
	return " [t/T]: Theme  [q/Q]: Quit"
}

func footerStatusScanning(path string) string {
	return " Scanning: " + path
}

func (a *App) updateStatus() {
	theme := a.currentTheme
	f := a.frame

	a.header.SetText(headerStatus(&theme, a.replaceHomeWithTilde(a.rootPath), f.Elapsed, f.Final))

	if f.Final || f.Stats.CurrentPath == "" {
		footer := footerStatusMenu()
		if f.Final {
			footer = fmt.Sprintf(" %s duplicate files, %s reclaimable |%s",
				humanize.Comma(f.Stats.DuplicateFiles),
				humanize.Bytes(uint64(f.Stats.DuplicateBytes)),
				footer,
			)
		}
		a.footer.SetText(footer)
		return
	}

	scanPath := a.replaceHomeWithTilde(f.Stats.CurrentPath)
	w, _ := a.app.GetScreenSize()
	w = w - 12
	if w > 0 && len(scanPath) > w {
		scanPath = "..." + scanPath[len(scanPath)-w:]
	}
	a.footer.SetText(footerStatusScanning(scanPath))
}
