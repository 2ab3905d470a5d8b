package tui

import (
	"fmt"
	"os"
	"sync/atomic"

	"codeberg.org/tslocum/cview"
	"github.com/riadafridishibly/dedupscan/report"
)

type App struct {
	app *cview.Application
	cfg Config

	header     *cview.TextView
	footer     *cview.TextView
	table      *cview.Table
	panels     *cview.Panels
	themeModal *cview.Modal

	rootPath  string
	showTheme bool

	// Latest frame, only touched from queued UI updates.
	frame report.Frame

	finished atomic.Bool

	uiUpdates chan func()

	userHomeDir string

	currentTheme Theme
}

func (a *App) switchTheme(themeName string) {
	if th, ok := lookupTheme(themeName); ok {
		a.currentTheme = th
	}
}

func (a *App) applyTheme() {
	theme := a.currentTheme

	a.header.SetBackgroundColor(theme.headerBg)
	a.header.SetTextColor(theme.headerFg)

	a.footer.SetBackgroundColor(theme.footerBg)
	a.footer.SetTextColor(theme.footerFg)

	a.themeModal.SetBackgroundColor(theme.bg)
	a.themeModal.SetTextColor(theme.fg)
	a.themeModal.SetButtonBackgroundColor(theme.buttonBg)
	a.themeModal.SetButtonTextColor(theme.buttonFg)

	a.table.SetBackgroundColor(theme.bg)
	a.panels.SetBackgroundColor(theme.bg)

	a.trySendUIUpdate(func() {
		a.updateStatus()
		a.buildTable()
	})
}

func NewApp(scanPath string, cfg Config) (*App, error) {
	theme, ok := lookupTheme(cfg.Theme)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", cfg.Theme)
	}

	app := cview.NewApplication()

	header := cview.NewTextView()
	header.SetDynamicColors(true)
	header.SetTextAlign(cview.AlignCenter)

	footer := cview.NewTextView()
	footer.SetDynamicColors(true)
	footer.SetTextAlign(cview.AlignLeft)

	themeModal := cview.NewModal()
	themeModal.SetText("")
	themeNames := ThemeNames()
	themeModal.AddButtons(themeNames)

	panels := cview.NewPanels()
	table := cview.NewTable()
	panels.AddPanel("stats", table, true, true)

	a := &App{
		app:          app,
		cfg:          cfg,
		header:       header,
		footer:       footer,
		table:        table,
		panels:       panels,
		themeModal:   themeModal,
		rootPath:     scanPath,
		uiUpdates:    make(chan func(), 128),
		currentTheme: theme,
	}

	flex := cview.NewFlex()
	flex.SetDirection(cview.FlexRow)
	flex.AddItem(header, 1, 0, false)
	flex.AddItem(panels, 0, 1, true)
	flex.AddItem(footer, 1, 0, false)

	app.SetInputCapture(a.handleInput)

	themeModal.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		a.showTheme = false
		a.setRoot(flex, true)

		if buttonIndex >= 0 && buttonIndex < len(themeNames) {
			a.switchTheme(buttonLabel)
			a.applyTheme()
		}
	})

	if cfg.ReplaceHomeWithTilde {
		// Without a home directory paths are shown as they are.
		if home, err := os.UserHomeDir(); err == nil {
			a.userHomeDir = home
		}
	}

	a.setRoot(flex, true)
	a.applyTheme()

	return a, nil
}

func (a *App) showThemeSelector() {
	theme := a.currentTheme
	text := fmt.Sprintf("Select Theme (Current: [%s]%s[-])", theme.orange.String(), theme.Name)
	a.themeModal.SetText(text)
	a.showTheme = true
	a.setRoot(a.themeModal, false)
}

// Finished reports whether the final frame has been rendered.
func (a *App) Finished() bool {
	return a.finished.Load()
}

// Run polls src in the background and blocks until the user quits.
func (a *App) Run(src report.Source) error {
	go func() {
		for updateFn := range a.uiUpdates {
			a.app.QueueUpdateDraw(updateFn)
		}
	}()
	go report.Poll(src, a.cfg.ProgressUpdateFreq, a)
	return a.app.Run()
}
