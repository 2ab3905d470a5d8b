package tui

import (
	"maps"
	"slices"

	"github.com/gdamore/tcell/v3"
)

type Theme struct {
	Name     string
	bg       tcell.Color
	fg       tcell.Color
	red      tcell.Color
	green    tcell.Color
	yellow   tcell.Color
	orange   tcell.Color
	headerBg tcell.Color
	headerFg tcell.Color
	footerBg tcell.Color
	footerFg tcell.Color
	buttonBg tcell.Color
	buttonFg tcell.Color
}

var themes = map[string]Theme{
	"gruvbox-dark": {
		Name:     "Gruvbox Dark",
		bg:       tcell.NewRGBColor(40, 40, 40),
		fg:       tcell.NewRGBColor(235, 219, 178),
		red:      tcell.NewRGBColor(204, 36, 29),
		green:    tcell.NewRGBColor(152, 151, 26),
		yellow:   tcell.NewRGBColor(215, 153, 33),
		orange:   tcell.NewRGBColor(214, 93, 14),
		headerBg: tcell.NewRGBColor(214, 93, 14),
		headerFg: tcell.NewRGBColor(60, 56, 54),
		footerBg: tcell.NewRGBColor(60, 56, 54),
		footerFg: tcell.NewRGBColor(235, 219, 178),
		buttonBg: tcell.NewRGBColor(214, 93, 14),
		buttonFg: tcell.NewRGBColor(60, 56, 54),
	},
	"nord": {
		Name:     "Nord",
		bg:       tcell.NewRGBColor(46, 52, 64),
		fg:       tcell.NewRGBColor(216, 222, 233),
		red:      tcell.NewRGBColor(191, 97, 106),
		green:    tcell.NewRGBColor(163, 190, 140),
		yellow:   tcell.NewRGBColor(235, 203, 139),
		orange:   tcell.NewRGBColor(208, 135, 112),
		headerBg: tcell.NewRGBColor(129, 161, 193),
		headerFg: tcell.NewRGBColor(46, 52, 64),
		footerBg: tcell.NewRGBColor(67, 76, 94),
		footerFg: tcell.NewRGBColor(216, 222, 233),
		buttonBg: tcell.NewRGBColor(129, 161, 193),
		buttonFg: tcell.NewRGBColor(46, 52, 64),
	},
	"dracula": {
		Name:     "Dracula",
		bg:       tcell.NewRGBColor(40, 42, 54),
		fg:       tcell.NewRGBColor(248, 248, 242),
		red:      tcell.NewRGBColor(255, 85, 85),
		green:    tcell.NewRGBColor(80, 250, 123),
		yellow:   tcell.NewRGBColor(241, 250, 140),
		orange:   tcell.NewRGBColor(255, 184, 108),
		headerBg: tcell.NewRGBColor(189, 147, 249),
		headerFg: tcell.NewRGBColor(40, 42, 54),
		footerBg: tcell.NewRGBColor(68, 71, 90),
		footerFg: tcell.NewRGBColor(248, 248, 242),
		buttonBg: tcell.NewRGBColor(189, 147, 249),
		buttonFg: tcell.NewRGBColor(40, 42, 54),
	},
}

func ThemeNames() []string {
	return slices.Sorted(maps.Keys(themes))
}

func lookupTheme(name string) (Theme, bool) {
	th, ok := themes[name]
	return th, ok
}
