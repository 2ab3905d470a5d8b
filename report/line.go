package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// Line writes one status line per frame, preceded by a legend.
type Line struct {
	w           io.Writer
	legendShown bool

	// ShowCurrent appends the sampled current path to running frames.
	ShowCurrent bool

	// ShowElapsed appends the elapsed scan time to every frame.
	ShowElapsed bool
}

func NewLine(w io.Writer) *Line {
	return &Line{w: w, ShowElapsed: true}
}

func (l *Line) Render(f Frame) {
	if !l.legendShown {
		fmt.Fprintln(l.w, "FC: File Count")
		fmt.Fprintln(l.w, "S: Size")
		fmt.Fprintln(l.w, "UFC: Unique File Count")
		fmt.Fprintln(l.w, "US: Unique Size")
		fmt.Fprintln(l.w, "R: Ratio of US to S")
		l.legendShown = true
	}

	st := f.Stats
	fmt.Fprintf(l.w, "FC: %s; S: %s; UFC: %s; US: %s; R: %.4f",
		humanize.Comma(st.Files),
		humanize.Bytes(uint64(st.Bytes)),
		humanize.Comma(st.DistinctFiles()),
		humanize.Bytes(uint64(st.DistinctBytes())),
		st.Ratio(),
	)
	if st.Errors > 0 {
		fmt.Fprintf(l.w, "; E: %s", humanize.Comma(st.Errors))
	}
	if l.ShowElapsed {
		fmt.Fprintf(l.w, "; T: %s", f.Elapsed.Round(time.Second))
	}
	if l.ShowCurrent && !f.Final && st.CurrentPath != "" {
		fmt.Fprintf(l.w, "; at %s", st.CurrentPath)
	}
	fmt.Fprintln(l.w)

	if f.Final {
		fmt.Fprintf(l.w, "Done: %s duplicate files, %s reclaimable\n",
			humanize.Comma(st.DuplicateFiles),
			humanize.Bytes(uint64(st.DuplicateBytes)),
		)
	}
}
