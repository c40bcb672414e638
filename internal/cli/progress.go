package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/danieljhkim/imgdup/internal/planner"
)

// progressReporter receives one call per written copy.
type progressReporter interface {
	Add(op planner.Operation)
	Finish()
}

// newProgressReporter picks how copy progress is shown: nothing when quiet,
// a progress bar on terminals, one line per copy otherwise.
func newProgressReporter(w io.Writer, total int, quiet, lines bool) progressReporter {
	if quiet {
		return noopReporter{}
	}
	if !lines && isTerminal(w) {
		return newBarReporter(w, total)
	}
	return &lineReporter{w: w}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type noopReporter struct{}

func (noopReporter) Add(planner.Operation) {}
func (noopReporter) Finish()               {}

type lineReporter struct {
	w io.Writer
}

func (r *lineReporter) Add(op planner.Operation) {
	_, _ = dimColor.Fprintf(r.w, "--> Copying image: %s (copy %d)\n", op.Image, op.Index)
}

func (r *lineReporter) Finish() {}

type barReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newBarReporter(w io.Writer, total int) *barReporter {
	return &barReporter{
		w: w,
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Copying images"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (r *barReporter) Add(planner.Operation) {
	_ = r.bar.Add(1)
}

func (r *barReporter) Finish() {
	_ = r.bar.Finish()
	_, _ = fmt.Fprintln(r.w)
}
