package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"zhbatch/internal/task"
)

// progressPrinter renders per-item progress. On a terminal it redraws one
// line; otherwise it prints a line per item when verbose.
type progressPrinter struct {
	out     io.Writer
	tty     bool
	verbose bool
	drawn   bool
}

func newProgressPrinter(out io.Writer, verbose bool) *progressPrinter {
	return &progressPrinter{out: out, tty: isTerminal(out), verbose: verbose}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *progressPrinter) update(ev task.Progress) {
	switch {
	case p.tty:
		fmt.Fprintf(p.out, "\r\033[K[%d/%d] %s %s", ev.Index, ev.Total, ev.Status.Label(), filepath.Base(ev.Path))
		p.drawn = true
	case p.verbose:
		fmt.Fprintf(p.out, "[%d/%d] %s %s\n", ev.Index, ev.Total, ev.Status, ev.Path)
	}
}

func (p *progressPrinter) done() {
	if p.drawn {
		fmt.Fprintln(p.out)
		p.drawn = false
	}
}
