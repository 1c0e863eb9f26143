package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/jamesainslie/sift/pkg/sift/types"
)

// writerIsTerminal reports whether w is a terminal.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// stdioIsTerminal reports whether both stdin and stdout are terminals, which
// is required to prompt for a path.
func stdioIsTerminal() bool {
	return writerIsTerminal(os.Stdout) &&
		(isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))
}

// progressLine rewrites a single status line while a scan runs.
type progressLine struct {
	w     io.Writer
	width int
}

func newProgressLine(w io.Writer) *progressLine {
	return &progressLine{w: w}
}

// Update replaces the line with the latest progress.
func (p *progressLine) Update(sp types.ScanProgress) {
	line := fmt.Sprintf("Scanning... %s files, %s in %s directories",
		types.FormatCount(sp.FilesScanned),
		types.FormatSize(sp.BytesScanned),
		types.FormatCount(sp.DirsScanned),
	)
	pad := ""
	if n := p.width - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	p.width = len(line)
	fmt.Fprintf(p.w, "\r%s%s", line, pad)
}

// Clear erases the line.
func (p *progressLine) Clear() {
	if p.width == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
	p.width = 0
}
