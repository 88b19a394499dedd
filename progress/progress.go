// Package progress draws a single-line terminal indicator for long scraping
// runs, in the spirit of a progress bar with an unknown total.
package progress

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bit101/go-ansi"
	"golang.org/x/term"
)

// Bar rewrites one status line in place. A nil *Bar is valid and routes Logf
// output to the standard logger, so callers never need to branch on whether
// a progress display is active.
type Bar struct {
	out       *os.File
	width     int
	collected int
	saved     int
	note      string
}

// NewBar returns a bar drawing to out, or nil when out is not a terminal.
func NewBar(out *os.File) *Bar {
	if !term.IsTerminal(int(out.Fd())) {
		return nil
	}
	width, _, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return &Bar{out: out, width: width}
}

// Advance records one newly collected post and redraws.
func (b *Bar) Advance(note string) {
	if b == nil {
		return
	}
	b.collected++
	b.note = note
	b.render()
}

// SetSaved updates the persisted-post count shown on the line.
func (b *Bar) SetSaved(n int) {
	if b == nil {
		return
	}
	b.saved = n
	b.render()
}

// Logf prints a message above the bar, or through the standard logger when
// no bar is active.
func (b *Bar) Logf(format string, args ...any) {
	if b == nil {
		log.Printf(format, args...)
		return
	}
	b.clear()
	fmt.Fprintf(b.out, format+"\n", args...)
	b.render()
}

// Close finishes the line so subsequent output starts fresh.
func (b *Bar) Close() {
	if b == nil {
		return
	}
	fmt.Fprintln(b.out)
}

func (b *Bar) clear() {
	fmt.Fprintf(b.out, "\r%s\r", strings.Repeat(" ", b.width-1))
}

func (b *Bar) render() {
	line := fmt.Sprintf("Posts saved: %d | collected this run: %d", b.saved, b.collected)
	if b.note != "" {
		line += " | last: " + b.note
	}
	if runes := []rune(line); len(runes) > b.width-1 {
		line = string(runes[:b.width-1])
	}
	b.clear()
	ansi.Fprintf(b.out, ansi.Green, "%s", line)
}
