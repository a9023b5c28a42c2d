package main

import (
	"fmt"
	"io"

	"github.com/stefanbringuier/genamorph/internal/amorph"
)

// progressPrinter renders a single-line progress indicator, rewritten in
// place once per placed atom.
type progressPrinter struct {
	out       io.Writer
	fallbacks int
	started   bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{out: out}
}

// Observe is the amorph.ProgressFunc hook.
func (p *progressPrinter) Observe(placed, total int, sp amorph.Species, fallback bool) {
	p.started = true
	if fallback {
		p.fallbacks++
	}
	fmt.Fprintf(p.out, "\rplacing atoms: %d/%d", placed, total)
	if p.fallbacks > 0 {
		fmt.Fprintf(p.out, " (%d fallbacks)", p.fallbacks)
	}
}

// Finish terminates the progress line.
func (p *progressPrinter) Finish() {
	if p.started {
		fmt.Fprintln(p.out)
	}
}
