package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer renders Diagnostics to an io.Writer, colorizing the message red
// with fatih/color when writing to a terminal, plain otherwise.
type Printer struct {
	w        io.Writer
	useColor bool
}

func NewPrinter(w io.Writer, useColor bool) *Printer {
	return &Printer{w: w, useColor: useColor}
}

func (p *Printer) Report(d *Diagnostic) {
	msg := d.Message
	if p.useColor {
		msg = color.RedString(msg)
	}

	if d.Stage == Runtime {
		fmt.Fprintf(p.w, "[Line %d]: Runtime Error: %s\n", d.Line, msg)
		return
	}
	fmt.Fprintf(p.w, "[Line: %d] Error%s: %s\n", d.Line, d.Where, msg)
}
