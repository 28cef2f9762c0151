// Package diagnostic defines the structured error values produced by each
// stage of the Pox pipeline and the format used to render them on the wire.
package diagnostic

import "fmt"

// Stage identifies which pipeline component raised a Diagnostic.
type Stage int

const (
	Lex Stage = iota
	Parse
	Resolve
	Runtime
)

func (s Stage) String() string {
	switch s {
	case Lex, Parse, Resolve:
		return "compile"
	case Runtime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Diagnostic is a single reported problem, tied to a source line.
//
// Where is empty, " at end", or ` at "<lexeme>"`, matching the format a
// parser error needs; Lex and Runtime diagnostics leave it empty.
type Diagnostic struct {
	Stage   Stage
	Line    int
	Where   string
	Message string
}

func (d *Diagnostic) Error() string {
	if d.Stage == Runtime {
		return fmt.Sprintf("[Line %d]: Runtime Error: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("[Line: %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter receives diagnostics as the pipeline produces them. The core
// language package never writes to stdout/stderr directly; it always goes
// through a Reporter so the CLI, REPL, and tests can each decide what to do
// with a failure.
type Reporter interface {
	Report(d *Diagnostic)
}

// Collector is a Reporter that simply accumulates every Diagnostic it sees,
// useful for tests and for the REPL, which wants to print everything found
// in a single line of input before returning to the prompt.
type Collector struct {
	Diagnostics []*Diagnostic
}

func (c *Collector) Report(d *Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

func (c *Collector) HadError() bool {
	return len(c.Diagnostics) > 0
}
