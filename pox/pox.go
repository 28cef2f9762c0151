// Package pox implements the Pox language pipeline: a lexical scanner, a
// recursive-descent parser, a static resolver, and a tree-walking
// evaluator with lexically scoped environments and first-class closures.
//
// The package never performs its own I/O beyond the io.Writer a caller
// supplies for print output; scan/parse/resolve diagnostics and runtime
// errors are reported through a diagnostic.Reporter, leaving process
// lifecycle (exit codes, REPL loop, file reading) to the caller.
package pox

import (
	"io"

	"github.com/plu7o/pox/internal/diagnostic"
)

// Session runs successive chunks of Pox source against one persistent
// global environment, the shape both the REPL and a single file run need:
// a file run is simply one Session.Run call.
type Session struct {
	interp *Interpreter
}

// NewSession creates a Session whose print output goes to stdout.
func NewSession(stdout io.Writer) *Session {
	return &Session{interp: NewInterpreter(nil, stdout)}
}

// Run scans, parses, resolves, and (if no compile-time diagnostic fired)
// evaluates source, reporting everything it finds through reporter.
// It returns the runtime error, if any, purely so callers that want it as
// a Go error (e.g. tests) don't have to unwrap the reporter's diagnostics.
func (s *Session) Run(source string, reporter diagnostic.Reporter) error {
	collector := &diagnostic.Collector{}
	report := diagnostic.Reporter(collector)
	if reporter != nil {
		report = multiReporter{collector, reporter}
	}

	scanner := NewScanner(source, report)
	tokens := scanner.Scan()

	parser := NewParser(tokens, report)
	stmts := parser.Parse()

	if collector.HadError() {
		return nil
	}

	resolver := NewResolver(report)
	locals := resolver.Resolve(stmts)

	if collector.HadError() {
		return nil
	}

	// Merge rather than replace: functions declared by an earlier Run still
	// need the depths recorded for their bodies.
	if s.interp.locals == nil {
		s.interp.locals = make(map[Expr]int)
	}
	for expr, depth := range locals {
		s.interp.locals[expr] = depth
	}
	if err := s.interp.Interpret(stmts); err != nil {
		var rtErr *RuntimeError
		if asRuntimeError(err, &rtErr) {
			report.Report(rtErr.Diagnostic())
		}
		return err
	}
	return nil
}

// multiReporter fans a Diagnostic out to every Reporter it wraps.
type multiReporter []diagnostic.Reporter

func (m multiReporter) Report(d *diagnostic.Diagnostic) {
	for _, r := range m {
		r.Report(d)
	}
}

func asRuntimeError(err error, target **RuntimeError) bool {
	if rt, ok := err.(*RuntimeError); ok {
		*target = rt
		return true
	}
	return false
}
