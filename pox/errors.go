package pox

import "github.com/plu7o/pox/internal/diagnostic"

// RuntimeError is returned by evaluate/execute when a program fails at run
// time. It carries the line of the token most responsible for the failure
// (the operator or call-site paren).
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func (e *RuntimeError) Diagnostic() *diagnostic.Diagnostic {
	return &diagnostic.Diagnostic{Stage: diagnostic.Runtime, Line: e.Line, Message: e.Message}
}

func runtimeErrorAt(line int, message string) *RuntimeError {
	return &RuntimeError{Line: line, Message: message}
}

// returnSignal is the non-local exit a `return` statement raises. It is a
// control-flow mechanism, not an error: it propagates via panic/recover
// and is caught exactly at the function-call boundary that
// invoked the body, never anywhere else, and is never wrapped in the
// error-returning evaluate/execute path so a caller checking `err != nil`
// can't accidentally swallow it.
type returnSignal struct {
	value Value
}
