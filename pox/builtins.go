package pox

import "time"

// defineGlobals installs the single predefined builtin: clock, a
// zero-arity function returning wall-clock seconds since the epoch as a
// float.
func defineGlobals(env *Environment) {
	env.Define("clock", &Builtin{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []Value) (Value, error) {
			return NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}
