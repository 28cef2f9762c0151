package pox

import "fmt"

// Function is a user-defined, closure-capturing Callable: its declaration
// AST plus the environment active when the `fn` statement ran.
type Function struct {
	declaration *FunctionStmt
	closure     *Environment
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme) }

func (f *Function) Arity() int { return len(f.declaration.Params) }

// Call runs the function body in a fresh environment enclosed by the
// function's closure — not the caller's environment, which is what gives
// Pox lexical (rather than dynamic) scoping. A Return escape supplies the
// result; falling off the end of the body yields Nil.
func (f *Function) Call(interp *Interpreter, args []Value) (result Value, err error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			if sig, ok := r.(returnSignal); ok {
				result, err = sig.value, nil
				return
			}
			panic(r)
		}
	}()

	if rtErr := interp.executeBlock(f.declaration.Body, env); rtErr != nil {
		return nil, rtErr
	}
	return Nil, nil
}

// Builtin is a native Callable, e.g. clock.
type Builtin struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Value) (Value, error)
}

func (b *Builtin) String() string { return fmt.Sprintf("<fn %s>", b.name) }
func (b *Builtin) Arity() int     { return b.arity }
func (b *Builtin) Call(interp *Interpreter, args []Value) (Value, error) {
	return b.fn(interp, args)
}
