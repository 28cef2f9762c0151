package pox

import (
	"fmt"
	"io"
)

// Interpreter walks statements against a chain of Environments, consulting
// the resolver's locals table to resolve Variable/Assign nodes at a known
// depth instead of walking the environment chain from scratch each time.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[Expr]int
	stdout  io.Writer
}

// NewInterpreter builds an Interpreter with a fresh global environment
// (seeded with the builtins) and the resolver's locals table. stdout
// receives print statement output; it is always distinct from wherever
// diagnostics are reported.
func NewInterpreter(locals map[Expr]int, stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	defineGlobals(globals)
	return &Interpreter{globals: globals, env: globals, locals: locals, stdout: stdout}
}

// Interpret runs a whole program's statements in order, stopping at the
// first runtime error.
func (i *Interpreter) Interpret(stmts []Stmt) error {
	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --------------- statements --------------- //

func (i *Interpreter) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := i.evaluate(s.Expr)
		return err

	case *PrintStmt:
		v, err := i.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.stdout, v.String())
		return nil

	case *VarStmt:
		value := Value(Nil)
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		i.env.Define(s.Name.Lexeme, value)
		return nil

	case *BlockStmt:
		return i.executeBlock(s.Statements, NewEnvironment(i.env))

	case *IfStmt:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return i.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			return i.execute(s.ElseBranch)
		}
		return nil

	case *WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := i.execute(s.Body); err != nil {
				return err
			}
		}

	case *FunctionStmt:
		fn := &Function{declaration: s, closure: i.env}
		i.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ReturnStmt:
		value := Value(Nil)
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		panic(returnSignal{value: value})

	default:
		return runtimeErrorAt(stmt.Line(), fmt.Sprintf("unhandled statement type %T", stmt))
	}
}

// executeBlock runs stmts against env, restoring the previous environment
// on every exit path (normal return, error, or a Return panic unwinding
// through it).
func (i *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// --------------- expressions --------------- //

func (i *Interpreter) evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		return e.Value, nil

	case *Grouping:
		return i.evaluate(e.Inner)

	case *Unary:
		right, err := i.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op.Type {
		case BANG:
			return BoolValue(!IsTruthy(right)), nil
		case MINUS:
			n, ok := right.(NumberValue)
			if !ok {
				return nil, runtimeErrorAt(e.Op.Line, "Operand must be a number.")
			}
			return -n, nil
		}
		return nil, runtimeErrorAt(e.Op.Line, "unreachable unary operator "+e.Op.Type.String())

	case *Binary:
		return i.evaluateBinary(e)

	case *Logical:
		left, err := i.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		truthy := IsTruthy(left)
		if e.Op.Type == OR {
			if truthy {
				return left, nil
			}
			return i.evaluate(e.Right)
		}
		// AND
		if !truthy {
			return left, nil
		}
		return i.evaluate(e.Right)

	case *Variable:
		return i.lookUpVariable(e.Name, e)

	case *Assign:
		value, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := i.locals[e]; ok {
			i.env.AssignAt(distance, e.Name.Lexeme, value)
		} else if !i.globals.Assign(e.Name.Lexeme, value) {
			return nil, runtimeErrorAt(e.Name.Line, "Undefined variable '"+e.Name.Lexeme+"'.")
		}
		return value, nil

	case *Call:
		return i.evaluateCall(e)

	default:
		return nil, runtimeErrorAt(expr.Line(), fmt.Sprintf("unhandled expression type %T", expr))
	}
}

func (i *Interpreter) lookUpVariable(name Token, expr Expr) (Value, error) {
	if distance, ok := i.locals[expr]; ok {
		if v, ok := i.env.GetAt(distance, name.Lexeme); ok {
			return v, nil
		}
		return nil, runtimeErrorAt(name.Line, "Undefined variable '"+name.Lexeme+"'.")
	}
	if v, ok := i.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, runtimeErrorAt(name.Line, "Undefined variable '"+name.Lexeme+"'.")
}

func (i *Interpreter) evaluateBinary(e *Binary) (Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case PLUS:
		ln, lok := left.(NumberValue)
		rn, rok := right.(NumberValue)
		if lok && rok {
			return ln + rn, nil
		}
		_, lsok := left.(StringValue)
		_, rsok := right.(StringValue)
		if lsok || rsok {
			return StringValue(left.String() + right.String()), nil
		}
		return nil, runtimeErrorAt(e.Op.Line, "Operands must be two numbers or two strings.")

	case MINUS:
		ln, rn, err := numberOperands(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil

	case STAR:
		ln, rn, err := numberOperands(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil

	case SLASH:
		ln, rn, err := numberOperands(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		if ln == 0 || rn == 0 {
			return nil, runtimeErrorAt(e.Op.Line, "Division by zero.")
		}
		return ln / rn, nil

	case GREATER:
		ln, rn, err := numberOperands(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue(ln > rn), nil

	case GREATER_EQUAL:
		ln, rn, err := numberOperands(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue(ln >= rn), nil

	case LESS:
		ln, rn, err := numberOperands(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue(ln < rn), nil

	case LESS_EQUAL:
		ln, rn, err := numberOperands(e.Op.Line, left, right)
		if err != nil {
			return nil, err
		}
		return BoolValue(ln <= rn), nil

	case EQUAL_EQUAL:
		return BoolValue(IsEqual(left, right)), nil

	case BANG_EQUAL:
		return BoolValue(!IsEqual(left, right)), nil
	}

	return nil, runtimeErrorAt(e.Op.Line, "unreachable binary operator "+e.Op.Type.String())
}

func numberOperands(line int, left, right Value) (NumberValue, NumberValue, error) {
	ln, lok := left.(NumberValue)
	rn, rok := right.(NumberValue)
	if !lok || !rok {
		return 0, 0, runtimeErrorAt(line, "Operands must be two numbers.")
	}
	return ln, rn, nil
}

func (i *Interpreter) evaluateCall(e *Call) (Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorAt(e.Paren.Line, "Can only call functions.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorAt(e.Paren.Line,
			fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}

	return fn.Call(i, args)
}
