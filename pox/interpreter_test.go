package pox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plu7o/pox/internal/diagnostic"
)

// runProgram runs source through the full pipeline via a fresh Session and
// returns everything printed plus the reported diagnostics.
func runProgram(t *testing.T, source string) (string, *diagnostic.Collector, error) {
	t.Helper()
	var out strings.Builder
	c := &diagnostic.Collector{}
	session := NewSession(&out)
	err := session.Run(source, c)
	return out.String(), c, err
}

func TestInterpreter_ArithmeticPrecedence(t *testing.T) {
	out, c, err := runProgram(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "7\n", out)
}

func TestInterpreter_StringNumberConcatenation(t *testing.T) {
	out, c, err := runProgram(t, "print 'hi' + 1;")
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "hi1\n", out)
}

func TestInterpreter_BlockShadowing(t *testing.T) {
	out, c, err := runProgram(t, `
		let a = 'outer';
		{
			let a = 'inner';
			print a;
		}
		print a;
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "inner\nouter\n", out)
}

func TestInterpreter_RecursiveFibonacci(t *testing.T) {
	out, c, err := runProgram(t, `
		fn fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "55\n", out)
}

func TestInterpreter_DivisionByZeroIsARuntimeError(t *testing.T) {
	_, c, err := runProgram(t, "print 1 / 0;")
	require.Error(t, err)
	require.True(t, c.HadError())
	assert.Contains(t, c.Diagnostics[0].Message, "Division by zero")
}

func TestInterpreter_DivisionWithZeroDividendIsAlsoARuntimeError(t *testing.T) {
	_, c, err := runProgram(t, "print 0 / 5;")
	require.Error(t, err)
	require.True(t, c.HadError())
	assert.Contains(t, c.Diagnostics[0].Message, "Division by zero")
}

func TestInterpreter_OwnInitializerOnlyErrorsInsideABlock(t *testing.T) {
	// At the top level there is no enclosing scope for the resolver to
	// track, so `let x = x;` reads the (not-yet-shadowed) global/undefined
	// binding rather than tripping the own-initializer check.
	_, c, _ := runProgram(t, "let x = x;")
	assert.True(t, c.HadError())
	assert.Contains(t, c.Diagnostics[0].Message, "Undefined variable")

	_, c2, _ := runProgram(t, "{ let x = x; }")
	assert.True(t, c2.HadError())
	assert.Contains(t, c2.Diagnostics[0].Message, "own initializer")
}

func TestInterpreter_ClosuresShareMutableCapturedState(t *testing.T) {
	out, c, err := runProgram(t, `
		fn makeCounter() {
			let count = 0;
			fn inner() {
				count = count + 1;
				return count;
			}
			return inner;
		}
		let counter = makeCounter();
		print counter();
		print counter();
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "1\n2\n", out)
}

func TestInterpreter_Truthiness(t *testing.T) {
	out, c, err := runProgram(t, `
		if (0) print 'zero is truthy'; else print 'zero is falsy';
		if ('') print 'empty string is truthy'; else print 'empty string is falsy';
		if (Nil) print 'nil is truthy'; else print 'nil is falsy';
		if (False) print 'false is truthy'; else print 'false is falsy';
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "zero is truthy\nempty string is truthy\nnil is falsy\nfalse is falsy\n", out)
}

func TestInterpreter_EqualityHasNoCoercion(t *testing.T) {
	out, c, err := runProgram(t, `
		print 1 == 1;
		print Nil == False;
		print 'a' == 'a';
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "True\nFalse\nTrue\n", out)
}

func TestInterpreter_LogicalOperatorsShortCircuit(t *testing.T) {
	out, c, err := runProgram(t, `
		fn sideEffect(label) {
			print label;
			return True;
		}
		False and sideEffect('and-rhs');
		True or sideEffect('or-rhs');
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "", out, "neither right-hand side should evaluate")
}

func TestInterpreter_NumberStringificationStripsTrailingZero(t *testing.T) {
	out, c, err := runProgram(t, `
		print 1.0;
		print 3.14;
		print 2.0 + 2.0;
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "1\n3.14\n4\n", out)
}

func TestInterpreter_WhileLoopAccumulates(t *testing.T) {
	out, c, err := runProgram(t, `
		let i = 0;
		let sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		print sum;
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "10\n", out)
}

func TestInterpreter_ForLoopDesugaring(t *testing.T) {
	out, c, err := runProgram(t, `
		for (let i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpreter_CallingNonCallableIsARuntimeError(t *testing.T) {
	_, c, err := runProgram(t, `
		let x = 1;
		x();
	`)
	require.Error(t, err)
	require.True(t, c.HadError())
	assert.Contains(t, c.Diagnostics[0].Message, "Can only call functions")
}

func TestInterpreter_ArityMismatchIsARuntimeError(t *testing.T) {
	_, c, err := runProgram(t, `
		fn f(a, b) { return a + b; }
		f(1);
	`)
	require.Error(t, err)
	require.True(t, c.HadError())
	assert.Contains(t, c.Diagnostics[0].Message, "Expected 2 arguments but got 1")
}

func TestInterpreter_SessionPersistsStateAcrossRunCalls(t *testing.T) {
	var out strings.Builder
	session := NewSession(&out)

	c1 := &diagnostic.Collector{}
	require.NoError(t, session.Run("let total = 10;", c1))
	require.False(t, c1.HadError())

	c2 := &diagnostic.Collector{}
	require.NoError(t, session.Run("print total + 5;", c2))
	require.False(t, c2.HadError())

	assert.Equal(t, "15\n", out.String())
}

func TestInterpreter_ClockIsCallableWithZeroArgs(t *testing.T) {
	out, c, err := runProgram(t, "print clock() > 0;")
	require.NoError(t, err)
	require.False(t, c.HadError())
	assert.Equal(t, "True\n", out)
}
