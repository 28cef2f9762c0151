package pox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plu7o/pox/internal/diagnostic"
)

func scanAll(t *testing.T, source string) ([]Token, *diagnostic.Collector) {
	t.Helper()
	c := &diagnostic.Collector{}
	toks := NewScanner(source, c).Scan()
	return toks, c
}

func TestScanner_AlwaysEndsInOneEOF(t *testing.T) {
	cases := []string{"", "   \n\t", "let a = 1;", "# comment only\n"}
	for _, src := range cases {
		toks, _ := scanAll(t, src)
		require.NotEmpty(t, toks)
		assert.Equal(t, EOF, toks[len(toks)-1].Type)
		for _, tok := range toks[:len(toks)-1] {
			assert.NotEqual(t, EOF, tok.Type)
		}
	}
}

func TestScanner_SingleAndTwoCharTokens(t *testing.T) {
	toks, c := scanAll(t, "(){},.-+;*/! != = == < <= > >=")
	require.False(t, c.HadError())

	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT, MINUS, PLUS,
		SEMICOLON, STAR, SLASH, BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS,
		LESS_EQUAL, GREATER, GREATER_EQUAL, EOF,
	}
	require.Len(t, toks, len(want))
	for i, kind := range want {
		assert.Equal(t, kind, toks[i].Type, "token %d", i)
	}
}

func TestScanner_Keywords(t *testing.T) {
	toks, c := scanAll(t, "and class else False for fn if Nil or print return super self True let while other")
	require.False(t, c.HadError())

	want := []TokenType{
		AND, CLASS, ELSE, FALSE, FOR, FN, IF, NIL, OR, PRINT, RETURN, SUPER,
		SELF, TRUE, LET, WHILE, IDENTIFIER, EOF,
	}
	require.Len(t, toks, len(want))
	for i, kind := range want {
		assert.Equal(t, kind, toks[i].Type, "token %d", i)
	}
}

func TestScanner_LineComment(t *testing.T) {
	toks, c := scanAll(t, "let a = 1; # trailing comment\nlet b = 2;")
	require.False(t, c.HadError())
	// Two statements' worth of tokens (5 each) plus EOF.
	assert.Equal(t, 11, len(toks))
	assert.Equal(t, 2, toks[len(toks)-1].Line)
}

func TestScanner_BlockComment(t *testing.T) {
	toks, c := scanAll(t, "let /* skip\nthis */ a = 1;")
	require.False(t, c.HadError())
	assert.Equal(t, LET, toks[0].Type)
	assert.Equal(t, IDENTIFIER, toks[1].Type)
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanner_UnterminatedBlockComment(t *testing.T) {
	_, c := scanAll(t, "let a = 1; /* never closed")
	require.True(t, c.HadError())
	assert.Contains(t, c.Diagnostics[0].Message, "block comment")
}

func TestScanner_StringLiteral(t *testing.T) {
	toks, c := scanAll(t, "'hello world'")
	require.False(t, c.HadError())
	require.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanner_StringSpansNewlines(t *testing.T) {
	toks, c := scanAll(t, "'line one\nline two'")
	require.False(t, c.HadError())
	assert.Equal(t, "line one\nline two", toks[0].Literal)
	assert.Equal(t, 2, toks[0].Line)
}

func TestScanner_UnterminatedString(t *testing.T) {
	_, c := scanAll(t, "'never closed")
	require.True(t, c.HadError())
	assert.Contains(t, c.Diagnostics[0].Message, "Unterminated string")
}

func TestScanner_Number(t *testing.T) {
	toks, c := scanAll(t, "42 3.14")
	require.False(t, c.HadError())
	assert.Equal(t, "42", toks[0].Literal)
	assert.Equal(t, "3.14", toks[1].Literal)
}

func TestScanner_UnexpectedCharacter(t *testing.T) {
	toks, c := scanAll(t, "let a = 1 @ 2;")
	require.True(t, c.HadError())
	// Scanning continues and still emits a trailing EOF.
	assert.Equal(t, EOF, toks[len(toks)-1].Type)
}

func TestScanner_LineTracking(t *testing.T) {
	toks, _ := scanAll(t, "let a = 1;\n\nlet b = 2;")
	var bTokenLine int
	for _, tok := range toks {
		if tok.Type == IDENTIFIER && tok.Lexeme == "b" {
			bTokenLine = tok.Line
		}
	}
	assert.Equal(t, 3, bTokenLine)
}
