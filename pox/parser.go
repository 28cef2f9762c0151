package pox

import (
	"fmt"
	"strconv"

	"github.com/plu7o/pox/internal/diagnostic"
)

const maxArgs = 255

// Parser is a recursive-descent parser producing a list of statements from
// a token stream.
type Parser struct {
	tokens   []Token
	current  int
	reporter diagnostic.Reporter
}

func NewParser(tokens []Token, reporter diagnostic.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: reporter}
}

// parseError is an internal control-flow signal used to unwind out of a
// statement mid-parse so synchronize can run; it is never surfaced to a
// caller as a Go error.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// Parse returns every successfully-parsed top-level statement. Errors are
// reported through the Parser's Reporter as they're found; a caller must
// check the Reporter (e.g. a diagnostic.Collector) before running the
// interpreter rather than relying on a return value here.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (p *Parser) declaration() (stmt Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(FN):
		return p.function("function")
	case p.match(LET):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) function(kind string) Stmt {
	name := p.consume(IDENTIFIER, "Expect an identifier after 'fn'")
	p.consume(LEFT_PAREN, "Expect '(' after "+kind+" name")

	var params []Token
	if !p.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(IDENTIFIER, "Expect a parameter name"))
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RIGHT_PAREN, "Expect ')' after parameters")
	p.consume(LEFT_BRACE, "Expect '{' before "+kind+" body")
	body := p.blockStatements()

	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() Stmt {
	name := p.consume(IDENTIFIER, "Expect a variable name")

	var initializer Expr
	if p.match(EQUAL) {
		initializer = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after variable declaration")

	return &VarStmt{Name: name, Initializer: initializer}
}

func (p *Parser) statement() Stmt {
	switch {
	case p.match(FOR):
		return p.forStmt()
	case p.match(IF):
		return p.ifStmt()
	case p.match(PRINT):
		return p.printStmt()
	case p.match(RETURN):
		return p.returnStmt()
	case p.match(WHILE):
		return p.whileStmt()
	case p.match(LEFT_BRACE):
		lbrace := p.previous()
		return &BlockStmt{LBrace: lbrace, Statements: p.blockStatements()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) exprStmt() Stmt {
	expr := p.expression()
	p.consume(SEMICOLON, "Expect ';' after expression")
	return &ExpressionStmt{Expr: expr}
}

func (p *Parser) printStmt() Stmt {
	keyword := p.previous()
	expr := p.expression()
	p.consume(SEMICOLON, "Expect ';' after value")
	return &PrintStmt{Keyword: keyword, Expr: expr}
}

func (p *Parser) returnStmt() Stmt {
	keyword := p.previous()
	var value Expr
	if !p.check(SEMICOLON) {
		value = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after return value")
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) ifStmt() Stmt {
	keyword := p.previous()
	p.consume(LEFT_PAREN, "Expect '(' after 'if'")
	condition := p.expression()
	p.consume(RIGHT_PAREN, "Expect ')' after if condition")

	thenBranch := p.statement()
	var elseBranch Stmt
	if p.match(ELSE) {
		elseBranch = p.statement()
	}
	return &IfStmt{Keyword: keyword, Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) whileStmt() Stmt {
	keyword := p.previous()
	p.consume(LEFT_PAREN, "Expect '(' after 'while'")
	condition := p.expression()
	p.consume(RIGHT_PAREN, "Expect ')' after while condition")
	body := p.statement()
	return &WhileStmt{Keyword: keyword, Condition: condition, Body: body}
}

// forStmt desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }` at parse time — no For node
// ever exists in the AST.
func (p *Parser) forStmt() Stmt {
	keyword := p.previous()
	p.consume(LEFT_PAREN, "Expect '(' after 'for'")

	var initializer Stmt
	switch {
	case p.match(SEMICOLON):
		// no initializer
	case p.match(LET):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var condition Expr
	if !p.check(SEMICOLON) {
		condition = p.expression()
	}
	p.consume(SEMICOLON, "Expect ';' after loop condition")

	var increment Expr
	if !p.check(RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(RIGHT_PAREN, "Expect ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &BlockStmt{LBrace: keyword, Statements: []Stmt{body, &ExpressionStmt{Expr: increment}}}
	}
	if condition == nil {
		condition = &Literal{Value: BoolValue(true), Tok: keyword}
	}
	body = &WhileStmt{Keyword: keyword, Condition: condition, Body: body}
	if initializer != nil {
		body = &BlockStmt{LBrace: keyword, Statements: []Stmt{initializer, body}}
	}

	return body
}

func (p *Parser) blockStatements() []Stmt {
	var stmts []Stmt
	for !p.check(RIGHT_BRACE) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(RIGHT_BRACE, "Expect '}' after block")
	return stmts
}

// --------------- expressions --------------- //

func (p *Parser) expression() Expr {
	return p.assignment()
}

// assignment parses the left side as an expression first; if it turns out
// to be a Variable, it's rewritten into Assign. Anything else on the left
// of "=" is "Invalid assignment target", reported without consuming extra
// tokens (the rest of the expression was already consumed).
func (p *Parser) assignment() Expr {
	expr := p.logicOr()

	if p.match(EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if v, ok := expr.(*Variable); ok {
			return &Assign{Name: v.Name, Value: value}
		}
		p.errorAt(equals, "Invalid assignment target")
		return expr
	}

	return expr
}

func (p *Parser) logicOr() Expr {
	expr := p.logicAnd()
	for p.match(OR) {
		op := p.previous()
		right := p.logicAnd()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() Expr {
	expr := p.equality()
	for p.match(AND) {
		op := p.previous()
		right := p.equality()
		expr = &Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() Expr {
	expr := p.comparison()
	for p.match(BANG_EQUAL, EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() Expr {
	expr := p.term()
	for p.match(LESS, LESS_EQUAL, GREATER, GREATER_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() Expr {
	expr := p.factor()
	for p.match(PLUS, MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() Expr {
	expr := p.unary()
	for p.match(STAR, SLASH) {
		op := p.previous()
		right := p.unary()
		expr = &Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() Expr {
	if p.match(BANG, MINUS) {
		op := p.previous()
		right := p.unary()
		return &Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() Expr {
	expr := p.primary()

	for p.match(LEFT_PAREN) {
		expr = p.finishCall(expr)
	}

	return expr
}

func (p *Parser) finishCall(callee Expr) Expr {
	paren := p.previous()
	var args []Expr
	if !p.check(RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(COMMA) {
				break
			}
		}
	}
	p.consume(RIGHT_PAREN, "Expect ')' after arguments")
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() Expr {
	switch {
	case p.match(TRUE):
		return &Literal{Value: BoolValue(true), Tok: p.previous()}
	case p.match(FALSE):
		return &Literal{Value: BoolValue(false), Tok: p.previous()}
	case p.match(NIL):
		return &Literal{Value: Nil, Tok: p.previous()}
	case p.match(NUMBER):
		tok := p.previous()
		return &Literal{Value: parseNumber(tok.Literal), Tok: tok}
	case p.match(STRING):
		tok := p.previous()
		return &Literal{Value: StringValue(tok.Literal), Tok: tok}
	case p.match(IDENTIFIER):
		return &Variable{Name: p.previous()}
	case p.match(LEFT_PAREN):
		inner := p.expression()
		p.consume(RIGHT_PAREN, "Expect ')' after expression")
		return &Grouping{Inner: inner}
	default:
		p.errorAt(p.peek(), "Expect expression")
		panic(parseError{})
	}
}

// --------------- token-stream helpers --------------- //

func (p *Parser) match(types ...TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t TokenType, message string) Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) check(t TokenType) bool {
	return !p.atEnd() && p.peek().Type == t
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token { return p.tokens[p.current] }

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

// synchronize discards tokens until the previous token was a ';' or the
// next one begins a statement, so parsing can surface more than one error
// per run.
func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}

		switch p.peek().Type {
		case CLASS, FN, LET, FOR, IF, WHILE, PRINT, RETURN:
			return
		}

		p.advance()
	}
}

func (p *Parser) errorAt(tok Token, message string) {
	where := fmt.Sprintf(" at %q", tok.Lexeme)
	if tok.Type == EOF {
		where = " at end"
	}
	if p.reporter != nil {
		p.reporter.Report(&diagnostic.Diagnostic{
			Stage:   diagnostic.Parse,
			Line:    tok.Line,
			Where:   where,
			Message: message,
		})
	}
}

func parseNumber(literal string) NumberValue {
	f, _ := strconv.ParseFloat(literal, 64)
	return NumberValue(f)
}
