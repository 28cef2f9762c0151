package pox

import (
	"fmt"
	"strings"
)

// Expr is implemented by every expression AST node. Nodes are always used
// as pointers so they can key the resolver's locals side-table by identity.
type Expr interface {
	Line() int
	String() string
}

// Stmt is implemented by every statement AST node.
type Stmt interface {
	Line() int
	String() string
}

// --------------- expressions --------------- //

type Literal struct {
	Value Value
	Tok   Token
}

func (l *Literal) Line() int      { return l.Tok.Line }
func (l *Literal) String() string { return l.Value.String() }

type Grouping struct {
	Inner Expr
}

func (g *Grouping) Line() int      { return g.Inner.Line() }
func (g *Grouping) String() string { return fmt.Sprintf("(group %s)", g.Inner) }

type Unary struct {
	Op    Token
	Right Expr
}

func (u *Unary) Line() int      { return u.Op.Line }
func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Right) }

type Binary struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (b *Binary) Line() int      { return b.Op.Line }
func (b *Binary) String() string { return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right) }

// Logical is distinct from Binary because "and"/"or" short-circuit.
type Logical struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (l *Logical) Line() int { return l.Op.Line }
func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right)
}

type Variable struct {
	Name Token
}

func (v *Variable) Line() int      { return v.Name.Line }
func (v *Variable) String() string { return v.Name.Lexeme }

type Assign struct {
	Name  Token
	Value Expr
}

func (a *Assign) Line() int      { return a.Name.Line }
func (a *Assign) String() string { return fmt.Sprintf("%s = %s", a.Name.Lexeme, a.Value) }

type Call struct {
	Callee Expr
	Paren  Token // opening "(" — authoritative for call-site diagnostics
	Args   []Expr
}

func (c *Call) Line() int { return c.Paren.Line }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(parts, ", "))
}

// --------------- statements --------------- //

type ExpressionStmt struct {
	Expr Expr
}

func (e *ExpressionStmt) Line() int      { return e.Expr.Line() }
func (e *ExpressionStmt) String() string { return e.Expr.String() + ";" }

type PrintStmt struct {
	Keyword Token
	Expr    Expr
}

func (p *PrintStmt) Line() int      { return p.Keyword.Line }
func (p *PrintStmt) String() string { return "print " + p.Expr.String() + ";" }

// VarStmt declares a name, optionally with an initializer expression.
type VarStmt struct {
	Name        Token
	Initializer Expr // nil if absent
}

func (v *VarStmt) Line() int { return v.Name.Line }
func (v *VarStmt) String() string {
	if v.Initializer == nil {
		return "let " + v.Name.Lexeme + ";"
	}
	return fmt.Sprintf("let %s = %s;", v.Name.Lexeme, v.Initializer)
}

type BlockStmt struct {
	LBrace     Token
	Statements []Stmt
}

func (b *BlockStmt) Line() int { return b.LBrace.Line }
func (b *BlockStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("    " + s.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

type IfStmt struct {
	Keyword    Token
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // nil if absent
}

func (i *IfStmt) Line() int { return i.Keyword.Line }
func (i *IfStmt) String() string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "if (%s) %s", i.Condition, i.ThenBranch)
	if i.ElseBranch != nil {
		fmt.Fprintf(&sb, " else %s", i.ElseBranch)
	}
	return sb.String()
}

type WhileStmt struct {
	Keyword   Token
	Condition Expr
	Body      Stmt
}

func (w *WhileStmt) Line() int      { return w.Keyword.Line }
func (w *WhileStmt) String() string { return fmt.Sprintf("while (%s) %s", w.Condition, w.Body) }

// FunctionStmt is both the declaration statement and the reusable
// "declaration" a Function value closes over.
type FunctionStmt struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

func (f *FunctionStmt) Line() int { return f.Name.Line }
func (f *FunctionStmt) String() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Lexeme
	}
	return fmt.Sprintf("fn %s(%s) { ... }", f.Name.Lexeme, strings.Join(names, ", "))
}

type ReturnStmt struct {
	Keyword Token
	Value   Expr // nil if absent
}

func (r *ReturnStmt) Line() int { return r.Keyword.Line }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}
