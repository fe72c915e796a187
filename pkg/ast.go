package kaleido

// Expr is the closed set of expression nodes the parser produces. Nodes
// carry no behavior; lowering dispatches on the concrete type.
type Expr interface {
	expr()
}

// NumberExpr is a numeric literal.
type NumberExpr struct {
	Value float64
}

// VariableExpr is a name reference, resolved against the enclosing
// function's scope at lowering time, not at parse time.
type VariableExpr struct {
	Name string
}

// BinaryExpr applies a registered binary operator to two operands.
type BinaryExpr struct {
	Op  rune
	LHS Expr
	RHS Expr
}

// CallExpr calls a named function with ordered arguments. The callee is
// checked against known signatures when lowered.
type CallExpr struct {
	Callee string
	Args   []Expr
}

func (*NumberExpr) expr()   {}
func (*VariableExpr) expr() {}
func (*BinaryExpr) expr()   {}
func (*CallExpr) expr()     {}

// Prototype is a function signature: its name and parameter names. An empty
// name marks the synthesized wrapper around a bare top-level expression.
type Prototype struct {
	Name   string
	Params []string
}

// Function pairs a prototype with its body, a single expression.
type Function struct {
	Proto *Prototype
	Body  Expr
}
