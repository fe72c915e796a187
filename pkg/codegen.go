package kaleido

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
	"github.com/pkg/errors"
)

// Codegen lowers AST nodes into backend values and functions. It owns the
// symbol scope, which it rebuilds at every function boundary.
type Codegen struct {
	backend Backend
	scope   *ValueScope
}

func NewCodegen(backend Backend) *Codegen {
	return &Codegen{
		backend: backend,
		scope:   NewValueScope(),
	}
}

// Expr lowers one expression inside the currently open function body.
func (g *Codegen) Expr(e Expr) (value.Value, error) {
	switch e := e.(type) {
	case *NumberExpr:
		return g.backend.Number(e.Value), nil
	case *VariableExpr:
		v, ok := g.scope.Resolve(e.Name)
		if !ok {
			return nil, errors.Errorf("unknown variable name: %s", e.Name)
		}
		return v, nil
	case *BinaryExpr:
		return g.binary(e)
	case *CallExpr:
		return g.call(e)
	default:
		return nil, errors.Errorf("cannot lower expression of type %T", e)
	}
}

// binary lowers the left operand before the right; the first failure aborts
// without touching the other operand.
func (g *Codegen) binary(e *BinaryExpr) (value.Value, error) {
	l, err := g.Expr(e.LHS)
	if err != nil {
		return nil, err
	}

	r, err := g.Expr(e.RHS)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case '+':
		return g.backend.Add(l, r), nil
	case '-':
		return g.backend.Sub(l, r), nil
	case '*':
		return g.backend.Mul(l, r), nil
	case '<':
		return g.backend.Less(l, r), nil
	default:
		return nil, errors.Errorf("invalid binary operator: %c", e.Op)
	}
}

func (g *Codegen) call(e *CallExpr) (value.Value, error) {
	callee, ok := g.backend.Lookup(e.Callee)
	if !ok {
		return nil, errors.Errorf("unknown function referenced: %s", e.Callee)
	}
	if len(callee.Params) != len(e.Args) {
		return nil, errors.New("incorrect number of arguments passed")
	}

	args := make([]value.Value, len(e.Args))
	for i, arg := range e.Args {
		v, err := g.Expr(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return g.backend.Call(callee, args...), nil
}

// Proto registers a function signature without a body.
func (g *Codegen) Proto(p *Prototype) (*ir.Func, error) {
	return g.backend.Declare(p.Name, p.Params)
}

// Func lowers a full definition: signature, fresh scope with the parameters
// bound, then the body. A failed body discards the function so a broken
// definition does not stay registered.
func (g *Codegen) Func(fn *Function) (*ir.Func, error) {
	f, err := g.Proto(fn.Proto)
	if err != nil {
		return nil, err
	}

	g.scope.Reset()
	for _, param := range f.Params {
		g.scope.Bind(param.Name(), param)
	}

	g.backend.Begin(f)

	ret, err := g.Expr(fn.Body)
	if err != nil {
		g.backend.Discard(f)
		return nil, err
	}

	if err := g.backend.Finish(f, ret); err != nil {
		g.backend.Discard(f)
		return nil, err
	}

	return f, nil
}
