package kaleido

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pkg/errors"
)

// Backend is the code-emission engine the lowering stage drives. Every
// value is of the language's single numeric type, double.
type Backend interface {
	// Number materializes a numeric constant.
	Number(v float64) value.Value

	// Add, Sub, Mul and Less emit the instruction for one binary operator
	// into the open body. Less yields 0.0 or 1.0.
	Add(l, r value.Value) value.Value
	Sub(l, r value.Value) value.Value
	Mul(l, r value.Value) value.Value
	Less(l, r value.Value) value.Value

	// Call emits a call to a previously declared function.
	Call(callee *ir.Func, args ...value.Value) value.Value

	// Lookup finds a declared or defined function by name.
	Lookup(name string) (*ir.Func, bool)

	// Declare registers a signature of len(params) doubles returning one
	// double. Redeclaring a body-less signature with the same arity returns
	// the existing function; any other collision is an error. An empty name
	// yields a fresh, uniquely named function.
	Declare(name string, params []string) (*ir.Func, error)

	// Begin opens f's entry block; instructions target it until Finish or
	// Discard.
	Begin(f *ir.Func)

	// Finish sets ret as f's return value and closes the body.
	Finish(f *ir.Func, ret value.Value) error

	// Discard drops a function whose body failed to build, so a broken
	// definition does not stay registered.
	Discard(f *ir.Func)
}

// LLVMBackend emits into an llir module. One backend per compilation unit;
// it also carries the open-body insertion point, so only one function body
// can be under construction at a time.
type LLVMBackend struct {
	mod   *ir.Module
	block *ir.Block
	anon  int
}

func NewLLVMBackend() *LLVMBackend {
	return &LLVMBackend{
		mod: ir.NewModule(),
	}
}

// Module returns the module everything so far was emitted into.
func (b *LLVMBackend) Module() *ir.Module {
	return b.mod
}

func (b *LLVMBackend) Number(v float64) value.Value {
	return constant.NewFloat(types.Double, v)
}

func (b *LLVMBackend) Add(l, r value.Value) value.Value {
	return b.block.NewFAdd(l, r)
}

func (b *LLVMBackend) Sub(l, r value.Value) value.Value {
	return b.block.NewFSub(l, r)
}

func (b *LLVMBackend) Mul(l, r value.Value) value.Value {
	return b.block.NewFMul(l, r)
}

func (b *LLVMBackend) Less(l, r value.Value) value.Value {
	cmp := b.block.NewFCmp(enum.FPredULT, l, r)
	return b.block.NewUIToFP(cmp, types.Double)
}

func (b *LLVMBackend) Call(callee *ir.Func, args ...value.Value) value.Value {
	return b.block.NewCall(callee, args...)
}

func (b *LLVMBackend) Lookup(name string) (*ir.Func, bool) {
	for _, f := range b.mod.Funcs {
		if f.Name() == name {
			return f, true
		}
	}

	return nil, false
}

func (b *LLVMBackend) Declare(name string, params []string) (*ir.Func, error) {
	if name == "" {
		name = fmt.Sprintf("__anon%d", b.anon)
		b.anon++
	} else if prev, ok := b.Lookup(name); ok {
		if len(prev.Blocks) != 0 {
			return nil, errors.New("redefinition of function")
		}
		if len(prev.Params) != len(params) {
			return nil, errors.New("redefinition of function with different number of args")
		}

		// Filling in an extern declaration: take over its parameter names.
		for i, param := range prev.Params {
			param.SetName(params[i])
		}

		return prev, nil
	}

	irParams := make([]*ir.Param, len(params))
	for i, param := range params {
		irParams[i] = ir.NewParam(param, types.Double)
	}

	return b.mod.NewFunc(name, types.Double, irParams...), nil
}

func (b *LLVMBackend) Begin(f *ir.Func) {
	b.block = f.NewBlock("entry")
}

func (b *LLVMBackend) Finish(f *ir.Func, ret value.Value) error {
	if b.block == nil {
		return errors.Errorf("no open body for %s", f.Name())
	}

	b.block.NewRet(ret)
	b.block = nil

	return nil
}

func (b *LLVMBackend) Discard(f *ir.Func) {
	b.block = nil

	for i, g := range b.mod.Funcs {
		if g == f {
			b.mod.Funcs = append(b.mod.Funcs[:i], b.mod.Funcs[i+1:]...)
			return
		}
	}
}
