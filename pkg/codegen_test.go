package kaleido

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileString(src string) (*ir.Module, []error) {
	return NewCompiler().CompileFromReader(strings.NewReader(src))
}

func TestLowerDefinition(t *testing.T) {
	mod, diags := compileString("def foo(a b) a+b")

	require.Empty(t, diags)
	ll := mod.String()
	assert.Contains(t, ll, "define double @foo(double %a, double %b)")
	assert.Contains(t, ll, "fadd double %a, %b")
	assert.Contains(t, ll, "ret double")
}

func TestLowerOperators(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"def f(a b) a+b", "fadd"},
		{"def f(a b) a-b", "fsub"},
		{"def f(a b) a*b", "fmul"},
		{"def f(a b) a<b", "fcmp ult"},
	}

	for _, c := range cases {
		mod, diags := compileString(c.data)

		require.Empty(t, diags, c.data)
		assert.Contains(t, mod.String(), c.expect, c.data)
	}
}

// Lowering the explicitly grouped form must produce the exact same IR as
// the flat form: precedence and associativity live in the parser alone.
func TestLowerPrecedenceEquivalence(t *testing.T) {
	cases := []struct {
		flat    string
		grouped string
	}{
		{"1+2*3", "1+(2*3)"},
		{"1-2-3", "(1-2)-3"},
		{"1<2+3", "1<(2+3)"},
		{"2*3+4", "(2*3)+4"},
	}

	for _, c := range cases {
		flat, diags := compileString(c.flat)
		require.Empty(t, diags, c.flat)

		grouped, diags := compileString(c.grouped)
		require.Empty(t, diags, c.grouped)

		assert.Equal(t, grouped.String(), flat.String(), c.flat)
	}
}

func TestLowerAssociativityMatters(t *testing.T) {
	left, diags := compileString("1-2-3")
	require.Empty(t, diags)

	right, diags := compileString("1-(2-3)")
	require.Empty(t, diags)

	assert.NotEqual(t, right.String(), left.String())
}

func TestExternIdempotent(t *testing.T) {
	mod, diags := compileString("extern sin(x) extern sin(x) extern sin(x)")

	assert.Empty(t, diags)
	assert.Len(t, mod.Funcs, 1)
	assert.Contains(t, mod.String(), "declare double @sin(double %x)")
}

func TestExternArityConflict(t *testing.T) {
	_, diags := compileString("extern sin(x) extern sin(x y)")

	require.Len(t, diags, 1)
	assert.EqualError(t, diags[0], "redefinition of function with different number of args")
}

func TestExternThenDefinition(t *testing.T) {
	mod, diags := compileString("extern cos(x) def cos(x) x")

	require.Empty(t, diags)
	assert.Len(t, mod.Funcs, 1)
	assert.Contains(t, mod.String(), "define double @cos(double %x)")
}

func TestRedefinitionConflict(t *testing.T) {
	_, diags := compileString("def foo(a) a def foo(a b) b")

	require.Len(t, diags, 1)
	assert.EqualError(t, diags[0], "redefinition of function")
}

func TestCallUnknownFunction(t *testing.T) {
	mod, diags := compileString("foo(1)")

	require.Len(t, diags, 1)
	assert.EqualError(t, diags[0], "unknown function referenced: foo")
	// The failed anonymous wrapper must not survive in the module.
	assert.Empty(t, mod.Funcs)
}

func TestCallWrongArgumentCount(t *testing.T) {
	_, diags := compileString("extern sin(x) sin(1, 2)")

	require.Len(t, diags, 1)
	assert.EqualError(t, diags[0], "incorrect number of arguments passed")
}

func TestCallLowersArguments(t *testing.T) {
	mod, diags := compileString("def twice(x) x+x def quad(x) twice(twice(x))")

	require.Empty(t, diags)
	ll := mod.String()
	assert.Contains(t, ll, "call double @twice")
	assert.Len(t, mod.Funcs, 2)
}

func TestUnknownVariable(t *testing.T) {
	mod, diags := compileString("def foo(a) b")

	require.Len(t, diags, 1)
	assert.EqualError(t, diags[0], "unknown variable name: b")
	// A failed body discards the whole function.
	assert.NotContains(t, mod.String(), "@foo")
}

// Parameters of one function must not resolve inside another.
func TestScopeDoesNotLeakAcrossFunctions(t *testing.T) {
	mod, diags := compileString("def one(x) x def two(y) x")

	require.Len(t, diags, 1)
	assert.EqualError(t, diags[0], "unknown variable name: x")
	assert.Contains(t, mod.String(), "@one")
	assert.NotContains(t, mod.String(), "@two")
}

func TestDuplicateParamsShadow(t *testing.T) {
	mod, diags := compileString("def dup(a a) a")

	require.Empty(t, diags)
	assert.Len(t, mod.Funcs, 1)
}

func TestTopLevelExprIsAnonymousFunction(t *testing.T) {
	mod, diags := compileString("1+2 3*4")

	require.Empty(t, diags)
	require.Len(t, mod.Funcs, 2)
	assert.Equal(t, "__anon0", mod.Funcs[0].Name())
	assert.Equal(t, "__anon1", mod.Funcs[1].Name())
}

func TestLowerInvalidOperator(t *testing.T) {
	gen := NewCodegen(NewLLVMBackend())

	_, err := gen.Func(&Function{
		Proto: &Prototype{Name: "bad", Params: []string{"a", "b"}},
		Body: &BinaryExpr{
			Op:  '/',
			LHS: &VariableExpr{Name: "a"},
			RHS: &VariableExpr{Name: "b"},
		},
	})

	assert.EqualError(t, err, "invalid binary operator: /")
}
