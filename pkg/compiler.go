package kaleido

import (
	"io"
	"os"

	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"
)

// Compiler runs the whole pipeline over a complete source in one call,
// collecting diagnostics instead of printing them. Every compilation gets
// its own lexer, parser and scope; the precedence table is shared and
// read-only.
type Compiler struct {
	prec OpPrecedence
}

func NewCompiler() *Compiler {
	return &Compiler{
		prec: DefaultPrecedence(),
	}
}

// Compile builds filename into a fresh module. The returned slice holds the
// per-construct diagnostics; the module still contains everything that
// lowered cleanly. The error is non-nil only when the file cannot be read.
func (c *Compiler) Compile(filename string) (*ir.Module, []error, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", filename)
	}
	defer f.Close()

	mod, diags := c.CompileFromReader(f)
	return mod, diags, nil
}

func (c *Compiler) CompileFromReader(reader io.Reader) (*ir.Module, []error) {
	s := NewSession(reader, c.prec)
	s.SetPrompt(false)
	s.SetOutput(io.Discard)

	mod := s.Run()
	return mod, s.Errs()
}
