package kaleido

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/llir/llvm/ir"
)

var (
	promptColor = color.New(color.FgGreen)
	errorColor  = color.New(color.FgRed)
)

// Session drives the read-parse-lower loop over one input: one top-level
// construct at a time, printing the lowered IR for every success and a
// diagnostic for every failure. A failed construct costs exactly one token;
// the session always resumes.
type Session struct {
	parser  *Parser
	gen     *Codegen
	backend *LLVMBackend

	out    io.Writer
	prompt bool
	errs   []error
}

func NewSession(in io.Reader, prec OpPrecedence) *Session {
	backend := NewLLVMBackend()

	return &Session{
		parser:  NewParser(NewLexer(in), prec),
		gen:     NewCodegen(backend),
		backend: backend,
		out:     os.Stderr,
		prompt:  true,
	}
}

// SetOutput redirects prompts, IR echoes and diagnostics away from stderr.
func (s *Session) SetOutput(w io.Writer) {
	s.out = w
}

// SetPrompt toggles the ready> prompt, for piped input.
func (s *Session) SetPrompt(on bool) {
	s.prompt = on
}

// Errs returns every diagnostic the session produced, in order.
func (s *Session) Errs() []error {
	return s.errs
}

// Run reads top-level constructs until the input is exhausted, then returns
// the module holding everything that lowered cleanly.
func (s *Session) Run() *ir.Module {
	for {
		if s.prompt {
			promptColor.Fprint(s.out, "ready> ")
		}

		switch tok := s.parser.Cur(); {
		case tok.Typ == TokenEOF:
			return s.backend.Module()
		case tok.Is(';'):
			s.parser.Skip()
		case tok.Typ == TokenDef:
			s.handleDefinition()
		case tok.Typ == TokenExtern:
			s.handleExtern()
		default:
			s.handleTopLevelExpr()
		}
	}
}

func (s *Session) handleDefinition() {
	fn, err := s.parser.ParseDefinition()
	if err != nil {
		s.report(err)
		return
	}

	f, err := s.gen.Func(fn)
	if err != nil {
		s.report(err)
		return
	}

	fmt.Fprintln(s.out, "Read function definition:")
	fmt.Fprintln(s.out, f.LLString())
}

func (s *Session) handleExtern() {
	proto, err := s.parser.ParseExtern()
	if err != nil {
		s.report(err)
		return
	}

	f, err := s.gen.Proto(proto)
	if err != nil {
		s.report(err)
		return
	}

	fmt.Fprintln(s.out, "Read extern:")
	fmt.Fprintln(s.out, f.LLString())
}

func (s *Session) handleTopLevelExpr() {
	fn, err := s.parser.ParseTopLevelExpr()
	if err != nil {
		s.report(err)
		return
	}

	f, err := s.gen.Func(fn)
	if err != nil {
		s.report(err)
		return
	}

	fmt.Fprintln(s.out, "Read top-level expression:")
	fmt.Fprintln(s.out, f.LLString())
}

// report prints the diagnostic and steps over one token. Skipping a single
// token is best effort: an error spanning several tokens can leave the
// cursor inside the broken construct, and the next iteration will then
// produce follow-on diagnostics until the stream realigns.
func (s *Session) report(err error) {
	s.errs = append(s.errs, err)
	errorColor.Fprintln(s.out, "Error:", err)
	s.parser.Skip()
}
