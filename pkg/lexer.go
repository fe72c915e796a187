package kaleido

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	EOF rune = 0

	TokenEOF TokenType = iota
	TokenDef
	TokenExtern
	TokenIdentifier
	TokenNumber
	TokenOperator
)

var keywordTable = map[string]TokenType{
	"def":    TokenDef,
	"extern": TokenExtern,
}

type Token struct {
	Typ   TokenType
	Value string
	Num   float64
}

// Is reports whether the token is the single-character operator op.
func (t Token) Is(op rune) bool {
	return t.Typ == TokenOperator && t.Value == string(op)
}

// Op returns the operator character of an operator token, or EOF for any
// other token.
func (t Token) Op() rune {
	if t.Typ != TokenOperator || t.Value == "" {
		return EOF
	}

	r, _ := utf8.DecodeRuneInString(t.Value)
	return r
}

// Tokenizer is the parser's view of its token source.
type Tokenizer interface {
	Next() Token
}

// Lexer is a pull cursor over a character stream. Each instance keeps its
// own lookahead, so independent inputs get independent lexers.
//
// The lexer has no error states: a character it doesn't recognize comes out
// as a single-character operator token, and the parser rejects it there.
type Lexer struct {
	reader *bufio.Reader
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
	}
}

// Next consumes and returns one token. Once the input is exhausted it
// returns TokenEOF forever.
func (l *Lexer) Next() Token {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return Token{Typ: TokenEOF}
		case unicode.IsSpace(r):
			l.next()
		case r == '#':
			l.skipComment()
		case unicode.IsLetter(r):
			return l.identifier()
		case unicode.IsDigit(r) || r == '.':
			return l.number()
		default:
			return Token{Typ: TokenOperator, Value: string(l.next())}
		}
	}
}

func (l *Lexer) identifier() Token {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return Token{Typ: t, Value: id.String()}
	}

	return Token{Typ: TokenIdentifier, Value: id.String()}
}

func (l *Lexer) number() Token {
	var num strings.Builder
	for r := l.peek(); unicode.IsDigit(r) || r == '.'; r = l.peek() {
		num.WriteRune(l.next())
	}

	return Token{Typ: TokenNumber, Value: num.String(), Num: numValue(num.String())}
}

// numValue behaves like strtod: the longest leading prefix that forms a
// valid literal wins, so "1.2.3" reads as 1.2. Nothing valid reads as 0.
func numValue(s string) float64 {
	for i := len(s); i > 0; i-- {
		if v, err := strconv.ParseFloat(s[:i], 64); err == nil {
			return v
		}
	}

	return 0
}

func (l *Lexer) skipComment() {
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		l.next()
	}
}

func (l *Lexer) peek() rune {
	r := l.next()
	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	return r
}
