package test

import (
	"math/rand"
	"strconv"
	"strings"
)

const validTokens = "def;extern;foo;bar;baz;x;y;acc;(;);,;+;-;*;<;1;42;365;2.5;3.14159;.5;# a comment\n"

// GetRandomSource assembles size valid tokens into one source string, for
// feeding the lexer and parser benchmarks.
func GetRandomSource(size int) string {
	return GetRandomSourceWithSep(size, " ")
}

func GetRandomSourceWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

var chainOps = []string{"+", "-", "*", "<"}

// GetRandomNumberChain builds one well-formed expression of size number
// literals joined by random binary operators.
func GetRandomNumberChain(size int) string {
	var sb strings.Builder
	for i := 0; i < size; i++ {
		if i > 0 {
			sb.WriteString(" " + chainOps[rand.Intn(len(chainOps))] + " ")
		}
		sb.WriteString(strconv.Itoa(rand.Intn(1000)))
	}

	return sb.String()
}
