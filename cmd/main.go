package main

import (
	"fmt"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"

	"go.kaleido.dev/pkg"
)

const usage = `usage: kaleido [-q] [-e expr] [file]

Reads source from stdin (interactive), from -e, or from a file, and prints
the lowered LLVM IR for the whole session on stdout.

  -q       suppress the ready> prompt
  -e expr  compile expr and exit
  -h       show this help`

func main() {
	opts, optind, err := getopt.Getopts(os.Args, "qe:h")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	var quiet bool
	var expr string
	for _, opt := range opts {
		switch opt.Option {
		case 'q':
			quiet = true
		case 'e':
			expr = opt.Value
		case 'h':
			fmt.Println(usage)
			return
		}
	}

	args := os.Args[optind:]

	switch {
	case expr != "":
		mod, diags := kaleido.NewCompiler().CompileFromReader(strings.NewReader(expr))
		emit(mod, diags)
	case len(args) == 1:
		mod, diags, err := kaleido.NewCompiler().Compile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		emit(mod, diags)
	case len(args) == 0:
		s := kaleido.NewSession(os.Stdin, kaleido.DefaultPrecedence())
		s.SetPrompt(!quiet)
		fmt.Println(s.Run())
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}

func emit(mod fmt.Stringer, diags []error) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, "Error:", d)
	}

	fmt.Println(mod)

	if len(diags) != 0 {
		os.Exit(1)
	}
}
