// Command wisp is the standalone interpreter: it loads core.wisp from
// WISPROOT (default "."), then either runs a script file named on the
// command line or drops into the REPL, per spec §6.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wisp/internal/eval"
	"wisp/internal/object"
	"wisp/internal/repl"
	"wisp/internal/symtab"
)

func main() {
	eval.Init()

	wisproot := os.Getenv("WISPROOT")
	if wisproot == "" {
		wisproot = "."
	}
	symtab.SSet(symtab.Intern("wisproot"), object.NewStringFrom(wisproot))

	corePath := wisproot + "/core.wisp"
	if r := eval.LoadFile(corePath); r == object.ErrSymbol {
		fmt.Fprintf(os.Stderr, "error: could not load core lisp %q\n", corePath)
		if wisproot == "." {
			fmt.Fprintln(os.Stderr, "warning: perhaps you should set WISPROOT")
		}
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		if r := eval.LoadFile(os.Args[1]); r == object.ErrSymbol {
			os.Exit(1)
		}
		return
	}

	installInterruptHandler()
	repl.Start()
}

// installInterruptHandler mirrors the original's handle_iterrupt: the
// first Ctrl-C sets the evaluator's interrupt flag so the next Eval call
// unwinds via caught-interrupt; a second Ctrl-C kills the process outright.
func installInterruptHandler() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGINT)
	go func() {
		armed := false
		for range sigs {
			if !armed {
				armed = true
				eval.Interrupt()
				continue
			}
			os.Exit(130)
		}
	}()
}
