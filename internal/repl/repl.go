// Package repl implements wisp's interactive top level: read one
// S-expression at a time from stdin (prompting per spec §4.4's
// interactive mode), evaluate it, and print the result.
package repl

import (
	"fmt"
	"os"

	"wisp/internal/eval"
	"wisp/internal/object"
	"wisp/internal/reader"
)

// Start runs the read-eval-print loop until EOF (Ctrl-D) on stdin.
func Start() {
	fmt.Println("wisp | Ctrl-D to quit")
	r := reader.New(os.Stdin, "<stdin>", true)

	for {
		sexp := r.ReadSexp()
		if r.EOF() {
			object.Destroy(sexp)
			fmt.Println()
			return
		}
		if sexp == object.ErrSymbol {
			continue
		}
		result := eval.TopEval(sexp)
		object.Destroy(sexp)
		if result == object.ErrSymbol {
			fmt.Println()
			continue
		}
		fmt.Println(object.Print(result, true))
		object.Destroy(result)
	}
}
