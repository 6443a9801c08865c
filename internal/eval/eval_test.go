package eval

import (
	"testing"

	"wisp/internal/object"
	"wisp/internal/reader"
	"wisp/internal/symtab"
)

func evalStr(t *testing.T, src string) *object.Object {
	t.Helper()
	r := reader.NewFromString(src, "<test>")
	sexp := r.ReadSexp()
	if sexp == object.ErrSymbol {
		t.Fatalf("parse error for %q", src)
	}
	result := TopEval(sexp)
	object.Destroy(sexp)
	return result
}

func TestMain(m *testing.M) {
	Init()
	m.Run()
}

func TestArithmeticAndComparison(t *testing.T) {
	cases := []struct{ src, want string }{
		{"(+ 1 2 3)", "6"},
		{"(- 10 3 2)", "5"},
		{"(* 2 3 4)", "24"},
		{"(< 1 2 3)", "t"},
		{"(< 1 3 2)", "nil"},
		{"(= 2 2.0)", "t"},
	}
	for _, c := range cases {
		r := evalStr(t, c.src)
		got := object.Print(r, true)
		object.Destroy(r)
		if got != c.want {
			t.Errorf("%s = %s, want %s", c.src, got, c.want)
		}
	}
}

func TestIfAndLet(t *testing.T) {
	r := evalStr(t, "(let ((x 1) (y (+ x 1))) (+ x y))")
	if got := object.Print(r, true); got != "3" {
		t.Errorf("got %s, want 3", got)
	}
	object.Destroy(r)

	heightBefore := symtab.Height(symtab.Intern("x"))
	r2 := evalStr(t, "(let ((x 1)) (+ x 1))")
	object.Destroy(r2)
	if symtab.Height(symtab.Intern("x")) != heightBefore {
		t.Errorf("let leaked a binding for x")
	}
}

func TestDefunAndApply(t *testing.T) {
	r := evalStr(t, "(defun sq (x) (* x x))")
	object.Destroy(r)
	r2 := evalStr(t, "(sq 5)")
	if got := object.Print(r2, true); got != "25" {
		t.Errorf("got %s, want 25", got)
	}
	object.Destroy(r2)
}

func TestRecursion(t *testing.T) {
	r := evalStr(t, "(defun fact (n) (if (= n 0) 1 (* n (fact (- n 1)))))")
	object.Destroy(r)
	r2 := evalStr(t, "(fact 10)")
	if got := object.Print(r2, true); got != "3628800" {
		t.Errorf("got %s, want 3628800", got)
	}
	object.Destroy(r2)
}

func TestCatchThrow(t *testing.T) {
	r := evalStr(t, "(catch 'oops (+ 1 (throw 'oops 42)))")
	if got := object.Print(r, true); got != "42" {
		t.Errorf("got %s, want 42", got)
	}
	object.Destroy(r)
}

func TestCatchDoesNotCatchOtherTags(t *testing.T) {
	r := evalStr(t, "(catch 'a (throw 'b 1))")
	if r != object.ErrSymbol {
		t.Errorf("expected uncaught error to propagate")
	}
}

func TestVoidFunctionError(t *testing.T) {
	// 1 self-evaluates to a non-callable INT, so calling (1 2 3) hits the
	// not-Callable branch rather than an unbound-symbol lookup.
	r := evalStr(t, "(1 2 3)")
	if r != object.ErrSymbol {
		t.Errorf("expected void-function error")
	}
}

func TestVoidVariableError(t *testing.T) {
	r := evalStr(t, "unbound-variable-xyz")
	if r != object.ErrSymbol {
		t.Errorf("expected void-variable error")
	}
}

func TestCallingUnboundSymbolIsVoidVariable(t *testing.T) {
	r := evalStr(t, "(this-does-not-exist 1 2)")
	if r != object.ErrSymbol {
		t.Errorf("expected an error for an unbound function position")
	}
}

func TestWrongNumberOfArguments(t *testing.T) {
	r := evalStr(t, "(cons 1)")
	if r != object.ErrSymbol {
		t.Errorf("expected wrong-number-of-arguments error")
	}
}

func TestMacroExpandsAndEvaluatesResult(t *testing.T) {
	r := evalStr(t, "(defmacro twice (x) (list '+ x x))")
	object.Destroy(r)
	r2 := evalStr(t, "(twice 21)")
	if got := object.Print(r2, true); got != "42" {
		t.Errorf("got %s, want 42", got)
	}
	object.Destroy(r2)
}

func TestOptionalAndRestArgs(t *testing.T) {
	r := evalStr(t, "(defun f (a &optional b &rest c) (list a b c))")
	object.Destroy(r)
	r2 := evalStr(t, "(f 1)")
	if got := object.Print(r2, true); got != "(1 nil nil)" {
		t.Errorf("got %s, want (1 nil nil)", got)
	}
	object.Destroy(r2)

	r3 := evalStr(t, "(f 1 2 3 4)")
	if got := object.Print(r3, true); got != "(1 2 (3 4))" {
		t.Errorf("got %s, want (1 2 (3 4))", got)
	}
	object.Destroy(r3)
}

func TestRecursiveAccumulator(t *testing.T) {
	r := evalStr(t, "(defun countdown (n acc) (if (= n 0) acc (countdown (- n 1) (cons n acc))))")
	object.Destroy(r)
	r2 := evalStr(t, "(countdown 3 nil)")
	if got := object.Print(r2, true); got != "(1 2 3)" {
		t.Errorf("got %s, want (1 2 3)", got)
	}
	object.Destroy(r2)
}

func TestWhileSpecialForm(t *testing.T) {
	r := evalStr(t, "(let ((i 0) (acc nil)) (while (< i 3) (set 'i (+ i 1)) (set 'acc (cons i acc))) acc)")
	if got := object.Print(r, true); got != "(3 2 1)" {
		t.Errorf("got %s, want (3 2 1)", got)
	}
	object.Destroy(r)
}

// TestVectorAsFunction exercises spec §4.5's "vectors are callable" rewrite:
// evaluating (f o) with f bound to a vector re-dispatches through `vfunc`.
// eval_test doesn't load core.wisp, so vfunc is defined inline here.
func TestVectorAsFunction(t *testing.T) {
	r := evalStr(t, "(defun vfunc (v idx) (vget v idx))")
	object.Destroy(r)

	r2 := evalStr(t, "(defun v () (let ((vec (make-vector 3 0))) (vset vec 1 42) vec))")
	object.Destroy(r2)

	r3 := evalStr(t, "((v) 1)")
	if got := object.Print(r3, true); got != "42" {
		t.Errorf("got %s, want 42", got)
	}
	object.Destroy(r3)
}

func TestEqVsEql(t *testing.T) {
	r := evalStr(t, "(eql 1000000 1000000)")
	if got := object.Print(r, true); got != "t" {
		t.Errorf("eql on equal bignums = %s, want t", got)
	}
	object.Destroy(r)
}

func TestMaxEvalDepthThrows(t *testing.T) {
	old := MaxEvalDepth()
	SetMaxEvalDepth(50)
	defer SetMaxEvalDepth(old)

	r := evalStr(t, "(defun loop-forever (n) (+ 1 (loop-forever n)))")
	object.Destroy(r)
	r2 := evalStr(t, "(loop-forever 0)")
	if r2 != object.ErrSymbol {
		t.Errorf("expected max-eval-depth error")
	}
	if EvalDepth() != 0 {
		t.Errorf("stack depth not restored after max-eval-depth throw: %d", EvalDepth())
	}
}
