// Package eval implements wisp's tree-walking evaluator: Eval/Apply,
// special-form and macro dispatch, &rest/&optional argument binding, and
// the sentinel-based catch/throw error model (spec §4.5).
//
// Ported from the authoritative two-function eval/apply split in
// lib/eval.c (spec §9's open question).
package eval

import (
	"fmt"

	"wisp/internal/object"
	"wisp/internal/symtab"
)

// Well-known symbols, interned once by Init.
var (
	lambdaSym, macroSym, quoteSym *object.Object
	restSym, optionalSym         *object.Object
	docStringSym                 *object.Object

	voidFunctionSym          *object.Object
	voidVariableSym          *object.Object
	wrongNumArgsSym          *object.Object
	wrongTypeSym             *object.Object
	improperListSym          *object.Object
	improperListEndingSym    *object.Object
	errInterruptSym          *object.Object
	maxEvalDepthSym          *object.Object
	badFunctionFormSym       *object.Object
	badLetFormSym            *object.Object
	loadFileErrorSym         *object.Object
	parseErrorSym            *object.Object
)

// Global, in-flight error state: the tag/attachment pair a throw is
// currently carrying, owned references until a catch or TopEval consumes
// them (spec §4.5, §7).
var errThrown, errAttach *object.Object

// stackDepth/maxStackDepth bound recursion to protect the host call stack
// (spec §5); interrupt is set by the host's SIGINT handler and observed on
// the next Eval call (spec §5's interrupt model).
var (
	stackDepth    int
	maxStackDepth = 20000
	interrupt     bool
)

// Interrupt requests that the next Eval call throw caught-interrupt, per
// the single-flag SIGINT protocol in spec §5. The CLI front end's signal
// handler is the intended caller; it is itself out of core scope.
func Interrupt() { interrupt = true }

// Init wires the symbol table and registers every built-in special form
// and function named in spec §4.5's table, plus the reference arithmetic
// contract and (unless WISP_NO_EXT is set) the optional database/network
// bindings described in SPEC_FULL.md's DOMAIN STACK section.
func Init() {
	symtab.Init()

	lambdaSym = symtab.Intern("lambda")
	macroSym = symtab.Intern("macro")
	quoteSym = symtab.Intern("quote")
	restSym = symtab.Intern("&rest")
	optionalSym = symtab.Intern("&optional")
	docStringSym = symtab.Intern("doc-string")

	symtab.SSet(object.ErrSymbol, object.ErrSymbol)
	symtab.SSet(object.NIL, object.NIL)
	symtab.SSet(object.T, object.T)
	errThrown, errAttach = object.NIL, object.NIL

	voidFunctionSym = symtab.Intern("void-function")
	voidVariableSym = symtab.Intern("void-variable")
	wrongNumArgsSym = symtab.Intern("wrong-number-of-arguments")
	wrongTypeSym = symtab.Intern("wrong-type-argument")
	improperListSym = symtab.Intern("improper-list")
	improperListEndingSym = symtab.Intern("improper-list-ending")
	errInterruptSym = symtab.Intern("caught-interrupt")
	maxEvalDepthSym = symtab.Intern("max-eval-depth")
	badFunctionFormSym = symtab.Intern("bad-function-form")
	badLetFormSym = symtab.Intern("bad-let-form")
	loadFileErrorSym = symtab.Intern("load-file-error")
	parseErrorSym = symtab.Intern("parse-error")

	stackDepth = 0
	maxStackDepth = 20000
	interrupt = false

	registerSpecialForms()
	registerBuiltinFuncs()
	registerArith()
	registerExtBindings()
}

// Throw sets the in-flight tag/attachment pair and returns the sentinel.
// Callers must pass owned references for both tag and attach.
func Throw(tag, attach *object.Object) *object.Object {
	object.Destroy(errThrown)
	object.Destroy(errAttach)
	errThrown, errAttach = tag, attach
	return object.ErrSymbol
}

func isLambdaForm(f *object.Object) bool { return object.ConsP(f) && f.Car == lambdaSym }
func isMacroForm(f *object.Object) bool  { return object.ConsP(f) && f.Car == macroSym }

// Callable reports whether f is directly applicable: a CFUNC/SPECIAL, or a
// (lambda ...)/(macro ...) list form.
func Callable(f *object.Object) bool {
	return object.FuncP(f) || isLambdaForm(f) || isMacroForm(f)
}

// Eval reduces o to a value, per spec §4.5's six-step dispatch.
func Eval(o *object.Object) *object.Object {
	if interrupt {
		interrupt = false
		return Throw(object.Upref(errInterruptSym), object.NewStringFrom("interrupted"))
	}

	if o.Tag != object.Cons && o.Tag != object.Symbol {
		return object.Upref(o)
	}
	if o.Tag == object.Symbol {
		v, ok := symtab.Get(o)
		if !ok {
			return Throw(object.Upref(voidVariableSym), object.Upref(o))
		}
		return object.Upref(v)
	}

	f := Eval(o.Car)
	if f == object.ErrSymbol {
		return f
	}

	extra := object.NIL
	if object.VectorP(f) {
		extra = object.NewCons(object.Upref(f), object.Upref(o))
		object.Destroy(f)
		o = extra
		f = Eval(symtab.Intern("vfunc"))
		if f == object.ErrSymbol {
			object.Destroy(extra)
			return object.ErrSymbol
		}
	}
	if !Callable(f) {
		object.Destroy(f)
		tag := object.Upref(o.Car)
		object.Destroy(extra)
		return Throw(object.Upref(voidFunctionSym), tag)
	}

	stackDepth++
	if stackDepth >= maxStackDepth {
		depth := stackDepth
		stackDepth--
		object.Destroy(f)
		object.Destroy(extra)
		return Throw(object.Upref(maxEvalDepthSym), object.NewIntFromInt64(int64(depth)))
	}

	var args *object.Object
	if f.Tag == object.CFunc || isLambdaForm(f) {
		evaluated := EvalList(o.Cdr)
		if evaluated == object.ErrSymbol {
			stackDepth--
			object.Destroy(f)
			object.Destroy(extra)
			return object.ErrSymbol
		}
		args = evaluated
	} else {
		args = object.Upref(o.Cdr)
	}

	ret := Apply(f, args)
	stackDepth--
	object.Destroy(f)
	object.Destroy(args)
	object.Destroy(extra)
	return ret
}

// Apply invokes f (already known Callable) on args. For CFUNC/SPECIAL this
// calls the host function directly; for a lambda/macro list form it binds
// formals, evaluates the body, and — for macros — evaluates the result a
// second time.
func Apply(f, args *object.Object) *object.Object {
	if f.Tag == object.CFunc || f.Tag == object.Special {
		fn := f.Payload.(object.Func)
		return fn(args)
	}

	vars := f.Cdr.Car
	assigned := AssignArgs(vars, args)
	if assigned == object.ErrSymbol {
		object.Destroy(errAttach)
		errAttach = object.Upref(args)
		return object.ErrSymbol
	}
	object.Destroy(assigned)

	var ret *object.Object
	if f.Car == lambdaSym {
		ret = EvalBody(f.Cdr.Cdr)
	} else {
		body := EvalBody(f.Cdr.Cdr)
		ret = Eval(body)
		object.Destroy(body)
	}
	UnassignArgs(vars)
	return ret
}

// EvalList evaluates each element of a (possibly improper-tailed) list
// left to right, building a fresh proper list. An improper tail throws
// improper-list-ending; any element error destroys the partial result and
// propagates.
func EvalList(lst *object.Object) *object.Object {
	if lst == object.NIL {
		return object.NIL
	}
	if !object.ConsP(lst) {
		return Throw(object.Upref(improperListEndingSym), object.Upref(lst))
	}
	car := Eval(lst.Car)
	if car == object.ErrSymbol {
		return car
	}
	cdr := EvalList(lst.Cdr)
	if cdr == object.ErrSymbol {
		object.Destroy(car)
		return object.ErrSymbol
	}
	return object.NewCons(car, cdr)
}

// EvalBody evaluates forms in sequence, destroying each previous result,
// returning the last value (NIL if body is empty).
func EvalBody(body *object.Object) *object.Object {
	r := object.NIL
	for body != object.NIL {
		object.Destroy(r)
		r = Eval(body.Car)
		if r == object.ErrSymbol {
			return r
		}
		body = body.Cdr
	}
	return r
}

// AssignArgs binds formals to actuals, honoring &optional and &rest, per
// spec §4.5's "Parameter binding". On any mismatch it rolls back bindings
// already pushed and throws wrong-number-of-arguments.
func AssignArgs(vars, vals *object.Object) *object.Object {
	optionalMode := false
	cnt := 0
	origVars := vars

loop:
	for vars != object.NIL {
		v := vars.Car
		switch {
		case v == optionalSym:
			optionalMode = true
			vars = vars.Cdr
			continue loop

		case v == restSym:
			vars = vars.Cdr
			symtab.Push(vars.Car, vals)
			vals = object.NIL
			break loop

		case !optionalMode && vals == object.NIL:
			rv := origVars
			for cnt > 0 {
				symtab.Pop(rv.Car)
				rv = rv.Cdr
				cnt--
			}
			return Throw(object.Upref(wrongNumArgsSym), object.NIL)

		case optionalMode && vals == object.NIL:
			symtab.Push(v, object.NIL)

		default:
			symtab.Push(v, vals.Car)
			cnt++
		}
		vars = vars.Cdr
		if vals != object.NIL {
			vals = vals.Cdr
		}
	}

	if vals != object.NIL {
		UnassignArgs(origVars)
		return Throw(object.Upref(wrongNumArgsSym), object.NIL)
	}
	return object.Upref(object.T)
}

// UnassignArgs pops each formal's binding, skipping &rest/&optional
// markers.
func UnassignArgs(vars *object.Object) {
	for vars != object.NIL {
		v := vars.Car
		if v != restSym && v != optionalSym {
			symtab.Pop(v)
		}
		vars = vars.Cdr
	}
}

// TopEval is the outermost entry point: it resets the call-depth counter,
// evaluates o, and on an uncaught error prints "Wisp error: (<tag>
// <attach>)" to stdout before consuming the in-flight error state.
func TopEval(o *object.Object) *object.Object {
	stackDepth = 0
	r := Eval(o)
	if r == object.ErrSymbol {
		fmt.Print("Wisp error: ")
		c := object.NewCons(errThrown, object.NewCons(errAttach, object.NIL))
		fmt.Print(object.Print(c, true))
		object.Destroy(c)
		errThrown, errAttach = object.NIL, object.NIL
		return object.ErrSymbol
	}
	return r
}

// EvalDepth and MaxEvalDepth back the `eval-depth`/`max-eval-depth`
// introspection primitives.
func EvalDepth() int       { return stackDepth }
func MaxEvalDepth() int    { return maxStackDepth }
func SetMaxEvalDepth(n int) { maxStackDepth = n }
