package eval

import (
	"wisp/internal/object"
	"wisp/internal/symtab"
)

// registerSpecialForms binds every SPECIAL form in spec §4.5's table.
// Special forms receive their argument list unevaluated; each one decides
// for itself what (and whether) to evaluate.
func registerSpecialForms() {
	defSpecial("quote", formQuote)
	defSpecial("lambda", formLambda)
	defSpecial("macro", formMacro)
	defSpecial("defun", formDefun)
	defSpecial("defmacro", formDefmacro)
	defSpecial("if", formIf)
	defSpecial("progn", formProgn)
	defSpecial("let", formLet)
	defSpecial("while", formWhile)
	defSpecial("and", formAnd)
	defSpecial("or", formOr)
	defSpecial("catch", formCatch)
}

func formQuote(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "quote"); e != nil {
		return e
	}
	return object.Upref(args.Car)
}

// funcForm builds the callable list value for lambda/macro: (head . args),
// after validating args has the (formals . body) shape.
func funcForm(head *object.Object, args *object.Object) *object.Object {
	if !isFuncForm(args) {
		return Throw(object.Upref(badFunctionFormSym), object.Upref(args))
	}
	return object.NewCons(object.Upref(head), object.Upref(args))
}

func formLambda(args *object.Object) *object.Object { return funcForm(lambdaSym, args) }
func formMacro(args *object.Object) *object.Object  { return funcForm(macroSym, args) }

// defForm implements defun/defmacro: (name (formals...) body...) builds a
// (head formals . body) callable and globally (re)binds name to it.
func defForm(head *object.Object, args *object.Object) *object.Object {
	if e := reqMin(args, 2, "defun"); e != nil {
		return e
	}
	name := args.Car
	if !object.SymbolP(name) {
		return wrongType(name)
	}
	fn := funcForm(head, args.Cdr)
	if fn == object.ErrSymbol {
		return fn
	}
	symtab.SSet(name, fn)
	object.Destroy(fn)
	return object.Upref(name)
}

func formDefun(args *object.Object) *object.Object    { return defForm(lambdaSym, args) }
func formDefmacro(args *object.Object) *object.Object { return defForm(macroSym, args) }

// formIf implements (if cond then else...): else may be any number of
// forms, evaluated as an implicit progn, matching spec §4.5.
func formIf(args *object.Object) *object.Object {
	if e := reqMin(args, 2, "if"); e != nil {
		return e
	}
	cond := Eval(args.Car)
	if cond == object.ErrSymbol {
		return cond
	}
	truthy := object.Truthy(cond)
	object.Destroy(cond)
	if truthy {
		return Eval(args.Cdr.Car)
	}
	return EvalBody(args.Cdr.Cdr)
}

func formProgn(args *object.Object) *object.Object { return EvalBody(args) }

// formLet implements wisp's sequential let (spec §9's open question):
// each binding's initializer sees every earlier binding already pushed.
func formLet(args *object.Object) *object.Object {
	if e := reqMin(args, 1, "let"); e != nil {
		return e
	}
	bindings := args.Car
	if !object.ListP(bindings) {
		return Throw(object.Upref(badLetFormSym), object.Upref(args))
	}

	var bound []*object.Object
	unwind := func() {
		for i := len(bound) - 1; i >= 0; i-- {
			symtab.Pop(bound[i])
		}
	}

	for b := bindings; b != object.NIL; b = b.Cdr {
		pair := b.Car
		if !object.ConsP(pair) || !object.SymbolP(pair.Car) {
			unwind()
			return Throw(object.Upref(badLetFormSym), object.Upref(args))
		}
		sym := pair.Car
		var val *object.Object
		if pair.Cdr == object.NIL {
			val = object.Upref(object.NIL)
		} else {
			val = Eval(pair.Cdr.Car)
			if val == object.ErrSymbol {
				unwind()
				return val
			}
		}
		symtab.Push(sym, val)
		object.Destroy(val)
		bound = append(bound, sym)
	}

	r := EvalBody(args.Cdr)
	unwind()
	return r
}

func formWhile(args *object.Object) *object.Object {
	if e := reqMin(args, 1, "while"); e != nil {
		return e
	}
	for {
		cond := Eval(args.Car)
		if cond == object.ErrSymbol {
			return cond
		}
		truthy := object.Truthy(cond)
		object.Destroy(cond)
		if !truthy {
			return object.Upref(object.NIL)
		}
		r := EvalBody(args.Cdr)
		if r == object.ErrSymbol {
			return r
		}
		object.Destroy(r)
	}
}

func formAnd(args *object.Object) *object.Object {
	r := object.Upref(object.T)
	for args != object.NIL {
		object.Destroy(r)
		r = Eval(args.Car)
		if r == object.ErrSymbol {
			return r
		}
		if !object.Truthy(r) {
			return r
		}
		args = args.Cdr
	}
	return r
}

func formOr(args *object.Object) *object.Object {
	for args != object.NIL {
		r := Eval(args.Car)
		if r == object.ErrSymbol {
			return r
		}
		if object.Truthy(r) {
			return r
		}
		object.Destroy(r)
		args = args.Cdr
	}
	return object.Upref(object.NIL)
}

// formCatch implements (catch tag body...): body is run as an implicit
// progn; if it throws and the in-flight tag is eq to tag's value, catch
// returns the attachment instead of propagating (spec §4.5, §7).
func formCatch(args *object.Object) *object.Object {
	if e := reqMin(args, 1, "catch"); e != nil {
		return e
	}
	tag := Eval(args.Car)
	if tag == object.ErrSymbol {
		return tag
	}
	r := EvalBody(args.Cdr)
	if r != object.ErrSymbol {
		object.Destroy(tag)
		return r
	}
	if tag == errThrown {
		object.Destroy(tag)
		object.Destroy(errThrown)
		caught := errAttach
		errThrown, errAttach = object.NIL, object.NIL
		return caught
	}
	object.Destroy(tag)
	return object.ErrSymbol
}
