package eval

import (
	"wisp/internal/object"
	"wisp/internal/symtab"
)

// defSpecial and defCFunc register a host function under name, mirroring
// the SSET-at-init pattern lisp_init uses to populate the global table
// before any user code runs.
func defSpecial(name string, fn object.Func) {
	sym := symtab.Intern(name)
	o := object.Create(object.Special)
	o.Payload = fn
	symtab.SSet(sym, o)
	object.Destroy(o)
}

func defCFunc(name string, fn object.Func) {
	sym := symtab.Intern(name)
	o := object.Create(object.CFunc)
	o.Payload = fn
	symtab.SSet(sym, o)
	object.Destroy(o)
}

// reqExact throws wrong-number-of-arguments (attaching the builtin's own
// name) unless args has exactly n elements.
func reqExact(args *object.Object, n int, name string) *object.Object {
	if object.Length(args) == n {
		return nil
	}
	return Throw(object.Upref(wrongNumArgsSym), object.Upref(symtab.Intern(name)))
}

// reqMin is reqExact's "at least n" counterpart, used by variadic forms
// like `if`/`let`/`catch`.
func reqMin(args *object.Object, n int, name string) *object.Object {
	if object.Length(args) >= n {
		return nil
	}
	return Throw(object.Upref(wrongNumArgsSym), object.Upref(symtab.Intern(name)))
}

// wrongType throws wrong-type-argument attaching the offending value.
func wrongType(got *object.Object) *object.Object {
	return Throw(object.Upref(wrongTypeSym), object.Upref(got))
}

// nth walks n CDRs down a proper list and returns the nth CAR (borrowed).
func nth(lst *object.Object, n int) *object.Object {
	for ; n > 0; n-- {
		lst = lst.Cdr
	}
	return lst.Car
}

// boolObj converts a Go bool to T/NIL, as an owned reference.
func boolObj(b bool) *object.Object {
	if b {
		return object.Upref(object.T)
	}
	return object.Upref(object.NIL)
}

// isFuncForm reports whether lst has the (formals . body) shape a
// lambda/macro/defun/defmacro form requires: formals is a list (of symbols,
// optionally containing &optional/&rest markers).
func isFuncForm(lst *object.Object) bool {
	if !object.ConsP(lst) {
		return false
	}
	formals := lst.Car
	if !object.ListP(formals) {
		return false
	}
	for formals != object.NIL {
		if !object.ConsP(formals) || !object.SymbolP(formals.Car) {
			return false
		}
		formals = formals.Cdr
	}
	return true
}
