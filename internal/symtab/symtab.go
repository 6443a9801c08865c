// Package symtab implements wisp's symbol table: name→SYMBOL interning
// plus the per-symbol LIFO value stack that gives the evaluator shadowing
// lexical scope without heap environment frames (spec §3, §4.3).
package symtab

import "wisp/internal/object"

var table map[string]*object.Object

// Init (re)creates the process-global symbol table and interns the three
// immortal sentinels under their canonical names.
func Init() {
	table = make(map[string]*object.Object)
	table["nil"] = object.NIL
	table["t"] = object.T
	table["wisp-error"] = object.ErrSymbol
}

// Intern returns the existing SYMBOL for name, creating one with an empty
// value stack if this is the first time name has been seen. Interned
// symbols have object identity: repeated calls with the same name return
// the same *object.Object (spec's Identity testable property).
func Intern(name string) *object.Object {
	if sym, ok := table[name]; ok {
		return sym
	}
	sym := object.Create(object.Symbol)
	sym.Payload = &object.SymbolData{Name: name}
	table[name] = sym
	return sym
}

// InternConstant interns name and marks it constant, refusing future SET
// calls (c_usym in the original).
func InternConstant(name string) *object.Object {
	sym := Intern(name)
	object.Sym(sym).Constant = true
	return sym
}

// Get returns a borrowed reference to sym's top binding, or ok=false if
// its value stack is empty ("void value").
func Get(sym *object.Object) (*object.Object, bool) {
	vals := object.Sym(sym).Values
	if len(vals) == 0 {
		return nil, false
	}
	return vals[len(vals)-1], true
}

// Push pushes an owned reference onto sym's value stack (sympush: the
// caller's val is uprefed, so callers who only hold a borrowed reference
// must pass a borrowed one — Push takes ownership of one increment).
func Push(sym, val *object.Object) {
	data := object.Sym(sym)
	data.Values = append(data.Values, object.Upref(val))
}

// Pop discards sym's top binding, destroying it. Panics if the stack is
// empty — callers (AssignArgs/UnassignArgs, let, lambda application) are
// expected to track push/pop pairs precisely, exactly as the C
// sympop/sympush discipline requires.
func Pop(sym *object.Object) {
	data := object.Sym(sym)
	n := len(data.Values)
	object.Destroy(data.Values[n-1])
	data.Values = data.Values[:n-1]
}

// Set replaces sym's top binding in place. Reports ok=false (and leaves
// the stack untouched) if sym is a constant or its stack is empty.
func Set(sym, val *object.Object) bool {
	data := object.Sym(sym)
	if data.Constant {
		return false
	}
	n := len(data.Values)
	if n == 0 {
		return false
	}
	object.Destroy(data.Values[n-1])
	data.Values[n-1] = object.Upref(val)
	return true
}

// SSet is like Set but initializes the top binding if the stack is empty,
// used by built-in registration at startup (SSET in lisp_init).
func SSet(sym, val *object.Object) {
	data := object.Sym(sym)
	if len(data.Values) == 0 {
		Push(sym, val)
		return
	}
	Set(sym, val)
}

// Height reports the current depth of sym's value stack, used by tests to
// assert the Symbol-stack balance property (spec §8): after top-level
// evaluation, every symbol's stack height matches what it was before,
// error or not.
func Height(sym *object.Object) int {
	return len(object.Sym(sym).Values)
}
