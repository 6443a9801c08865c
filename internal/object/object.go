// Package object implements wisp's universal runtime value: a tagged,
// reference-counted Object and the slab allocator that backs it.
package object

import "math/big"

// Tag discriminates the variants an Object can hold.
type Tag uint8

const (
	Cons Tag = iota
	Symbol
	String
	Int
	Float
	Vector
	CFunc
	Special
)

func (t Tag) String() string {
	switch t {
	case Cons:
		return "cons"
	case Symbol:
		return "symbol"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Vector:
		return "vector"
	case CFunc:
		return "cfunc"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// Func is the shape of both CFUNC and SPECIAL payloads: a host function
// taking the (unevaluated, for SPECIAL; evaluated, for CFUNC) argument
// list and returning an owned result or object.ErrSymbol.
type Func func(args *Object) *Object

// SymbolData is the SYMBOL payload: an interned name, a constant flag, and
// the per-symbol LIFO value stack that implements shadowing lexical scope
// without heap environment frames (spec §4.3).
type SymbolData struct {
	Name     string
	Constant bool
	Values   []*Object
}

// Object is the single fixed-shape header every tag is allocated through,
// per the slab allocator's requirement that CONS and non-CONS headers each
// come from one pool of uniformly sized slots. Car/Cdr are used directly by
// CONS; every other tag stashes its payload in Payload.
type Object struct {
	Tag  Tag
	Refs int

	Car, Cdr *Object // CONS only (also self-referential on NIL)

	Payload any // *SymbolData | *StringData | *big.Int | *big.Float | []*Object | Func
}

// NIL is the empty list and the canonical false value. T is canonical
// truth. Both are immortal SYMBOLs allocated outside any slab — see §3/§9.
// NIL doubles as the empty CONS: its own Car/Cdr point back to itself so
// list-traversal code can treat NIL uniformly with a real CONS tail.
var NIL = &Object{Tag: Symbol, Refs: 1, Payload: &SymbolData{Name: "nil", Constant: true}}

// T is the canonical truth value.
var T = &Object{Tag: Symbol, Refs: 1, Payload: &SymbolData{Name: "t", Constant: true}}

// ErrSymbol is the sentinel returned in lieu of raising: "an error is in
// flight, propagate" (spec §2, §4.5). The thrown_tag/thrown_attach pair
// that travels with it is kept by package eval (errThrown/errAttach).
var ErrSymbol = &Object{Tag: Symbol, Refs: 1, Payload: &SymbolData{Name: "wisp-error", Constant: true}}

func init() {
	NIL.Car, NIL.Cdr = NIL, NIL
}

// Create allocates a fresh header of the given tag with Refs=1. Callers
// are responsible for filling in Payload/Car/Cdr before the object
// escapes.
func Create(tag Tag) *Object {
	var o *Object
	if tag == Cons {
		o = consSlab.alloc()
	} else {
		o = headerSlab.alloc()
	}
	o.Tag = tag
	o.Refs = 1
	return o
}

// Upref increments o's reference count and returns o, promoting a borrowed
// reference to an owned one.
func Upref(o *Object) *Object {
	if o == nil {
		return nil
	}
	o.Refs++
	return o
}

// Destroy decrements o's reference count; at zero it recursively destroys
// owned children and returns the header to its slab. NIL, T, and
// ErrSymbol are immortal no-ops. SYMBOLs in general are immortal too: the
// symbol table is considered to hold a permanent reference, so Destroy
// only decrements the symbol's bookkeeping count (visible through the
// `refcount` primitive) without ever recycling it.
func Destroy(o *Object) {
	if o == nil || o == NIL || o == T || o == ErrSymbol {
		return
	}
	if o.Tag == Symbol {
		if o.Refs > 0 {
			o.Refs--
		}
		return
	}
	o.Refs--
	if o.Refs > 0 {
		return
	}
	switch o.Tag {
	case Cons:
		Destroy(o.Car)
		Destroy(o.Cdr)
	case Vector:
		for _, e := range o.Payload.([]*Object) {
			Destroy(e)
		}
	}
	if o.Tag == Cons {
		consSlab.release(o)
	} else {
		headerSlab.release(o)
	}
}

// Predicates, mirroring the *P macros in object.h.

func ConsP(o *Object) bool { return o != nil && o.Tag == Cons }

// ListP reports whether o is usable as a list head: NIL or a CONS.
func ListP(o *Object) bool { return o == NIL || ConsP(o) }

func SymbolP(o *Object) bool { return o != nil && o.Tag == Symbol }
func StringP(o *Object) bool { return o != nil && o.Tag == String }
func IntP(o *Object) bool    { return o != nil && o.Tag == Int }
func FloatP(o *Object) bool  { return o != nil && o.Tag == Float }
func NumP(o *Object) bool    { return IntP(o) || FloatP(o) }
func VectorP(o *Object) bool { return o != nil && o.Tag == Vector }

// FuncP reports whether o is directly callable as a CFUNC or SPECIAL.
// lambda-list and macro-list forms are also callable, but recognizing
// those requires knowing the `lambda`/`macro` head symbols, which live in
// package eval; eval.Callable wraps this predicate with that check.
func FuncP(o *Object) bool { return o != nil && (o.Tag == CFunc || o.Tag == Special) }

// Truthy reports whether o counts as true in a conditional: anything but
// NIL.
func Truthy(o *Object) bool { return o != NIL }

// Sym returns o's SymbolData. Panics if o is not a SYMBOL; callers must
// check SymbolP first, matching the unchecked macro access of the C
// original.
func Sym(o *Object) *SymbolData { return o.Payload.(*SymbolData) }

// IntVal / FloatVal return the underlying bignum payloads.
func IntVal(o *Object) *big.Int     { return o.Payload.(*big.Int) }
func FloatVal(o *Object) *big.Float { return o.Payload.(*big.Float) }

// ConstantP reports whether a SYMBOL has been declared immutable.
func ConstantP(o *Object) bool { return SymbolP(o) && Sym(o).Constant }
