package object

import (
	"hash"
	"hash/fnv"
)

// Hash computes a structural hash for any variant, per spec §4.2. Symbols
// hash by identity (their interned name), numbers and strings by value,
// cons cells and vectors by combining their elements' hashes.
func Hash(o *Object) int {
	h := fnv.New32a()
	hashInto(h, o)
	return int(h.Sum32())
}

func hashInto(h hash.Hash32, o *Object) {
	if o == nil {
		return
	}
	switch o.Tag {
	case Symbol:
		h.Write([]byte{byte(Symbol)})
		h.Write([]byte(Sym(o).Name))
	case Int:
		h.Write([]byte{byte(Int)})
		h.Write([]byte(IntVal(o).String()))
	case Float:
		h.Write([]byte{byte(Float)})
		h.Write([]byte(FloatVal(o).Text('g', -1)))
	case String:
		h.Write([]byte{byte(String)})
		h.Write(Str(o).Raw)
	case Cons:
		h.Write([]byte{byte(Cons)})
		hashInto(h, o.Car)
		hashInto(h, o.Cdr)
	case Vector:
		h.Write([]byte{byte(Vector)})
		for _, e := range o.Payload.([]*Object) {
			hashInto(h, e)
		}
	case CFunc, Special:
		h.Write([]byte{byte(o.Tag)})
	}
}
