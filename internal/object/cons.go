package object

// NewCons builds a fresh CONS cell owning car and cdr (both must already
// be owned references; NewCons does not upref them, matching c_cons/cons()
// in the original which take ownership of their arguments).
func NewCons(car, cdr *Object) *Object {
	o := Create(Cons)
	o.Car = car
	o.Cdr = cdr
	return o
}

// Length walks a proper list and returns its element count, or -1 if it is
// improper.
func Length(o *Object) int {
	n := 0
	for o != NIL {
		if !ConsP(o) {
			return -1
		}
		n++
		o = o.Cdr
	}
	return n
}

// ProperP reports whether o is a proper list: a CONS chain terminated by
// NIL.
func ProperP(o *Object) bool {
	for o != NIL {
		if !ConsP(o) {
			return false
		}
		o = o.Cdr
	}
	return true
}

// Slice collects a proper list into a Go slice of borrowed references.
// Returns false if o is improper.
func Slice(o *Object) ([]*Object, bool) {
	var out []*Object
	for o != NIL {
		if !ConsP(o) {
			return nil, false
		}
		out = append(out, o.Car)
		o = o.Cdr
	}
	return out, true
}

// FromSlice builds an owned, proper list from owned elements.
func FromSlice(elems []*Object) *Object {
	result := NIL
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewCons(elems[i], result)
	}
	return result
}
