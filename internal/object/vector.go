package object

// NewVector allocates a fixed-length VECTOR, filling every slot with an
// owned reference to fill (fill itself is borrowed; it is uprefed once per
// slot and the caller's own reference is untouched).
func NewVector(length int, fill *Object) *Object {
	elems := make([]*Object, length)
	for i := range elems {
		elems[i] = Upref(fill)
	}
	o := Create(Vector)
	o.Payload = elems
	return o
}

// VectorOf wraps an already-owned slice of elements as a VECTOR, taking
// ownership of the slice and every element in it.
func VectorOf(elems []*Object) *Object {
	o := Create(Vector)
	o.Payload = elems
	return o
}

func VLength(v *Object) int { return len(v.Payload.([]*Object)) }

// VGet returns a borrowed reference to the element at i, or ok=false if i
// is out of bounds.
func VGet(v *Object, i int) (*Object, bool) {
	elems := v.Payload.([]*Object)
	if i < 0 || i >= len(elems) {
		return nil, false
	}
	return elems[i], true
}

// VSet replaces the element at i with an owned reference to val, destroying
// the previous occupant. Reports ok=false (and does nothing) if i is out
// of bounds.
func VSet(v *Object, i int, val *Object) bool {
	elems := v.Payload.([]*Object)
	if i < 0 || i >= len(elems) {
		return false
	}
	Destroy(elems[i])
	elems[i] = val
	return true
}

// VConcat returns a new VECTOR holding a's elements followed by b's,
// each uprefed.
func VConcat(a, b *Object) *Object {
	ae := a.Payload.([]*Object)
	be := b.Payload.([]*Object)
	out := make([]*Object, 0, len(ae)+len(be))
	for _, e := range ae {
		out = append(out, Upref(e))
	}
	for _, e := range be {
		out = append(out, Upref(e))
	}
	return VectorOf(out)
}

// ListToVector converts a proper list into a VECTOR holding a fresh
// (uprefed) reference to each element; the list is only borrowed, so the
// caller still owns and must destroy the list itself.
func ListToVector(lst *Object) *Object {
	elems, _ := Slice(lst)
	owned := make([]*Object, len(elems))
	for i, e := range elems {
		owned[i] = Upref(e)
	}
	return VectorOf(owned)
}
