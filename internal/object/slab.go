package object

// slab is a growable LIFO free-stack of object headers, avoiding a malloc
// per cons cell. alloc pops the stack, refilling it with a fresh batch when
// empty; release pushes a cleared header back on.
//
// Two slabs are kept process-wide: one for CONS cells (the dominant
// allocation by far) and one for every other tag's header.
type slab struct {
	free []*Object
}

const slabInitialSize = 1024

func newSlab() *slab {
	s := &slab{}
	s.grow(slabInitialSize)
	return s
}

func (s *slab) grow(n int) {
	batch := make([]Object, n)
	for i := range batch {
		s.free = append(s.free, &batch[i])
	}
}

func (s *slab) alloc() *Object {
	if len(s.free) == 0 {
		s.grow(cap(s.free) + 1)
	}
	n := len(s.free) - 1
	o := s.free[n]
	s.free[n] = nil
	s.free = s.free[:n]
	return o
}

func (s *slab) release(o *Object) {
	*o = Object{}
	s.free = append(s.free, o)
}

// size reports the current free-stack height; used by tests asserting
// refcount integrity (every live object returned leaves the free-stacks at
// their starting height).
func (s *slab) size() int {
	return len(s.free)
}

var (
	consSlab   = newSlab()
	headerSlab = newSlab()
)

// SlabSizes returns the current free-stack heights of the cons and header
// slabs, for leak-detection in tests and the `refcount` introspection
// primitive's callers.
func SlabSizes() (cons, header int) {
	return consSlab.size(), headerSlab.size()
}
