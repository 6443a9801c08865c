package object

import "testing"

func TestConsRefcountIntegrity(t *testing.T) {
	consBefore, headerBefore := SlabSizes()

	a := NewIntFromInt64(1)
	b := NewIntFromInt64(2)
	lst := NewCons(a, NewCons(b, NIL))

	if got := Length(lst); got != 2 {
		t.Fatalf("Length() = %d, want 2", got)
	}

	Destroy(lst)

	consAfter, headerAfter := SlabSizes()
	if consAfter != consBefore {
		t.Errorf("cons slab leaked: before=%d after=%d", consBefore, consAfter)
	}
	if headerAfter != headerBefore {
		t.Errorf("header slab leaked: before=%d after=%d", headerBefore, headerAfter)
	}
}

func TestUprefDestroyBalance(t *testing.T) {
	_, before := SlabSizes()
	o := NewIntFromInt64(42)
	Upref(o)
	if o.Refs != 2 {
		t.Fatalf("Refs = %d, want 2", o.Refs)
	}
	Destroy(o)
	if o.Refs != 1 {
		t.Fatalf("Refs = %d, want 1", o.Refs)
	}
	Destroy(o)
	_, after := SlabSizes()
	if after != before {
		t.Errorf("header slab leaked: before=%d after=%d", before, after)
	}
}

func TestNilAndTImmortal(t *testing.T) {
	before := NIL.Refs
	Destroy(NIL)
	Destroy(NIL)
	if NIL.Refs != before {
		t.Errorf("NIL.Refs changed: before=%d after=%d", before, NIL.Refs)
	}
	if NIL.Car != NIL || NIL.Cdr != NIL {
		t.Errorf("NIL is not self-referential")
	}
}

func TestProperAndImproperLists(t *testing.T) {
	proper := NewCons(NewIntFromInt64(1), NewCons(NewIntFromInt64(2), NIL))
	if !ProperP(proper) {
		t.Errorf("expected proper list")
	}
	improper := NewCons(NewIntFromInt64(1), NewIntFromInt64(2))
	if ProperP(improper) {
		t.Errorf("expected improper list")
	}
	Destroy(proper)
	Destroy(improper)
}

func TestVectorBounds(t *testing.T) {
	v := NewVector(3, NIL)
	if VLength(v) != 3 {
		t.Fatalf("VLength() = %d, want 3", VLength(v))
	}
	if !VSet(v, 1, NewIntFromInt64(7)) {
		t.Fatalf("VSet(1) failed")
	}
	got, ok := VGet(v, 1)
	if !ok || IntVal(got).Int64() != 7 {
		t.Fatalf("VGet(1) = %v, %v", got, ok)
	}
	if _, ok := VGet(v, 3); ok {
		t.Errorf("VGet(3) should be out of range")
	}
	if VSet(v, -1, NIL) {
		t.Errorf("VSet(-1) should fail")
	}
	Destroy(v)
}

func TestPrintRoundTripShapes(t *testing.T) {
	lst := NewCons(NewIntFromInt64(1), NewCons(NewIntFromInt64(2), NIL))
	if got, want := Print(lst, true), "(1 2)"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
	dotted := NewCons(NewIntFromInt64(1), NewIntFromInt64(2))
	if got, want := Print(dotted, true), "(1 . 2)"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
	Destroy(lst)
	Destroy(dotted)
}

func TestHashStability(t *testing.T) {
	a := NewIntFromInt64(5)
	b := NewIntFromInt64(5)
	if Hash(a) != Hash(b) {
		t.Errorf("equal ints hashed differently")
	}
	Destroy(a)
	Destroy(b)
}

func TestEqVsEqlNumbers(t *testing.T) {
	a := NewIntFromInt64(1)
	b := NewIntFromInt64(1)
	if a == b {
		t.Errorf("freshly boxed ints should not be eq")
	}
	if !NumEq(a, b) {
		t.Errorf("expected eql via NumEq")
	}
	Destroy(a)
	Destroy(b)
}
