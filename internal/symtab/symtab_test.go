package symtab

import (
	"testing"

	"wisp/internal/object"
)

func TestInternIdentity(t *testing.T) {
	Init()
	a := Intern("foo")
	b := Intern("foo")
	if a != b {
		t.Errorf("Intern(\"foo\") returned distinct objects")
	}
}

func TestPushGetPopBalance(t *testing.T) {
	Init()
	sym := Intern("x")
	if _, ok := Get(sym); ok {
		t.Fatalf("expected void value before any push")
	}

	height := Height(sym)
	Push(sym, object.NewIntFromInt64(1))
	Push(sym, object.NewIntFromInt64(2))

	v, ok := Get(sym)
	if !ok || object.IntVal(v).Int64() != 2 {
		t.Fatalf("Get() = %v, %v, want 2, true", v, ok)
	}

	Pop(sym)
	v, ok = Get(sym)
	if !ok || object.IntVal(v).Int64() != 1 {
		t.Fatalf("Get() after pop = %v, %v, want 1, true", v, ok)
	}

	Pop(sym)
	if Height(sym) != height {
		t.Errorf("Height() = %d, want %d", Height(sym), height)
	}
}

func TestSetRejectsConstant(t *testing.T) {
	Init()
	sym := InternConstant("pi")
	SSet(sym, object.NewIntFromInt64(3))
	if Set(sym, object.NewIntFromInt64(4)) {
		t.Errorf("Set() on constant symbol should fail")
	}
}

func TestSetRejectsEmptyStack(t *testing.T) {
	Init()
	sym := Intern("unbound")
	if Set(sym, object.NewIntFromInt64(1)) {
		t.Errorf("Set() on unbound symbol should fail")
	}
}

func TestSSetInitializesOnce(t *testing.T) {
	Init()
	sym := Intern("y")
	SSet(sym, object.NewIntFromInt64(10))
	SSet(sym, object.NewIntFromInt64(20))
	v, ok := Get(sym)
	if !ok || object.IntVal(v).Int64() != 20 {
		t.Fatalf("Get() = %v, %v, want 20, true", v, ok)
	}
	if Height(sym) != 1 {
		t.Errorf("Height() = %d, want 1 (SSet should not grow the stack)", Height(sym))
	}
}
