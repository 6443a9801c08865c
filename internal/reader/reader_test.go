package reader

import (
	"testing"

	"wisp/internal/object"
	"wisp/internal/symtab"
)

func init() { symtab.Init() }

func readOne(t *testing.T, src string) *object.Object {
	t.Helper()
	r := NewFromString(src, "<test>")
	return r.ReadSexp()
}

func TestReadAtoms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"int", "42", "42"},
		{"negative int", "-7", "-7"},
		{"float", "3.14", "3.14"},
		{"leading dot float", ".5", "0.5"},
		{"symbol", "foo-bar?", "foo-bar?"},
		{"list", "(1 2 3)", "(1 2 3)"},
		{"dotted pair", "(a . b)", "(a . b)"},
		{"nested list", "(a (b c) d)", "(a (b c) d)"},
		{"quote", "'(a b)", "(quote (a b))"},
		{"vector", "[1 2 3]", "[1 2 3]"},
		{"string", `"hi"`, `"hi"`},
		{"comment", "1 ; comment\n", "1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := readOne(t, c.src)
			if o == object.ErrSymbol {
				t.Fatalf("unexpected read error for %q", c.src)
			}
			got := object.Print(o, true)
			if got != c.want {
				t.Errorf("Print() = %q, want %q", got, c.want)
			}
			object.Destroy(o)
		})
	}
}

func TestReadEmptyAtEOF(t *testing.T) {
	r := NewFromString("  \n  ", "<test>")
	o := r.ReadSexp()
	if o != object.NIL {
		t.Fatalf("ReadSexp() = %v, want NIL", o)
	}
	if !r.EOF() {
		t.Errorf("expected EOF")
	}
}

func TestReadMultipleSexpsOneReader(t *testing.T) {
	r := NewFromString("1 2 3", "<test>")
	var got []string
	for {
		o := r.ReadSexp()
		if r.EOF() {
			break
		}
		got = append(got, object.Print(o, true))
		object.Destroy(o)
	}
	if len(got) != 3 || got[0] != "1" || got[1] != "2" || got[2] != "3" {
		t.Fatalf("got %v", got)
	}
}

func TestUnbalancedParenIsRecoverable(t *testing.T) {
	r := NewFromString(")\n1", "<test>")
	bad := r.ReadSexp()
	if bad != object.ErrSymbol {
		t.Fatalf("expected error sentinel for stray ')'")
	}
	next := r.ReadSexp()
	if object.Print(next, true) != "1" {
		t.Errorf("reader did not recover: got %v", object.Print(next, true))
	}
	object.Destroy(next)
}

func TestPrematureEOF(t *testing.T) {
	o := readOne(t, "(1 2")
	if o != object.ErrSymbol {
		t.Errorf("expected error sentinel for premature EOF")
	}
}

func TestShebangSkipped(t *testing.T) {
	o := readOne(t, "#!/usr/bin/env wisp\n42")
	if object.Print(o, true) != "42" {
		t.Errorf("Print() = %q, want 42", object.Print(o, true))
	}
	object.Destroy(o)
}

func TestVectorRejectsDottedPair(t *testing.T) {
	o := readOne(t, "[1 . 2]")
	if o != object.ErrSymbol {
		t.Errorf("expected error sentinel for dotted pair in vector")
	}
}

func TestReaderRoundTrip(t *testing.T) {
	srcs := []string{"(a b c)", "(a . b)", "[1 2 3]", "42", `"hello"`}
	for _, src := range srcs {
		o := readOne(t, src)
		printed := object.Print(o, true)
		o2 := readOne(t, printed)
		if object.Print(o2, true) != printed {
			t.Errorf("round trip mismatch for %q: got %q", src, object.Print(o2, true))
		}
		object.Destroy(o)
		object.Destroy(o2)
	}
}
