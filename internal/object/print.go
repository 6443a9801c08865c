package object

import "strings"

// Print renders o the way the reader's round-trip property (spec §8)
// requires: lists as `(a b c)` or `(a . b)` for improper tails, strings
// escaped when quoted is set, vectors as `[a b c]`, symbols by name,
// numbers in canonical decimal form.
func Print(o *Object, quoted bool) string {
	var b strings.Builder
	print1(&b, o, quoted)
	return b.String()
}

func print1(b *strings.Builder, o *Object, quoted bool) {
	if o == nil {
		b.WriteString("()")
		return
	}
	switch o.Tag {
	case Symbol:
		b.WriteString(Sym(o).Name)
	case Int:
		b.WriteString(IntVal(o).String())
	case Float:
		b.WriteString(FloatVal(o).Text('g', -1))
	case String:
		if quoted {
			b.WriteString(Str(o).Printable())
		} else {
			b.Write(Str(o).Raw)
		}
	case Vector:
		b.WriteByte('[')
		elems := o.Payload.([]*Object)
		for i, e := range elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			print1(b, e, quoted)
		}
		b.WriteByte(']')
	case CFunc, Special:
		b.WriteString("<builtin>")
	case Cons:
		printList(b, o, quoted)
	}
}

func printList(b *strings.Builder, o *Object, quoted bool) {
	b.WriteByte('(')
	first := true
	for {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		print1(b, o.Car, quoted)
		switch {
		case o.Cdr == NIL:
			b.WriteByte(')')
			return
		case ConsP(o.Cdr):
			o = o.Cdr
		default:
			b.WriteString(" . ")
			print1(b, o.Cdr, quoted)
			b.WriteByte(')')
			return
		}
	}
}
