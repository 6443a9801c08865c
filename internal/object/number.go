package object

import "math/big"

// NewInt wraps an arbitrary-precision integer as an INT object, taking
// ownership of n.
func NewInt(n *big.Int) *Object {
	o := Create(Int)
	o.Payload = n
	return o
}

// NewIntFromInt64 is a convenience wrapper for host-side integer literals
// (error tags, lengths, refcounts).
func NewIntFromInt64(n int64) *Object {
	return NewInt(big.NewInt(n))
}

// NewIntFromString parses s as a base-10 arbitrary-precision integer,
// reporting ok=false if any character is not consumed (mirrors strtol's
// "entire buffer consumed" check in parse_atom).
func NewIntFromString(s string) (*Object, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return NewInt(n), true
}

// NewFloat wraps an arbitrary-precision float as a FLOAT object, taking
// ownership of f.
func NewFloat(f *big.Float) *Object {
	o := Create(Float)
	o.Payload = f
	return o
}

func NewFloatFromFloat64(f float64) *Object {
	return NewFloat(big.NewFloat(f))
}

// NewFloatFromString parses s as a decimal float, reporting ok=false if
// any character is not consumed.
func NewFloatFromString(s string) (*Object, bool) {
	f, _, err := big.ParseFloat(s, 10, 200, big.ToNearestEven)
	if err != nil {
		return nil, false
	}
	return NewFloat(f), true
}

// NumEq reports structural equality for two like-tagged numbers (eql's
// num_eq helper in lisp.c — eql has already verified a.Tag == b.Tag before
// calling this).
func NumEq(a, b *Object) bool {
	if a.Tag == Int {
		return IntVal(a).Cmp(IntVal(b)) == 0
	}
	return FloatVal(a).Cmp(FloatVal(b)) == 0
}
