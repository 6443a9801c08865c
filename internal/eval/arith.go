package eval

import (
	"math/big"

	"wisp/internal/object"
)

// registerArith binds the reference arithmetic contract: `+ - * /` and the
// five comparisons, over the INT/FLOAT numeric tower. Mixing an INT with a
// FLOAT promotes the result to FLOAT; division always produces a FLOAT,
// even for two INTs that divide exactly.
func registerArith() {
	defCFunc("+", cfAdd)
	defCFunc("-", cfSub)
	defCFunc("*", cfMul)
	defCFunc("/", cfDiv)
	defCFunc("=", cfNumEq)
	defCFunc("<", cmpFold(func(a, b *big.Float) bool { return a.Cmp(b) < 0 }))
	defCFunc(">", cmpFold(func(a, b *big.Float) bool { return a.Cmp(b) > 0 }))
	defCFunc("<=", cmpFold(func(a, b *big.Float) bool { return a.Cmp(b) <= 0 }))
	defCFunc(">=", cmpFold(func(a, b *big.Float) bool { return a.Cmp(b) >= 0 }))
}

// toFloat widens any numeric object to a *big.Float for comparison and
// mixed-type arithmetic.
func toFloat(o *object.Object) *big.Float {
	if o.Tag == object.Float {
		return object.FloatVal(o)
	}
	return new(big.Float).SetInt(object.IntVal(o))
}

func checkNums(args *object.Object, name string) *object.Object {
	for a := args; a != object.NIL; a = a.Cdr {
		if !object.NumP(a.Car) {
			return wrongType(a.Car)
		}
	}
	return nil
}

func allInts(args *object.Object) bool {
	for a := args; a != object.NIL; a = a.Cdr {
		if !object.IntP(a.Car) {
			return false
		}
	}
	return true
}

func cfAdd(args *object.Object) *object.Object {
	if e := checkNums(args, "+"); e != nil {
		return e
	}
	if allInts(args) {
		sum := big.NewInt(0)
		for a := args; a != object.NIL; a = a.Cdr {
			sum.Add(sum, object.IntVal(a.Car))
		}
		return object.NewInt(sum)
	}
	sum := big.NewFloat(0)
	for a := args; a != object.NIL; a = a.Cdr {
		sum.Add(sum, toFloat(a.Car))
	}
	return object.NewFloat(sum)
}

func cfSub(args *object.Object) *object.Object {
	if e := reqMin(args, 1, "-"); e != nil {
		return e
	}
	if e := checkNums(args, "-"); e != nil {
		return e
	}
	if allInts(args) {
		if args.Cdr == object.NIL {
			return object.NewInt(new(big.Int).Neg(object.IntVal(args.Car)))
		}
		acc := new(big.Int).Set(object.IntVal(args.Car))
		for a := args.Cdr; a != object.NIL; a = a.Cdr {
			acc.Sub(acc, object.IntVal(a.Car))
		}
		return object.NewInt(acc)
	}
	if args.Cdr == object.NIL {
		return object.NewFloat(new(big.Float).Neg(toFloat(args.Car)))
	}
	acc := new(big.Float).Set(toFloat(args.Car))
	for a := args.Cdr; a != object.NIL; a = a.Cdr {
		acc.Sub(acc, toFloat(a.Car))
	}
	return object.NewFloat(acc)
}

func cfMul(args *object.Object) *object.Object {
	if e := checkNums(args, "*"); e != nil {
		return e
	}
	if allInts(args) {
		prod := big.NewInt(1)
		for a := args; a != object.NIL; a = a.Cdr {
			prod.Mul(prod, object.IntVal(a.Car))
		}
		return object.NewInt(prod)
	}
	prod := big.NewFloat(1)
	for a := args; a != object.NIL; a = a.Cdr {
		prod.Mul(prod, toFloat(a.Car))
	}
	return object.NewFloat(prod)
}

// cfDiv always produces a FLOAT: wisp has no separate rational type, and
// exact-integer division would need one to stay lossless.
func cfDiv(args *object.Object) *object.Object {
	if e := reqMin(args, 1, "/"); e != nil {
		return e
	}
	if e := checkNums(args, "/"); e != nil {
		return e
	}
	var acc *big.Float
	if args.Cdr == object.NIL {
		acc = new(big.Float).Quo(big.NewFloat(1), toFloat(args.Car))
		return object.NewFloat(acc)
	}
	acc = new(big.Float).Set(toFloat(args.Car))
	for a := args.Cdr; a != object.NIL; a = a.Cdr {
		d := toFloat(a.Car)
		if d.Sign() == 0 {
			return wrongType(a.Car)
		}
		acc.Quo(acc, d)
	}
	return object.NewFloat(acc)
}

func cfNumEq(args *object.Object) *object.Object {
	if e := reqMin(args, 1, "="); e != nil {
		return e
	}
	if e := checkNums(args, "="); e != nil {
		return e
	}
	prev := toFloat(args.Car)
	for a := args.Cdr; a != object.NIL; a = a.Cdr {
		cur := toFloat(a.Car)
		if prev.Cmp(cur) != 0 {
			return boolObj(false)
		}
		prev = cur
	}
	return boolObj(true)
}

// cmpFold builds a chained comparison CFUNC (`(< a b c)` means a<b and
// b<c) from a two-argument *big.Float predicate.
func cmpFold(pred func(a, b *big.Float) bool) object.Func {
	return func(args *object.Object) *object.Object {
		if e := reqMin(args, 1, "compare"); e != nil {
			return e
		}
		if e := checkNums(args, "compare"); e != nil {
			return e
		}
		prev := toFloat(args.Car)
		for a := args.Cdr; a != object.NIL; a = a.Cdr {
			cur := toFloat(a.Car)
			if !pred(prev, cur) {
				return boolObj(false)
			}
			prev = cur
		}
		return boolObj(true)
	}
}
