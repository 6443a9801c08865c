package eval

import (
	"bytes"
	"os"

	"wisp/internal/errors"
	"wisp/internal/object"
	"wisp/internal/reader"
	"wisp/internal/symtab"
)

var settingConstantSym *object.Object

// registerBuiltinFuncs binds every CFUNC in spec §4.5's table. CFUNC
// arguments arrive already evaluated, left-to-right, by Eval's dispatch.
func registerBuiltinFuncs() {
	settingConstantSym = symtab.Intern("setting-constant")

	defCFunc("cons", cfCons)
	defCFunc("car", cfCar)
	defCFunc("cdr", cfCdr)
	defCFunc("list", cfList)

	defCFunc("eq", cfEq)
	defCFunc("eql", cfEql)

	defCFunc("nullp", cfNullp)
	defCFunc("not", cfNullp)
	defCFunc("consp", cfConsp)
	defCFunc("listp", cfListp)
	defCFunc("symbolp", cfSymbolp)
	defCFunc("stringp", cfStringp)
	defCFunc("integerp", cfIntegerp)
	defCFunc("floatp", cfFloatp)
	defCFunc("numberp", cfNumberp)
	defCFunc("vectorp", cfVectorp)
	defCFunc("funcp", cfFuncp)

	defCFunc("set", cfSet)
	defCFunc("value", cfValue)
	defCFunc("symbol-name", cfSymbolName)

	defCFunc("throw", cfThrow)
	defCFunc("load", cfLoad)
	defCFunc("eval-string", cfEvalString)
	defCFunc("eval", cfEval)

	defCFunc("make-vector", cfMakeVector)
	defCFunc("vget", cfVget)
	defCFunc("vset", cfVset)
	defCFunc("vlength", cfVlength)
	defCFunc("vconcat", cfVconcat)

	defCFunc("concat2", cfConcat2)
	defCFunc("print", cfPrint)
	defCFunc("hash", cfHash)

	defCFunc("refcount", cfRefcount)
	defCFunc("eval-depth", cfEvalDepth)
	defCFunc("max-eval-depth", cfMaxEvalDepth)
}

func cfCons(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "cons"); e != nil {
		return e
	}
	return object.NewCons(object.Upref(nth(args, 0)), object.Upref(nth(args, 1)))
}

func cfCar(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "car"); e != nil {
		return e
	}
	a := args.Car
	if !object.ListP(a) {
		return wrongType(a)
	}
	return object.Upref(a.Car)
}

func cfCdr(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "cdr"); e != nil {
		return e
	}
	a := args.Car
	if !object.ListP(a) {
		return wrongType(a)
	}
	return object.Upref(a.Cdr)
}

func cfList(args *object.Object) *object.Object { return object.Upref(args) }

func cfEq(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "eq"); e != nil {
		return e
	}
	return boolObj(nth(args, 0) == nth(args, 1))
}

// eql treats INT/FLOAT by value and STRING by byte content; a VECTOR is
// never eql to anything, not even itself (spec §9's open question);
// everything else falls back to identity.
func eql(a, b *object.Object) bool {
	if object.VectorP(a) || object.VectorP(b) {
		return false
	}
	if a == b {
		return true
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case object.Int, object.Float:
		return object.NumEq(a, b)
	case object.String:
		return bytes.Equal(object.Str(a).Raw, object.Str(b).Raw)
	default:
		return false
	}
}

func cfEql(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "eql"); e != nil {
		return e
	}
	return boolObj(eql(nth(args, 0), nth(args, 1)))
}

func cfNullp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "nullp"); e != nil {
		return e
	}
	return boolObj(args.Car == object.NIL)
}

func cfConsp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "consp"); e != nil {
		return e
	}
	return boolObj(object.ConsP(args.Car))
}

func cfListp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "listp"); e != nil {
		return e
	}
	return boolObj(object.ListP(args.Car))
}

func cfSymbolp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "symbolp"); e != nil {
		return e
	}
	return boolObj(object.SymbolP(args.Car))
}

func cfStringp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "stringp"); e != nil {
		return e
	}
	return boolObj(object.StringP(args.Car))
}

func cfIntegerp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "integerp"); e != nil {
		return e
	}
	return boolObj(object.IntP(args.Car))
}

func cfFloatp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "floatp"); e != nil {
		return e
	}
	return boolObj(object.FloatP(args.Car))
}

func cfNumberp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "numberp"); e != nil {
		return e
	}
	return boolObj(object.NumP(args.Car))
}

func cfVectorp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "vectorp"); e != nil {
		return e
	}
	return boolObj(object.VectorP(args.Car))
}

func cfFuncp(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "funcp"); e != nil {
		return e
	}
	return boolObj(Callable(args.Car))
}

// cfSet implements (set sym val): sym and val both arrive evaluated, so
// `(set 'x 1)` is the usual spelling. Distinguishes an unbound target
// (void-variable) from a constant one (setting-constant).
func cfSet(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "set"); e != nil {
		return e
	}
	sym, val := nth(args, 0), nth(args, 1)
	if !object.SymbolP(sym) {
		return wrongType(sym)
	}
	if object.ConstantP(sym) {
		return Throw(object.Upref(settingConstantSym), object.Upref(sym))
	}
	if symtab.Height(sym) == 0 {
		return Throw(object.Upref(voidVariableSym), object.Upref(sym))
	}
	symtab.Set(sym, val)
	return object.Upref(val)
}

func cfValue(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "value"); e != nil {
		return e
	}
	sym := args.Car
	if !object.SymbolP(sym) {
		return wrongType(sym)
	}
	v, ok := symtab.Get(sym)
	if !ok {
		return Throw(object.Upref(voidVariableSym), object.Upref(sym))
	}
	return object.Upref(v)
}

func cfSymbolName(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "symbol-name"); e != nil {
		return e
	}
	if !object.SymbolP(args.Car) {
		return wrongType(args.Car)
	}
	return object.NewStringFrom(object.Sym(args.Car).Name)
}

func cfThrow(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "throw"); e != nil {
		return e
	}
	return Throw(object.Upref(nth(args, 0)), object.Upref(nth(args, 1)))
}

// cfLoad implements (load "path").
func cfLoad(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "load"); e != nil {
		return e
	}
	if !object.StringP(args.Car) {
		return wrongType(args.Car)
	}
	return LoadFile(string(object.Str(args.Car).Raw))
}

// LoadFile reads and top-evaluates every S-expression in path in sequence,
// stopping at the first error. It is the host-side entry point cmd/wisp
// uses to load core.wisp and script arguments, as well as the `load`
// builtin's implementation.
func LoadFile(path string) *object.Object {
	data, err := os.ReadFile(path)
	if err != nil {
		loadErr := &errors.LoadError{Path: path, Err: err}
		return Throw(object.Upref(loadFileErrorSym), object.NewStringFrom(loadErr.Error()))
	}
	r := reader.NewFromString(string(data), path)
	for {
		sexp := r.ReadSexp()
		if r.EOF() {
			object.Destroy(sexp)
			break
		}
		if sexp == object.ErrSymbol {
			return object.ErrSymbol
		}
		result := TopEval(sexp)
		object.Destroy(sexp)
		if result == object.ErrSymbol {
			return object.ErrSymbol
		}
		object.Destroy(result)
	}
	return object.Upref(object.T)
}

// cfEvalString implements (eval-string "(+ 1 2)"): parses one S-expression
// from the string and evaluates it once, without printing on error.
func cfEvalString(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "eval-string"); e != nil {
		return e
	}
	if !object.StringP(args.Car) {
		return wrongType(args.Car)
	}
	r := reader.NewFromString(string(object.Str(args.Car).Raw), "<eval-string>")
	sexp := r.ReadSexp()
	if sexp == object.ErrSymbol {
		return Throw(object.Upref(parseErrorSym), object.Upref(args.Car))
	}
	result := Eval(sexp)
	object.Destroy(sexp)
	return result
}

// cfEval implements the `eval` builtin: its argument, already evaluated
// once by CFUNC dispatch, is evaluated a second time.
func cfEval(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "eval"); e != nil {
		return e
	}
	return Eval(args.Car)
}

func cfMakeVector(args *object.Object) *object.Object {
	if object.Length(args) != 1 && object.Length(args) != 2 {
		return Throw(object.Upref(wrongNumArgsSym), object.Upref(symtab.Intern("make-vector")))
	}
	n := nth(args, 0)
	if !object.IntP(n) {
		return wrongType(n)
	}
	length := int(object.IntVal(n).Int64())
	if length < 0 {
		return wrongType(n)
	}
	fill := object.NIL
	if object.Length(args) == 2 {
		fill = nth(args, 1)
	}
	return object.NewVector(length, fill)
}

func cfVget(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "vget"); e != nil {
		return e
	}
	v, i := nth(args, 0), nth(args, 1)
	if !object.VectorP(v) {
		return wrongType(v)
	}
	if !object.IntP(i) {
		return wrongType(i)
	}
	elem, ok := object.VGet(v, int(object.IntVal(i).Int64()))
	if !ok {
		return wrongType(i)
	}
	return object.Upref(elem)
}

func cfVset(args *object.Object) *object.Object {
	if e := reqExact(args, 3, "vset"); e != nil {
		return e
	}
	v, i, val := nth(args, 0), nth(args, 1), nth(args, 2)
	if !object.VectorP(v) {
		return wrongType(v)
	}
	if !object.IntP(i) {
		return wrongType(i)
	}
	if !object.VSet(v, int(object.IntVal(i).Int64()), object.Upref(val)) {
		return wrongType(i)
	}
	return object.Upref(val)
}

func cfVlength(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "vlength"); e != nil {
		return e
	}
	if !object.VectorP(args.Car) {
		return wrongType(args.Car)
	}
	return object.NewIntFromInt64(int64(object.VLength(args.Car)))
}

func cfVconcat(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "vconcat"); e != nil {
		return e
	}
	a, b := nth(args, 0), nth(args, 1)
	if !object.VectorP(a) {
		return wrongType(a)
	}
	if !object.VectorP(b) {
		return wrongType(b)
	}
	return object.VConcat(a, b)
}

func cfConcat2(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "concat2"); e != nil {
		return e
	}
	a, b := nth(args, 0), nth(args, 1)
	if !object.StringP(a) {
		return wrongType(a)
	}
	if !object.StringP(b) {
		return wrongType(b)
	}
	return object.StrCat(a, b)
}

func cfPrint(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "print"); e != nil {
		return e
	}
	println_ := object.Print(args.Car, true)
	os.Stdout.WriteString(println_)
	os.Stdout.WriteString("\n")
	return object.Upref(args.Car)
}

func cfHash(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "hash"); e != nil {
		return e
	}
	return object.NewIntFromInt64(int64(object.Hash(args.Car)))
}

func cfRefcount(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "refcount"); e != nil {
		return e
	}
	return object.NewIntFromInt64(int64(args.Car.Refs))
}

func cfEvalDepth(args *object.Object) *object.Object {
	if e := reqExact(args, 0, "eval-depth"); e != nil {
		return e
	}
	return object.NewIntFromInt64(int64(EvalDepth()))
}

func cfMaxEvalDepth(args *object.Object) *object.Object {
	switch object.Length(args) {
	case 0:
		return object.NewIntFromInt64(int64(MaxEvalDepth()))
	case 1:
		n := args.Car
		if !object.IntP(n) {
			return wrongType(n)
		}
		old := MaxEvalDepth()
		SetMaxEvalDepth(int(object.IntVal(n).Int64()))
		return object.NewIntFromInt64(int64(old))
	default:
		return Throw(object.Upref(wrongNumArgsSym), object.Upref(symtab.Intern("max-eval-depth")))
	}
}
