package eval

import (
	"os"
	"time"

	"wisp/internal/database"
	"wisp/internal/network"
	"wisp/internal/object"
	"wisp/internal/symtab"
)

var (
	dbManager *database.Manager
	wsManager *network.Manager

	externalErrorSym *object.Object
)

// registerExtBindings wires the database/network domain stack into the
// evaluator as ordinary CFUNCs, unless WISP_NO_EXT is set — a lean
// core-only build for embedding contexts that don't want SQL drivers or
// network access pulled in transitively through the symbol table.
func registerExtBindings() {
	if os.Getenv("WISP_NO_EXT") != "" {
		return
	}
	dbManager = database.NewManager()
	wsManager = network.NewManager()
	externalErrorSym = symtab.Intern("external-error")

	defCFunc("db-open", cfDBOpen)
	defCFunc("db-query", cfDBQuery)
	defCFunc("db-exec", cfDBExec)
	defCFunc("db-close", cfDBClose)

	defCFunc("http-get", cfHTTPGet)
	defCFunc("http-post", cfHTTPPost)

	defCFunc("ws-connect", cfWSConnect)
	defCFunc("ws-send", cfWSSend)
	defCFunc("ws-recv", cfWSRecv)
	defCFunc("ws-close", cfWSClose)
}

func goErrorObj(err error) *object.Object {
	return Throw(object.Upref(externalErrorSym), object.NewStringFrom(err.Error()))
}

func wantString(o *object.Object) (string, bool) {
	if !object.StringP(o) {
		return "", false
	}
	return string(object.Str(o).Raw), true
}

// cfDBOpen implements (db-open id driver dsn).
func cfDBOpen(args *object.Object) *object.Object {
	if e := reqExact(args, 3, "db-open"); e != nil {
		return e
	}
	id, ok1 := wantString(nth(args, 0))
	driver, ok2 := wantString(nth(args, 1))
	dsn, ok3 := wantString(nth(args, 2))
	if !ok1 || !ok2 || !ok3 {
		return wrongType(args.Car)
	}
	if err := dbManager.Open(id, driver, dsn); err != nil {
		return goErrorObj(err)
	}
	return object.Upref(object.T)
}

// rowsToList converts []database.Row into a wisp list of alists:
// ((col . val) (col . val) ...) per row.
func rowsToList(rows []database.Row) *object.Object {
	out := object.NIL
	for i := len(rows) - 1; i >= 0; i-- {
		out = object.NewCons(rowToAlist(rows[i]), out)
	}
	return out
}

func rowToAlist(row database.Row) *object.Object {
	out := object.NIL
	for col, val := range row {
		out = object.NewCons(object.NewCons(object.NewStringFrom(col), goValueObj(val)), out)
	}
	return out
}

func goValueObj(v any) *object.Object {
	switch t := v.(type) {
	case nil:
		return object.Upref(object.NIL)
	case string:
		return object.NewStringFrom(t)
	case int64:
		return object.NewIntFromInt64(t)
	case float64:
		return object.NewFloatFromFloat64(t)
	case bool:
		return boolObj(t)
	default:
		return object.NewStringFrom("")
	}
}

func cfDBQuery(args *object.Object) *object.Object {
	if e := reqMin(args, 2, "db-query"); e != nil {
		return e
	}
	id, ok := wantString(nth(args, 0))
	query, ok2 := wantString(nth(args, 1))
	if !ok || !ok2 {
		return wrongType(args.Car)
	}
	rows, err := dbManager.Query(id, query)
	if err != nil {
		return goErrorObj(err)
	}
	return rowsToList(rows)
}

func cfDBExec(args *object.Object) *object.Object {
	if e := reqMin(args, 2, "db-exec"); e != nil {
		return e
	}
	id, ok := wantString(nth(args, 0))
	stmt, ok2 := wantString(nth(args, 1))
	if !ok || !ok2 {
		return wrongType(args.Car)
	}
	n, err := dbManager.Exec(id, stmt)
	if err != nil {
		return goErrorObj(err)
	}
	return object.NewIntFromInt64(n)
}

func cfDBClose(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "db-close"); e != nil {
		return e
	}
	id, ok := wantString(args.Car)
	if !ok {
		return wrongType(args.Car)
	}
	if err := dbManager.Close(id); err != nil {
		return goErrorObj(err)
	}
	return object.Upref(object.T)
}

func responseObj(r *network.Response) *object.Object {
	headers := object.NIL
	for k, v := range r.Headers {
		headers = object.NewCons(object.NewCons(object.NewStringFrom(k), object.NewStringFrom(v)), headers)
	}
	return object.FromSlice([]*object.Object{
		object.NewIntFromInt64(int64(r.StatusCode)),
		object.NewStringFrom(r.Status),
		headers,
		object.NewStringFrom(r.Body),
	})
}

func cfHTTPGet(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "http-get"); e != nil {
		return e
	}
	url, ok := wantString(args.Car)
	if !ok {
		return wrongType(args.Car)
	}
	resp, err := network.Get(url)
	if err != nil {
		return goErrorObj(err)
	}
	return responseObj(resp)
}

func cfHTTPPost(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "http-post"); e != nil {
		return e
	}
	url, ok := wantString(nth(args, 0))
	body, ok2 := wantString(nth(args, 1))
	if !ok || !ok2 {
		return wrongType(args.Car)
	}
	resp, err := network.Post(url, []byte(body), nil)
	if err != nil {
		return goErrorObj(err)
	}
	return responseObj(resp)
}

func cfWSConnect(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "ws-connect"); e != nil {
		return e
	}
	id, ok := wantString(nth(args, 0))
	url, ok2 := wantString(nth(args, 1))
	if !ok || !ok2 {
		return wrongType(args.Car)
	}
	if err := wsManager.Connect(id, url); err != nil {
		return goErrorObj(err)
	}
	return object.Upref(object.T)
}

func cfWSSend(args *object.Object) *object.Object {
	if e := reqExact(args, 2, "ws-send"); e != nil {
		return e
	}
	id, ok := wantString(nth(args, 0))
	msg, ok2 := wantString(nth(args, 1))
	if !ok || !ok2 {
		return wrongType(args.Car)
	}
	if err := wsManager.Send(id, msg); err != nil {
		return goErrorObj(err)
	}
	return object.Upref(object.T)
}

func cfWSRecv(args *object.Object) *object.Object {
	if e := reqMin(args, 1, "ws-recv"); e != nil {
		return e
	}
	id, ok := wantString(args.Car)
	if !ok {
		return wrongType(args.Car)
	}
	timeout := 5 * time.Second
	if object.Length(args) == 2 {
		secs := nth(args, 1)
		if !object.NumP(secs) {
			return wrongType(secs)
		}
		f, _ := toFloat(secs).Float64()
		timeout = time.Duration(f * float64(time.Second))
	}
	msg, err := wsManager.Recv(id, timeout)
	if err != nil {
		return goErrorObj(err)
	}
	return object.NewStringFrom(msg)
}

func cfWSClose(args *object.Object) *object.Object {
	if e := reqExact(args, 1, "ws-close"); e != nil {
		return e
	}
	id, ok := wantString(args.Car)
	if !ok {
		return wrongType(args.Car)
	}
	if err := wsManager.Close(id); err != nil {
		return goErrorObj(err)
	}
	return object.Upref(object.T)
}
