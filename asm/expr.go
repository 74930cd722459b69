package asm

import (
	"errors"
	"strings"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// EXPR_STEPS_MAX bounds the work done by a single $(...) evaluation.
const EXPR_STEPS_MAX = 100_000

// eval does assembly time $(...) evaluations. Every label is predeclared as
// its address, and PC as the address of the record being resolved.
func (rs *resolver) eval(expr string) (value int64, err error) {
	if rs.predeclared == nil {
		rs.predeclared = starlark.StringDict{}
		for name, address := range rs.symbols.All() {
			rs.predeclared[name] = starlark.MakeInt(address)
		}
	}

	pred := starlark.StringDict{}
	for key, val := range rs.predeclared {
		pred[key] = val
	}
	pred["PC"] = starlark.MakeInt(rs.record.Address)

	thread := starlark.Thread{Name: "expr"}
	thread.SetMaxExecutionSteps(EXPR_STEPS_MAX)
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		var list resolve.ErrorList
		if errors.As(err, &list) {
			name, ok := strings.CutPrefix(list[0].Msg, "undefined: ")
			if ok {
				err = ErrLabelMissing(strings.Fields(name)[0])
			}
		}
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}
