package config

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Eval evaluates a constant integer expression, such as "1 << 10" or "-(3 * 7)".
func Eval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "config"}
	opts := syntax.FileOptions{}

	rv, err := starlark.EvalOptions(&opts, &thread, "expr", expr, starlark.StringDict{})
	if err != nil {
		err = &ErrExpression{Expr: expr, Err: err}
		return
	}

	st_int, ok := rv.(starlark.Int)
	if !ok {
		err = &ErrExpression{Expr: expr, Err: ErrNotInteger}
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = &ErrExpression{Expr: expr, Err: ErrNotInteger}
		return
	}

	return
}
