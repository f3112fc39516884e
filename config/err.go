package config

import (
	"errors"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

var (
	ErrNotInteger = errors.New(f("not a 64-bit integer"))
	ErrInvalid    = errors.New(f("invalid configuration"))
)

// ErrConfig locates an error in a configuration file.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrKey is an unknown or out of range configuration key.
type ErrKey struct {
	Key string
}

func (err *ErrKey) Error() string {
	return f("%v key '%v'", ErrInvalid, err.Key)
}

func (err *ErrKey) Is(target error) bool {
	return target == ErrInvalid
}

// ErrDefine is a malformed register definition.
type ErrDefine struct {
	Define string
}

func (err *ErrDefine) Error() string {
	return f("'%v' is not of the form register=expression", err.Define)
}

func (err *ErrDefine) Is(target error) bool {
	return target == ErrInvalid
}

// ErrExpression is a register expression that did not evaluate to an integer.
type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	return f("$(%v) %v", err.Expr, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}
