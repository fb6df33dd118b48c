package compile

import (
	"errors"
	"fmt"
)

// Sentinel errors for compilation failures.
var (
	ErrNoEntryFunction      = errors.New("no entry function")
	ErrMultipleEntryPoints  = errors.New("multiple entry points")
	ErrEmptyFunction        = errors.New("empty function body")
	ErrUnexpectedExpression = errors.New("unexpected expression type")
	ErrDuplicateFunction    = errors.New("function declared multiple times")
	ErrValueRange           = errors.New("value does not fit declared return type")
	ErrReturnTypeMismatch   = errors.New("return type mismatch")
)

// DuplicateFunctionError reports a function name declared more than once in
// one module. Collection stops at the first duplicate.
type DuplicateFunctionError struct {
	Name string
}

func (e *DuplicateFunctionError) Error() string {
	return fmt.Sprintf("function %q declared multiple times", e.Name)
}

func (e *DuplicateFunctionError) Is(target error) bool {
	return target == ErrDuplicateFunction
}

// ValueRangeError reports a literal whose value exceeds the declared return
// type's range.
type ValueRangeError struct {
	Value    uint64
	Declared ReturnKind
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("value %d does not fit declared return type %s", e.Value, e.Declared)
}

func (e *ValueRangeError) Is(target error) bool {
	return target == ErrValueRange
}

// ReturnTypeError reports a function whose declared and inferred return
// types disagree.
type ReturnTypeError struct {
	Function string
	Declared ReturnKind
	Inferred ReturnKind
}

func (e *ReturnTypeError) Error() string {
	return fmt.Sprintf("function %q: declared return type %s does not match %s", e.Function, e.Declared, e.Inferred)
}

func (e *ReturnTypeError) Is(target error) bool {
	return target == ErrReturnTypeMismatch
}
