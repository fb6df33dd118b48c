// Package gsrjit compiles a small statically-typed source module into
// x86-64 machine code at runtime and executes it in-process. Compile turns
// source text into the entry function's instruction bytes, a Region holds
// those bytes in executable memory, and Run invokes them with the return
// width stated explicitly at the call site.
package gsrjit

import (
	"github.com/fschutt/gsr-jit/internal/compile"
	"github.com/fschutt/gsr-jit/internal/jitmem"
)

// -----------------------------------------------------------------------------
// Type Aliases - These re-export types from the internal packages
// -----------------------------------------------------------------------------

// Region is a page-aligned block of executable memory owning loaded code.
type Region = jitmem.Region

// Integer is the set of return widths generated code can produce.
type Integer = jitmem.Integer

// ReturnKind identifies a function's declared or inferred return type.
type ReturnKind = compile.ReturnKind

// DuplicateFunctionError reports a function name declared more than once.
type DuplicateFunctionError = compile.DuplicateFunctionError

// ValueRangeError reports a literal that exceeds its declared type's range.
type ValueRangeError = compile.ValueRangeError

// ReturnTypeError reports declared and inferred return types that disagree.
type ReturnTypeError = compile.ReturnTypeError

// Return kind constants.
const (
	KindVoid    = compile.KindVoid
	KindU8      = compile.KindU8
	KindU16     = compile.KindU16
	KindU32     = compile.KindU32
	KindU64     = compile.KindU64
	KindUInt    = compile.KindUInt
	KindI8      = compile.KindI8
	KindI16     = compile.KindI16
	KindI32     = compile.KindI32
	KindI64     = compile.KindI64
	KindF32     = compile.KindF32
	KindF64     = compile.KindF64
	KindBool    = compile.KindBool
	KindByte    = compile.KindByte
	KindChar    = compile.KindChar
	KindStr     = compile.KindStr
	KindByteStr = compile.KindByteStr
	KindVec2    = compile.KindVec2
	KindVec3    = compile.KindVec3
	KindVec4    = compile.KindVec4
)

// Common sentinel errors, re-exported for errors.Is checks.
var (
	ErrNoEntryFunction      = compile.ErrNoEntryFunction
	ErrMultipleEntryPoints  = compile.ErrMultipleEntryPoints
	ErrEmptyFunction        = compile.ErrEmptyFunction
	ErrUnexpectedExpression = compile.ErrUnexpectedExpression
	ErrDuplicateFunction    = compile.ErrDuplicateFunction
	ErrValueRange           = compile.ErrValueRange
	ErrReturnTypeMismatch   = compile.ErrReturnTypeMismatch
	ErrCodeTooLarge         = jitmem.ErrCodeTooLarge
	ErrReleased             = jitmem.ErrReleased
)

// -----------------------------------------------------------------------------
// Compilation
// -----------------------------------------------------------------------------

// Compile parses src and compiles it down to the entry function's machine
// code. The module must be package main, contain exactly one function
// marked with a //jit:start directive, and every function body must end in
// a bare integer literal.
func Compile(src string) ([]byte, error) {
	return compile.CompileModule(src)
}

// CompileFile is Compile with a file name for error positions.
func CompileFile(name, src string) ([]byte, error) {
	return compile.CompileFile(name, src)
}

// -----------------------------------------------------------------------------
// Executable memory
// -----------------------------------------------------------------------------

// NewRegion allocates a trap-filled executable region spanning the given
// number of pages.
func NewRegion(pages int) (*Region, error) {
	return jitmem.New(pages)
}

// FromCode allocates the smallest region that can hold code and loads it.
func FromCode(code []byte) (*Region, error) {
	return jitmem.FromCode(code)
}

// Run invokes the region's loaded code as a zero-argument function
// returning T. The caller is responsible for matching T to the code
// actually loaded; a mismatch is undefined behavior.
func Run[T Integer](r *Region) T {
	return jitmem.Run[T](r)
}
