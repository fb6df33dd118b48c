package compile

import (
	"go/ast"
	"go/token"
)

// Label identifies a function within one compilation. Labels are assigned
// in scan order by a counter owned by the Compiler, so every compilation
// numbers its functions from zero.
type Label uint32

// Function is one collected function declaration.
type Function struct {
	Label  Label
	Name   string
	Params []string // parameter names in order
	Body   []ast.Stmt
	Return ReturnKind
	Pos    token.Pos
}

// Module is the function table built by collection plus the designated
// entry point.
type Module struct {
	Funcs map[Label]*Function
	Order []Label // labels in scan order
	Entry Label
}

// Location tracks where a function's code lives in an assembled buffer.
// Every location starts as a symbolic name reference; it is resolved to an
// offset once layout is final. Nothing emits cross-function references yet,
// so resolution currently never happens.
type Location struct {
	Name     string
	Offset   uint64
	Resolved bool
}
