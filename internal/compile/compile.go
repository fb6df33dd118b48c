package compile

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// Compiler holds the state for one module compilation. The label counter
// and location bookkeeping live here rather than in package state, so
// repeated or concurrent compilations cannot interfere with each other.
type Compiler struct {
	fset      *token.FileSet
	file      *ast.File
	labels    Label
	locations map[Label]*Location
}

// Program is the result of compiling a module: the entry function's
// machine code along with what a caller needs to invoke it.
type Program struct {
	Entry string     // entry function name
	Kind  ReturnKind // entry function's declared return kind
	Width int        // defined result bytes after narrowing, 0 when no value
	Code  []byte
}

// CompileModule parses src and compiles it down to the entry function's
// machine code. The accepted language is intentionally small; unsupported
// constructs return errors rather than attempting partial code generation.
func CompileModule(src string) ([]byte, error) {
	return CompileFile("input.go", src)
}

// CompileFile is CompileModule with a file name for error positions.
func CompileFile(name, src string) ([]byte, error) {
	prog, err := CompileProgram(name, src)
	if err != nil {
		return nil, err
	}
	return prog.Code, nil
}

// CompileProgram is CompileFile keeping the entry function's metadata
// alongside the code.
func CompileProgram(name, src string) (*Program, error) {
	c, err := newCompiler(name, src)
	if err != nil {
		return nil, err
	}
	return c.compile()
}

func newCompiler(name, src string) (*Compiler, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, name, src, parser.ParseComments|parser.AllErrors)
	if err != nil {
		return nil, fmt.Errorf("compile: parse: %w", err)
	}
	return &Compiler{fset: fset, file: file}, nil
}

func (c *Compiler) compile() (*Program, error) {
	pkgName := ""
	if c.file.Name != nil {
		pkgName = c.file.Name.Name
	}
	if pkgName != "main" {
		return nil, fmt.Errorf("compile: only package main is supported (got %q)", pkgName)
	}

	mod, err := c.collect()
	if err != nil {
		return nil, err
	}
	return c.assemble(mod)
}

// nextLabel hands out the next function label. The counter belongs to this
// compilation alone.
func (c *Compiler) nextLabel() Label {
	label := c.labels
	c.labels++
	return label
}

func (c *Compiler) pos(p token.Pos) token.Position {
	return c.fset.Position(p)
}
