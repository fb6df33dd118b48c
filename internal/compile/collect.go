package compile

import (
	"fmt"
	"go/ast"
	"strings"
)

// entryDirective marks the entry function when it appears in the function's
// doc comment.
const entryDirective = "jit:start"

// isEntryMarker reports whether a doc comment carries the entry directive.
// Directives are line comments with no space after the slashes, which
// CommentGroup.Text strips, so the raw comment list is inspected instead.
func isEntryMarker(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, comment := range doc.List {
		text, ok := strings.CutPrefix(comment.Text, "//")
		if !ok {
			continue
		}
		if text == entryDirective || strings.HasPrefix(text, entryDirective+" ") {
			return true
		}
	}
	return false
}

// collect walks the file's top-level declarations in source order and
// builds the function table. Non-function declarations and methods are
// ignored. Each accepted function receives a fresh label whether or not it
// is the entry point.
func (c *Compiler) collect() (*Module, error) {
	mod := &Module{Funcs: make(map[Label]*Function)}
	seen := make(map[string]Label)
	haveEntry := false

	for _, decl := range c.file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}

		name := fn.Name.Name
		if _, exists := seen[name]; exists {
			return nil, &DuplicateFunctionError{Name: name}
		}

		label := c.nextLabel()
		f := &Function{
			Label:  label,
			Name:   name,
			Params: paramNames(fn.Type),
			Return: declaredReturn(fn.Type),
			Pos:    fn.Pos(),
		}
		if fn.Body != nil {
			f.Body = fn.Body.List
		}

		if isEntryMarker(fn.Doc) {
			if haveEntry {
				return nil, fmt.Errorf("compile: function %q: %w", name, ErrMultipleEntryPoints)
			}
			mod.Entry = label
			haveEntry = true
		}

		seen[name] = label
		mod.Funcs[label] = f
		mod.Order = append(mod.Order, label)
	}

	if !haveEntry {
		return nil, ErrNoEntryFunction
	}
	return mod, nil
}

func paramNames(ft *ast.FuncType) []string {
	if ft.Params == nil {
		return nil
	}
	var names []string
	for _, field := range ft.Params.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names
}

// declaredReturn extracts the declared return kind. Only a single
// unqualified u8/u16/u32/u64 result constrains the body; a missing result
// list, a qualified name or any other type reads as void.
func declaredReturn(ft *ast.FuncType) ReturnKind {
	if ft.Results == nil || len(ft.Results.List) != 1 {
		return KindVoid
	}
	ident, ok := ft.Results.List[0].Type.(*ast.Ident)
	if !ok {
		return KindVoid
	}
	kind, ok := integerTypeName(ident.Name)
	if !ok {
		return KindVoid
	}
	return kind
}
