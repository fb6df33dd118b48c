package compile

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
)

// literal is the parsed form of a function's trailing integer literal.
type literal struct {
	value  uint64
	suffix ReturnKind // KindVoid when the literal is unsuffixed
}

// trailingLiteral extracts the integer literal a function body must end in.
// A width conversion like u16(4) acts as the literal's suffix.
func (c *Compiler) trailingLiteral(stmt ast.Stmt) (literal, error) {
	expr, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return literal{}, fmt.Errorf("compile: %s: %w: %T", c.pos(stmt.Pos()), ErrUnexpectedExpression, stmt)
	}

	switch x := expr.X.(type) {
	case *ast.BasicLit:
		value, err := c.literalValue(x)
		if err != nil {
			return literal{}, err
		}
		return literal{value: value}, nil

	case *ast.CallExpr:
		ident, ok := x.Fun.(*ast.Ident)
		if !ok {
			return literal{}, fmt.Errorf("compile: %s: %w: %T", c.pos(x.Pos()), ErrUnexpectedExpression, x.Fun)
		}
		suffix, ok := suffixKind(ident.Name)
		if !ok || len(x.Args) != 1 {
			return literal{}, fmt.Errorf("compile: %s: %w: call to %s", c.pos(x.Pos()), ErrUnexpectedExpression, ident.Name)
		}
		basic, ok := x.Args[0].(*ast.BasicLit)
		if !ok {
			return literal{}, fmt.Errorf("compile: %s: %w: %T", c.pos(x.Args[0].Pos()), ErrUnexpectedExpression, x.Args[0])
		}
		value, err := c.literalValue(basic)
		if err != nil {
			return literal{}, err
		}
		return literal{value: value, suffix: suffix}, nil

	default:
		return literal{}, fmt.Errorf("compile: %s: %w: %T", c.pos(expr.Pos()), ErrUnexpectedExpression, expr.X)
	}
}

// literalValue parses an integer literal's unsigned value. Base prefixes
// and digit separators follow Go syntax.
func (c *Compiler) literalValue(lit *ast.BasicLit) (uint64, error) {
	if lit.Kind != token.INT {
		return 0, fmt.Errorf("compile: %s: %w: %s literal", c.pos(lit.Pos()), ErrUnexpectedExpression, lit.Kind)
	}
	value, err := strconv.ParseUint(lit.Value, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("compile: %s: %w: %v", c.pos(lit.Pos()), ErrUnexpectedExpression, err)
	}
	return value, nil
}

// inferReturn decides the return kind a function's body actually produces.
// An explicit suffix pins the literal's kind regardless of the declaration;
// an unsuffixed literal takes the declared kind when its magnitude fits.
func (c *Compiler) inferReturn(fn *Function) (ReturnKind, literal, error) {
	if len(fn.Body) == 0 {
		return KindVoid, literal{}, fmt.Errorf("compile: function %q: %w", fn.Name, ErrEmptyFunction)
	}

	lit, err := c.trailingLiteral(fn.Body[len(fn.Body)-1])
	if err != nil {
		return KindVoid, literal{}, err
	}

	if lit.suffix != KindVoid {
		return lit.suffix, lit, nil
	}

	if !fn.Return.isUnsignedInt() {
		// No integer constraint to fit against. The literal stays unsized
		// and the declared/inferred comparison reports the mismatch.
		return KindUInt, lit, nil
	}

	if !fits(fn.Return, minimalKind(lit.value)) {
		return KindVoid, lit, &ValueRangeError{Value: lit.value, Declared: fn.Return}
	}
	return fn.Return, lit, nil
}
