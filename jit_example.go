//go:build ignore

// This file demonstrates every public API in the gsrjit package.
// It is excluded from the build and serves as a reference and compile-time check.

package main

import (
	"errors"
	"fmt"
	"os"

	gsrjit "github.com/fschutt/gsr-jit"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// =========================================================================
	// Compile - source text to machine code
	// =========================================================================
	src := `package main

//jit:start
func main() u8 {
	4
}
`
	code, err := gsrjit.Compile(src)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	// CompileFile - same, with a file name for error positions
	code, err = gsrjit.CompileFile("demo.gsr", src)
	if err != nil {
		return fmt.Errorf("compile file: %w", err)
	}

	// =========================================================================
	// Region - executable memory
	// =========================================================================

	// FromCode - allocate the smallest region holding code
	region, err := gsrjit.FromCode(code)
	if err != nil {
		return fmt.Errorf("from code: %w", err)
	}
	defer region.Close()

	// NewRegion - allocate a fixed number of trap-filled pages
	scratch, err := gsrjit.NewRegion(2)
	if err != nil {
		return fmt.Errorf("new region: %w", err)
	}
	defer scratch.Close()

	// Load - copy code to the start of a region
	if err := scratch.Load(code); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	// Region geometry
	_ = region.PageSize() // bytes per page
	_ = region.Pages()    // pages allocated
	_ = region.Capacity() // total bytes

	// Checked byte access
	b, ok := region.At(0)
	_, _ = b, ok
	_ = region.Set(0, 0x55)

	// Unchecked byte access (caller guarantees bounds)
	_ = region.AtUnchecked(0)
	region.SetUnchecked(0, 0x55)

	// Dump - hex dump of the region's first page
	_ = region.Dump(os.Stdout)

	// =========================================================================
	// Run - invoke loaded code
	// =========================================================================

	// The type parameter states the return width the loaded code produces.
	v8 := gsrjit.Run[uint8](region)
	fmt.Println("returned:", v8)

	// Wider widths for code compiled from u16/u32/u64 functions:
	// _ = gsrjit.Run[uint16](region)
	// _ = gsrjit.Run[uint32](region)
	// _ = gsrjit.Run[uint64](region)

	// =========================================================================
	// Sentinel errors
	// =========================================================================
	_ = gsrjit.ErrNoEntryFunction
	_ = gsrjit.ErrMultipleEntryPoints
	_ = gsrjit.ErrEmptyFunction
	_ = gsrjit.ErrUnexpectedExpression
	_ = gsrjit.ErrDuplicateFunction
	_ = gsrjit.ErrValueRange
	_ = gsrjit.ErrReturnTypeMismatch
	_ = gsrjit.ErrCodeTooLarge
	_ = gsrjit.ErrReleased

	// Typed errors carry the offending details
	_, err = gsrjit.Compile(`package main

//jit:start
func main() u8 {
	300
}
`)
	var rangeErr *gsrjit.ValueRangeError
	if errors.As(err, &rangeErr) {
		_ = rangeErr.Value    // 300
		_ = rangeErr.Declared // gsrjit.KindU8
	}
	var typeErr *gsrjit.ReturnTypeError
	if errors.As(err, &typeErr) {
		_ = typeErr.Function
		_ = typeErr.Declared
		_ = typeErr.Inferred
	}
	var dupErr *gsrjit.DuplicateFunctionError
	if errors.As(err, &dupErr) {
		_ = dupErr.Name
	}

	// =========================================================================
	// Return kinds
	// =========================================================================
	_ = gsrjit.KindVoid
	_ = gsrjit.KindU8
	_ = gsrjit.KindU16
	_ = gsrjit.KindU32
	_ = gsrjit.KindU64
	fmt.Println(gsrjit.KindU8.String()) // "u8"

	// =========================================================================
	// Type aliases (for reference)
	// =========================================================================
	var (
		_ *gsrjit.Region    // executable memory region
		_ gsrjit.ReturnKind // declared or inferred return type
	)

	return nil
}
