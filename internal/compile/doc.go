// Package compile turns a small statically-typed source module into x86-64
// machine code. The accepted language is a restricted Go-syntax subset: a
// module is one package main file whose top-level functions declare an
// optional fixed-width unsigned integer return type and end in a bare
// integer literal.
//
// The package supports:
//   - func name() u8|u16|u32|u64 { ... } declarations
//   - a //jit:start directive marking the single entry function
//   - trailing integer literals in decimal, hex, octal or binary form
//   - width conversions like u16(4) pinning a literal's emitted width
//
// Unsupported (representable but generating no code):
//   - signed integer, float, bool, char, string and vector return kinds
//   - parameters, control flow and calls between compiled functions
//
// Example usage:
//
//	code, err := compile.CompileModule(`package main
//
//	//jit:start
//	func main() u64 {
//		4
//	}`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// code holds the entry function's framed instruction bytes.
package compile
