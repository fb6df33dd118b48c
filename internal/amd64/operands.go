// Package amd64 encodes the small x86-64 instruction subset used by the
// compiler: register-to-register and immediate-to-register moves plus the
// stack-frame bookkeeping instructions. Encoders return raw byte sequences;
// higher layers decide what to do with them.
package amd64

import "fmt"

// Register identifies one of the sixteen general-purpose registers. The
// operand width is carried separately by Reg.
type Register uint8

const (
	RAX Register = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

func (r Register) String() string {
	names := [...]string{
		"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi",
		"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
	}
	if int(r) < len(names) {
		return names[r]
	}
	return fmt.Sprintf("reg(%d)", uint8(r))
}

// registerCode carries the ModRM/opcode register field for a register plus
// the REX requirements of its byte-wide form.
type registerCode struct {
	code     byte
	high     bool
	needsRex bool
}

func regInfo(r Register) (registerCode, error) {
	switch r {
	case RAX:
		return registerCode{code: 0}, nil
	case RCX:
		return registerCode{code: 1}, nil
	case RDX:
		return registerCode{code: 2}, nil
	case RBX:
		return registerCode{code: 3}, nil
	case RSP:
		return registerCode{code: 4, needsRex: true}, nil
	case RBP:
		return registerCode{code: 5, needsRex: true}, nil
	case RSI:
		return registerCode{code: 6, needsRex: true}, nil
	case RDI:
		return registerCode{code: 7, needsRex: true}, nil
	case R8, R9, R10, R11, R12, R13, R14, R15:
		return registerCode{code: byte(r - R8), high: true, needsRex: true}, nil
	default:
		return registerCode{}, fmt.Errorf("amd64: unknown register %d", uint8(r))
	}
}

type operandSize uint8

const (
	size8  operandSize = 1
	size16 operandSize = 2
	size32 operandSize = 4
	size64 operandSize = 8
)

// Reg is a register operand with an explicit width.
type Reg struct {
	id   Register
	size operandSize
}

// Reg64 constructs a 64-bit register operand.
func Reg64(id Register) Reg { return Reg{id: id, size: size64} }

// Reg32 constructs a 32-bit register operand.
func Reg32(id Register) Reg { return Reg{id: id, size: size32} }

// Reg16 constructs a 16-bit register operand.
func Reg16(id Register) Reg { return Reg{id: id, size: size16} }

// Reg8 constructs an 8-bit register operand.
func Reg8(id Register) Reg { return Reg{id: id, size: size8} }

// Width reports the operand width in bits.
func (r Reg) Width() int { return int(r.size) * 8 }
