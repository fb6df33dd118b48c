package amd64

import (
	"encoding/binary"
	"fmt"
)

type rexState struct {
	w     bool
	r     bool
	x     bool
	b     bool
	force bool
}

func (r rexState) prefix() byte {
	if !r.w && !r.r && !r.x && !r.b && !r.force {
		return 0
	}
	p := byte(0x40)
	if r.w {
		p |= 0x08
	}
	if r.r {
		p |= 0x04
	}
	if r.x {
		p |= 0x02
	}
	if r.b {
		p |= 0x01
	}
	return p
}

// operandPrefix returns the 0x66 operand-size override required by 16-bit
// operands.
func operandPrefix(size operandSize) (byte, bool) {
	if size == size16 {
		return 0x66, true
	}
	return 0x00, false
}

// MovRegImm encodes a move of an immediate into a register. The immediate is
// emitted little-endian at exactly the register's width: B0+r for 8-bit
// operands, B8+r for the wider forms (with 0x66 for 16-bit and REX.W for
// 64-bit).
func MovRegImm(dst Reg, value uint64) ([]byte, error) {
	info, err := regInfo(dst.id)
	if err != nil {
		return nil, err
	}

	prefix, hasPrefix := operandPrefix(dst.size)
	rex := rexState{
		w:     dst.size == size64,
		b:     info.high,
		force: info.needsRex && dst.size == size8,
	}

	opcode := byte(0)
	var imm []byte

	switch dst.size {
	case size64:
		opcode = 0xB8 + info.code
		imm = make([]byte, 8)
		binary.LittleEndian.PutUint64(imm, value)
	case size32:
		opcode = 0xB8 + info.code
		imm = make([]byte, 4)
		binary.LittleEndian.PutUint32(imm, uint32(value))
	case size16:
		opcode = 0xB8 + info.code
		imm = make([]byte, 2)
		binary.LittleEndian.PutUint16(imm, uint16(value))
	case size8:
		opcode = 0xB0 + info.code
		imm = []byte{byte(value)}
	default:
		return nil, fmt.Errorf("amd64: unsupported register width %d", dst.size)
	}

	out := make([]byte, 0, 2+len(imm))
	if hasPrefix {
		out = append(out, prefix)
	}
	if rexByte := rex.prefix(); rexByte != 0 {
		out = append(out, rexByte)
	}
	out = append(out, opcode)
	out = append(out, imm...)
	return out, nil
}

// MovRegReg encodes a register-to-register move (opcode 0x89, or 0x88 for
// byte operands) with a register-direct ModRM byte.
func MovRegReg(dst, src Reg) ([]byte, error) {
	if dst.size != src.size {
		return nil, fmt.Errorf("amd64: mismatched register widths: %d vs %d", dst.size, src.size)
	}

	dstInfo, err := regInfo(dst.id)
	if err != nil {
		return nil, err
	}
	srcInfo, err := regInfo(src.id)
	if err != nil {
		return nil, err
	}

	prefix, hasPrefix := operandPrefix(dst.size)
	rex := rexState{
		w:     dst.size == size64,
		r:     srcInfo.high,
		b:     dstInfo.high,
		force: dst.size == size8 && (dstInfo.needsRex || srcInfo.needsRex),
	}

	opcode := byte(0x89)
	if dst.size == size8 {
		opcode = 0x88
	}

	modrm := byte(0xC0 | srcInfo.code<<3 | dstInfo.code)

	out := make([]byte, 0, 4)
	if hasPrefix {
		out = append(out, prefix)
	}
	if rexByte := rex.prefix(); rexByte != 0 {
		out = append(out, rexByte)
	}
	out = append(out, opcode, modrm)
	return out, nil
}

func encodePush(info registerCode) []byte {
	rex := rexState{b: info.high}
	if rexByte := rex.prefix(); rexByte != 0 {
		return []byte{rexByte, 0x50 + info.code}
	}
	return []byte{0x50 + info.code}
}

func encodePop(info registerCode) []byte {
	rex := rexState{b: info.high}
	if rexByte := rex.prefix(); rexByte != 0 {
		return []byte{rexByte, 0x58 + info.code}
	}
	return []byte{0x58 + info.code}
}

// Push encodes a 64-bit register push.
func Push(reg Register) ([]byte, error) {
	info, err := regInfo(reg)
	if err != nil {
		return nil, err
	}
	return encodePush(info), nil
}

// Pop encodes a 64-bit register pop.
func Pop(reg Register) ([]byte, error) {
	info, err := regInfo(reg)
	if err != nil {
		return nil, err
	}
	return encodePop(info), nil
}

// Ret encodes a near return.
func Ret() []byte {
	return []byte{0xC3}
}

// Prologue returns the fixed function entry sequence: push rbp; mov rbp, rsp.
func Prologue() []byte {
	out := encodePush(mustRegInfo(RBP))
	mov, err := MovRegReg(Reg64(RBP), Reg64(RSP))
	if err != nil {
		panic(err)
	}
	return append(out, mov...)
}

// Epilogue returns the fixed function exit sequence: pop rbp; ret.
func Epilogue() []byte {
	out := encodePop(mustRegInfo(RBP))
	return append(out, Ret()...)
}

func mustRegInfo(reg Register) registerCode {
	info, err := regInfo(reg)
	if err != nil {
		panic(err)
	}
	return info
}
