package compile

import (
	"github.com/fschutt/gsr-jit/internal/amd64"
)

// emitFunction generates one function's framed byte sequence: prologue,
// return-value move, epilogue. Framing is unconditional; a kind with no
// instruction mapping leaves an empty payload between the frames. The
// second result is the kind the emitted move actually defines.
func (c *Compiler) emitFunction(fn *Function) ([]byte, ReturnKind, error) {
	inferred, lit, err := c.inferReturn(fn)
	if err != nil {
		return nil, KindVoid, err
	}
	if fn.Return != inferred {
		return nil, KindVoid, &ReturnTypeError{Function: fn.Name, Declared: fn.Return, Inferred: inferred}
	}

	payload, err := emitReturnValue(inferred, lit.value)
	if err != nil {
		return nil, KindVoid, err
	}

	out := make([]byte, 0, len(payload)+6)
	out = append(out, amd64.Prologue()...)
	out = append(out, payload...)
	out = append(out, amd64.Epilogue()...)
	return out, effectiveKind(inferred, lit.value), nil
}

// effectiveKind is the kind whose register width the emitted move defines.
// A 64-bit return narrows to the smallest kind holding the value; the
// declared type is unaffected.
func effectiveKind(kind ReturnKind, value uint64) ReturnKind {
	if kind == KindU64 {
		return minimalKind(value)
	}
	return kind
}

// emitReturnValue encodes the move that places value in the accumulator.
// Kinds outside the unsigned integers select no instruction.
func emitReturnValue(kind ReturnKind, value uint64) ([]byte, error) {
	switch effectiveKind(kind, value) {
	case KindU8:
		return amd64.MovRegImm(amd64.Reg8(amd64.RAX), value)
	case KindU16:
		return amd64.MovRegImm(amd64.Reg16(amd64.RAX), value)
	case KindU32:
		return amd64.MovRegImm(amd64.Reg32(amd64.RAX), value)
	case KindU64:
		return amd64.MovRegImm(amd64.Reg64(amd64.RAX), value)
	default:
		return nil, nil
	}
}
