package compile

// ReturnKind enumerates the return types a function may declare. Only the
// unsigned fixed-width integers have a code generation mapping today; the
// remaining kinds are representable but generate nothing.
type ReturnKind uint8

const (
	KindVoid ReturnKind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindUInt // integer literal whose width is not yet pinned
	KindI8
	KindI16
	KindI32
	KindI64
	KindF32
	KindF64
	KindBool
	KindByte
	KindChar
	KindStr
	KindByteStr
	KindVec2
	KindVec3
	KindVec4
)

func (k ReturnKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindUInt:
		return "untyped int"
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindByte:
		return "byte"
	case KindChar:
		return "char"
	case KindStr:
		return "str"
	case KindByteStr:
		return "bytestr"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	default:
		return "invalid"
	}
}

// minimalKind returns the smallest unsigned kind whose range holds value.
// The boundaries are strict: a value equal to a kind's maximum classifies
// into the next wider kind.
func minimalKind(value uint64) ReturnKind {
	switch {
	case value < 0xFF:
		return KindU8
	case value < 0xFFFF:
		return KindU16
	case value < 0xFFFFFFFF:
		return KindU32
	default:
		return KindU64
	}
}

// width returns the operand width in bytes for sized integer kinds, or 0
// for everything else.
func (k ReturnKind) width() int {
	switch k {
	case KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32:
		return 4
	case KindU64, KindI64:
		return 8
	}
	return 0
}

// isUnsignedInt reports whether k is a fixed-width unsigned integer kind.
func (k ReturnKind) isUnsignedInt() bool {
	switch k {
	case KindU8, KindU16, KindU32, KindU64:
		return true
	}
	return false
}

// fits reports whether a literal of minimal kind m is assignable to the
// declared kind k. A u64 declaration accepts any magnitude; narrower kinds
// accept only literals at or below their own width.
func fits(k, m ReturnKind) bool {
	if k == KindU64 {
		return true
	}
	return k.width() > 0 && k.width() >= m.width()
}

// integerTypeName resolves a declared return type name. Only the unsigned
// fixed-width names constrain the body; anything else leaves the function
// unconstrained.
func integerTypeName(name string) (ReturnKind, bool) {
	switch name {
	case "u8":
		return KindU8, true
	case "u16":
		return KindU16, true
	case "u32":
		return KindU32, true
	case "u64":
		return KindU64, true
	}
	return KindVoid, false
}

// suffixKind resolves a width-conversion name applied to a literal, such as
// the u16 in u16(4). Signed widths are recognized here even though they
// never assemble, so the mismatch is reported as a type error rather than
// an unsupported expression.
func suffixKind(name string) (ReturnKind, bool) {
	switch name {
	case "i8":
		return KindI8, true
	case "i16":
		return KindI16, true
	case "i32":
		return KindI32, true
	case "i64":
		return KindI64, true
	}
	return integerTypeName(name)
}
