package gsrjit_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	gsrjit "github.com/fschutt/gsr-jit"
)

func TestCompile(t *testing.T) {
	code, err := gsrjit.Compile(`package main

//jit:start
func main() u8 {
	4
}
`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := []byte{0x55, 0x48, 0x89, 0xE5, 0xB0, 0x04, 0x5D, 0xC3}
	if !bytes.Equal(code, want) {
		t.Fatalf("Compile() = % X, want % X", code, want)
	}
}

func TestCompileFile(t *testing.T) {
	_, err := gsrjit.CompileFile("demo.gsr", `package main

//jit:start
func main() u8 {
	return 4
}
`)
	if !errors.Is(err, gsrjit.ErrUnexpectedExpression) {
		t.Fatalf("CompileFile() error = %v, want ErrUnexpectedExpression", err)
	}
	if !strings.Contains(err.Error(), "demo.gsr") {
		t.Errorf("CompileFile() error = %q, want file name in position", err)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "no entry",
			src: `package main

func main() u8 {
	4
}
`,
			want: gsrjit.ErrNoEntryFunction,
		},
		{
			name: "multiple entries",
			src: `package main

//jit:start
func main() u8 {
	4
}

//jit:start
func other() u8 {
	5
}
`,
			want: gsrjit.ErrMultipleEntryPoints,
		},
		{
			name: "duplicate function",
			src: `package main

//jit:start
func main() u8 {
	4
}

func main() u8 {
	5
}
`,
			want: gsrjit.ErrDuplicateFunction,
		},
		{
			name: "empty body",
			src: `package main

//jit:start
func main() u8 {
}
`,
			want: gsrjit.ErrEmptyFunction,
		},
		{
			name: "value out of range",
			src: `package main

//jit:start
func main() u8 {
	300
}
`,
			want: gsrjit.ErrValueRange,
		},
		{
			name: "suffix mismatch",
			src: `package main

//jit:start
func main() u8 {
	u16(4)
}
`,
			want: gsrjit.ErrReturnTypeMismatch,
		},
		{
			name: "unexpected expression",
			src: `package main

//jit:start
func main() u8 {
	x
}
`,
			want: gsrjit.ErrUnexpectedExpression,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gsrjit.Compile(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTypedErrors(t *testing.T) {
	_, err := gsrjit.Compile(`package main

//jit:start
func main() u8 {
	300
}
`)
	var rangeErr *gsrjit.ValueRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Compile() error = %v, want *ValueRangeError", err)
	}
	if rangeErr.Value != 300 || rangeErr.Declared != gsrjit.KindU8 {
		t.Errorf("ValueRangeError = {%d %v}, want {300 u8}", rangeErr.Value, rangeErr.Declared)
	}

	_, err = gsrjit.Compile(`package main

//jit:start
func main() u32 {
	u8(4)
}
`)
	var typeErr *gsrjit.ReturnTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("Compile() error = %v, want *ReturnTypeError", err)
	}
	if typeErr.Declared != gsrjit.KindU32 || typeErr.Inferred != gsrjit.KindU8 {
		t.Errorf("ReturnTypeError = {%v %v}, want {u32 u8}", typeErr.Declared, typeErr.Inferred)
	}
}

func TestRegionLifecycle(t *testing.T) {
	code, err := gsrjit.Compile(`package main

//jit:start
func main() u8 {
	4
}
`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	region, err := gsrjit.FromCode(code)
	if err != nil {
		t.Fatalf("FromCode() error = %v", err)
	}

	if got, ok := region.At(4); !ok || got != 0xB0 {
		t.Errorf("At(4) = %#x, %v, want 0xb0, true", got, ok)
	}

	var dump strings.Builder
	if err := region.Dump(&dump); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(dump.String(), "JIT memory - page 0") {
		t.Errorf("Dump() missing page header:\n%s", dump.String())
	}

	if err := region.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := region.Close(); !errors.Is(err, gsrjit.ErrReleased) {
		t.Fatalf("second Close() error = %v, want ErrReleased", err)
	}
}

func TestRegionCodeTooLarge(t *testing.T) {
	region, err := gsrjit.NewRegion(1)
	if err != nil {
		t.Fatalf("NewRegion() error = %v", err)
	}
	defer region.Close()

	big := make([]byte, region.Capacity()+1)
	if err := region.Load(big); !errors.Is(err, gsrjit.ErrCodeTooLarge) {
		t.Fatalf("Load() error = %v, want ErrCodeTooLarge", err)
	}
}

func TestKindValues(t *testing.T) {
	if gsrjit.KindVoid != 0 {
		t.Error("KindVoid should be 0")
	}
	if got := gsrjit.KindU8.String(); got != "u8" {
		t.Errorf("KindU8.String() = %q, want %q", got, "u8")
	}
	if got := gsrjit.KindU64.String(); got != "u64" {
		t.Errorf("KindU64.String() = %q, want %q", got, "u64")
	}
}
