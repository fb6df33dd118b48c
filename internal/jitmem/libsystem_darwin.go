//go:build darwin

package jitmem

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	loadOnce sync.Once
	loadErr  error

	libSystemLib uintptr
)

// Function variables (populated by loadLibSystem).
var (
	pthread_jit_write_protect_np func(enabled int32)
	sys_icache_invalidate        func(start unsafe.Pointer, size uintptr)
)

// loadLibSystem binds the per-thread JIT write-protect toggle and the
// instruction cache maintenance call.
func loadLibSystem() error {
	loadOnce.Do(func() {
		var err error
		libSystemLib, err = purego.Dlopen(
			"/usr/lib/libSystem.B.dylib",
			purego.RTLD_GLOBAL|purego.RTLD_LAZY,
		)
		if err != nil {
			loadErr = fmt.Errorf("jitmem: purego dlopen libSystem: %w", err)
			return
		}

		purego.RegisterLibFunc(&pthread_jit_write_protect_np, libSystemLib, "pthread_jit_write_protect_np")
		purego.RegisterLibFunc(&sys_icache_invalidate, libSystemLib, "sys_icache_invalidate")
	})
	return loadErr
}
