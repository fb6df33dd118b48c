//go:build darwin

package jitmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// allocPages maps size bytes with read, write and execute permission. The
// mapping carries MAP_JIT so hardened runtimes allow it. Apple silicon
// additionally enforces W^X per thread on such mappings, which beginWrite
// and endWrite toggle around every mutation; on Intel the toggle is a
// no-op.
func allocPages(size int) ([]byte, error) {
	if err := loadLibSystem(); err != nil {
		return nil, err
	}

	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_JIT)
	if err != nil {
		return nil, fmt.Errorf("jitmem: mmap executable region: %w", err)
	}
	return mem, nil
}

func freePages(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("jitmem: munmap region: %w", err)
	}
	return nil
}

func beginWrite(mem []byte) {
	pthread_jit_write_protect_np(0)
}

func endWrite(mem []byte) {
	pthread_jit_write_protect_np(1)
	sys_icache_invalidate(unsafe.Pointer(&mem[0]), uintptr(len(mem)))
}
