//go:build windows

package jitmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// allocPages commits size bytes of fresh memory with execute-read-write
// protection set at allocation time.
func allocPages(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_COMMIT|windows.MEM_RESERVE,
		windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("jitmem: VirtualAlloc executable region: %w", err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func freePages(mem []byte) error {
	addr := uintptr(unsafe.Pointer(&mem[0]))
	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("jitmem: VirtualFree region: %w", err)
	}
	return nil
}

// beginWrite and endWrite bracket region mutations. Windows pages stay
// writable for their whole lifetime, so there is nothing to toggle.
func beginWrite(mem []byte) {}

func endWrite(mem []byte) {}
