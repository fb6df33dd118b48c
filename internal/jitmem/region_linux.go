//go:build linux

package jitmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// allocPages maps size bytes of fresh anonymous memory with read, write and
// execute permission set at map time.
func allocPages(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_PRIVATE|unix.MAP_ANON)
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

// beginWrite and endWrite bracket region mutations. Linux pages stay
// writable for their whole lifetime, so there is nothing to toggle.
func beginWrite(mem []byte) {}

func endWrite(mem []byte) {}
