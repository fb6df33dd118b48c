// Package jitmem manages page-aligned blocks of executable memory. A Region
// is allocated with read, write and execute permission from the start,
// trap-filled so stray jumps halt visibly, loaded with generated code, and
// invoked through Run. Each region is exclusively owned by its handle and
// returned to the OS exactly once by Close.
package jitmem

import (
	"errors"
	"fmt"
	"os"
	"unsafe"
)

// Sentinel errors for region management.
var (
	ErrCodeTooLarge = errors.New("instruction buffer exceeds region capacity")
	ErrReleased     = errors.New("region already released")
)

// fillByte is the x86 int3 breakpoint opcode. Uninitialized region bytes
// hold it so executing unwritten memory traps immediately instead of
// running garbage.
const fillByte = 0xCC

// Region is one page-aligned block of executable memory. Once loaded it is
// conceptually frozen: multiple regions may coexist and run from different
// goroutines, but a single region must only be touched through its owning
// handle.
type Region struct {
	mem      []byte
	pageSize int
	pages    int
	released bool
}

// New allocates a region spanning the given number of pages. The pages are
// mapped readable, writable and executable from the start, so there is no
// window where loaded code is writable but not yet runnable, and every byte
// is initialized to a trap opcode.
func New(pages int) (*Region, error) {
	if pages < 1 {
		return nil, fmt.Errorf("jitmem: page count %d must be positive", pages)
	}

	pageSize := os.Getpagesize()
	mem, err := allocPages(pages * pageSize)
	if err != nil {
		return nil, err
	}

	r := &Region{mem: mem, pageSize: pageSize, pages: pages}
	beginWrite(mem)
	for i := range mem {
		mem[i] = fillByte
	}
	endWrite(mem)
	return r, nil
}

// FromCode allocates the smallest region that can hold code and loads it.
func FromCode(code []byte) (*Region, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("jitmem: empty code")
	}

	pageSize := os.Getpagesize()
	pages := (len(code) + pageSize - 1) / pageSize
	r, err := New(pages)
	if err != nil {
		return nil, err
	}
	if err := r.Load(code); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// Load copies code into the region starting at offset zero. The region is
// left unmodified when code exceeds its capacity.
func (r *Region) Load(code []byte) error {
	r.mustLive("Load")
	if len(code) > len(r.mem) {
		return fmt.Errorf("jitmem: %w: %d bytes into %d", ErrCodeTooLarge, len(code), len(r.mem))
	}
	beginWrite(r.mem)
	copy(r.mem, code)
	endWrite(r.mem)
	return nil
}

// At returns the byte at index i, reporting whether i is inside the region.
func (r *Region) At(i int) (byte, bool) {
	r.mustLive("At")
	if i < 0 || i >= len(r.mem) {
		return 0, false
	}
	return r.mem[i], true
}

// Set writes b at index i, reporting whether i is inside the region.
func (r *Region) Set(i int, b byte) bool {
	r.mustLive("Set")
	if i < 0 || i >= len(r.mem) {
		return false
	}
	beginWrite(r.mem)
	r.mem[i] = b
	endWrite(r.mem)
	return true
}

// AtUnchecked reads the byte at index i without a bounds check. Callers opt
// in deliberately on hot paths; an out-of-range i is undefined behavior.
func (r *Region) AtUnchecked(i int) byte {
	return *(*byte)(unsafe.Add(unsafe.Pointer(&r.mem[0]), i))
}

// SetUnchecked writes b at index i without a bounds check. An out-of-range
// i is undefined behavior.
func (r *Region) SetUnchecked(i int, b byte) {
	beginWrite(r.mem)
	*(*byte)(unsafe.Add(unsafe.Pointer(&r.mem[0]), i)) = b
	endWrite(r.mem)
}

// PageSize returns the page size at allocation time.
func (r *Region) PageSize() int { return r.pageSize }

// Pages returns the number of pages backing the region.
func (r *Region) Pages() int { return r.pages }

// Capacity returns the region's total byte capacity.
func (r *Region) Capacity() int { return r.pages * r.pageSize }

// Close returns the region's pages to the OS. Closing an already-released
// region reports ErrReleased; any other use of a released region is a
// programming error and panics.
func (r *Region) Close() error {
	if r.released {
		return ErrReleased
	}
	r.released = true
	mem := r.mem
	r.mem = nil
	return freePages(mem)
}

func (r *Region) base() unsafe.Pointer {
	return unsafe.Pointer(&r.mem[0])
}

func (r *Region) mustLive(op string) {
	if r.released {
		panic("jitmem.Region: " + op + " on released region")
	}
}
