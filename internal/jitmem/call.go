package jitmem

import "unsafe"

// Integer is the set of return widths generated code can produce.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Run reinterprets the region's base address as a zero-argument function
// returning T and calls it synchronously on the current goroutine. This is
// the one place in the system that performs the reinterpretation. The
// caller states the expected return width through T and is responsible for
// matching it to the loaded code; a mismatch is undefined behavior, not a
// caught error.
func Run[T Integer](r *Region) T {
	r.mustLive("Run")

	// A Go func value points at a word holding the code address, so a
	// pointer to a pointer to the entry is callable directly. The generated
	// code never touches the closure register this leaves populated.
	entry := r.base()
	entryRef := &entry
	fn := *(*func() T)(unsafe.Pointer(&entryRef))
	return fn()
}
