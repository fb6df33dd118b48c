package jitmem

import (
	"fmt"
	"io"
	"strings"
	"unsafe"
)

// dumpLimit caps how much of a region Dump prints.
const dumpLimit = 160

// Dump writes a hex view of the region's first bytes to w: a header per
// page, sixteen bytes per line, truncated at dumpLimit.
func (r *Region) Dump(w io.Writer) error {
	r.mustLive("Dump")

	var b strings.Builder
	page := 0
	for i := 0; i < len(r.mem); i++ {
		if i > dumpLimit {
			break
		}
		if i%r.pageSize == 0 {
			fmt.Fprintf(&b, "\n>>>>> JIT memory - page %d @ 0x%x\n", page, uintptr(unsafe.Pointer(&r.mem[i])))
			page++
		}
		if i != 0 && i%16 == 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%02x ", r.mem[i])
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
