package resalloc

import (
	"log"
	"math"
	"runtime"
	"unsafe"
)

// DefaultStride matches the common 4 KiB memory page.
const DefaultStride = 4096

// Allocate reserves a contiguous buffer of exactly n bytes.
// The reservation alone is usually only virtual; call Touch to commit it.
// Failure to allocate is fatal.
func Allocate(n uint64) []byte {
	if n > math.MaxInt {
		log.Fatalf("failed to allocate %d bytes: exceeds address space", n)
	}

	return make([]byte, n)
}

// Touch writes one byte at every stride-aligned offset below len(buf) so
// the OS has to back each page with physical memory. It returns the
// number of offsets written. A buffer shorter than stride gets offset 0
// only; the bytes after the last stride-aligned offset are not written.
func Touch(buf []byte, stride int) int {
	if stride <= 0 {
		stride = DefaultStride
	}

	touched := 0
	for i := 0; i < len(buf); i += stride {
		touchByte(buf, i)
		touched++
	}
	runtime.KeepAlive(buf)

	return touched
}

// touchByte is the only raw memory write in the package. The store goes
// through an unsafe pointer into the heap and cannot be dropped as dead.
//
//go:noinline
func touchByte(buf []byte, off int) {
	p := (*byte)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(buf)), off))
	*p = 1
}
