// Package rawmem acquires page-aligned, anonymous memory regions from the
// host OS for registration with mm.Heap.
//
// The allocator in package mm never assumes anything about where its
// regions come from — RegisterRegion takes a plain []byte — but a real
// program still has to get that []byte from somewhere. This package is
// the answer for hosted builds: it wraps the platform's anonymous
// mapping call so a caller can grow the heap by whole pages instead of
// carving regions out of a fixed static array.
package rawmem
