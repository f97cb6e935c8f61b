//go:build windows

package rawmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// acquire reserves and commits anonymous, read-write memory via
// VirtualAlloc.
func acquire(length int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(length), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), nil
}

func release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
