//go:build linux || freebsd || darwin

package rawmem

import "golang.org/x/sys/unix"

// acquire maps anonymous, private, read-write memory via mmap.
func acquire(length int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func release(b []byte) error {
	return unix.Munmap(b)
}
