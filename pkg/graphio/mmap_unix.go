//go:build unix

package graphio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// writeMapped creates path with the given size, maps it and lets fill
// write the contents in place.
func writeMapped(path string, size int, fill func([]byte) error) (err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := f.Truncate(int64(size)); err != nil {
		return fmt.Errorf("truncate %s: %w", path, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer func() {
		if uerr := unix.Munmap(data); err == nil && uerr != nil {
			err = fmt.Errorf("munmap %s: %w", path, uerr)
		}
	}()

	if err := fill(data); err != nil {
		return err
	}
	if err := unix.Msync(data, unix.MS_SYNC); err != nil {
		return fmt.Errorf("msync %s: %w", path, err)
	}
	return nil
}
