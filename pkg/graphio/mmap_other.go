//go:build !unix

package graphio

import (
	"fmt"
	"os"
)

// writeMapped fills an in-memory buffer and writes it in one call on
// platforms without mmap support.
func writeMapped(path string, size int, fill func([]byte) error) error {
	data := make([]byte, size)
	if err := fill(data); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
