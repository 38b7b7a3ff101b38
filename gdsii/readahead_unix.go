//go:build unix

package gdsii

import (
	"os"

	"golang.org/x/sys/unix"
)

// hintSequentialReadAhead advises the kernel that f will be read
// sequentially start-to-end, a pure performance hint for large legacy
// libraries streamed off disk. Errors are ignored: this is best-effort and
// never affects correctness.
func hintSequentialReadAhead(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
