//go:build !unix

package gdsii

import "os"

// hintSequentialReadAhead is a no-op on non-unix platforms.
func hintSequentialReadAhead(f *os.File) {}
