//go:build linux

// copy_file_range(2)-backed bulk copy for the re-indexer, matching
// crawdb.c's _crawdb_index_copy/_crawdb_index_swap verbatim (both call
// copy_file_range for their bulk record copies).
package crawdb

import (
	"os"

	"golang.org/x/sys/unix"
)

// copyFileRangeAt copies n bytes from src at srcOff to dst at dstOff,
// looping until the kernel has moved the whole range (copy_file_range
// may do partial copies).
func copyFileRangeAt(src, dst *os.File, srcOff, dstOff, n int64) error {
	for n > 0 {
		so, doo := srcOff, dstOff
		written, err := unix.CopyFileRange(int(src.Fd()), &so, int(dst.Fd()), &doo, int(n), 0)
		if err != nil {
			return err
		}
		if written == 0 {
			return errShortRead
		}
		srcOff += int64(written)
		dstOff += int64(written)
		n -= int64(written)
	}
	return nil
}
