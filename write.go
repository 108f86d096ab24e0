// Low-level append and patch primitives.
//
// Both the INDEX and DATA file descriptors are opened O_APPEND outside
// of re-indexing, so a plain Write always lands at the current end of
// file — there is no tail bookkeeping to maintain the way the teacher's
// raw()/append() do, since the kernel already serializes the offset.
package crawdb

import (
	"encoding/binary"
	"os"
)

// appendValue writes val to the end of the DATA file and returns the
// offset it was written at.
func (h *Handle) appendValue(val []byte) (int64, error) {
	offset, err := h.dat.Seek(0, 2)
	if err != nil {
		return 0, err
	}
	n, err := h.dat.Write(val)
	if err != nil {
		return 0, err
	}
	if n != len(val) {
		return 0, errShortRead
	}
	if h.config.SyncWrites {
		if err := h.dat.Sync(); err != nil {
			return 0, err
		}
	}
	return offset, nil
}

// appendRecord writes buf (an already-encoded nrec-byte index record) to
// the end of the INDEX file.
func (h *Handle) appendRecord(buf []byte) error {
	n, err := h.idx.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return errShortRead
	}
	if h.config.SyncWrites {
		return h.idx.Sync()
	}
	return nil
}

// readDeadFlag reads the single dead byte at its fixed header offset.
func (h *Handle) readDeadFlag() (byte, error) {
	var buf [1]byte
	n, err := h.idx.ReadAt(buf[:], offDead)
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, errShortRead
	}
	return buf[0], nil
}

// writeDeadFlag patches the dead byte in place with WriteAt, which
// os.File refuses on an O_APPEND fd: h.idx must be the non-append fd
// the re-indexer opens.
func (h *Handle) writeDeadFlag(dead byte) error {
	_, err := h.idx.WriteAt([]byte{dead}, offDead)
	return err
}

// writeUint64At patches an 8-byte little-endian field at a fixed offset;
// f must not be opened O_APPEND. Used by the re-indexer to stamp
// nsorted into the freshly sorted replacement file.
func writeUint64At(f *os.File, off int64, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := f.WriteAt(buf[:], off)
	return err
}
