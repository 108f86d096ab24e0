// Low-level pread-based primitives for fixed-width record access.
//
// Unlike the teacher's newline-delimited line/align scanners, every
// crawdb record is a known, fixed width — nrec for an index record, the
// record's own Len field for a DATA value — so reads here are single
// pread calls at a computed offset rather than buffered scans to a
// delimiter.
package crawdb

import (
	"io"
	"os"
)

// readRecordAt reads the index record at logical position i (0-based,
// counting from the first record after the header) into h.rec and
// returns it decoded.
func (h *Handle) readRecordAt(i uint64) (record, error) {
	off := HeaderSize + int64(i)*h.hdr.nrec
	n, err := h.idx.ReadAt(h.rec[:h.hdr.nrec], off)
	if err != nil && err != io.EOF {
		return record{}, err
	}
	if int64(n) != h.hdr.nrec {
		return record{}, errShortRead
	}
	return decodeRecord(h.rec[:h.hdr.nrec], h.hdr.NKey), nil
}

// readValue reads exactly length bytes from DATA at offset into a
// freshly allocated buffer the caller owns. Used by Get, whose returned
// value must stay valid after the call returns.
func readValue(f *os.File, offset int64, length uint32) ([]byte, error) {
	buf := make([]byte, length)
	if _, err := readValueInto(f, buf, offset, length); err != nil {
		return nil, err
	}
	return buf, nil
}

// readValueInto reads exactly length bytes from DATA at offset into buf,
// growing buf when its capacity is too small, and returns buf[:length].
// Used by scans over many records (Verify, Dump) that only need each
// value transiently, so the same backing array can be reused across
// iterations instead of allocating one slice per record.
func readValueInto(f *os.File, buf []byte, offset int64, length uint32) ([]byte, error) {
	if uint32(cap(buf)) < length {
		buf = make([]byte, length)
	}
	buf = buf[:length]
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if uint32(n) != length {
		return nil, errShortRead
	}
	return buf, nil
}
