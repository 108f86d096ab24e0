// Dump/Restore: a compressed logical snapshot, layered entirely on top
// of the public Get/Set/record-iteration surface.
//
// This is a backup path, not a replacement for the raw INDEX/DATA
// format: Dump walks every current key/value pair (unsorted tail then
// sorted prefix, both newest-first, skipping a key already emitted)
// and writes a zstd-compressed stream of length-prefixed key/value
// pairs behind a small JSON manifest, grounded on the teacher's
// zstd-for-history usage (compress.go) generalized from "one document's
// content" to "this whole database's current key space".
package crawdb

import (
	"encoding/binary"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// snapshotManifest precedes the compressed record stream so Restore can
// validate it is reading a dump produced for a compatible key length.
type snapshotManifest struct {
	Version int    `json:"version"`
	NKey    uint32 `json:"nkey"`
	NTotal  uint64 `json:"ntotal"`
}

const snapshotVersion = 1

// Dump writes every key/value pair currently reachable via Get to w, as
// a JSON manifest line followed by a zstd-compressed stream of
// length-prefixed records. Dump does not lock: it reflects whatever
// snapshot h was opened/reloaded with.
func (h *Handle) Dump(w io.Writer) error {
	manifest, err := json.Marshal(snapshotManifest{
		Version: snapshotVersion,
		NKey:    h.hdr.NKey,
		NTotal:  h.hdr.nTotal,
	})
	if err != nil {
		return newErr(CodeOpenIO, "dump:marshal-manifest", err)
	}
	if _, err := w.Write(append(manifest, '\n')); err != nil {
		return newErr(CodeOpenIO, "dump:write-manifest", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return newErr(CodeOpenIO, "dump:new-encoder", err)
	}
	defer enc.Close()

	seen := make(map[string]struct{}, h.hdr.nTotal)

	writeRec := func(rec record) error {
		k := string(rec.Key)
		if _, dup := seen[k]; dup {
			return nil
		}
		seen[k] = struct{}{}

		val, err := readValueInto(h.dat, h.valBuf, int64(rec.Offset), rec.Len)
		if err != nil {
			return newErrPath(CodeGetDataRead, "dump:read-dat", h.datPath, err)
		}
		h.valBuf = val
		if cksum(val) != rec.Cksum {
			return newErrPath(CodeGetDataCksum, "dump:cksum", h.datPath, nil)
		}
		return writeSnapshotRecord(enc, rec.Key, val)
	}

	// Unsorted tail first (newest write wins via seen-dedup), then the
	// sorted prefix back to front (equal keys keep write order there, so
	// the last one is the newest) for anything not already emitted.
	nunsorted := h.hdr.nUnsorted
	nsorted := h.hdr.NSorted
	for look := int64(nunsorted) - 1; look >= 0; look-- {
		rec, rerr := h.readRecordAt(nsorted + uint64(look))
		if rerr != nil {
			return newErrPath(CodeGetIO, "dump:read-unsorted", h.idxPath, rerr)
		}
		if err := writeRec(rec); err != nil {
			return err
		}
	}
	for i := int64(nsorted) - 1; i >= 0; i-- {
		rec, rerr := h.readRecordAt(uint64(i))
		if rerr != nil {
			return newErrPath(CodeGetIO, "dump:read-sorted", h.idxPath, rerr)
		}
		if err := writeRec(rec); err != nil {
			return err
		}
	}

	return nil
}

func writeSnapshotRecord(w io.Writer, key, val []byte) error {
	var lens [8]byte
	binary.LittleEndian.PutUint32(lens[0:4], uint32(len(key)))
	binary.LittleEndian.PutUint32(lens[4:8], uint32(len(val)))
	if _, err := w.Write(lens[:]); err != nil {
		return err
	}
	if _, err := w.Write(key); err != nil {
		return err
	}
	if _, err := w.Write(val); err != nil {
		return err
	}
	return nil
}

// Restore reads a stream written by Dump and Sets every key/value pair
// into h. The manifest's NKey must match h.NKey(); mismatched dumps are
// rejected rather than silently truncating or padding keys.
func (h *Handle) Restore(r io.Reader) (uint64, error) {
	br := &lineReader{r: r}
	manifestLine, err := br.readLine()
	if err != nil {
		return 0, newErr(CodeOpenIO, "restore:read-manifest", err)
	}

	var manifest snapshotManifest
	if err := json.Unmarshal(manifestLine, &manifest); err != nil {
		return 0, newErr(CodeOpenBadHeader, "restore:unmarshal-manifest", err)
	}
	if manifest.NKey != h.hdr.NKey {
		return 0, newErr(CodeOpenBadNKey, "restore:nkey-mismatch", nil)
	}

	dec, err := zstd.NewReader(br)
	if err != nil {
		return 0, newErr(CodeOpenIO, "restore:new-decoder", err)
	}
	defer dec.Close()

	var n uint64
	for {
		var lens [8]byte
		if _, err := io.ReadFull(dec, lens[:]); err != nil {
			if err == io.EOF {
				break
			}
			return n, newErr(CodeGetIO, "restore:read-lens", err)
		}
		klen := binary.LittleEndian.Uint32(lens[0:4])
		vlen := binary.LittleEndian.Uint32(lens[4:8])

		key := make([]byte, klen)
		if _, err := io.ReadFull(dec, key); err != nil {
			return n, newErr(CodeGetIO, "restore:read-key", err)
		}
		val := make([]byte, vlen)
		if _, err := io.ReadFull(dec, val); err != nil {
			return n, newErr(CodeGetIO, "restore:read-val", err)
		}

		if err := h.Set(key, val); err != nil {
			return n, fmt.Errorf("restore: set %d: %w", n, err)
		}
		n++
	}

	return n, nil
}

// lineReader reads a single newline-terminated line, then exposes the
// remainder of the underlying reader unbuffered — needed because the
// zstd frame starts immediately after the manifest's newline and must
// not be consumed by a buffered line scanner.
type lineReader struct {
	r   io.Reader
	buf []byte
}

func (l *lineReader) readLine() ([]byte, error) {
	var b [1]byte
	for {
		n, err := l.r.Read(b[:])
		if n == 1 {
			if b[0] == '\n' {
				return l.buf, nil
			}
			l.buf = append(l.buf, b[0])
		}
		if err != nil {
			if err == io.EOF && len(l.buf) > 0 {
				return l.buf, nil
			}
			return nil, err
		}
	}
}

func (l *lineReader) Read(p []byte) (int, error) {
	return l.r.Read(p)
}
