// Writer protocol: append a value to DATA, then an index record to
// INDEX, under the single exclusive advisory lock.
//
// Order matters for crash safety: DATA is written before INDEX so that a
// crash between the two writes leaves an orphaned value in DATA (wasted
// space that nothing reclaims; Reindex rewrites only INDEX) rather than
// an INDEX record pointing past the end of DATA.
package crawdb

import "encoding/binary"

// Set appends val for key, returning once both DATA and INDEX have been
// durably appended (subject to Config.SyncWrites). Set rejects key
// lengths outside [1, NKey()]; it never reads or rewrites an existing
// value for the same key — Get returns the most recently appended value
// for a key because the reverse linear scan over the unsorted tail sees
// newer records first.
func (h *Handle) Set(key, val []byte) error {
	nkey := h.hdr.NKey
	if len(key) < 1 || uint32(len(key)) > nkey {
		return newErr(CodeSetBadKey, "set", nil)
	}

	sum := cksum(val)

	if cap(h.rec) < int(h.hdr.nrec) {
		h.rec = make([]byte, h.hdr.nrec)
	}
	buf := h.rec[:h.hdr.nrec]
	encodeRecord(buf, nkey, key, 0, uint32(len(val)), sum)

	if err := h.lockAndLog("set"); err != nil {
		return err
	}
	defer h.unlockAndLog("set")

	dead, err := h.readDeadFlag()
	if err != nil {
		return newErrPath(CodeSetIO, "set:read-dead", h.idxPath, err)
	}
	if dead != 0 {
		return newErrPath(CodeSetIdxDead, "set", h.idxPath, nil)
	}

	offset, err := h.appendValue(val)
	if err != nil {
		return newErrPath(CodeSetIO, "set:write-dat", h.datPath, err)
	}
	binary.LittleEndian.PutUint64(buf[nkey:], uint64(offset))

	if err := h.appendRecord(buf); err != nil {
		return newErrPath(CodeSetIO, "set:write-idx", h.idxPath, err)
	}

	h.hdr.nTotal++
	h.hdr.nUnsorted++
	h.hdr.idxSize += h.hdr.nrec
	if h.bloom != nil {
		h.bloom.add(buf[:nkey])
	}

	h.log.Debugw("set", "key_len", len(key), "val_len", len(val), "offset", offset)
	return nil
}
