// Reader protocol: binary search the sorted prefix, then reverse linear
// scan the unsorted tail (a tail hit is newer and takes precedence over
// a sorted-prefix hit), then verify the value's checksum.
//
// Get takes no lock: a reader sees whatever INDEX/DATA contents were
// present at Open/Reload time, per spec.md §4.6 — a concurrent Set in
// another process is invisible until the caller reloads.
package crawdb

// Get looks up key and returns its most recently set value, or nil, nil
// if key has never been set. Get rejects key lengths outside
// [1, NKey()].
func (h *Handle) Get(key []byte) ([]byte, error) {
	nkey := h.hdr.NKey
	if len(key) < 1 || uint32(len(key)) > nkey {
		return nil, newErr(CodeGetBadKey, "get", nil)
	}

	padded := padKey(nil, key, nkey)

	rec, found, err := h.bsearch(padded)
	if err != nil {
		return nil, newErrPath(CodeGetIO, "get:bsearch", h.idxPath, err)
	}

	if h.bloom == nil || h.bloom.mightContain(padded) {
		trec, tfound, terr := h.lsearch(padded)
		if terr != nil {
			return nil, newErrPath(CodeGetIO, "get:lsearch", h.idxPath, terr)
		}
		if tfound {
			rec, found = trec, true
		}
	}

	if !found {
		h.log.Debugw("get miss", "key_len", len(key))
		return nil, nil
	}

	val, err := readValue(h.dat, int64(rec.Offset), rec.Len)
	if err != nil {
		return nil, newErrPath(CodeGetDataRead, "get:read-dat", h.datPath, err)
	}

	if cksum(val) != rec.Cksum {
		return nil, newErrPath(CodeGetDataCksum, "get:cksum", h.datPath, nil)
	}

	h.log.Debugw("get hit", "key_len", len(key), "val_len", len(val), "offset", rec.Offset)
	return val, nil
}
