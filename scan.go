// Sorted-prefix binary search and unsorted-tail reverse linear search.
//
// Ported from the teacher's scan()/sparse() pair (binary search over a
// sorted region, linear scan over an unsorted one) but operating on
// fixed-width binary records via pread at computed offsets instead of
// newline-delimited JSON lines.
package crawdb

// bsearch searches the nsorted-record sorted prefix for key (already
// padded to NKey bytes). It returns the last matching record: Reindex
// sorts stably, so among equal keys the last one is the newest write.
func (h *Handle) bsearch(key []byte) (record, bool, error) {
	nsorted := h.hdr.NSorted
	if nsorted == 0 {
		return record{}, false, nil
	}

	var start, end int64 = 0, int64(nsorted) - 1
	last := int64(-1) // last position whose key is <= key
	for end >= start {
		mid := (start + end) / 2
		rec, err := h.readRecordAt(uint64(mid))
		if err != nil {
			return record{}, false, err
		}
		if keyLess(key, rec.Key) {
			end = mid - 1
		} else {
			last = mid
			start = mid + 1
		}
	}
	if last < 0 {
		return record{}, false, nil
	}
	rec, err := h.readRecordAt(uint64(last))
	if err != nil {
		return record{}, false, err
	}
	if !keyEqual(rec.Key, key) {
		return record{}, false, nil
	}
	return rec, true, nil
}

// lsearch reverse-scans the nunsorted-record unsorted tail for key, so
// the newest write for a duplicated key wins. Mirrors crawdb.c's
// _crawdb_get_lsearch, which guards nunsorted == 0 implicitly (its `end`
// is unsigned and the loop never starts when end underflows to wrap
// around, by virtue of the caller only invoking it when nunsorted > 0).
// Go has no unsigned-underflow idiom to lean on safely, so nunsorted ==
// 0 is checked explicitly here (spec Open Question (a)).
func (h *Handle) lsearch(key []byte) (record, bool, error) {
	nunsorted := h.hdr.nUnsorted
	if nunsorted == 0 {
		return record{}, false, nil
	}

	nsorted := h.hdr.NSorted
	for look := int64(nunsorted) - 1; look >= 0; look-- {
		rec, err := h.readRecordAt(nsorted + uint64(look))
		if err != nil {
			return record{}, false, err
		}
		if keyEqual(rec.Key, key) {
			return rec, true, nil
		}
	}
	return record{}, false, nil
}
