// Re-indexer: copy -> sort -> swap, with a catch-up merge for records
// appended during the unlocked sort phase.
//
// Ported from crawdb.c's crawdb_index/_crawdb_index_copy/_crawdb_index_sort/
// _crawdb_index_swap. Only the copy and swap phases hold the exclusive
// lock; the sort itself runs unlocked so writers can keep appending to
// the live INDEX/DATA while a potentially large sort happens in memory.
package crawdb

import (
	"os"
	"sort"
)

// Reindex copies the current INDEX into a fully sorted replacement,
// swaps it in atomically, and marks the old INDEX dead. Safe to call
// concurrently with Set in another process: any records appended after
// the copy phase are merged onto the end of the new sorted file before
// the rename, so no write is lost.
func (h *Handle) Reindex() error {
	copyFD, copyPath, copiedSize, err := h.indexCopy()
	if err != nil {
		return err
	}

	newPath, newFD, sizeNew, err := h.indexSort(copyPath, copyFD, copiedSize)
	if err != nil {
		return err
	}

	if err := h.indexSwap(newPath, newFD, sizeNew, copiedSize); err != nil {
		return err
	}

	h.log.Infow("reindex complete", "ntotal", h.hdr.nTotal)
	return nil
}

// indexCopy locks, reloads the handle without O_APPEND (so the copy
// sees a stable fd position), and bulk-copies the current INDEX into a
// freshly truncated ".copy" sibling file.
func (h *Handle) indexCopy() (copyFD *os.File, copyPath string, copiedSize int64, err error) {
	if err = h.lockAndLog("index:copy"); err != nil {
		return nil, "", 0, err
	}
	defer h.unlockAndLog("index:copy")

	if rerr := h.reloadForIndex(); rerr != nil {
		return nil, "", 0, rerr
	}

	copiedSize = h.hdr.idxSize
	copyPath = h.idxPath + ".copy"
	copyFD, oerr := os.OpenFile(copyPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if oerr != nil {
		return nil, "", 0, newErrPath(CodeIndexCopy, "index:open-copy", copyPath, oerr)
	}

	if cerr := copyFileRangeAt(h.idx, copyFD, 0, 0, copiedSize); cerr != nil {
		copyFD.Close()
		os.Remove(copyPath)
		return nil, "", 0, newErrPath(CodeIndexCopy, "index:copy-range", h.idxPath, cerr)
	}

	return copyFD, copyPath, copiedSize, nil
}

// indexSort reads the copy's records into memory, stably sorts them by
// key (stable so that when two records share a key, the one written
// later — appearing later in file order — still sorts after the other,
// preserving last-writer-wins through Get's binary search), and writes
// the sorted result to a freshly truncated ".new" sibling file with
// nsorted == ntotal.
func (h *Handle) indexSort(copyPath string, copyFD *os.File, copiedSize int64) (newPath string, newFD *os.File, sizeNew int64, err error) {
	defer func() {
		copyFD.Close()
		os.Remove(copyPath)
	}()

	newPath = h.idxPath + ".new"
	newFD, oerr := os.OpenFile(newPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if oerr != nil {
		return "", nil, 0, newErrPath(CodeIndexSort, "index:open-new", newPath, oerr)
	}

	nrec := h.hdr.nrec
	ntotal := (copiedSize - HeaderSize) / nrec

	buf := make([]byte, copiedSize-HeaderSize)
	if _, rerr := copyFD.ReadAt(buf, HeaderSize); rerr != nil {
		newFD.Close()
		os.Remove(newPath)
		return "", nil, 0, newErrPath(CodeIndexSort, "index:read-copy", copyPath, rerr)
	}

	if cerr := copyFileRangeAt(copyFD, newFD, 0, 0, HeaderSize); cerr != nil {
		newFD.Close()
		os.Remove(newPath)
		return "", nil, 0, newErrPath(CodeIndexSort, "index:copy-header", newPath, cerr)
	}
	if werr := writeUint64At(newFD, offNSorted, uint64(ntotal)); werr != nil {
		newFD.Close()
		os.Remove(newPath)
		return "", nil, 0, newErrPath(CodeIndexSort, "index:write-nsorted", newPath, werr)
	}

	nkey := h.hdr.NKey
	idx := make([]int64, ntotal)
	for i := range idx {
		idx[i] = int64(i)
	}
	recAt := func(i int64) []byte { return buf[i*nrec : i*nrec+nrec] }
	sort.SliceStable(idx, func(a, b int) bool {
		return keyLess(recAt(idx[a])[:nkey], recAt(idx[b])[:nkey])
	})

	sorted := make([]byte, len(buf))
	for dst, src := range idx {
		copy(sorted[int64(dst)*nrec:], recAt(src))
	}
	if _, werr := newFD.WriteAt(sorted, HeaderSize); werr != nil {
		newFD.Close()
		os.Remove(newPath)
		return "", nil, 0, newErrPath(CodeIndexSort, "index:write-sorted", newPath, werr)
	}

	sizeNew, serr := newFD.Seek(0, 2)
	if serr != nil {
		newFD.Close()
		os.Remove(newPath)
		return "", nil, 0, newErrPath(CodeIndexSort, "index:seek-end", newPath, serr)
	}

	return newPath, newFD, sizeNew, nil
}

// indexSwap locks, merges any records appended since copiedSize was
// captured onto the end of the new file, renames the new file over the
// live INDEX path, marks the now-unlinked old fd dead, and reloads h
// with O_APPEND restored.
func (h *Handle) indexSwap(newPath string, newFD *os.File, sizeNew, copiedSize int64) error {
	defer newFD.Close()

	if err := h.lockAndLog("index:swap"); err != nil {
		return err
	}
	defer h.unlockAndLog("index:swap")

	idxSizeAfter, err := h.idx.Seek(0, 2)
	if err != nil {
		return newErrPath(CodeIndexSwap, "index:swap-seek", h.idxPath, err)
	}

	if idxSizeAfter > copiedSize {
		catchup := idxSizeAfter - copiedSize
		if err := copyFileRangeAt(h.idx, newFD, copiedSize, sizeNew, catchup); err != nil {
			return newErrPath(CodeIndexSwap, "index:swap-catchup", h.idxPath, err)
		}
	}

	if err := os.Rename(newPath, h.idxPath); err != nil {
		return newErrPath(CodeIndexSwap, "index:swap-rename", h.idxPath, err)
	}

	if err := h.writeDeadFlag(1); err != nil {
		return newErrPath(CodeIndexSwap, "index:swap-write-dead", h.idxPath, err)
	}

	if err := h.reloadAppend(); err != nil {
		return err
	}

	return nil
}

// reloadForIndex re-opens h without O_APPEND so pread/pwrite offsets
// behave predictably during the copy phase.
func (h *Handle) reloadForIndex() error {
	_, err := open(false, true, h, h.idxPath, h.datPath, 0, h.config)
	return err
}

// reloadAppend re-opens h with O_APPEND restored, picking up the
// just-renamed INDEX file.
func (h *Handle) reloadAppend() error {
	_, err := open(false, false, h, h.idxPath, h.datPath, 0, h.config)
	return err
}
