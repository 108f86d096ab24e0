// Handle type and lifecycle: new, open, reload, free.
//
// A Handle pairs one INDEX file descriptor with one DATA file descriptor.
// Both are opened O_APPEND except during re-indexing (from the copy
// phase until the swap reloads them), matching the teacher's single-struct-plus-lifecycle-functions
// shape (DB/Open/Close in db.go) generalized to the two-file, binary
// on-disk layout this store uses instead of one JSON-lines file.
package crawdb

import (
	"os"

	"go.uber.org/zap"
)

// Handle represents an open crawdb database: one INDEX file paired with
// one DATA file. A Handle is not safe for concurrent use by multiple
// goroutines without external synchronization beyond what Set itself
// performs (the OS advisory lock serializes writers across processes,
// not goroutines within one).
type Handle struct {
	idxPath string
	datPath string

	idx *os.File
	dat *os.File

	lock *fileLock

	hdr *header

	rec []byte // scratch index-record buffer, reused across Set/Get

	valBuf []byte // scratch DATA-value buffer, sized by Config.ReadBuffer, reused by Verify/Dump

	bloom *keyBloom

	config Config
	log    *zap.SugaredLogger
}

// New creates a fresh database at idxPath/datPath with the given fixed
// key length, truncating any existing files at those paths.
func New(idxPath, datPath string, nkey uint32, config Config) (*Handle, error) {
	config.setDefaults()
	if nkey < 1 || nkey > MaxNKey {
		return nil, newErrPath(CodeOpenBadNKey, "new", idxPath, nil)
	}
	return open(true, false, nil, idxPath, datPath, nkey, config)
}

// Open opens an existing database at idxPath/datPath.
func Open(idxPath, datPath string, config Config) (*Handle, error) {
	config.setDefaults()
	return open(false, false, nil, idxPath, datPath, 0, config)
}

// Reload re-opens h's underlying files in place, picking up a header
// written by another process (e.g. after that process ran Reindex).
// Existing cached state (bloom filter, scratch buffers) is rebuilt.
func (h *Handle) Reload() error {
	_, err := open(false, false, h, h.idxPath, h.datPath, 0, h.config)
	return err
}

// Free releases h's file descriptors. h must not be used afterward.
func (h *Handle) Free() error {
	h.lock.setFile(nil)
	var firstErr error
	if h.idx != nil {
		if err := h.idx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if h.dat != nil {
		if err := h.dat.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NKey returns the fixed key length this database was created with.
func (h *Handle) NKey() uint32 { return h.hdr.NKey }

// NTotal returns the total number of index records (sorted + unsorted).
func (h *Handle) NTotal() uint64 { return h.hdr.nTotal }

// NSorted returns the number of index records in the sorted prefix.
func (h *Handle) NSorted() uint64 { return h.hdr.NSorted }

// NUnsorted returns the number of index records in the unsorted tail.
func (h *Handle) NUnsorted() uint64 { return h.hdr.nUnsorted }

// open implements new/open/reload/reindex's reload-without-append. When
// reload is non-nil its file descriptors are replaced in place and it is
// returned; otherwise a fresh Handle is allocated.
func open(isNew, forIndex bool, reload *Handle, idxPath, datPath string, nkey uint32, config Config) (*Handle, error) {
	flags := os.O_RDWR | os.O_CREATE
	if isNew {
		flags |= os.O_TRUNC
	}
	if !forIndex {
		flags |= os.O_APPEND
	}

	idxf, err := os.OpenFile(idxPath, flags, 0644)
	if err != nil {
		return nil, newErrPath(CodeOpenIO, "open:idx", idxPath, err)
	}
	datf, err := os.OpenFile(datPath, flags, 0644)
	if err != nil {
		idxf.Close()
		return nil, newErrPath(CodeOpenIO, "open:dat", datPath, err)
	}

	var hdr *header
	if isNew {
		buf := encodeHeader(nkey)
		if _, err := idxf.Write(buf); err != nil {
			idxf.Close()
			datf.Close()
			return nil, newErrPath(CodeOpenIO, "open:write-header", idxPath, err)
		}
		hdr = &header{Version: CurrentVersion, NKey: nkey, nrec: nrecOf(nkey)}
		if cerr := hdr.setIdxSize(HeaderSize); cerr != nil {
			idxf.Close()
			datf.Close()
			return nil, cerr
		}
	} else {
		h, cerr := readHeader(idxf, "open")
		if cerr != nil {
			idxf.Close()
			datf.Close()
			return nil, cerr
		}
		hdr = h
	}

	if config.MaxNTotal > 0 && hdr.nTotal > config.MaxNTotal {
		idxf.Close()
		datf.Close()
		return nil, newErrPath(CodeOpenBadNTotal, "open", idxPath, nil)
	}

	var h *Handle
	if reload != nil {
		h = reload
		if h.idx != nil {
			h.idx.Close()
		}
		if h.dat != nil {
			h.dat.Close()
		}
	} else {
		h = &Handle{idxPath: idxPath, datPath: datPath, config: config, log: config.logger()}
	}

	h.idx = idxf
	h.dat = datf
	h.hdr = hdr
	h.config = config
	if h.log == nil {
		h.log = config.logger()
	}
	if h.lock == nil {
		h.lock = &fileLock{}
	}
	h.lock.setFile(idxf)
	if cap(h.rec) < int(hdr.nrec) {
		h.rec = make([]byte, hdr.nrec)
	}
	if cap(h.valBuf) < config.ReadBuffer {
		h.valBuf = make([]byte, config.ReadBuffer)
	}

	if config.BloomFilter && !forIndex {
		bf, berr := buildBloom(h)
		if berr != nil {
			idxf.Close()
			datf.Close()
			return nil, berr
		}
		h.bloom = bf
	} else if !forIndex {
		h.bloom = nil
	}

	h.log.Debugw("opened crawdb handle", "idx", idxPath, "dat", datPath, "ntotal", hdr.nTotal, "nsorted", hdr.NSorted)
	return h, nil
}
