// Header codec for the INDEX file.
//
// The header is a fixed 18 bytes at offset 0 of INDEX:
//
//	 0 -  4   magic "CRAW"
//	 4 -  5   version (uint8, currently 1)
//	 5 -  9   nkey (uint32 LE)
//	 9 - 17   nsorted (uint64 LE)
//	17 - 18   dead (uint8)
//
// This layout, including the field order and the "CRAW" magic, is fixed by
// the on-disk format this engine reads and writes: existing index files
// must remain readable, so the encoding here is plain little-endian binary
// rather than the teacher's JSON header — there is nothing to parse, and
// nothing to pad.
package crawdb

import (
	"encoding/binary"
	"os"
)

// HeaderSize is the fixed size of the INDEX header in bytes.
const HeaderSize = 18

const (
	offMagic   = 0
	offVersion = 4
	offNKey    = 5
	offNSorted = 9
	offDead    = 17
)

var magic = [4]byte{'C', 'R', 'A', 'W'}

// CurrentVersion is the only header version this engine writes or accepts.
const CurrentVersion = 1

// MaxNKey bounds the key length accepted at New and Open, guarding against a
// corrupt or adversarial header making nrec (and therefore ntotal) behave
// nonsensically. The format itself allows any uint32 nkey; this ceiling is
// this implementation's answer to spec Open Question (c).
const MaxNKey = 1 << 20

// header holds the decoded fields of the INDEX header plus derived state
// cached from the file size.
type header struct {
	Version   uint8
	NKey      uint32
	NSorted   uint64
	Dead      uint8
	idxSize   int64
	nrec      int64
	nTotal    uint64
	nUnsorted uint64
}

// nrecOf returns the byte size of one index record for the given key length.
func nrecOf(nkey uint32) int64 {
	return int64(nkey) + 8 + 4 + 2
}

// encodeHeader serializes fresh header fields (nsorted=0, dead=0) to
// exactly HeaderSize bytes.
func encodeHeader(nkey uint32) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[offMagic:], magic[:])
	buf[offVersion] = CurrentVersion
	binary.LittleEndian.PutUint32(buf[offNKey:], nkey)
	binary.LittleEndian.PutUint64(buf[offNSorted:], 0)
	buf[offDead] = 0
	return buf
}

// readHeader reads and validates the 18-byte header from f, then derives
// ntotal/nunsorted from the file's current size.
func readHeader(f *os.File, site string) (*header, *Error) {
	buf := make([]byte, HeaderSize)
	n, err := f.ReadAt(buf, 0)
	if err != nil || n != HeaderSize {
		if err == nil {
			err = errShortRead
		}
		return nil, newErrPath(CodeOpenIO, site+":read-header", f.Name(), err)
	}

	if buf[offMagic] != magic[0] || buf[offMagic+1] != magic[1] ||
		buf[offMagic+2] != magic[2] || buf[offMagic+3] != magic[3] {
		return nil, newErrPath(CodeOpenBadHeader, site, f.Name(), nil)
	}

	vers := buf[offVersion]
	if vers != CurrentVersion {
		return nil, newErrPath(CodeOpenBadVers, site, f.Name(), nil)
	}

	nkey := binary.LittleEndian.Uint32(buf[offNKey:])
	if nkey < 1 || nkey > MaxNKey {
		return nil, newErrPath(CodeOpenBadNKey, site, f.Name(), nil)
	}

	h := &header{
		Version: vers,
		NKey:    nkey,
		NSorted: binary.LittleEndian.Uint64(buf[offNSorted:]),
		Dead:    buf[offDead],
		nrec:    nrecOf(nkey),
	}

	info, err := f.Stat()
	if err != nil {
		return nil, newErrPath(CodeOpenIO, site+":stat", f.Name(), err)
	}
	if cerr := h.setIdxSize(info.Size()); cerr != nil {
		cerr.Path = f.Name()
		return nil, cerr
	}
	return h, nil
}

// setIdxSize validates the §3 invariant (idxSize-18) mod nrec == 0 and
// nsorted <= ntotal, then derives ntotal/nunsorted.
func (h *header) setIdxSize(idxSize int64) *Error {
	if (idxSize-HeaderSize)%h.nrec != 0 {
		return newErr(CodeBadIdxSize, "set-idx-size", nil)
	}
	ntotal := uint64((idxSize - HeaderSize) / h.nrec)
	if h.NSorted > ntotal {
		return newErr(CodeBadNSorted, "set-idx-size", nil)
	}
	h.idxSize = idxSize
	h.nTotal = ntotal
	h.nUnsorted = ntotal - h.NSorted
	return nil
}

var errShortRead = shortReadError{}

type shortReadError struct{}

func (shortReadError) Error() string { return "short read" }
