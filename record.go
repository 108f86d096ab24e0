// Index record codec.
//
// Every INDEX record is fixed-width: nkey bytes of zero-padded key,
// followed by an 8-byte little-endian data offset, a 4-byte little-endian
// value length, and a 2-byte value checksum. nrec = nkey + 14.
//
// Unlike the teacher's JSON lines (one shared line format tagged by an
// "idx" field), crawdb's INDEX holds only this one record shape; the DATA
// file holds nothing but raw value bytes at the offsets these records
// point to.
package crawdb

import "encoding/binary"

// record is a decoded index record.
type record struct {
	Key    []byte
	Offset uint64
	Len    uint32
	Cksum  uint16
}

// encodeRecord writes key (zero-padded/truncated to nkey), offset, length
// and checksum into buf, which must be at least nrec bytes.
func encodeRecord(buf []byte, nkey uint32, key []byte, offset uint64, length uint32, cksum uint16) {
	clear(buf[:nkey])
	copy(buf[:nkey], key)
	binary.LittleEndian.PutUint64(buf[nkey:], offset)
	binary.LittleEndian.PutUint32(buf[nkey+8:], length)
	binary.LittleEndian.PutUint16(buf[nkey+12:], cksum)
}

// decodeRecord parses a raw nrec-byte record for a database with the
// given nkey.
func decodeRecord(buf []byte, nkey uint32) record {
	return record{
		Key:    buf[:nkey],
		Offset: binary.LittleEndian.Uint64(buf[nkey:]),
		Len:    binary.LittleEndian.Uint32(buf[nkey+8:]),
		Cksum:  binary.LittleEndian.Uint16(buf[nkey+12:]),
	}
}

// padKey right-pads key with NULs to nkey bytes, reusing dst if it has
// enough capacity. The caller-supplied key must already satisfy
// 1 <= len(key) <= nkey; padKey does not validate.
func padKey(dst, key []byte, nkey uint32) []byte {
	if cap(dst) < int(nkey) {
		dst = make([]byte, nkey)
	} else {
		dst = dst[:nkey]
		clear(dst)
	}
	copy(dst, key)
	return dst
}

// keyEqual compares a padded on-disk key against a raw lookup key,
// treating the on-disk key's trailing NUL padding as outside the
// comparison value.
func keyEqual(padded, key []byte) bool {
	if len(key) > len(padded) {
		return false
	}
	if !bytesEqual(padded[:len(key)], key) {
		return false
	}
	for _, b := range padded[len(key):] {
		if b != 0 {
			return false
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// keyLess orders two padded keys byte-wise, matching the memcmp-based
// comparator the sorted prefix is built with.
func keyLess(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
