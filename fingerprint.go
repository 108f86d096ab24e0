// Fingerprint: a keyed hash over the INDEX header, supplementing the
// dead flag as a swap-detection signal.
//
// The dead flag tells a reader that still has the old INDEX fd open
// that it should Reload; Fingerprint gives an independent, content-keyed
// signal a caller can cache and compare across reloads without trusting
// dead alone — useful when a caller polls rather than reacting to an
// error.
package crawdb

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// fingerprintKey is fixed so that two processes computing a Fingerprint
// for the same INDEX content always agree, without requiring the caller
// to manage a key.
var fingerprintKey = []byte("crawdb-fingerprint-v1")

// Fingerprint returns a keyed blake2b hash of h's current header fields
// (nkey, nsorted, dead), as a lowercase hex string. Two Fingerprint
// calls returning different values mean the header has changed —
// typically because another process ran Reindex — even if the dead
// flag itself hasn't been observed yet.
func (h *Handle) Fingerprint() (string, error) {
	mac, err := blake2b.New256(fingerprintKey)
	if err != nil {
		return "", newErr(CodeOpenIO, "fingerprint:new", err)
	}
	buf := encodeHeader(h.hdr.NKey)
	buf[offDead] = h.hdr.Dead
	binary.LittleEndian.PutUint64(buf[offNSorted:], h.hdr.NSorted)
	mac.Write(buf)
	return fmt.Sprintf("%x", mac.Sum(nil)), nil
}
