// Digest: a fast whole-file fingerprint for CLI verify/smoke-test use.
//
// Digest is diagnostic only — it never gates Get or Set, and it is not a
// substitute for the per-value CRC-16 every record already carries. The
// CLI `stats` subcommand reports it so a caller can cheaply answer "did
// this INDEX file change since I last looked" without re-reading every
// record's checksum.
package crawdb

import (
	"fmt"
	"io"

	"github.com/zeebo/xxh3"
)

// Digest returns the xxh3 hash of h's current INDEX file contents, as a
// lowercase hex string.
func (h *Handle) Digest() (string, error) {
	hasher := xxh3.New()
	if _, err := h.idx.Seek(0, 0); err != nil {
		return "", newErrPath(CodeOpenIO, "digest:seek", h.idxPath, err)
	}
	if _, err := io.Copy(hasher, h.idx); err != nil {
		return "", newErrPath(CodeOpenIO, "digest:read", h.idxPath, err)
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
