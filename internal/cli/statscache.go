package cli

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/natefinch/atomic"
)

// statsSnapshot is what `crawdb stats` reports and caches alongside the
// INDEX file, so a monitoring script can read the sidecar instead of
// opening the store itself.
type statsSnapshot struct {
	NKey        uint32 `json:"nkey"`
	NTotal      uint64 `json:"ntotal"`
	NSorted     uint64 `json:"nsorted"`
	NUnsorted   uint64 `json:"nunsorted"`
	Digest      string `json:"digest"`
	Fingerprint string `json:"fingerprint"`
}

// writeStatsCache atomically replaces idxPath+".stats.json" with snap's
// JSON encoding. Atomic replacement (write-to-temp, rename) means a
// concurrent reader of the sidecar never observes a half-written file,
// independent of crawdb's own INDEX/DATA swap.
func writeStatsCache(idxPath string, snap statsSnapshot) error {
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats cache: %w", err)
	}
	if err := atomic.WriteFile(idxPath+".stats.json", bytes.NewReader(body)); err != nil {
		return fmt.Errorf("write stats cache: %w", err)
	}
	return nil
}
