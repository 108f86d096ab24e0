// In-memory bloom filter over unsorted-tail keys.
//
// Consulted only before the reverse linear scan (the sorted prefix is
// always binary-searched directly): on a large unsorted tail between
// Reindex runs, a bloom filter turns most misses into an O(1) check
// instead of an O(nunsorted) scan. Built once at Open/Reload from the
// current unsorted tail, then kept live by Set; Reindex rebuilds it
// from the new INDEX's unsorted tail (the records appended during the
// sort phase, often none).
package crawdb

import (
	"github.com/bits-and-blooms/bloom/v3"
)

// keyBloom wraps bloom.BloomFilter, sized from the unsorted tail's
// current length at construction time. Grounded on the estimate-based
// constructor FlashLog's SST writer uses for its own on-disk bloom
// filter (bloom.NewWithEstimates), here kept purely in memory since
// crawdb's bloom filter is a lookup accelerator, not a persisted index
// structure.
type keyBloom struct {
	f *bloom.BloomFilter
}

const bloomFalsePositiveRate = 0.01

func newKeyBloom(estimatedKeys uint64) *keyBloom {
	if estimatedKeys < 1 {
		estimatedKeys = 1
	}
	return &keyBloom{f: bloom.NewWithEstimates(estimatedKeys, bloomFalsePositiveRate)}
}

func (b *keyBloom) add(key []byte) {
	if b == nil {
		return
	}
	b.f.Add(key)
}

// mightContain returns false only when key is definitely absent from the
// unsorted tail; true means "maybe present, go scan".
func (b *keyBloom) mightContain(key []byte) bool {
	if b == nil {
		return true
	}
	return b.f.Test(key)
}

// buildBloom scans h's current unsorted tail and returns a populated
// filter. An empty tail still yields a (minimally sized) non-nil filter,
// so Set can add to it.
func buildBloom(h *Handle) (*keyBloom, error) {
	nunsorted := h.hdr.nUnsorted
	b := newKeyBloom(nunsorted)
	nsorted := h.hdr.NSorted
	for i := uint64(0); i < nunsorted; i++ {
		rec, err := h.readRecordAt(nsorted + i)
		if err != nil {
			return nil, newErrPath(CodeOpenIO, "open:build-bloom", h.idxPath, err)
		}
		key := make([]byte, len(rec.Key))
		copy(key, rec.Key)
		b.add(key)
	}
	return b, nil
}
