// Fingerprint tests: same determinism/change-sensitivity shape as
// Digest, but scoped to the header fields alone, so it reacts to a
// Reindex swap (nsorted/dead change) even without re-hashing every
// record.
package crawdb

import "testing"

func TestFingerprintStableWithoutHeaderChange(t *testing.T) {
	h := newTestHandle(t, 8)
	if err := h.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	a, err := h.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	b, err := h.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if a != b {
		t.Errorf("Fingerprint not stable across calls: %s != %s", a, b)
	}
}

func TestFingerprintChangesAfterReindex(t *testing.T) {
	h := newTestHandle(t, 8)
	if err := h.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	before, err := h.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if err := h.Reindex(); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	after, err := h.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if before == after {
		t.Error("Fingerprint did not change after Reindex changed nsorted")
	}
}
