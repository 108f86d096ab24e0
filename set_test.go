// Writer protocol tests: key length validation, counters advancing on a
// successful append, and the dead-flag guard that stops a writer from
// appending to an INDEX file a concurrent Reindex has already retired.
package crawdb

import "testing"

func TestSetRejectsEmptyKey(t *testing.T) {
	h := newTestHandle(t, 8)
	err := h.Set(nil, []byte("v"))
	if err == nil {
		t.Fatal("expected error for empty key")
	}
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeSetBadKey {
		t.Errorf("err = %v, want CodeSetBadKey", err)
	}
}

func TestSetRejectsOversizedKey(t *testing.T) {
	h := newTestHandle(t, 4)
	err := h.Set([]byte("toolong"), []byte("v"))
	if err == nil {
		t.Fatal("expected error for oversized key")
	}
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeSetBadKey {
		t.Errorf("err = %v, want CodeSetBadKey", err)
	}
}

func TestSetAdvancesCounters(t *testing.T) {
	h := newTestHandle(t, 8)

	for i, kv := range []string{"a", "b", "c"} {
		if err := h.Set([]byte(kv), []byte(kv)); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
		if h.NTotal() != uint64(i+1) {
			t.Errorf("after Set(%d), NTotal() = %d, want %d", i, h.NTotal(), i+1)
		}
		if h.NUnsorted() != uint64(i+1) {
			t.Errorf("after Set(%d), NUnsorted() = %d, want %d", i, h.NUnsorted(), i+1)
		}
	}
}

func TestSetRejectsOnDeadIndex(t *testing.T) {
	h := newTestHandle(t, 8)
	if err := h.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// writeDeadFlag needs a non-O_APPEND fd, as the re-indexer has.
	if err := h.reloadForIndex(); err != nil {
		t.Fatalf("reloadForIndex: %v", err)
	}
	if err := h.writeDeadFlag(1); err != nil {
		t.Fatalf("writeDeadFlag: %v", err)
	}

	err := h.Set([]byte("b"), []byte("2"))
	if err == nil {
		t.Fatal("expected error setting on a dead index")
	}
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeSetIdxDead {
		t.Errorf("err = %v, want CodeSetIdxDead", err)
	}
}

func TestSetAllowsKeyReuseLastWriterWins(t *testing.T) {
	h := newTestHandle(t, 8)
	if err := h.Set([]byte("k"), []byte("first")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := h.Set([]byte("k"), []byte("second")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, err := h.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(val) != "second" {
		t.Errorf("Get(k) = %q, want %q (last write)", val, "second")
	}
	if h.NTotal() != 2 {
		t.Errorf("NTotal() = %d, want 2 (no in-place overwrite)", h.NTotal())
	}
}
