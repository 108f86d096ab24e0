// Verify tests: a clean database reports zero bad records; a value
// corrupted after the fact is named in the result, matching Get's own
// checksum check but across the whole file instead of one lookup.
package crawdb

import (
	"os"
	"testing"
)

func TestVerifyCleanDatabase(t *testing.T) {
	h := newTestHandle(t, 8)
	for _, k := range []string{"a", "b", "c"} {
		if err := h.Set([]byte(k), []byte("val-"+k)); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}

	checked, bad, err := h.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if checked != 3 {
		t.Errorf("checked = %d, want 3", checked)
	}
	if len(bad) != 0 {
		t.Errorf("bad = %v, want none", bad)
	}
}

func TestVerifyReportsCorruptedRecord(t *testing.T) {
	h := newTestHandle(t, 8)
	if err := h.Set([]byte("good"), []byte("untouched")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := h.Set([]byte("bad"), []byte("will-be-corrupted")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Corrupt only the second value's DATA bytes, through a separate fd
	// since h.dat is O_APPEND and WriteAt refuses such files.
	rec, found, err := h.lsearch(padKey(nil, []byte("bad"), 8))
	if err != nil || !found {
		t.Fatalf("lsearch(bad): found=%v err=%v", found, err)
	}
	f, err := os.OpenFile(h.datPath, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open dat: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteAt([]byte("X"), int64(rec.Offset)); err != nil {
		t.Fatalf("corrupt dat: %v", err)
	}

	checked, bad, err := h.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if checked != 2 {
		t.Errorf("checked = %d, want 2", checked)
	}
	if len(bad) != 1 {
		t.Fatalf("bad = %v, want exactly one bad record", bad)
	}
	if !keyEqual(bad[0].Key, []byte("bad")) {
		t.Errorf("bad record key = %q, want %q", bad[0].Key, "bad")
	}
}

// TestVerifyGrowsScratchBufferPastReadBuffer exercises the ReadBuffer
// scratch path with values both smaller and larger than the configured
// buffer, since Verify must reuse the buffer for small reads but still
// grow it correctly rather than truncating an oversized value.
func TestVerifyGrowsScratchBufferPastReadBuffer(t *testing.T) {
	h := newTestHandleWithConfig(t, 8, Config{ReadBuffer: 4})

	small := []byte("v")
	large := make([]byte, 64)
	for i := range large {
		large[i] = byte('a' + i%26)
	}

	if err := h.Set([]byte("small"), small); err != nil {
		t.Fatalf("Set(small): %v", err)
	}
	if err := h.Set([]byte("large"), large); err != nil {
		t.Fatalf("Set(large): %v", err)
	}

	checked, bad, err := h.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if checked != 2 {
		t.Errorf("checked = %d, want 2", checked)
	}
	if len(bad) != 0 {
		t.Errorf("bad = %v, want none", bad)
	}

	got, err := h.Get([]byte("large"))
	if err != nil {
		t.Fatalf("Get(large): %v", err)
	}
	if string(got) != string(large) {
		t.Errorf("Get(large) = %q, want %q", got, large)
	}
}
