// Core lifecycle tests.
//
// These exercise New/Open/Reload/Free through their happy paths and the
// nkey/path error conditions every other test relies on not happening
// by accident. If any of these break, nothing built on top of Handle
// can be trusted either.
package crawdb

import (
	"path/filepath"
	"testing"
)

func newTestHandle(t *testing.T, nkey uint32) *Handle {
	t.Helper()
	dir := t.TempDir()
	h, err := New(filepath.Join(dir, "test.idx"), filepath.Join(dir, "test.dat"), nkey, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { h.Free() })
	return h
}

func newTestHandleWithConfig(t *testing.T, nkey uint32, config Config) *Handle {
	t.Helper()
	dir := t.TempDir()
	h, err := New(filepath.Join(dir, "test.idx"), filepath.Join(dir, "test.dat"), nkey, config)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { h.Free() })
	return h
}

func TestNewCreatesEmptyDatabase(t *testing.T) {
	h := newTestHandle(t, 16)

	if h.NKey() != 16 {
		t.Errorf("NKey() = %d, want 16", h.NKey())
	}
	if h.NTotal() != 0 {
		t.Errorf("NTotal() = %d, want 0", h.NTotal())
	}
	if h.NSorted() != 0 {
		t.Errorf("NSorted() = %d, want 0", h.NSorted())
	}
	if h.NUnsorted() != 0 {
		t.Errorf("NUnsorted() = %d, want 0", h.NUnsorted())
	}
}

func TestNewRejectsZeroNKey(t *testing.T) {
	dir := t.TempDir()
	_, err := New(filepath.Join(dir, "test.idx"), filepath.Join(dir, "test.dat"), 0, Config{})
	if err == nil {
		t.Fatal("expected error for nkey=0")
	}
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeOpenBadNKey {
		t.Errorf("err = %v, want CodeOpenBadNKey", err)
	}
}

func TestNewRejectsOversizedNKey(t *testing.T) {
	dir := t.TempDir()
	_, err := New(filepath.Join(dir, "test.idx"), filepath.Join(dir, "test.dat"), MaxNKey+1, Config{})
	if err == nil {
		t.Fatal("expected error for nkey > MaxNKey")
	}
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeOpenBadNKey {
		t.Errorf("err = %v, want CodeOpenBadNKey", err)
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "test.idx")
	dat := filepath.Join(dir, "test.dat")

	h1, err := New(idx, dat, 8, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := h1.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := h1.Free(); err != nil {
		t.Fatalf("Free: %v", err)
	}

	h2, err := Open(idx, dat, Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h2.Free()

	if h2.NTotal() != 1 {
		t.Errorf("NTotal() = %d, want 1", h2.NTotal())
	}
	val, err := h2.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(val) != "v" {
		t.Errorf("Get(k) = %q, want %q", val, "v")
	}
}

func TestOpenRejectsNTotalAboveMaxNTotal(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "test.idx")
	dat := filepath.Join(dir, "test.dat")

	h, err := New(idx, dat, 8, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := h.Set([]byte(k), []byte("v")); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if err := h.Free(); err != nil {
		t.Fatalf("Free: %v", err)
	}

	_, err = Open(idx, dat, Config{MaxNTotal: 2})
	if err == nil {
		t.Fatal("expected error opening a 3-record database with MaxNTotal=2")
	}
	var cerr *Error
	if !asError(err, &cerr) || cerr.Code != CodeOpenBadNTotal {
		t.Errorf("err = %v, want CodeOpenBadNTotal", err)
	}

	h2, err := Open(idx, dat, Config{MaxNTotal: 3})
	if err != nil {
		t.Fatalf("Open with MaxNTotal=3 should succeed: %v", err)
	}
	h2.Free()
}

func TestOpenMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "nope.idx"), filepath.Join(dir, "nope.dat"), Config{})
	if err == nil {
		t.Fatal("expected error opening nonexistent database")
	}
}

func TestReloadSeesAnotherHandlesWrites(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "test.idx")
	dat := filepath.Join(dir, "test.dat")

	writer, err := New(idx, dat, 8, Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer writer.Free()

	reader, err := Open(idx, dat, Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Free()

	if err := writer.Set([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if reader.NTotal() != 0 {
		t.Fatalf("reader.NTotal() = %d before Reload, want 0 (stale snapshot)", reader.NTotal())
	}

	if err := reader.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reader.NTotal() != 1 {
		t.Errorf("reader.NTotal() = %d after Reload, want 1", reader.NTotal())
	}
}

// asError is a small errors.As helper local to the test package so
// every lifecycle test doesn't need to re-import "errors" just to
// assert on *Error.Code.
func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
