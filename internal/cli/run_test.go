// End-to-end CLI tests: init/set/get/stats through Run exactly
// as a user would invoke the binary, confirming the pflag wiring and
// crawdb.Config plumbing line up before anything gets to a terminal.
package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(strings.NewReader(""), &out, &errOut, append([]string{"crawdb"}, args...))
	return out.String(), errOut.String(), code
}

func TestCLIInitSetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "test.idx")
	dat := filepath.Join(dir, "test.dat")

	_, stderr, code := runCLI(t, "init", "--path-idx", idx, "--path-dat", dat, "--key-size", "16")
	if code != 0 {
		t.Fatalf("init: code=%d stderr=%s", code, stderr)
	}

	_, stderr, code = runCLI(t, "set", "--path-idx", idx, "--path-dat", dat, "--key", "hello", "--val", "world")
	if code != 0 {
		t.Fatalf("set: code=%d stderr=%s", code, stderr)
	}

	stdout, stderr, code := runCLI(t, "get", "--path-idx", idx, "--path-dat", dat, "--key", "hello")
	if code != 0 {
		t.Fatalf("get: code=%d stderr=%s", code, stderr)
	}
	if stdout != "world" {
		t.Errorf("get stdout = %q, want %q", stdout, "world")
	}
}

func TestCLIGetMissingKeyExitsZero(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "test.idx")
	dat := filepath.Join(dir, "test.dat")

	if _, stderr, code := runCLI(t, "init", "--path-idx", idx, "--path-dat", dat); code != 0 {
		t.Fatalf("init: code=%d stderr=%s", code, stderr)
	}

	stdout, _, code := runCLI(t, "get", "--path-idx", idx, "--path-dat", dat, "--key", "absent")
	if code != 0 {
		t.Fatalf("get absent key: want exit 0, got %d", code)
	}
	if stdout != "" {
		t.Errorf("get absent key stdout = %q, want empty", stdout)
	}
}

func TestCLISetRequiresKeyAndVal(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "test.idx")
	dat := filepath.Join(dir, "test.dat")

	if _, stderr, code := runCLI(t, "init", "--path-idx", idx, "--path-dat", dat); code != 0 {
		t.Fatalf("init: code=%d stderr=%s", code, stderr)
	}

	if _, _, code := runCLI(t, "set", "--path-idx", idx, "--path-dat", dat, "--key", "k"); code == 0 {
		t.Error("set without --val should fail")
	}
}

func TestCLIUnknownCommand(t *testing.T) {
	_, stderr, code := runCLI(t, "bogus")
	if code == 0 {
		t.Error("unknown command should exit non-zero")
	}
	if !strings.Contains(stderr, "unknown command") {
		t.Errorf("stderr = %q, want it to mention unknown command", stderr)
	}
}

func TestCLIStatsReportsCounters(t *testing.T) {
	dir := t.TempDir()
	idx := filepath.Join(dir, "test.idx")
	dat := filepath.Join(dir, "test.dat")

	if _, stderr, code := runCLI(t, "init", "--path-idx", idx, "--path-dat", dat); code != 0 {
		t.Fatalf("init: code=%d stderr=%s", code, stderr)
	}
	if _, stderr, code := runCLI(t, "set", "--path-idx", idx, "--path-dat", dat, "--key", "a", "--val", "1"); code != 0 {
		t.Fatalf("set: code=%d stderr=%s", code, stderr)
	}

	stdout, stderr, code := runCLI(t, "stats", "--path-idx", idx, "--path-dat", dat)
	if code != 0 {
		t.Fatalf("stats: code=%d stderr=%s", code, stderr)
	}
	if !strings.Contains(stdout, "ntotal=1") {
		t.Errorf("stats stdout = %q, want it to mention ntotal=1", stdout)
	}
}
