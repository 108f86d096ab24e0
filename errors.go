// Package crawdb is an embedded, append-only key/value store for large,
// mostly-immutable datasets. Writers append records continuously; readers
// look up values by a fixed-length key; a periodic re-indexing pass
// reorganizes accumulated records into a sorted region so lookups stay
// logarithmic. The store is a pair of files — INDEX and DATA — coordinated
// across processes with an advisory exclusive lock on the INDEX file.
//
// There is no deletion with reclamation, no range scans, no multi-key
// transactions and no automatic re-indexing schedule: callers trigger
// Reindex themselves, typically from a cron-like external driver.
package crawdb

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure a crawdb operation returned, so
// callers can branch on cause rather than parse an error string.
type Code string

// Error codes. Every code named in the format specification has a
// distinct value here; call sites that can fail for more than one
// syscall-level reason (open, index) get one code per site.
const (
	CodeSetBadKey     Code = "set-bad-key"
	CodeGetBadKey     Code = "get-bad-key"
	CodeOpenBadHeader Code = "open-bad-header"
	CodeOpenBadVers   Code = "open-bad-version"
	CodeOpenBadNKey   Code = "open-bad-nkey"
	CodeBadIdxSize    Code = "bad-idx-size"
	CodeBadNSorted    Code = "bad-nsorted"
	CodeOpenBadNTotal Code = "open-bad-ntotal"
	CodeGetDataCksum  Code = "get-data-cksum"
	CodeGetDataRead   Code = "get-data-read"
	CodeLockEx        Code = "lock-ex"
	CodeLockUn        Code = "lock-un"
	CodeSetIdxDead    Code = "set-idx-dead"

	CodeOpenIO    Code = "open-io"
	CodeSetIO     Code = "set-io"
	CodeGetIO     Code = "get-io"
	CodeIndexCopy Code = "index-copy-io"
	CodeIndexSort Code = "index-sort-io"
	CodeIndexSwap Code = "index-swap-io"
)

// Error is the concrete error type returned by every crawdb operation
// that fails. Site identifies the internal call site (e.g. "set:lseek")
// for diagnostics; Path and Offset are filled in where known.
type Error struct {
	Code   Code
	Site   string
	Path   string
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Path != "" {
			return fmt.Sprintf("crawdb: %s (%s): %s: %v", e.Code, e.Site, e.Path, e.Err)
		}
		return fmt.Sprintf("crawdb: %s (%s): %v", e.Code, e.Site, e.Err)
	}
	return fmt.Sprintf("crawdb: %s (%s)", e.Code, e.Site)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a *Error with the same Code, so callers
// can write errors.Is(err, &crawdb.Error{Code: crawdb.CodeSetIdxDead}).
func (e *Error) Is(target error) bool {
	var te *Error
	if errors.As(target, &te) {
		return te.Code == e.Code
	}
	return false
}

func newErr(code Code, site string, err error) *Error {
	return &Error{Code: code, Site: site, Err: err}
}

func newErrPath(code Code, site, path string, err error) *Error {
	return &Error{Code: code, Site: site, Path: path, Err: err}
}

// ErrMiss is never returned by Get: a missing key is a successful call
// with a nil value, per spec. It is exported for callers that want a
// miss sentinel of their own, e.g. a wrapper that turns Get's nil value
// into an error.
var ErrMiss = errors.New("crawdb: miss")
