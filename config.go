// Handle configuration.
//
// Config is a plain struct filled in with zero-value defaults at Open,
// matching the teacher's Config (db.go) rather than a functional-options
// builder — this store has few enough knobs that a struct reads better,
// and it mirrors the defaulting style of options.WithDefaultOptions in
// the ignite engine pack example.
package crawdb

import (
	"time"

	"go.uber.org/zap"
)

// Config holds per-Handle behavioral options.
type Config struct {
	// SyncWrites calls fsync on the DATA and INDEX files after every Set.
	// The original C implementation never fsyncs; default false preserves
	// that behavior, trading durability on power loss for append speed.
	SyncWrites bool

	// ReadBuffer sizes the scratch buffer Verify and Dump reuse across
	// their record-by-record DATA reads, growing past it only for a value
	// larger than this. Get always allocates fresh, since its returned
	// value must stay valid after the call returns. Defaults to 64KiB.
	ReadBuffer int

	// LockWaitLog is the wait threshold above which acquiring the
	// exclusive lock is logged at Info instead of Debug. Defaults to
	// 250ms.
	LockWaitLog time.Duration

	// Logger receives structured diagnostics. A nil Logger is replaced
	// with a no-op sink — library callers who don't want logging pay
	// nothing.
	Logger *zap.SugaredLogger

	// BloomFilter enables an in-memory bloom filter over unsorted-tail
	// keys, consulted before the reverse linear scan to skip definite
	// misses on large unsorted tails.
	BloomFilter bool

	// MaxNTotal bounds the total record count accepted at Open as a
	// sanity check against a corrupt idx-size-implied count. Zero means
	// no additional bound beyond what the header's own invariant checks
	// already enforce.
	MaxNTotal uint64
}

func (c *Config) setDefaults() {
	if c.ReadBuffer <= 0 {
		c.ReadBuffer = 64 * 1024
	}
	if c.LockWaitLog <= 0 {
		c.LockWaitLog = 250 * time.Millisecond
	}
}

func (c *Config) logger() *zap.SugaredLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop().Sugar()
}
