package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// globalOpts holds the flags every subcommand shares: crawdb.c's -i/-d
// (long forms --path-idx/--path-dat), plus a --config for an optional
// JSONC file and --bloom/--sync to reach the engine Config fields the C
// original has no equivalent of. --key/-k and --val/-v are defined by
// the subcommands that take them, and --key-size (long form only) by
// init.
type globalOpts struct {
	pathIdx    string
	pathDat    string
	config     string
	bloom      bool
	syncWrites bool
}

func addGlobalFlags(fs *flag.FlagSet, g *globalOpts) {
	fs.StringVarP(&g.pathIdx, "path-idx", "i", "", "Use index file at `path`")
	fs.StringVarP(&g.pathDat, "path-dat", "d", "", "Use data file at `path`")
	fs.StringVarP(&g.config, "config", "c", "", "Load JSONC config `file`")
	fs.BoolVar(&g.bloom, "bloom", false, "Enable the in-memory bloom filter over the unsorted tail")
	fs.BoolVar(&g.syncWrites, "sync", false, "fsync DATA and INDEX after every Set")
}

// resolve merges a loaded JSONC file (if --config was given) under the
// flags the caller actually passed, flags always winning, matching the
// teacher's flag-beats-file-beats-default precedence.
func (g *globalOpts) resolve(fs *flag.FlagSet) (pathIdx, pathDat string, keySize uint32, cfg crawdb.Config, err error) {
	keySize = 32
	if g.config != "" {
		fc, ferr := loadFileConfig(g.config)
		if ferr != nil {
			return "", "", 0, crawdb.Config{}, ferr
		}
		pathIdx, pathDat = fc.PathIdx, fc.PathDat
		if fc.KeySize > 0 {
			keySize = fc.KeySize
		}
		cfg.BloomFilter = fc.BloomFilter
		cfg.SyncWrites = fc.SyncWrites
	}

	if fs.Changed("path-idx") || pathIdx == "" {
		pathIdx = g.pathIdx
	}
	if fs.Changed("path-dat") || pathDat == "" {
		pathDat = g.pathDat
	}
	if fs.Changed("bloom") {
		cfg.BloomFilter = g.bloom
	}
	if fs.Changed("sync") {
		cfg.SyncWrites = g.syncWrites
	}

	if pathIdx == "" || pathDat == "" {
		return "", "", 0, crawdb.Config{}, fmt.Errorf("--path-idx and --path-dat are required (directly or via --config)")
	}

	return pathIdx, pathDat, keySize, cfg, nil
}
