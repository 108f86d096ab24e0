package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// StatsCmd reports a handle's counters and diagnostic hashes, and caches
// them to a sidecar file a monitoring script can poll without opening
// the store itself.
func StatsCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	addGlobalFlags(fs, g)
	noCache := fs.Bool("no-cache", false, "Don't write the .stats.json sidecar file")

	return &Command{
		Flags: fs,
		Usage: "stats --path-idx=<path> --path-dat=<path>",
		Short: "Report record counts and diagnostic hashes",
		Exec: func(_ context.Context, o *IO) error {
			pathIdx, pathDat, _, cfg, err := g.resolve(fs)
			if err != nil {
				return err
			}

			h, err := crawdb.Open(pathIdx, pathDat, cfg)
			if err != nil {
				return err
			}
			defer h.Free()

			digest, err := h.Digest()
			if err != nil {
				return err
			}
			fingerprint, err := h.Fingerprint()
			if err != nil {
				return err
			}

			snap := statsSnapshot{
				NKey:        h.NKey(),
				NTotal:      h.NTotal(),
				NSorted:     h.NSorted(),
				NUnsorted:   h.NUnsorted(),
				Digest:      digest,
				Fingerprint: fingerprint,
			}

			o.Printf("nkey=%d ntotal=%d nsorted=%d nunsorted=%d digest=%s fingerprint=%s\n",
				snap.NKey, snap.NTotal, snap.NSorted, snap.NUnsorted, snap.Digest, snap.Fingerprint)

			if *noCache {
				return nil
			}
			return writeStatsCache(pathIdx, snap)
		},
	}
}
