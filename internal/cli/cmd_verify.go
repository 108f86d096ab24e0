package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// VerifyCmd re-derives every record's CRC-16 from its DATA content and
// reports any mismatch, exiting non-zero if at least one record fails.
func VerifyCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	addGlobalFlags(fs, g)

	return &Command{
		Flags: fs,
		Usage: "verify --path-idx=<path> --path-dat=<path>",
		Short: "Recompute every record's checksum and report mismatches",
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

			checked, bad, err := h.Verify()
			if err != nil {
				return err
			}

			for _, b := range bad {
				o.Printf("cksum mismatch: record %d key %q\n", b.Index, b.Key)
			}
			o.Printf("checked %d record(s), %d bad\n", checked, len(bad))

			if len(bad) > 0 {
				return fmt.Errorf("%d record(s) failed checksum verification", len(bad))
			}
			return nil
		},
	}
}
