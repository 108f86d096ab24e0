package cli

import (
	"context"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// RestoreCmd replays a snapshot written by DumpCmd into an existing
// database via Set, so restoring only ever appends: it never bypasses
// the DATA-then-INDEX ordering Set itself enforces.
func RestoreCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	addGlobalFlags(fs, g)
	in := fs.StringP("in", "f", "", "Read the snapshot from `file` instead of stdin")

	return &Command{
		Flags: fs,
		Usage: "restore --path-idx=<path> --path-dat=<path> [--in=<file>]",
		Short: "Replay a dump's key/value pairs with Set",
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

			var r io.Reader = o.in
			if *in != "" {
				f, ferr := os.Open(*in)
				if ferr != nil {
					return ferr
				}
				defer f.Close()
				r = f
			}

			n, err := h.Restore(r)
			if err != nil {
				return err
			}

			o.Println("restored", n, "record(s)")
			return nil
		},
	}
}
