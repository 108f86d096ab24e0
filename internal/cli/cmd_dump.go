package cli

import (
	"context"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// DumpCmd writes a compressed logical snapshot of every current
// key/value pair to --out (or stdout).
func DumpCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	addGlobalFlags(fs, g)
	out := fs.StringP("out", "o", "", "Write the snapshot to `file` instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "dump --path-idx=<path> --path-dat=<path> [--out=<file>]",
		Short: "Write a zstd-compressed logical snapshot of every key/value pair",
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

			w := o.out
			if *out != "" {
				f, ferr := os.Create(*out)
				if ferr != nil {
					return ferr
				}
				defer f.Close()
				w = f
			}

			return h.Dump(w)
		},
	}
}
