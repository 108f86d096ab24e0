package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// InitCmd creates a fresh INDEX/DATA pair, equivalent to crawdb.c's
// `-N, --action-init`.
func InitCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	addGlobalFlags(fs, g)
	keySize := fs.Uint32("key-size", 32, "Key size in bytes")

	return &Command{
		Flags: fs,
		Usage: "init --path-idx=<path> --path-dat=<path> [--key-size=N]",
		Short: "Create a new, empty database",
		Exec: func(_ context.Context, o *IO) error {
			pathIdx, pathDat, resolvedKeySize, cfg, err := g.resolve(fs)
			if err != nil {
				return err
			}
			if fs.Changed("key-size") {
				resolvedKeySize = *keySize
			}

			h, err := crawdb.New(pathIdx, pathDat, resolvedKeySize, cfg)
			if err != nil {
				return err
			}
			defer h.Free()

			o.Println("created", pathIdx, pathDat, "key-size", h.NKey())
			return nil
		},
	}
}
