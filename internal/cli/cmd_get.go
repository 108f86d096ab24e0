package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// GetCmd looks up one key, equivalent to crawdb.c's `-G, --action-get`.
// A miss prints nothing and exits 0, matching crawdb_get's "miss is not
// an error" contract.
func GetCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	addGlobalFlags(fs, g)
	key := fs.StringP("key", "k", "", "Get `key`")

	return &Command{
		Flags: fs,
		Usage: "get --path-idx=<path> --path-dat=<path> --key=<key>",
		Short: "Look up a key's value",
		Exec: func(_ context.Context, o *IO) error {
			if *key == "" {
				return errors.New("--key is required")
			}

			pathIdx, pathDat, _, cfg, err := g.resolve(fs)
			if err != nil {
				return err
			}

			h, err := crawdb.Open(pathIdx, pathDat, cfg)
			if err != nil {
				return err
			}
			defer h.Free()

			val, err := h.Get([]byte(*key))
			if err != nil {
				return err
			}
			if val == nil {
				return nil
			}
			o.Printf("%s", val)
			return nil
		},
	}
}
