package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// SetCmd appends one key/value pair, equivalent to crawdb.c's
// `-S, --action-set`.
func SetCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	addGlobalFlags(fs, g)
	key := fs.StringP("key", "k", "", "Set `key`")
	val := fs.StringP("val", "v", "", "Set `key` to `val`")

	return &Command{
		Flags: fs,
		Usage: "set --path-idx=<path> --path-dat=<path> --key=<key> --val=<val>",
		Short: "Append a key/value pair",
		Exec: func(_ context.Context, o *IO) error {
			if *key == "" || *val == "" {
				return errors.New("--key and --val are required")
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

			if err := h.Set([]byte(*key), []byte(*val)); err != nil {
				return err
			}

			o.Println("ok")
			return nil
		},
	}
}
