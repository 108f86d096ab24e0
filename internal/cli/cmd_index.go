package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/adsr/crawdb"
)

// IndexCmd re-sorts the accumulated unsorted tail into the sorted
// region, equivalent to crawdb.c's `-I, --action-index`.
func IndexCmd() *Command {
	g := &globalOpts{}
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	addGlobalFlags(fs, g)

	return &Command{
		Flags: fs,
		Usage: "index --path-idx=<path> --path-dat=<path>",
		Short: "Re-index: sort the unsorted tail into the sorted prefix",
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

			if err := h.Reindex(); err != nil {
				return err
			}

			o.Println("reindexed", h.NTotal(), "record(s), nsorted", h.NSorted())
			return nil
		},
	}
}
