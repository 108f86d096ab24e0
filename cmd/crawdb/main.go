// Command crawdb is the CLI driver for the crawdb library: init/set/get/
// index mirror crawdb.c's -N/-S/-G/-I actions; stats/verify/dump/restore
// are added on top for operational use.
package main

import (
	"os"

	"github.com/adsr/crawdb/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
