package cli

import (
	"context"
	"errors"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a crawdb subcommand with unified help generation,
// mirroring the teacher's internal/cli.Command.
type Command struct {
	// Flags defines command-specific flags. Global flags (--path-idx,
	// --path-dat, --config, --bloom, --sync) are already set on this
	// FlagSet by the *Cmd constructor.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "crawdb" in help,
	// e.g. "set --key=<key> --val=<val>".
	Usage string

	// Short is a one-line description for the top-level help listing.
	Short string

	// Exec runs the command body after flags are parsed.
	Exec func(ctx context.Context, o *IO) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

func (c *Command) HelpLine() string {
	return "  " + c.Usage + "\n      " + c.Short
}

func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: crawdb", c.Usage)
	o.Println()
	o.Println(c.Short)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")
		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command, returning a process exit
// code so main can stay a one-liner.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(o)
		return 1
	}

	if err := c.Exec(ctx, o); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
