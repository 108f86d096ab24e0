package cli

import (
	"context"
	"io"
	"os"
)

// Run is the CLI's entry point: it dispatches args[0] (after the binary
// name) to one of the subcommands and returns a process exit code,
// grounded on calvinalkan-agent-task's internal/cli.Run dispatch shape,
// simplified to crawdb's flat (no global-then-subcommand flag) layout
// since crawdb.c's own -N/-S/-G/-I are themselves already a flat action
// set, not a nested command tree.
func Run(in io.Reader, out, errOut io.Writer, args []string) int {
	o := NewIO(in, out, errOut)

	commands := allCommands()

	if len(args) < 2 {
		printUsage(o, commands)
		return 1
	}

	name := args[1]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage(o, commands)
		return 0
	}

	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd.Run(context.Background(), o, args[2:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(o, commands)
	return 1
}

func allCommands() []*Command {
	return []*Command{
		InitCmd(),
		SetCmd(),
		GetCmd(),
		IndexCmd(),
		StatsCmd(),
		VerifyCmd(),
		DumpCmd(),
		RestoreCmd(),
	}
}

func printUsage(o *IO, commands []*Command) {
	o.Println("crawdb - embedded append-only key/value store")
	o.Println()
	o.Println("Usage: crawdb <command> [flags]")
	o.Println()
	o.Println("Commands:")
	for _, cmd := range commands {
		o.Println(cmd.HelpLine())
	}
}

// Main is what cmd/crawdb's main() calls; split out so it is testable
// without exiting the test process.
func Main() int {
	return Run(os.Stdin, os.Stdout, os.Stderr, os.Args)
}
