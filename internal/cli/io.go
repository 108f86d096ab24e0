// Package cli is the thin driver binding crawdb's library surface to a
// subcommand-based executable, grounded on calvinalkan-agent-task's
// internal/cli package shape (Command/IO/Run).
package cli

import (
	"fmt"
	"io"
)

// IO bundles a command's stdout/stderr so Command implementations never
// touch os.Stdout/os.Stderr directly, keeping them testable against
// buffers.
type IO struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{in: in, out: out, errOut: errOut}
}

func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}
