package imgfscli

import (
	"fmt"
	"io"
)

// IO wraps the command's output streams, matching the calling convention
// every subcommand is Exec'd with.
type IO struct {
	out    io.Writer
	errOut io.Writer
}

// NewIO returns an IO writing to out/errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Writer exposes the stdout stream for callers that need an io.Writer
// directly (e.g. Engine.PrintList).
func (o *IO) Writer() io.Writer { return o.out }
