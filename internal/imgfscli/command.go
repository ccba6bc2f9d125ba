package imgfscli

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines one imgfscmd subcommand with unified help generation,
// the same shape the ticket CLI's command table uses.
type Command struct {
	// Flags defines command-specific flags. The FlagSet's own name is
	// unused; command identity comes from the first word of Usage.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "imgfscmd" in help,
	// e.g. "read <file> <id> [orig|small|thumb]".
	Usage string

	// Short is a one-line description for the top-level help listing.
	Short string

	// Exec runs the command after flags are parsed.
	Exec func(o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the short help line for the top-level usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-40s %s", c.Usage, c.Short)
}

// Run parses flags and executes the command, returning a process exit
// code. Engine errors are printed to stderr; see errExitCode for the
// mapping from imgfs.Kind to exit status.
func (c *Command) Run(o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		o.ErrPrintln("error:", err)

		return 1
	}

	if err := c.Exec(o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)

		return errExitCode(err)
	}

	return 0
}
