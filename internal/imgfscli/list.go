package imgfscli

import (
	"errors"

	"github.com/cs212/imgfs/pkg/imgfs"
	flag "github.com/spf13/pflag"
)

// ListCmd returns the "list" subcommand.
func ListCmd() *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "list <file>",
		Short: "Print the images stored in <file>",
		Exec: func(o *IO, args []string) error {
			return execList(o, args)
		},
	}
}

func execList(o *IO, args []string) error {
	if len(args) < 1 {
		return errMissingArg("list", "<file>")
	}

	eng, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer eng.Close()

	eng.PrintList(o.Writer())

	return nil
}

var errNotEnoughArgs = errors.New("not enough arguments")

func errMissingArg(cmd, usage string) error {
	return errors.Join(errNotEnoughArgs, errors.New(cmd+" requires "+usage))
}
