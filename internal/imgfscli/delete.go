package imgfscli

import (
	"github.com/cs212/imgfs/pkg/imgfs"
	flag "github.com/spf13/pflag"
)

// DeleteCmd returns the "delete" subcommand.
func DeleteCmd() *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "delete <file> <id>",
		Short: "Remove <id> from the database",
		Exec: func(_ *IO, args []string) error {
			return execDelete(args)
		},
	}
}

func execDelete(args []string) error {
	if len(args) < 2 {
		return errMissingArg("delete", "<file> <id>")
	}

	eng, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer eng.Close()

	return eng.Delete(args[1])
}
