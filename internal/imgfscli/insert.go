package imgfscli

import (
	"os"

	"github.com/cs212/imgfs/pkg/imgfs"
	flag "github.com/spf13/pflag"
)

// InsertCmd returns the "insert" subcommand.
func InsertCmd() *Command {
	fs := flag.NewFlagSet("insert", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "insert <file> <id> <path>",
		Short: "Insert the JPEG at <path> under <id>",
		Exec: func(o *IO, args []string) error {
			return execInsert(o, args)
		},
	}
}

func execInsert(_ *IO, args []string) error {
	if len(args) < 3 {
		return errMissingArg("insert", "<file> <id> <path>")
	}

	blob, err := os.ReadFile(args[2])
	if err != nil {
		return &imgfs.Error{Kind: imgfs.KindIO, Op: "insert", Err: err}
	}

	eng, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer eng.Close()

	return eng.Insert(blob, args[1])
}
