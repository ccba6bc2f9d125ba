package imgfscli

import (
	"os"
	"strings"

	"github.com/cs212/imgfs/pkg/imgfs"
	flag "github.com/spf13/pflag"
)

// ReadCmd returns the "read" subcommand.
func ReadCmd() *Command {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "read <file> <id> [orig|small|thumb]",
		Short: "Extract one image variant to <id>_<res>.jpg",
		Exec: func(o *IO, args []string) error {
			return execRead(o, args)
		},
	}
}

func execRead(o *IO, args []string) error {
	if len(args) < 2 {
		return errMissingArg("read", "<file> <id> [orig|small|thumb]")
	}

	resToken := "orig"
	if len(args) >= 3 {
		resToken = args[2]
	}

	res, err := imgfs.ParseResolution(resToken)
	if err != nil {
		return err
	}

	eng, err := imgfs.Open(args[0])
	if err != nil {
		return err
	}
	defer eng.Close()

	imgID := args[1]

	data, err := eng.Read(imgID, res)
	if err != nil {
		return err
	}

	outPath := imgID + "_" + strings.ToLower(resToken) + ".jpg"

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return &imgfs.Error{Kind: imgfs.KindIO, Op: "read", Err: err}
	}

	o.Println(outPath)

	return nil
}
