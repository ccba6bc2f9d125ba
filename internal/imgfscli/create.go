package imgfscli

import (
	"errors"
	"strconv"

	"github.com/cs212/imgfs/pkg/imgfs"
	flag "github.com/spf13/pflag"
)

// CreateCmd returns the "create" subcommand.
func CreateCmd() *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	maxFiles := fs.Int("max_files", imgfs.DefaultMaxFiles, "Maximum number of images the database can hold")
	thumbRes := fs.IntSlice("thumb_res", []int{imgfs.DefaultThumbRes, imgfs.DefaultThumbRes}, "Thumbnail target resolution, \"X,Y\"")
	smallRes := fs.IntSlice("small_res", []int{imgfs.DefaultSmallRes, imgfs.DefaultSmallRes}, "Small-variant target resolution, \"X,Y\"")

	return &Command{
		Flags: fs,
		Usage: "create <file> [--max_files N] [--thumb_res X,Y] [--small_res X,Y]",
		Short: "Create a new, empty database file",
		Exec: func(o *IO, args []string) error {
			return execCreate(o, args, uint32(*maxFiles), *thumbRes, *smallRes)
		},
	}
}

func execCreate(o *IO, args []string, maxFiles uint32, thumbRes, smallRes []int) error {
	if len(args) < 1 {
		return errMissingArg("create", "<file>")
	}

	thumb, err := resPair(thumbRes, imgfs.MaxThumbRes)
	if err != nil {
		return err
	}

	small, err := resPair(smallRes, imgfs.MaxSmallRes)
	if err != nil {
		return err
	}

	eng, err := imgfs.Create(args[0], imgfs.HeaderTemplate{
		MaxFiles: maxFiles,
		ThumbRes: thumb,
		SmallRes: small,
	})
	if err != nil {
		return err
	}

	return eng.Close()
}

// resPair validates a "--thumb_res X,Y"/"--small_res X,Y" flag value against
// cap, returning the [width, height] pair as uint16s.
func resPair(vals []int, cap int) ([2]uint16, error) {
	if len(vals) != 2 {
		return [2]uint16{}, newResError("expected exactly two values, got " + strconv.Itoa(len(vals)))
	}

	var out [2]uint16

	for i, v := range vals {
		if v <= 0 || v > cap {
			return [2]uint16{}, newResError("resolution out of range: " + strconv.Itoa(v))
		}

		out[i] = uint16(v)
	}

	return out, nil
}

func newResError(msg string) error {
	return &imgfs.Error{Kind: imgfs.KindResolutions, Op: "create", Err: errors.New(msg)}
}
