package imgfscli

import (
	"errors"

	"github.com/cs212/imgfs/pkg/imgfs"
)

// errExitCode maps an engine error's Kind to the nonzero process status
// spec.md §4.G requires ("exit with the engine's error code mapped to a
// nonzero process status"). Non-engine errors (bad CLI usage) exit 1.
func errExitCode(err error) int {
	var e *imgfs.Error
	if !errors.As(err, &e) {
		return 1
	}

	switch e.Kind {
	case imgfs.KindInvalidArgument:
		return 2
	case imgfs.KindIO:
		return 3
	case imgfs.KindBadFormat:
		return 4
	case imgfs.KindNotFound:
		return 5
	case imgfs.KindFull:
		return 6
	case imgfs.KindDuplicateID:
		return 7
	case imgfs.KindResolutions:
		return 8
	case imgfs.KindImgLib:
		return 9
	default:
		return 1
	}
}
