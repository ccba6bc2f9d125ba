package imgfs

import "github.com/cs212/imgfs/pkg/jpegimage"

// resize materializes resolution res for slot, appending the scaled JPEG
// to the end of the file and recording its offset/size. It is idempotent:
// callers that have already serialized access to the engine (see package
// imgfsd) will never observe a second resize for the same (slot, res)
// because the caller-side check in Read only invokes resize when the
// variant is still unmaterialized.
func (e *Engine) resize(slot uint32, res Resolution) error {
	orig, err := e.Read(e.meta[slot].ImgID, ResOriginal)
	if err != nil {
		return err
	}

	targetWidth := int(e.header.ResizedRes[res][0])
	if targetWidth == 0 {
		return newErr("resize", KindResolutions, nil)
	}

	scaled, err := jpegimage.Thumbnail(orig, targetWidth)
	if err != nil {
		return newErr("resize", KindImgLib, err)
	}

	off, err := e.appendBlob(scaled)
	if err != nil {
		return err
	}

	e.meta[slot].Offset[res] = off
	e.meta[slot].Size[res] = uint32(len(scaled))

	return e.persistSlot(slot)
}
