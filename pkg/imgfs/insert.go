package imgfs

import (
	"crypto/sha256"

	"github.com/cs212/imgfs/pkg/jpegimage"
)

// Insert stores blob under imgID, deduplicating by content hash. It
// implements the insert algorithm from spec.md §4.B verbatim:
//
//  1. reject if full
//  2. reject if imgID is empty or too long
//  3. find the lowest-indexed free slot
//  4. hash the blob
//  5. decode its original dimensions
//  6. populate the slot and bump nb_files
//  7. run name-and-content dedup, reverting the slot on a name clash
//  8. append the blob unless dedup already attached an offset
//  9. bump version and persist header + the single touched slot
func (e *Engine) Insert(blob []byte, imgID string) error {
	if e.header.NbFiles >= e.header.MaxFiles {
		return newErr("insert", KindFull, nil)
	}

	if imgID == "" || len(imgID) > MaxImgIDLen {
		return newErr("insert", KindInvalidArgument, nil)
	}

	slot, ok := e.firstFreeSlot()
	if !ok {
		return newErr("insert", KindFull, nil)
	}

	sha := sha256.Sum256(blob)

	width, height, err := jpegimage.DecodeDimensions(blob)
	if err != nil {
		return newErr("insert", KindImgLib, err)
	}

	m := Metadata{
		ImgID:   imgID,
		SHA:     sha,
		OrigRes: [2]uint32{uint32(width), uint32(height)},
		IsValid: true,
	}
	e.meta[slot] = m
	e.header.NbFiles++

	if dupErr := e.dedup(slot); dupErr != nil {
		// Revert: the slot never existed from the caller's perspective.
		e.meta[slot] = Metadata{}
		e.header.NbFiles--

		return dupErr
	}

	if e.meta[slot].Offset[ResOriginal] == 0 && e.meta[slot].Size[ResOriginal] == 0 {
		off, appendErr := e.appendBlob(blob)
		if appendErr != nil {
			e.meta[slot] = Metadata{}
			e.header.NbFiles--

			return appendErr
		}

		e.meta[slot].Offset[ResOriginal] = off
		e.meta[slot].Size[ResOriginal] = uint32(len(blob))
	}

	e.header.Version++

	if err := e.persistHeader(); err != nil {
		return err
	}

	return e.persistSlot(slot)
}

// firstFreeSlot returns the lowest-indexed slot with IsValid == false.
func (e *Engine) firstFreeSlot() (uint32, bool) {
	for i := range e.meta {
		if !e.meta[i].IsValid {
			return uint32(i), true
		}
	}

	return 0, false
}

// dedup implements the name-and-content dedup pass from spec.md §4.B: it
// must traverse the whole table (a content match must never short-circuit
// the DuplicateId check), and on a content match it copies every
// (offset[r], size[r]) pair from the matching slot into slot k.
func (e *Engine) dedup(k uint32) error {
	target := e.meta[k]

	var contentMatch = -1

	for j := range e.meta {
		if uint32(j) == k || !e.meta[j].IsValid {
			continue
		}

		if e.meta[j].ImgID == target.ImgID {
			return newErr("insert", KindDuplicateID, nil)
		}

		if contentMatch == -1 && e.meta[j].SHA == target.SHA {
			contentMatch = j
		}
	}

	if contentMatch >= 0 {
		e.meta[k].Offset = e.meta[contentMatch].Offset
		e.meta[k].Size = e.meta[contentMatch].Size
	}

	return nil
}

// appendBlob writes data to the end of the file and returns its offset.
// Per spec.md §4.B's failure semantics ("write blob -> write metadata"),
// this always runs before any metadata describing it is persisted.
func (e *Engine) appendBlob(data []byte) (uint64, error) {
	info, err := e.file.Stat()
	if err != nil {
		return 0, newErr("append blob", KindIO, err)
	}

	off := info.Size()

	if _, err := e.file.WriteAt(data, off); err != nil {
		return 0, newErr("append blob", KindIO, err)
	}

	return uint64(off), nil
}
