package imgfs

// Delete marks imgID's slot invalid, bumps version, and persists both.
// Deduplicated blob bytes are never reclaimed (see SPEC_FULL.md §9 Open
// Question #1): a subsequent Read through another img_id sharing the same
// SHA remains valid.
func (e *Engine) Delete(imgID string) error {
	slot, ok := e.findByID(imgID)
	if !ok {
		return newErr("delete", KindNotFound, nil)
	}

	e.meta[slot] = Metadata{}
	if err := e.persistSlot(slot); err != nil {
		return err
	}

	e.header.NbFiles--
	e.header.Version++

	return e.persistHeader()
}
