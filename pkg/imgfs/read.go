package imgfs

// Read returns the bytes of imgID at the given resolution, lazily
// materializing non-original variants on first read (spec.md §4.B).
func (e *Engine) Read(imgID string, res Resolution) ([]byte, error) {
	slot, ok := e.findByID(imgID)
	if !ok {
		return nil, newErr("read", KindNotFound, nil)
	}

	if res != ResOriginal && (e.meta[slot].Size[res] == 0 || e.meta[slot].Offset[res] == 0) {
		if err := e.resize(slot, res); err != nil {
			return nil, err
		}
	}

	size := e.meta[slot].Size[res]
	off := e.meta[slot].Offset[res]

	buf := make([]byte, size)
	if _, err := readFull(e.file, buf, int64(off)); err != nil {
		return nil, newErr("read", KindIO, err)
	}

	return buf, nil
}

// findByID linearly scans the metadata table for a valid slot with the
// given img_id. There is no index; lookup is O(max_files) by design
// (spec.md §2 Non-goals: "No B-tree or index").
func (e *Engine) findByID(imgID string) (uint32, bool) {
	for i := range e.meta {
		if e.meta[i].IsValid && e.meta[i].ImgID == imgID {
			return uint32(i), true
		}
	}

	return 0, false
}
