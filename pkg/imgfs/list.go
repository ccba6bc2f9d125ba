package imgfs

import (
	"encoding/json"
	"fmt"
	"io"
)

// listImages is the wire shape of ListJSON's result: {"Images": [...]}.
type listImages struct {
	Images []string
}

// ListJSON returns the valid img_ids, in slot order, as the JSON document
// {"Images": ["<img_id>", ...]} described in spec.md §4.B.
func (e *Engine) ListJSON() ([]byte, error) {
	ids := e.imgIDs()

	out, err := json.Marshal(listImages{Images: ids})
	if err != nil {
		return nil, newErr("list", KindIO, err)
	}

	return out, nil
}

// PrintList writes formatted metadata to w, one line per valid slot, or
// "<< empty imgFS >>" if the database has no valid entries.
func (e *Engine) PrintList(w io.Writer) {
	if e.header.NbFiles == 0 {
		fmt.Fprintln(w, "<< empty imgFS >>")
		return
	}

	fmt.Fprintf(w, "*****imgFS header*****\n")
	fmt.Fprintf(w, "name: %s, version: %d, nb_files: %d, max_files: %d\n",
		e.header.Name, e.header.Version, e.header.NbFiles, e.header.MaxFiles)

	for i, m := range e.meta {
		if !m.IsValid {
			continue
		}

		fmt.Fprintf(w, "%d: img_id: %s, orig_res: %dx%d, size[orig]: %d\n",
			i, m.ImgID, m.OrigRes[0], m.OrigRes[1], m.Size[ResOriginal])
	}
}

// imgIDs returns the valid img_ids in slot order.
func (e *Engine) imgIDs() []string {
	ids := make([]string, 0, e.header.NbFiles)

	for _, m := range e.meta {
		if m.IsValid {
			ids = append(ids, m.ImgID)
		}
	}

	return ids
}

// NbFiles returns the current count of valid slots.
func (e *Engine) NbFiles() uint32 { return e.header.NbFiles }

// MaxFiles returns the fixed slot-table capacity.
func (e *Engine) MaxFiles() uint32 { return e.header.MaxFiles }

// Version returns the header's mutation counter.
func (e *Engine) Version() uint32 { return e.header.Version }
