package imgfs

// Header is the in-memory copy of the fixed-size file header.
type Header struct {
	// Name is the fixed-width ASCII tag stamped into new files; see
	// defaultName. It doubles as the on-disk magic: Open refuses files
	// whose stored Name isn't exactly defaultName.
	Name string

	// Version increments on every successful mutating operation
	// (Insert, Delete).
	Version uint32

	// NbFiles is the count of currently valid metadata slots.
	NbFiles uint32

	// MaxFiles is the fixed slot-table capacity, set at Create time.
	MaxFiles uint32

	// ResizedRes holds the (width, height) target for [ResThumbnail] at
	// index 0 and for [ResSmall] at index 1. ResOriginal has no
	// header-configured resolution.
	ResizedRes [2][2]uint16
}

// HeaderTemplate configures Create.
type HeaderTemplate struct {
	MaxFiles uint32
	ThumbRes [2]uint16
	SmallRes [2]uint16
}

// Metadata is one record of the fixed-size slot table.
type Metadata struct {
	ImgID    string
	SHA      [shaSize]byte
	OrigRes  [2]uint32            // width, height
	Size     [numResolutions]uint32
	Offset   [numResolutions]uint64
	IsValid  bool
}

// defaultName is the tag stamped into newly created databases and checked
// on Open. This is a greenfield on-disk format (see SPEC_FULL.md §3); it is
// not interoperable with the legacy C layout's "EPFL ImgFS 2024" tag.
const defaultName = "IMGFS002"
