package imgfs

import (
	"encoding/binary"
	"hash/crc32"
)

// On-disk layout constants. Multi-byte integers are little-endian
// throughout (see SPEC_FULL.md §3 "Greenfield byte layout"); offsets are
// fixed and named the way pkg/slotcache/format.go names its slc1Header
// offsets, and the header carries a CRC32-C trailer the same way.

const (
	headerSize = 64
	// recordSize is the fixed size of one metadata slot.
	recordSize = 208

	nameFieldLen  = MaxNameLen + 1 // +1 for NUL terminator
	imgIDFieldLen = MaxImgIDLen + 1
)

// Header field offsets (bytes from the start of the header).
const (
	hOffName       = 0x00 // [32]byte, NUL-terminated
	hOffVersion    = 0x20 // uint32
	hOffNbFiles    = 0x24 // uint32
	hOffMaxFiles   = 0x28 // uint32
	hOffResizedRes = 0x2C // [4]uint16 (thumbW, thumbH, smallW, smallH)
	hOffReserved   = 0x34 // 8 reserved bytes, must be zero
	hOffCRC32C     = 0x3C // uint32
)

// Metadata record field offsets (bytes from the start of the record).
const (
	mOffImgID   = 0x000 // [128]byte, NUL-terminated
	mOffSHA     = 0x080 // [32]byte
	mOffOrigRes = 0x0A0 // [2]uint32 (width, height)
	mOffSize    = 0x0A8 // [3]uint32
	mOffOffset  = 0x0B4 // [3]uint64
	mOffIsValid = 0x0CC // uint16
	mOffReserved = 0x0CE // 2 reserved bytes, must be zero
)

// encodeHeader serializes h into a headerSize-byte slice, including a
// CRC32-C trailer computed over the rest of the buffer.
func encodeHeader(h Header) []byte {
	buf := make([]byte, headerSize)

	copy(buf[hOffName:], []byte(h.Name))
	binary.LittleEndian.PutUint32(buf[hOffVersion:], h.Version)
	binary.LittleEndian.PutUint32(buf[hOffNbFiles:], h.NbFiles)
	binary.LittleEndian.PutUint32(buf[hOffMaxFiles:], h.MaxFiles)

	binary.LittleEndian.PutUint16(buf[hOffResizedRes:], h.ResizedRes[0][0])
	binary.LittleEndian.PutUint16(buf[hOffResizedRes+2:], h.ResizedRes[0][1])
	binary.LittleEndian.PutUint16(buf[hOffResizedRes+4:], h.ResizedRes[1][0])
	binary.LittleEndian.PutUint16(buf[hOffResizedRes+6:], h.ResizedRes[1][1])

	crc := crc32.Checksum(buf[:hOffCRC32C], crc32.MakeTable(crc32.Castagnoli))
	binary.LittleEndian.PutUint32(buf[hOffCRC32C:], crc)

	return buf
}

// decodeHeader parses a headerSize-byte slice. It returns BadFormat if the
// magic/name tag doesn't match, the CRC doesn't validate, or reserved bytes
// are non-zero.
func decodeHeader(buf []byte) (Header, error) {
	if len(buf) < headerSize {
		return Header{}, newErr("decode header", KindIO, nil)
	}

	for _, b := range buf[hOffReserved : hOffReserved+8] {
		if b != 0 {
			return Header{}, newErr("decode header", KindBadFormat, nil)
		}
	}

	storedCRC := binary.LittleEndian.Uint32(buf[hOffCRC32C:])
	computedCRC := crc32.Checksum(buf[:hOffCRC32C], crc32.MakeTable(crc32.Castagnoli))

	if storedCRC != computedCRC {
		return Header{}, newErr("decode header", KindBadFormat, nil)
	}

	name, err := decodeFixedString(buf[hOffName:hOffName+nameFieldLen], nameFieldLen)
	if err != nil {
		return Header{}, newErr("decode header", KindBadFormat, err)
	}

	if name != defaultName {
		return Header{}, newErr("decode header", KindBadFormat, nil)
	}

	h := Header{
		Name:     name,
		Version:  binary.LittleEndian.Uint32(buf[hOffVersion:]),
		NbFiles:  binary.LittleEndian.Uint32(buf[hOffNbFiles:]),
		MaxFiles: binary.LittleEndian.Uint32(buf[hOffMaxFiles:]),
	}

	h.ResizedRes[0][0] = binary.LittleEndian.Uint16(buf[hOffResizedRes:])
	h.ResizedRes[0][1] = binary.LittleEndian.Uint16(buf[hOffResizedRes+2:])
	h.ResizedRes[1][0] = binary.LittleEndian.Uint16(buf[hOffResizedRes+4:])
	h.ResizedRes[1][1] = binary.LittleEndian.Uint16(buf[hOffResizedRes+6:])

	return h, nil
}

// encodeMetadata serializes m into a recordSize-byte slice. Invalid slots
// are encoded with every other field zeroed (invariant 2 in spec.md §3).
func encodeMetadata(m Metadata) []byte {
	buf := make([]byte, recordSize)

	if !m.IsValid {
		return buf
	}

	copy(buf[mOffImgID:], []byte(m.ImgID))
	copy(buf[mOffSHA:], m.SHA[:])

	binary.LittleEndian.PutUint32(buf[mOffOrigRes:], m.OrigRes[0])
	binary.LittleEndian.PutUint32(buf[mOffOrigRes+4:], m.OrigRes[1])

	for r := 0; r < numResolutions; r++ {
		binary.LittleEndian.PutUint32(buf[mOffSize+4*r:], m.Size[r])
		binary.LittleEndian.PutUint64(buf[mOffOffset+8*r:], m.Offset[r])
	}

	binary.LittleEndian.PutUint16(buf[mOffIsValid:], 1)

	return buf
}

// decodeMetadata parses a recordSize-byte slice. Returns BadFormat if a
// valid slot's img_id is not NUL-terminated within its fixed width, or if
// reserved bytes are set.
func decodeMetadata(buf []byte) (Metadata, error) {
	if len(buf) < recordSize {
		return Metadata{}, newErr("decode metadata", KindIO, nil)
	}

	for _, b := range buf[mOffReserved : mOffReserved+2] {
		if b != 0 {
			return Metadata{}, newErr("decode metadata", KindBadFormat, nil)
		}
	}

	isValid := binary.LittleEndian.Uint16(buf[mOffIsValid:]) != 0
	if !isValid {
		return Metadata{}, nil
	}

	imgID, err := decodeFixedString(buf[mOffImgID:mOffImgID+imgIDFieldLen], imgIDFieldLen)
	if err != nil {
		return Metadata{}, newErr("decode metadata", KindBadFormat, err)
	}

	m := Metadata{ImgID: imgID, IsValid: true}
	copy(m.SHA[:], buf[mOffSHA:mOffSHA+shaSize])

	m.OrigRes[0] = binary.LittleEndian.Uint32(buf[mOffOrigRes:])
	m.OrigRes[1] = binary.LittleEndian.Uint32(buf[mOffOrigRes+4:])

	for r := 0; r < numResolutions; r++ {
		m.Size[r] = binary.LittleEndian.Uint32(buf[mOffSize+4*r:])
		m.Offset[r] = binary.LittleEndian.Uint64(buf[mOffOffset+8*r:])
	}

	return m, nil
}

// decodeFixedString reads a NUL-terminated ASCII string from a
// fixed-width buffer, failing with an error if no NUL terminator is
// present within width bytes (the codec's BadFormat contract).
func decodeFixedString(buf []byte, width int) (string, error) {
	for i := 0; i < width; i++ {
		if buf[i] == 0 {
			return string(buf[:i]), nil
		}
	}

	return "", errUnterminatedString
}
