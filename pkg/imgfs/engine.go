package imgfs

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// Engine owns the open database file and its in-memory header/metadata
// copies. It is not safe for concurrent use; see the package doc comment.
type Engine struct {
	path   string
	file   *os.File
	header Header
	meta   []Metadata
	closed bool
}

// prefixSize returns the byte size of the fixed header+metadata-table
// prefix for a database with the given capacity.
func prefixSize(maxFiles uint32) int64 {
	return int64(headerSize) + int64(maxFiles)*int64(recordSize)
}

// Create initializes a fresh database at path, truncating it if it already
// exists. It writes a header with version=0, nb_files=0, and the capacity
// and resize resolutions from tmpl, followed by a zero-filled metadata
// table, in a single atomic whole-file write (see SPEC_FULL.md §4.B).
//
// On success it prints "N item(s) written" to stdout, where N = 1 +
// nb_files, preserving the legacy CLI's byte-for-byte console output.
func Create(path string, tmpl HeaderTemplate) (*Engine, error) {
	if tmpl.MaxFiles == 0 || tmpl.MaxFiles > maxFilesSanityCap {
		return nil, newErr("create", KindInvalidArgument, nil)
	}

	h := Header{
		Name:     defaultName,
		Version:  0,
		NbFiles:  0,
		MaxFiles: tmpl.MaxFiles,
	}
	h.ResizedRes[0] = tmpl.ThumbRes
	h.ResizedRes[1] = tmpl.SmallRes

	buf := make([]byte, 0, prefixSize(tmpl.MaxFiles))
	buf = append(buf, encodeHeader(h)...)

	emptyRecord := make([]byte, recordSize)
	for i := uint32(0); i < tmpl.MaxFiles; i++ {
		buf = append(buf, emptyRecord...)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(buf)); err != nil {
		return nil, newErr("create", KindIO, err)
	}

	fmt.Printf("%d item(s) written\n", 1+h.NbFiles)

	return Open(path)
}

// Open opens an existing database file, reading its header and the full
// metadata table into memory.
func Open(path string) (*Engine, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, newErr("open", KindIO, err)
	}

	hbuf := make([]byte, headerSize)
	if _, err := readFull(f, hbuf, 0); err != nil {
		_ = f.Close()
		return nil, newErr("open", KindIO, err)
	}

	h, err := decodeHeader(hbuf)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if h.MaxFiles == 0 || h.MaxFiles > maxFilesSanityCap {
		_ = f.Close()
		return nil, newErr("open", KindBadFormat, nil)
	}

	meta := make([]Metadata, h.MaxFiles)
	rbuf := make([]byte, recordSize)

	for i := uint32(0); i < h.MaxFiles; i++ {
		off := prefixOffset(i)
		if _, err := readFull(f, rbuf, off); err != nil {
			_ = f.Close()
			return nil, newErr("open", KindIO, err)
		}

		m, err := decodeMetadata(rbuf)
		if err != nil {
			_ = f.Close()
			return nil, err
		}

		meta[i] = m
	}

	return &Engine{path: path, file: f, header: h, meta: meta}, nil
}

// prefixOffset returns the absolute byte offset of metadata record i.
func prefixOffset(i uint32) int64 {
	return int64(headerSize) + int64(i)*int64(recordSize)
}

// Close releases the in-memory metadata table and closes the file handle.
// Idempotent.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}

	e.closed = true
	e.meta = nil

	if err := e.file.Close(); err != nil {
		return newErr("close", KindIO, err)
	}

	return nil
}

// readFull reads exactly len(buf) bytes at offset off, treating a short
// read as an IO failure (callers wrap with the imgfs Kind taxonomy).
func readFull(f *os.File, buf []byte, off int64) (int, error) {
	n := 0

	for n < len(buf) {
		m, err := f.ReadAt(buf[n:], off+int64(n))
		n += m

		if err != nil {
			return n, err
		}

		if m == 0 {
			break
		}
	}

	if n < len(buf) {
		return n, fmt.Errorf("short read: got %d want %d", n, len(buf))
	}

	return n, nil
}

// persistHeader writes the in-memory header to offset 0.
func (e *Engine) persistHeader() error {
	buf := encodeHeader(e.header)
	if _, err := e.file.WriteAt(buf, 0); err != nil {
		return newErr("persist header", KindIO, err)
	}

	return nil
}

// persistSlot writes metadata record i to its fixed offset.
func (e *Engine) persistSlot(i uint32) error {
	buf := encodeMetadata(e.meta[i])
	if _, err := e.file.WriteAt(buf, prefixOffset(i)); err != nil {
		return newErr("persist metadata", KindIO, err)
	}

	return nil
}
