// Package imgfs implements a single-file, content-addressed JPEG image
// database ("imgFS").
//
// A database file is a fixed-size header followed by a fixed-size metadata
// table followed by appended image blobs:
//
//	[ header ] [ metadata[0] ] ... [ metadata[max_files-1] ] [ blobs... ]
//
// Images are inserted under a caller-chosen id, deduplicated by SHA-256 of
// their original bytes, and read back at one of three resolutions
// (thumbnail, small, original). Non-original resolutions are materialized
// lazily on first read and cached in the file for subsequent reads.
//
// # Basic usage
//
//	eng, err := imgfs.Create("db.bin", imgfs.HeaderTemplate{MaxFiles: 128})
//	if err != nil { ... }
//	defer eng.Close()
//
//	err = eng.Insert(jpegBytes, "pic1")
//	data, err := eng.Read("pic1", imgfs.ResOriginal)
//
// # Concurrency
//
// Engine is not safe for concurrent use. Callers that serve multiple
// requests concurrently (see package imgfsd) must guard every Engine
// method call, including the implicit lazy-resize triggered by Read, with
// their own lock.
//
// # Error handling
//
// Every exported operation returns a *Error whose Kind can be compared with
// errors.Is against the sentinel variables declared in errors.go.
package imgfs
