///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

// Package portableOS contains the OS functions used by winfile. Each one is a
// package-level variable so it can be overwritten, either to back handles with
// something other than the [os] package or to inject failures in tests.
//
// Note to those replacing these functions: errors must keep the errno (or
// wrap it) so that callers can classify them, e.g. with errors.Is against
// os.ErrNotExist or unix.EWOULDBLOCK.
package portableOS

import (
	"os"
)

// File represents an open file descriptor. It contains the subset of the
// methods on os.File that winfile dispatches to.
type File interface {
	// Close closes the File, rendering it unusable for I/O.
	// Close will return an error if it has already been called.
	Close() error

	// Name returns the name of the file as presented to Open.
	Name() string

	// Read reads up to len(b) bytes from the File and stores them in b.
	// It returns the number of bytes read and any error encountered.
	// At end of file, Read returns 0, io.EOF.
	Read(b []byte) (n int, err error)

	// Write writes len(b) bytes from b to the File.
	// It returns the number of bytes written and an error, if any.
	// Write returns a non-nil error when n != len(b).
	Write(b []byte) (n int, err error)

	// Seek sets the offset for the next Read or Write on file to offset,
	// interpreted according to whence: 0 means relative to the origin of the
	// file, 1 means relative to the current offset, and 2 means relative to the
	// end. It returns the new offset and an error, if any.
	Seek(offset int64, whence int) (ret int64, err error)

	// Truncate changes the size of the file. It does not change the I/O
	// offset.
	Truncate(size int64) error

	// Fd returns the integer Unix file descriptor referencing the open file.
	Fd() uintptr

	// Stat returns the FileInfo structure describing file.
	Stat() (os.FileInfo, error)
}

// A FileMode represents a file's mode and permission bits. See os.FileMode
// for all possible values.
type FileMode uint32
