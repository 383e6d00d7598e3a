///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

// io.go holds the data and positioning calls. Reads and writes transfer the
// whole buffer or fail; there is no overlapped (asynchronous) I/O.

import (
	"io"

	jww "github.com/spf13/jwalterweatherman"
)

// Overlapped requests asynchronous I/O or, for locks, a byte range starting at
// Offset. Passing one is always rejected with ErrUnsupported.
type Overlapped struct {
	Offset     uint32
	OffsetHigh uint32
}

// MoveMethod is the origin of SetFilePointer.
type MoveMethod uint32

const (
	FileBegin   MoveMethod = 0
	FileCurrent MoveMethod = 1
	FileEnd     MoveMethod = 2
)

func (m MoveMethod) whence() (int, bool) {
	switch m {
	case FileBegin:
		return io.SeekStart, true
	case FileCurrent:
		return io.SeekCurrent, true
	case FileEnd:
		return io.SeekEnd, true
	default:
		return 0, false
	}
}

// ReadFile reads exactly len(b) bytes. A short read fails with ErrIo and a
// read that would block fails with ErrNoData; n is the number of bytes
// actually transferred.
func (h *Handle) ReadFile(b []byte, overlapped *Overlapped) (n int, err error) {
	if err = h.validate("ReadFile"); err != nil {
		return 0, err
	}
	if overlapped != nil {
		jww.ERROR.Printf("Overlapped read not supported on %s", h.name)
		return 0, newError("ReadFile", h.name, ErrUnsupported, nil)
	}
	return h.ops.read(h, b)
}

// WriteFile writes all of b or fails with ErrIo.
func (h *Handle) WriteFile(b []byte, overlapped *Overlapped) (n int, err error) {
	if err = h.validate("WriteFile"); err != nil {
		return 0, err
	}
	if overlapped != nil {
		jww.ERROR.Printf("Overlapped write not supported on %s", h.name)
		return 0, newError("WriteFile", h.name, ErrUnsupported, nil)
	}
	return h.ops.write(h, b)
}

// Write implements io.Writer with WriteFile.
func (h *Handle) Write(b []byte) (int, error) {
	return h.WriteFile(b, nil)
}

// GetFileSize returns the size of the file without moving the file pointer.
// On failure it returns InvalidFileSize.
func (h *Handle) GetFileSize() (int64, error) {
	ops, err := h.fullOps("GetFileSize")
	if err != nil {
		return InvalidFileSize, err
	}
	return ops.size(h)
}

// SetFilePointer moves the file pointer by distance relative to method and
// returns the new absolute position. On failure it returns
// InvalidSetFilePointer.
func (h *Handle) SetFilePointer(distance int64, method MoveMethod) (int64, error) {
	ops, err := h.fullOps("SetFilePointer")
	if err != nil {
		return InvalidSetFilePointer, err
	}
	whence, ok := method.whence()
	if !ok {
		return InvalidSetFilePointer, newError("SetFilePointer", h.name,
			ErrInvalidParameter, nil)
	}
	return ops.seek(h, distance, whence)
}

// SetEndOfFile truncates or extends the file to the current file pointer.
func (h *Handle) SetEndOfFile() error {
	ops, err := h.fullOps("SetEndOfFile")
	if err != nil {
		return err
	}
	return ops.setEndOfFile(h)
}

// SetFileTime sets the last access and last write times. A nil time is left
// unchanged. The creation time cannot be changed on POSIX hosts and is
// ignored.
func (h *Handle) SetFileTime(creation, lastAccess, lastWrite *FileTime) error {
	ops, err := h.fullOps("SetFileTime")
	if err != nil {
		return err
	}
	if creation != nil {
		jww.DEBUG.Printf("Ignoring creation time for %s", h.name)
	}
	return ops.setFileTime(h, lastAccess, lastWrite)
}
