///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"io"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/winfile/portableOS"
	"golang.org/x/sys/unix"
)

// fileHandleOps is the full table bound to files opened by path.
type fileHandleOps struct {
	baseOps
}

func (fileHandleOps) kind() kind {
	return kindFile
}

// size seeks to the end and back so the position is unchanged on success.
func (fileHandleOps) size(h *Handle) (int64, error) {
	cur, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil {
		jww.ERROR.Printf("ftell(%s) failed with %s", h.name, errnoString(err))
		return InvalidFileSize, newError("GetFileSize", h.name, ErrIo, err)
	}

	size, err := h.f.Seek(0, io.SeekEnd)
	if err != nil {
		jww.ERROR.Printf("fseek(%s) failed with %s", h.name, errnoString(err))
		return InvalidFileSize, newError("GetFileSize", h.name, ErrIo, err)
	}

	if _, err = h.f.Seek(cur, io.SeekStart); err != nil {
		jww.ERROR.Printf("fseek(%s) failed with %s", h.name, errnoString(err))
		return InvalidFileSize, newError("GetFileSize", h.name, ErrIo, err)
	}

	return size, nil
}

func (fileHandleOps) setEndOfFile(h *Handle) error {
	pos, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil {
		jww.ERROR.Printf("ftell(%s) failed with %s", h.name, errnoString(err))
		return newError("SetEndOfFile", h.name, ErrIo, err)
	}

	if err = h.f.Truncate(pos); err != nil {
		jww.ERROR.Printf("ftruncate %s failed with %s", h.name,
			errnoString(err))
		return newError("SetEndOfFile", h.name, ErrIo, err)
	}
	return nil
}

func (fileHandleOps) seek(h *Handle, offset int64, whence int) (int64, error) {
	pos, err := h.f.Seek(offset, whence)
	if err != nil {
		jww.ERROR.Printf("fseek(%s) failed with %s", h.name, errnoString(err))
		return InvalidSetFilePointer, newError("SetFilePointer", h.name,
			ErrIo, err)
	}
	return pos, nil
}

func (fileHandleOps) lock(h *Handle, how int) error {
	if err := portableOS.Flock(h.fd, how); err != nil {
		jww.ERROR.Printf("flock %s failed with %s", h.name, errnoString(err))
		return newError("LockFileEx", h.name, ErrLockFailed, err)
	}
	return nil
}

func (fileHandleOps) unlock(h *Handle) error {
	if err := portableOS.Flock(h.fd, unix.LOCK_UN); err != nil {
		jww.ERROR.Printf("flock(LOCK_UN) %s failed with %s", h.name,
			errnoString(err))
		return newError("UnlockFile", h.name, ErrLockFailed, err)
	}
	return nil
}

func (fileHandleOps) setFileTime(h *Handle, atime, mtime *FileTime) error {
	if err := setFileTimes(h.fd, h.name, atime, mtime); err != nil {
		jww.ERROR.Printf("set file time %s failed with %s", h.name,
			errnoString(err))
		return newError("SetFileTime", h.name, ErrIo, err)
	}
	return nil
}
