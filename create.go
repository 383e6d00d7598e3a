///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"os"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/winfile/portableOS"
)

// CreateMode is the permission (before umask) of files created by
// CreateFile.
var CreateMode portableOS.FileMode = 0666

// CreateFile opens the file at path and returns a handle bound to the full
// capability table.
//
// The disposition decides whether the file is created or truncated; see
// resolveMode. A missing file opened with OpenExisting fails with
// ErrNotFound. FileShareRead takes a shared and FileShareWrite an exclusive
// advisory lock right after opening, blocking until it is granted; if that
// fails the file is closed again and no handle is returned.
// FileFlagOverlapped in flagsAndAttributes is rejected with ErrUnsupported,
// all other attribute bits are ignored.
func CreateFile(path string, access Access, share ShareMode,
	disposition Disposition, flagsAndAttributes uint32) (*Handle, error) {
	if flagsAndAttributes&FileFlagOverlapped != 0 {
		jww.ERROR.Printf("Overlapped I/O requested for %s not supported",
			path)
		return nil, newError("CreateFile", path, ErrUnsupported, nil)
	}

	mode, create := resolveMode(access, disposition)
	if mode == modeInvalid {
		jww.ERROR.Printf("Invalid creation disposition %d for %s",
			disposition, path)
		return nil, newError("CreateFile", path, ErrInvalidParameter, nil)
	}

	if create {
		f, err := portableOS.OpenFile(path,
			os.O_WRONLY|os.O_APPEND|os.O_CREATE, CreateMode)
		if err != nil {
			return nil, osError("CreateFile", path, err)
		}
		if err = f.Close(); err != nil {
			return nil, osError("CreateFile", path, err)
		}
	}

	f, err := portableOS.OpenFile(path, mode.flag, CreateMode)
	if err != nil {
		// A missing file opened without create intent ends up here.
		jww.DEBUG.Printf("open(%s, %q) failed with %s", path, mode.name,
			errnoString(err))
		return nil, osError("CreateFile", path, err)
	}

	h := newHandle(kindFile, f, int(f.Fd()), path)
	h.access = access
	h.share = share
	h.disposition = disposition
	h.attributes = flagsAndAttributes

	if flags, ok := shareLockFlags(share); ok {
		if err = h.LockFileEx(flags, nil); err != nil {
			_ = h.Close()
			return nil, err
		}
	}

	jww.DEBUG.Printf("Opened %s as %q (%s)", path, mode.name, disposition)
	return h, nil
}
