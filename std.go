///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

// std.go bridges descriptors the process already owns into handles. These
// handles are bound to the reduced stream table.

import (
	"os"
	"strconv"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/winfile/portableOS"
	"golang.org/x/sys/unix"
)

// StdHandle selects one of the standard streams.
type StdHandle uint32

const (
	StdInputHandle  StdHandle = 0xFFFFFFF6 // (DWORD)-10
	StdOutputHandle StdHandle = 0xFFFFFFF5 // (DWORD)-11
	StdErrorHandle  StdHandle = 0xFFFFFFF4 // (DWORD)-12
)

func (s StdHandle) fd() (int, bool) {
	switch s {
	case StdInputHandle:
		return 0, true
	case StdOutputHandle:
		return 1, true
	case StdErrorHandle:
		return 2, true
	default:
		return -1, false
	}
}

// GetStdHandle returns a new handle for the standard input, output or error
// stream. Closing it leaves the stream open.
func GetStdHandle(which StdHandle) (*Handle, error) {
	fd, ok := which.fd()
	if !ok {
		return nil, newError("GetStdHandle", "", ErrInvalidParameter, nil)
	}
	return GetFileHandleForFileDescriptor(fd)
}

// SetStdHandle always fails: the process-wide streams cannot be redirected.
func SetStdHandle(which StdHandle, h *Handle) error {
	jww.WARN.Printf("SetStdHandle(%#x) not supported", uint32(which))
	return newError("SetStdHandle", "", ErrUnsupported, nil)
}

// SetStdHandleEx always fails, see SetStdHandle.
func SetStdHandleEx(which StdHandle, h *Handle) (old *Handle, err error) {
	jww.WARN.Printf("SetStdHandleEx(%#x) not supported", uint32(which))
	return nil, newError("SetStdHandleEx", "", ErrUnsupported, nil)
}

// GetFileHandleForFileDescriptor wraps an open descriptor in a handle without
// changing its access mode. It fails with ErrInvalidHandle if fd is not open
// or its status flags cannot be read. The handle owns fd from then on:
// closing it closes fd, unless fd is 0, 1 or 2.
func GetFileHandleForFileDescriptor(fd int) (*Handle, error) {
	name := deviceName(fd)
	if fd < 0 {
		return nil, newError("GetFileHandleForFileDescriptor", name,
			ErrInvalidHandle, nil)
	}

	access, err := descriptorAccess(fd)
	if err != nil {
		return nil, newError("GetFileHandleForFileDescriptor", name,
			ErrInvalidHandle, err)
	}

	f := portableOS.Std(fd)
	if f == nil {
		f = portableOS.NewFile(uintptr(fd), name)
		if f == nil {
			return nil, newError("GetFileHandleForFileDescriptor", name,
				ErrInvalidHandle, nil)
		}
	}

	h := newHandle(kindStream, f, fd, name)
	h.access = access
	return h, nil
}

// AdoptFile wraps an already open *os.File in a stream handle, which takes
// ownership of it as GetFileHandleForFileDescriptor does. The descriptor's
// blocking mode is left as it is.
func AdoptFile(f *os.File) (*Handle, error) {
	if f == nil {
		return nil, newError("AdoptFile", "", ErrInvalidHandle, nil)
	}
	fd, err := rawFd(f)
	if err != nil {
		return nil, newError("AdoptFile", f.Name(), ErrInvalidHandle, err)
	}
	name := deviceName(fd)

	access, err := descriptorAccess(fd)
	if err != nil {
		return nil, newError("AdoptFile", name, ErrInvalidHandle, err)
	}

	h := newHandle(kindStream, f, fd, name)
	h.access = access
	return h, nil
}

// rawFd returns the descriptor of f. Unlike (*os.File).Fd it does not put
// the descriptor into blocking mode.
func rawFd(f *os.File) (int, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return -1, err
	}

	fd := -1
	if err = rc.Control(func(s uintptr) { fd = int(s) }); err != nil {
		return -1, err
	}
	return fd, nil
}

// descriptorAccess checks that fd is open and derives the access flags from
// its status flags.
func descriptorAccess(fd int) (Access, error) {
	if _, err := portableOS.FcntlInt(uintptr(fd), unix.F_GETFD, 0); err != nil {
		return 0, err
	}

	flags, err := portableOS.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return 0, err
	}

	switch flags & unix.O_ACCMODE {
	case unix.O_WRONLY:
		return GenericWrite, nil
	case unix.O_RDWR:
		return GenericRead | GenericWrite, nil
	default:
		return GenericRead, nil
	}
}

func deviceName(fd int) string {
	return "device_" + strconv.Itoa(fd)
}
