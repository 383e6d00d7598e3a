///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

// Package winfile provides Windows-style file handles on POSIX hosts.
//
// A Handle wraps a named file, a standard stream or an adopted descriptor.
// Operations are dispatched through a capability table chosen by the kind of
// resource when the handle is built: files opened by path support the whole
// set (read, write, size, seek, truncate, lock, set-time), adopted streams
// only read and write. Failures are returned as errors that match one of the
// Err* kinds with errors.Is; Code turns them into Windows last-error values.
//
// Handles are not safe for concurrent use. Open one handle per goroutine and
// use the advisory lock to serialise access to the same file.
package winfile

import (
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/winfile/portableOS"
)

// kind tags the resource a Handle wraps.
type kind uint8

const (
	kindFile kind = iota + 1
	kindStream
)

func (k kind) String() string {
	switch k {
	case kindFile:
		return "file"
	case kindStream:
		return "stream"
	default:
		return "invalid"
	}
}

// highestProtectedFd is the last of the standard stream descriptors, which are
// never closed by CloseHandle.
const highestProtectedFd = 2

// Handle is an open file-like resource. The zero value is not usable; obtain
// handles from CreateFile, GetStdHandle, AdoptFile or
// GetFileHandleForFileDescriptor.
type Handle struct {
	kind kind
	ops  handleOps
	f    portableOS.File
	fd   int
	name string

	access      Access
	share       ShareMode
	disposition Disposition
	attributes  uint32

	locked bool
}

// newHandle binds f to the table of kind k. fd is recorded once so that
// adopted files are never switched to blocking mode by (*os.File).Fd.
func newHandle(k kind, f portableOS.File, fd int, name string) *Handle {
	h := &Handle{kind: k, f: f, fd: fd, name: name}
	switch k {
	case kindFile:
		h.ops = fileTable
	case kindStream:
		h.ops = streamTable
	}
	return h
}

// validate fails with ErrInvalidHandle unless h is open and bound to the
// table of its kind.
func (h *Handle) validate(op string) error {
	if h == nil {
		return newError(op, "", ErrInvalidHandle, nil)
	}
	if h.f == nil || h.ops == nil || h.ops.kind() != h.kind {
		return newError(op, h.name, ErrInvalidHandle, nil)
	}
	return nil
}

// fullOps returns the full capability table, or ErrUnsupported if the handle
// is bound to the reduced one.
func (h *Handle) fullOps(op string) (fileOps, error) {
	if err := h.validate(op); err != nil {
		return nil, err
	}
	ops, ok := h.ops.(fileOps)
	if !ok {
		jww.WARN.Printf("%s is not supported on %s handle %s", op, h.kind,
			h.name)
		return nil, newError(op, h.name, ErrUnsupported, nil)
	}
	return ops, nil
}

// Name returns the path the handle was opened with, or device_<fd> for
// adopted descriptors.
func (h *Handle) Name() string {
	return h.name
}

// Access returns the access flags the handle was opened with.
func (h *Handle) Access() Access {
	return h.access
}

// ShareMode returns the share flags the handle was opened with.
func (h *Handle) ShareMode() ShareMode {
	return h.share
}

// Disposition returns the creation disposition the handle was opened with;
// zero for adopted streams.
func (h *Handle) Disposition() Disposition {
	return h.disposition
}

// Attributes returns the flags and attributes given to CreateFile.
func (h *Handle) Attributes() uint32 {
	return h.attributes
}

// Locked reports whether the handle holds an advisory lock.
func (h *Handle) Locked() bool {
	return h.locked
}

// Fd returns the underlying file descriptor.
func (h *Handle) Fd() (int, error) {
	if err := h.validate("GetFd"); err != nil {
		return -1, err
	}
	return h.ops.fd(h), nil
}

// Close releases the handle. The descriptor is closed unless it is one of the
// standard streams 0, 1 or 2. Closing an already closed handle fails with
// ErrInvalidHandle.
func (h *Handle) Close() error {
	if err := h.validate("CloseHandle"); err != nil {
		return err
	}
	return h.ops.close(h)
}
