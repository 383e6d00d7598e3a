///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"io"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/winfile/portableOS"
	"golang.org/x/sys/unix"
)

// handleOps is the capability table every handle is bound to.
type handleOps interface {
	kind() kind
	close(h *Handle) error
	fd(h *Handle) int
	read(h *Handle, b []byte) (int, error)
	write(h *Handle, b []byte) (int, error)
}

// fileOps is the full capability table of files opened by path.
type fileOps interface {
	handleOps
	size(h *Handle) (int64, error)
	setEndOfFile(h *Handle) error
	seek(h *Handle, offset int64, whence int) (int64, error)
	lock(h *Handle, how int) error
	unlock(h *Handle) error
	setFileTime(h *Handle, atime, mtime *FileTime) error
}

// The two tables are shared by all handles of their kind.
var (
	fileTable   fileOps   = fileHandleOps{}
	streamTable handleOps = streamHandleOps{}
)

const (
	errShortRead  = "short read %s: got %d, expected %d"
	errShortWrite = "short write %s: got %d, expected %d"
)

// baseOps holds the operations shared by both tables.
type baseOps struct{}

func (baseOps) close(h *Handle) error {
	f := h.f
	h.f = nil
	h.locked = false

	if fd := h.fd; fd <= highestProtectedFd {
		jww.DEBUG.Printf("Released handle %s without closing fd %d",
			h.name, fd)
		return nil
	}

	if err := f.Close(); err != nil {
		jww.ERROR.Printf("close %s failed with %s", h.name, errnoString(err))
		return newError("CloseHandle", h.name, ErrIo, err)
	}
	jww.DEBUG.Printf("Closed handle %s", h.name)
	return nil
}

func (baseOps) fd(h *Handle) int {
	return h.fd
}

func (baseOps) read(h *Handle, b []byte) (int, error) {
	n, err := io.ReadFull(h.f, b)
	if err == nil {
		return n, nil
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return n, shortRead(h, n, len(b))
	}
	jww.ERROR.Printf("read %s failed with %s", h.name, errnoString(err))
	return n, newError("ReadFile", h.name, ErrIo, err)
}

func shortRead(h *Handle, n, expected int) error {
	jww.DEBUG.Printf(errShortRead, h.name, n, expected)
	return newError("ReadFile", h.name, ErrIo,
		errors.Errorf(errShortRead, h.name, n, expected))
}

func (baseOps) write(h *Handle, b []byte) (int, error) {
	n, err := h.f.Write(b)
	if err != nil {
		jww.ERROR.Printf("write %s failed with %s", h.name, errnoString(err))
		return n, newError("WriteFile", h.name, ErrIo, err)
	}
	if n != len(b) {
		return n, newError("WriteFile", h.name, ErrIo,
			errors.Errorf(errShortWrite, h.name, n, len(b)))
	}
	return n, nil
}

// streamHandleOps is the reduced table of adopted streams: no size, seek,
// lock or time operations.
type streamHandleOps struct {
	baseOps
}

func (streamHandleOps) kind() kind {
	return kindStream
}

// read calls read(2) on the raw descriptor. Going through the runtime poller
// would park a non-blocking descriptor on EAGAIN; here it fails with
// ErrNoData instead.
func (streamHandleOps) read(h *Handle, b []byte) (int, error) {
	n := 0
	for n < len(b) {
		m, err := portableOS.Read(h.fd, b[n:])
		switch {
		case err == unix.EINTR:
			continue
		case errors.Is(err, unix.EAGAIN):
			jww.DEBUG.Printf("read %s would block after %d of %d bytes",
				h.name, n, len(b))
			return n, newError("ReadFile", h.name, ErrNoData, err)
		case err != nil:
			jww.ERROR.Printf("read %s failed with %s", h.name,
				errnoString(err))
			return n, newError("ReadFile", h.name, ErrIo, err)
		case m == 0:
			return n, shortRead(h, n, len(b))
		}
		n += m
	}
	return n, nil
}
