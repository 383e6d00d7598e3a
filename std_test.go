///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Tests that GetStdHandle returns stream handles named after the descriptor.
func TestGetStdHandle(t *testing.T) {
	tests := map[StdHandle]int{
		StdInputHandle:  0,
		StdOutputHandle: 1,
		StdErrorHandle:  2,
	}

	for which, fd := range tests {
		if !fdIsOpen(fd) {
			continue
		}
		h, err := GetStdHandle(which)
		if err != nil {
			t.Fatalf("GetStdHandle(%#x) failed: %+v", uint32(which), err)
		}
		if got, _ := h.Fd(); got != fd {
			t.Errorf("Wrong descriptor.\nexpected: %d\nreceived: %d", fd, got)
		}
		if h.Name() != deviceName(fd) {
			t.Errorf("Wrong name.\nexpected: %s\nreceived: %s",
				deviceName(fd), h.Name())
		}
		if h.kind != kindStream {
			t.Errorf("Standard handle is a %s handle", h.kind)
		}
		h.Close()
	}
}

// Tests that an unknown standard handle is rejected.
func TestGetStdHandle_Invalid(t *testing.T) {
	h, err := GetStdHandle(StdHandle(0))
	if h != nil || !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Unknown standard handle returned %v: %+v", h, err)
	}
}

// Tests that the standard streams can never be redirected.
func TestSetStdHandle(t *testing.T) {
	h, err := GetStdHandle(StdOutputHandle)
	if err != nil {
		t.Fatalf("GetStdHandle failed: %+v", err)
	}
	defer h.Close()

	if err = SetStdHandle(StdOutputHandle, h); !errors.Is(err, ErrUnsupported) {
		t.Errorf("SetStdHandle returned the wrong error."+
			"\nexpected: %v\nreceived: %+v", ErrUnsupported, err)
	}

	old, err := SetStdHandleEx(StdErrorHandle, h)
	if old != nil || !errors.Is(err, ErrUnsupported) {
		t.Errorf("SetStdHandleEx returned %v: %+v", old, err)
	}
}

// Tests that stream handles only support reading and writing.
func TestStreamHandle_ReducedTable(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %+v", err)
	}
	defer r.Close()

	h, err := AdoptFile(w)
	if err != nil {
		t.Fatalf("AdoptFile failed: %+v", err)
	}
	defer h.Close()

	ft := FileTime(132223104000000000)
	checks := map[string]error{
		"SetEndOfFile": h.SetEndOfFile(),
		"LockFileEx":   h.LockFileEx(LockfileExclusiveLock, nil),
		"UnlockFile":   h.UnlockFile(),
		"UnlockFileEx": h.UnlockFileEx(nil),
		"SetFileTime":  h.SetFileTime(nil, &ft, &ft),
	}
	var size, pos int64
	size, checks["GetFileSize"] = h.GetFileSize()
	pos, checks["SetFilePointer"] = h.SetFilePointer(0, FileBegin)

	for op, err := range checks {
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s on stream returned the wrong error."+
				"\nexpected: %v\nreceived: %+v", op, ErrUnsupported, err)
		}
	}
	if size != InvalidFileSize || pos != InvalidSetFilePointer {
		t.Errorf("Sentinels not returned: %d %d", size, pos)
	}
	if h.Locked() {
		t.Errorf("Stream handle marked locked")
	}
}

// Tests that data written through an adopted pipe arrives at the other end and
// that the access mode follows the descriptor.
func TestAdoptFile_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %+v", err)
	}

	wh, err := AdoptFile(w)
	if err != nil {
		t.Fatalf("AdoptFile(w) failed: %+v", err)
	}
	rh, err := AdoptFile(r)
	if err != nil {
		t.Fatalf("AdoptFile(r) failed: %+v", err)
	}
	defer rh.Close()

	if wh.Access() != GenericWrite || rh.Access() != GenericRead {
		t.Errorf("Wrong access modes: %#x %#x", uint32(wh.Access()),
			uint32(rh.Access()))
	}

	data := []byte("through the pipe")
	if _, err = wh.WriteFile(data, nil); err != nil {
		t.Fatalf("WriteFile failed: %+v", err)
	}
	if err = wh.Close(); err != nil {
		t.Fatalf("Close failed: %+v", err)
	}

	buf := make([]byte, len(data))
	if _, err = rh.ReadFile(buf, nil); err != nil {
		t.Fatalf("ReadFile failed: %+v", err)
	}
	if !bytes.Equal(buf, data) {
		t.Errorf("Wrong data.\nexpected: %q\nreceived: %q", data, buf)
	}

	// The writer is gone so the next read hits end of file
	if _, err = rh.ReadFile(buf[:1], nil); !errors.Is(err, ErrIo) {
		t.Errorf("Read after writer closed returned: %+v", err)
	}
}

// Tests that invalid descriptors cannot be adopted.
func TestGetFileHandleForFileDescriptor_Invalid(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %+v", err)
	}
	fd := int(r.Fd())
	r.Close()
	w.Close()

	for _, bad := range []int{-1, fd} {
		h, err := GetFileHandleForFileDescriptor(bad)
		if h != nil || !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Descriptor %d adopted: %+v", bad, err)
		}
	}

	if h, err := AdoptFile(nil); h != nil || !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("nil file adopted: %+v", err)
	}
}

// readWithin calls ReadFile on h and fails the test if it does not return
// within two seconds.
func readWithin(t *testing.T, h *Handle, b []byte) (int, error) {
	t.Helper()
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := h.ReadFile(b, nil)
		done <- result{n, err}
	}()

	select {
	case r := <-done:
		return r.n, r.err
	case <-time.After(2 * time.Second):
		t.Fatalf("ReadFile on %s blocked instead of failing", h.Name())
		return 0, nil
	}
}

// isNonBlocking reports whether O_NONBLOCK is set on fd.
func isNonBlocking(t *testing.T, fd int) bool {
	t.Helper()
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		t.Fatalf("F_GETFL on %d failed: %+v", fd, err)
	}
	return flags&unix.O_NONBLOCK != 0
}

// Tests that reading an empty non-blocking descriptor fails with ErrNoData
// instead of waiting, and that adopting it leaves O_NONBLOCK set.
func TestGetFileHandleForFileDescriptor_NonBlockingRead(t *testing.T) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		t.Fatalf("Pipe failed: %+v", err)
	}
	defer unix.Close(p[1])
	if err := unix.SetNonblock(p[0], true); err != nil {
		t.Fatalf("SetNonblock failed: %+v", err)
	}

	h, err := GetFileHandleForFileDescriptor(p[0])
	if err != nil {
		t.Fatalf("GetFileHandleForFileDescriptor failed: %+v", err)
	}
	defer h.Close()

	buf := make([]byte, 4)
	_, err = readWithin(t, h, buf)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("Read of empty descriptor returned the wrong error."+
			"\nexpected: %v\nreceived: %+v", ErrNoData, err)
	}
	if Code(err) != ErrorNoData {
		t.Errorf("Wrong code.\nexpected: %d\nreceived: %d",
			ErrorNoData, Code(err))
	}

	if _, err = h.Fd(); err != nil || !isNonBlocking(t, p[0]) {
		t.Errorf("Adopted descriptor lost O_NONBLOCK (%v)", err)
	}

	// Available data is returned in full
	if _, err = unix.Write(p[1], []byte("abcd")); err != nil {
		t.Fatalf("Write failed: %+v", err)
	}
	if _, err = readWithin(t, h, buf); err != nil {
		t.Fatalf("ReadFile failed: %+v", err)
	}
	if string(buf) != "abcd" {
		t.Errorf("Wrong data.\nexpected: %q\nreceived: %q", "abcd", buf)
	}

	// Running dry part way through reports what was transferred
	if _, err = unix.Write(p[1], []byte("ef")); err != nil {
		t.Fatalf("Write failed: %+v", err)
	}
	n, err := readWithin(t, h, buf)
	if n != 2 || !errors.Is(err, ErrNoData) {
		t.Errorf("Partial read returned %d bytes: %+v", n, err)
	}
}

// Tests that AdoptFile keeps the blocking mode of the file and reads from it
// without waiting.
func TestAdoptFile_KeepsNonBlocking(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %+v", err)
	}
	defer w.Close()

	var fd int
	rc, err := r.SyscallConn()
	if err != nil {
		t.Fatalf("SyscallConn failed: %+v", err)
	}
	if err = rc.Control(func(s uintptr) { fd = int(s) }); err != nil {
		t.Fatalf("Control failed: %+v", err)
	}
	if err = unix.SetNonblock(fd, true); err != nil {
		t.Fatalf("SetNonblock failed: %+v", err)
	}

	h, err := AdoptFile(r)
	if err != nil {
		t.Fatalf("AdoptFile failed: %+v", err)
	}
	defer h.Close()

	if got, _ := h.Fd(); got != fd {
		t.Errorf("Wrong descriptor.\nexpected: %d\nreceived: %d", fd, got)
	}
	if !isNonBlocking(t, fd) {
		t.Errorf("AdoptFile cleared O_NONBLOCK")
	}

	if _, err = readWithin(t, h, make([]byte, 1)); !errors.Is(err, ErrNoData) {
		t.Errorf("Read of empty pipe returned the wrong error."+
			"\nexpected: %v\nreceived: %+v", ErrNoData, err)
	}
}
