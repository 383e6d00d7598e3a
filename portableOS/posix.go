///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

// This file is only compiled for POSIX hosts that provide flock(2).

package portableOS

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// OpenFile is the generalized open call. It opens the named file with the
// specified flag (os.O_RDONLY etc.). If the file does not exist, and the
// os.O_CREATE flag is passed, it is created with mode perm (before umask).
var OpenFile = func(name string, flag int, perm FileMode) (File, error) {
	f, err := os.OpenFile(name, flag, os.FileMode(perm))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NewFile returns a new File with the given file descriptor and name. The
// returned value is nil if fd is not a valid file descriptor. The File takes
// ownership of fd and closes it when it is closed or garbage collected, so
// it must never be used for the standard streams; use Std instead.
var NewFile = func(fd uintptr, name string) File {
	f := os.NewFile(fd, name)
	if f == nil {
		return nil
	}
	return f
}

// Std returns the process-wide File for descriptor 0, 1 or 2 and nil for any
// other descriptor.
var Std = func(fd int) File {
	switch fd {
	case 0:
		return os.Stdin
	case 1:
		return os.Stdout
	case 2:
		return os.Stderr
	default:
		return nil
	}
}

// Read calls read(2) once on fd. A non-blocking descriptor with no data
// available fails with unix.EAGAIN.
var Read = unix.Read

// Flock applies or removes an advisory lock on the open file fd. how is one of
// unix.LOCK_SH, unix.LOCK_EX or unix.LOCK_UN, optionally or'ed with
// unix.LOCK_NB.
var Flock = unix.Flock

// FcntlInt performs a fcntl syscall on fd with the provided command and
// argument.
var FcntlInt = unix.FcntlInt

// Fstat returns the raw stat structure of the open file fd.
var Fstat = unix.Fstat

// UtimesNanoAt changes the access and modification times of path relative to
// dirfd. A Timespec with Nsec set to unix.UTIME_OMIT leaves that time
// unchanged.
var UtimesNanoAt = unix.UtimesNanoAt

// UtimesNano changes the access and modification times of path with
// nanosecond precision.
var UtimesNano = unix.UtimesNano

// Futimes changes the access and modification times of the open file fd with
// microsecond precision.
var Futimes = unix.Futimes

// Chtimes changes the access and modification times of the named file. A zero
// time.Time leaves the corresponding time unchanged.
var Chtimes = func(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}
