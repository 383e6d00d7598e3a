///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"strconv"

	"gitlab.com/elixxir/winfile/portableOS"
	"golang.org/x/sys/unix"
)

// setFileTimes uses utimensat on the /proc/self/fd entry of the descriptor,
// which is futimens with UTIME_OMIT for the missing times.
func setFileTimes(fd int, _ string, atime, mtime *FileTime) error {
	at, err := omitOr(atime)
	if err != nil {
		return err
	}
	mt, err := omitOr(mtime)
	if err != nil {
		return err
	}

	path := "/proc/self/fd/" + strconv.Itoa(fd)
	return portableOS.UtimesNanoAt(unix.AT_FDCWD, path,
		[]unix.Timespec{at, mt}, 0)
}

func omitOr(ft *FileTime) (unix.Timespec, error) {
	if ft == nil {
		return unix.Timespec{Sec: 0, Nsec: unix.UTIME_OMIT}, nil
	}
	return ft.timespec()
}
