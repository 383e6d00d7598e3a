///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

//go:build freebsd || openbsd || dragonfly

package winfile

import (
	"gitlab.com/elixxir/winfile/portableOS"
	"golang.org/x/sys/unix"
)

// setFileTimes reuses the current times from fstat for the missing values and
// applies both to the path with utimes.
func setFileTimes(fd int, name string, atime, mtime *FileTime) error {
	var st unix.Stat_t
	if err := portableOS.Fstat(fd, &st); err != nil {
		return err
	}

	ts := []unix.Timespec{st.Atim, st.Mtim}
	for i, ft := range []*FileTime{atime, mtime} {
		if ft == nil {
			continue
		}
		var err error
		if ts[i], err = ft.timespec(); err != nil {
			return err
		}
	}
	return portableOS.UtimesNano(name, ts)
}
