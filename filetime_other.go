///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

//go:build netbsd

package winfile

import (
	"time"

	"gitlab.com/elixxir/winfile/portableOS"
)

// setFileTimes hands the path to os.Chtimes, where a zero time.Time leaves the
// corresponding time unchanged.
func setFileTimes(_ int, name string, atime, mtime *FileTime) error {
	var at, mt time.Time
	if atime != nil {
		at = atime.Time()
	}
	if mtime != nil {
		mt = mtime.Time()
	}
	return portableOS.Chtimes(name, at, mt)
}
