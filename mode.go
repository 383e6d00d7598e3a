///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"os"
)

// Access is the dwDesiredAccess argument of CreateFile.
type Access uint32

const (
	GenericRead  Access = 0x80000000
	GenericWrite Access = 0x40000000
)

// ShareMode is the dwShareMode argument of CreateFile. FileShareRead takes a
// shared advisory lock at open, FileShareWrite an exclusive one.
type ShareMode uint32

const (
	FileShareNone   ShareMode = 0
	FileShareRead   ShareMode = 0x1
	FileShareWrite  ShareMode = 0x2
	FileShareDelete ShareMode = 0x4
)

// Disposition is the dwCreationDisposition argument of CreateFile.
type Disposition uint32

const (
	CreateNew        Disposition = 1
	CreateAlways     Disposition = 2
	OpenExisting     Disposition = 3
	OpenAlways       Disposition = 4
	TruncateExisting Disposition = 5
)

func (d Disposition) String() string {
	switch d {
	case CreateNew:
		return "CREATE_NEW"
	case CreateAlways:
		return "CREATE_ALWAYS"
	case OpenExisting:
		return "OPEN_EXISTING"
	case OpenAlways:
		return "OPEN_ALWAYS"
	case TruncateExisting:
		return "TRUNCATE_EXISTING"
	default:
		return "UNKNOWN"
	}
}

// Flags and attributes of CreateFile. Only FileFlagOverlapped changes
// behaviour: it is rejected.
const (
	FileAttributeReadonly uint32 = 0x00000001
	FileAttributeHidden   uint32 = 0x00000002
	FileAttributeNormal   uint32 = 0x00000080
	FileFlagOverlapped    uint32 = 0x40000000
)

// openMode is the fopen mode a disposition maps to together with the open(2)
// flags that implement it.
type openMode struct {
	name string
	flag int
}

var (
	modeTruncReadWrite = openMode{name: "wb+",
		flag: os.O_RDWR | os.O_CREATE | os.O_TRUNC}
	modeReadWrite = openMode{name: "rb+", flag: os.O_RDWR}
	// "rwb" is not a valid fopen mode; libc honours only the leading 'r'.
	modeNonStandard = openMode{name: "rwb", flag: os.O_RDONLY}
	modeInvalid     = openMode{}
)

// resolveMode maps the desired access and creation disposition to an open
// mode. create reports whether the path must be created in append mode
// before it is reopened with the returned mode.
func resolveMode(access Access, disposition Disposition) (mode openMode, create bool) {
	writable := access&GenericWrite != 0

	switch disposition {
	case CreateAlways:
		if writable {
			return modeTruncReadWrite, true
		}
		return modeNonStandard, true
	case CreateNew:
		return modeTruncReadWrite, true
	case OpenAlways:
		return modeReadWrite, true
	case OpenExisting:
		return modeReadWrite, false
	case TruncateExisting:
		return modeTruncReadWrite, false
	default:
		return modeInvalid, false
	}
}
