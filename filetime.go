///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

// filetime.go translates between Windows FILETIME values and native
// timestamps. The per-OS files (filetime_<os>.go) each provide setFileTimes,
// which applies an access and a write time in a single OS call and leaves a
// nil time untouched.

import (
	"time"

	"golang.org/x/sys/unix"
)

const (
	// EpochDifference is the number of seconds between 1601-01-01 and
	// 1970-01-01.
	EpochDifference = 11644473600

	ticksPerSecond = 10000000
	nsPerTick      = 100
	epochTicks     = EpochDifference * ticksPerSecond
)

// FileTime is a count of 100-nanosecond intervals since 1601-01-01 UTC. Only
// values up to math.MaxInt64 (the year 30828) are meaningful.
type FileTime uint64

// FileTimeFromParts joins the low and high halves of a FILETIME.
func FileTimeFromParts(low, high uint32) FileTime {
	return FileTime(uint64(high)<<32 | uint64(low))
}

// Split returns the low and high halves of the FILETIME.
func (ft FileTime) Split() (low, high uint32) {
	return uint32(ft), uint32(ft >> 32)
}

// FileTimeFromUnix converts seconds and nanoseconds since the Unix epoch.
// Precision below 100ns is truncated.
func FileTimeFromUnix(sec, nsec int64) FileTime {
	return FileTime((sec+EpochDifference)*ticksPerSecond + nsec/nsPerTick)
}

// Unix returns the time as seconds and nanoseconds since the Unix epoch. nsec
// is always in [0, 1e9).
func (ft FileTime) Unix() (sec, nsec int64) {
	d := int64(ft) - epochTicks
	sec = d / ticksPerSecond
	rem := d % ticksPerSecond
	if rem < 0 {
		sec--
		rem += ticksPerSecond
	}
	return sec, rem * nsPerTick
}

// timespec converts the time without passing through a nanosecond count,
// which would overflow after 2262. It fails with ERANGE where the platform's
// Timespec cannot hold the seconds.
func (ft FileTime) timespec() (unix.Timespec, error) {
	return unix.TimeToTimespec(ft.Time())
}

// FileTimeFromTime converts t.
func FileTimeFromTime(t time.Time) FileTime {
	return FileTimeFromUnix(t.Unix(), int64(t.Nanosecond()))
}

// Time returns the FILETIME as a time.Time in UTC.
func (ft FileTime) Time() time.Time {
	return time.Unix(ft.Unix()).UTC()
}
