///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

//go:build linux || darwin

package winfile

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

// statTimes returns the raw access and modification times of path.
func statTimes(t *testing.T, path string) (atime, mtime unix.Timespec) {
	t.Helper()
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		t.Fatalf("Stat %s failed: %+v", path, err)
	}
	return st.Atim, st.Mtim
}

func fileTimeAt(year int) FileTime {
	return FileTimeFromTime(time.Date(year, 6, 1, 12, 0, 0, 0, time.UTC))
}

// Tests that SetFileTime applies both times and that a nil time leaves the
// previous value untouched.
func TestHandle_SetFileTime(t *testing.T) {
	path := writeTestFile(t, "data")
	h := openTestFile(t, path, OpenExisting)
	defer h.Close()

	at, mt := fileTimeAt(2001), fileTimeAt(2002)
	if err := h.SetFileTime(nil, &at, &mt); err != nil {
		t.Fatalf("SetFileTime failed: %+v", err)
	}

	atime, mtime := statTimes(t, path)
	if FileTimeFromUnix(atime.Unix()) != at {
		t.Errorf("Access time not applied.\nexpected: %s\nreceived: %s",
			at.Time(), time.Unix(atime.Unix()).UTC())
	}
	if FileTimeFromUnix(mtime.Unix()) != mt {
		t.Errorf("Write time not applied.\nexpected: %s\nreceived: %s",
			mt.Time(), time.Unix(mtime.Unix()).UTC())
	}

	// Only the write time changes
	mt2 := fileTimeAt(2003)
	if err := h.SetFileTime(nil, nil, &mt2); err != nil {
		t.Fatalf("SetFileTime failed: %+v", err)
	}
	atime2, mtime2 := statTimes(t, path)
	if atime2 != atime {
		t.Errorf("Omitted access time changed.\nexpected: %+v\nreceived: %+v",
			atime, atime2)
	}
	if FileTimeFromUnix(mtime2.Unix()) != mt2 {
		t.Errorf("Write time not applied: %s", time.Unix(mtime2.Unix()).UTC())
	}

	// Only the access time changes; the creation time is ignored
	ct, at2 := fileTimeAt(1999), fileTimeAt(2004)
	if err := h.SetFileTime(&ct, &at2, nil); err != nil {
		t.Fatalf("SetFileTime failed: %+v", err)
	}
	atime3, mtime3 := statTimes(t, path)
	if mtime3 != mtime2 {
		t.Errorf("Omitted write time changed.\nexpected: %+v\nreceived: %+v",
			mtime2, mtime3)
	}
	if FileTimeFromUnix(atime3.Unix()) != at2 {
		t.Errorf("Access time not applied: %s", time.Unix(atime3.Unix()).UTC())
	}
}

// Tests that times after 2262, where a nanosecond count no longer fits in an
// int64, are converted without overflow.
func TestFileTime_timespec_FarFuture(t *testing.T) {
	when := time.Date(2400, 1, 1, 0, 0, 0, 123456700, time.UTC)

	ts, err := FileTimeFromTime(when).timespec()
	if err != nil {
		t.Skipf("Timespec cannot hold %s on this platform: %v", when, err)
	}
	if int64(ts.Sec) != 13569465600 || int64(ts.Nsec) != 123456700 {
		t.Errorf("Wrong timespec.\nexpected: 13569465600.123456700"+
			"\nreceived: %d.%09d", ts.Sec, ts.Nsec)
	}
}

// Tests that a write time in 2400 is applied as given.
func TestHandle_SetFileTime_FarFuture(t *testing.T) {
	path := writeTestFile(t, "data")
	h := openTestFile(t, path, OpenExisting)
	defer h.Close()

	mt := fileTimeAt(2400)
	if _, err := mt.timespec(); err != nil {
		t.Skipf("Timespec cannot hold %s on this platform: %v", mt.Time(), err)
	}
	if err := h.SetFileTime(nil, nil, &mt); err != nil {
		t.Fatalf("SetFileTime failed: %+v", err)
	}

	_, mtime := statTimes(t, path)
	if int64(mtime.Sec) == 1<<31-1 {
		t.Skipf("Filesystem clamps times to 2038")
	}
	if FileTimeFromUnix(mtime.Unix()) != mt {
		t.Errorf("Far future write time not applied."+
			"\nexpected: %s\nreceived: %s", mt.Time(),
			time.Unix(mtime.Unix()).UTC())
	}
}
