///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"testing"
	"time"
)

// Tests that the Unix epoch is EpochDifference seconds after the FILETIME
// epoch in both directions.
func TestFileTime_Epoch(t *testing.T) {
	ft := FileTime(EpochDifference * ticksPerSecond)
	sec, nsec := ft.Unix()
	if sec != 0 || nsec != 0 {
		t.Errorf("Unix epoch mismatch.\nexpected: 0 0\nreceived: %d %d",
			sec, nsec)
	}

	if got := FileTimeFromUnix(0, 0); got != ft {
		t.Errorf("FileTimeFromUnix(0, 0).\nexpected: %d\nreceived: %d",
			ft, got)
	}

	if got := FileTime(0).Time(); !got.Equal(
		time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("FileTime(0) is %s", got)
	}
}

// Tests that converting a FILETIME to native time and back yields the same
// tick count, including values before 1970.
func TestFileTime_RoundTrip(t *testing.T) {
	values := []FileTime{
		0,
		1,
		9999999,
		EpochDifference*ticksPerSecond - 1,
		EpochDifference * ticksPerSecond,
		132223104000000000, // 2020-01-01
		132223104001234567,
		0x7FFFFFFFFFFFFFFF / 2,
	}

	for _, ft := range values {
		sec, nsec := ft.Unix()
		if nsec < 0 || nsec >= 1e9 || nsec%nsPerTick != 0 {
			t.Errorf("Invalid nsec %d for %d", nsec, ft)
		}
		if got := FileTimeFromUnix(sec, nsec); got != ft {
			t.Errorf("Unix round trip failed.\nexpected: %d\nreceived: %d",
				ft, got)
		}
		if got := FileTimeFromTime(ft.Time()); got != ft {
			t.Errorf("Time round trip failed.\nexpected: %d\nreceived: %d",
				ft, got)
		}
	}
}

// Tests a known date.
func TestFileTimeFromTime(t *testing.T) {
	date := time.Date(2020, 1, 1, 0, 0, 0, 123456700, time.UTC)
	expected := FileTime(132223104001234567)
	if got := FileTimeFromTime(date); got != expected {
		t.Errorf("Wrong FILETIME for %s.\nexpected: %d\nreceived: %d",
			date, expected, got)
	}
}

// Tests that Split and FileTimeFromParts are inverses.
func TestFileTime_Split(t *testing.T) {
	ft := FileTime(0x01D5C03669BF4000)
	low, high := ft.Split()
	if low != 0x69BF4000 || high != 0x01D5C036 {
		t.Errorf("Unexpected halves %#x %#x", low, high)
	}
	if got := FileTimeFromParts(low, high); got != ft {
		t.Errorf("FileTimeFromParts.\nexpected: %#x\nreceived: %#x", ft, got)
	}
}
