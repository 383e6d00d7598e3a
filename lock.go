///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	jww "github.com/spf13/jwalterweatherman"
	"golang.org/x/sys/unix"
)

// LockFlags is the dwFlags argument of LockFileEx.
type LockFlags uint32

const (
	LockfileFailImmediately LockFlags = 0x1
	LockfileExclusiveLock   LockFlags = 0x2
)

// flockHow maps the flags to a flock(2) operation.
func (f LockFlags) flockHow() int {
	how := unix.LOCK_SH
	if f&LockfileExclusiveLock != 0 {
		how = unix.LOCK_EX
	}
	if f&LockfileFailImmediately != 0 {
		how |= unix.LOCK_NB
	}
	return how
}

// shareLockFlags returns the lock CreateFile takes for a share mode and
// whether one is needed at all. FileShareWrite wins over FileShareRead.
func shareLockFlags(share ShareMode) (LockFlags, bool) {
	switch {
	case share&FileShareWrite != 0:
		return LockfileExclusiveLock, true
	case share&FileShareRead != 0:
		return 0, true
	default:
		return 0, false
	}
}

// LockFileEx takes an advisory lock on the whole file, shared unless
// LockfileExclusiveLock is set and blocking unless LockfileFailImmediately is
// set. A handle holds at most one lock; a second call fails with
// ErrAlreadyLocked. Byte-range locks (a non-nil overlapped) fail with
// ErrUnsupported.
func (h *Handle) LockFileEx(flags LockFlags, overlapped *Overlapped) error {
	ops, err := h.fullOps("LockFileEx")
	if err != nil {
		return err
	}

	if h.locked {
		jww.ERROR.Printf("File %s already locked!", h.name)
		return newError("LockFileEx", h.name, ErrAlreadyLocked, nil)
	}

	if overlapped != nil {
		jww.ERROR.Printf("Byte-range lock of %s not supported", h.name)
		return newError("LockFileEx", h.name, ErrUnsupported, nil)
	}

	if err = ops.lock(h, flags.flockHow()); err != nil {
		return err
	}

	h.locked = true
	return nil
}

// Lock is LockFileEx without a byte range.
func (h *Handle) Lock(exclusive, failImmediately bool) error {
	var flags LockFlags
	if exclusive {
		flags |= LockfileExclusiveLock
	}
	if failImmediately {
		flags |= LockfileFailImmediately
	}
	return h.LockFileEx(flags, nil)
}

// UnlockFile releases the lock taken by LockFileEx. It fails with
// ErrNotLocked if the handle holds no lock. If the OS refuses to release the
// lock the handle stays locked and the call can be retried.
func (h *Handle) UnlockFile() error {
	return h.unlock("UnlockFile", nil)
}

// UnlockFileEx is UnlockFile for a byte range, which is only supported when
// overlapped is nil.
func (h *Handle) UnlockFileEx(overlapped *Overlapped) error {
	return h.unlock("UnlockFileEx", overlapped)
}

func (h *Handle) unlock(op string, overlapped *Overlapped) error {
	ops, err := h.fullOps(op)
	if err != nil {
		return err
	}

	if !h.locked {
		jww.ERROR.Printf("File %s is not locked!", h.name)
		return newError(op, h.name, ErrNotLocked, nil)
	}

	if overlapped != nil {
		jww.ERROR.Printf("Byte-range unlock of %s not supported", h.name)
		return newError(op, h.name, ErrUnsupported, nil)
	}

	if err = ops.unlock(h); err != nil {
		return err
	}

	h.locked = false
	return nil
}
