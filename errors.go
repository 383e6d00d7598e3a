///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package winfile

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrInvalidHandle    = errors.New("invalid handle")
	ErrNotEnoughMemory  = errors.New("not enough memory")
	ErrNotFound         = errors.New("file not found")
	ErrIo               = errors.New("i/o error")
	ErrAlreadyLocked    = errors.New("file already locked")
	ErrNotLocked        = errors.New("file not locked")
	ErrLockFailed       = errors.New("lock failed")
	ErrUnsupported      = errors.New("operation not supported")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNoData           = errors.New("no data available")
)

// ErrorCode is a Windows last-error value.
type ErrorCode uint32

const (
	ErrorSuccess          ErrorCode = 0
	ErrorFileNotFound     ErrorCode = 2
	ErrorAccessDenied     ErrorCode = 5
	ErrorInvalidHandle    ErrorCode = 6
	ErrorNotEnoughMemory  ErrorCode = 8
	ErrorLockViolation    ErrorCode = 33
	ErrorNotSupported     ErrorCode = 50
	ErrorInvalidParameter ErrorCode = 87
	ErrorNotLocked        ErrorCode = 158
	ErrorLocked           ErrorCode = 212
	ErrorNoData           ErrorCode = 232
	ErrorIoDevice         ErrorCode = 1117
)

// Sentinel return values of GetFileSize and SetFilePointer on failure.
const (
	InvalidFileSize       = 0xFFFFFFFF
	InvalidSetFilePointer = 0xFFFFFFFF
)

var kindCodes = map[error]ErrorCode{
	ErrInvalidHandle:    ErrorInvalidHandle,
	ErrNotEnoughMemory:  ErrorNotEnoughMemory,
	ErrNotFound:         ErrorFileNotFound,
	ErrIo:               ErrorIoDevice,
	ErrAlreadyLocked:    ErrorLocked,
	ErrNotLocked:        ErrorNotLocked,
	ErrLockFailed:       ErrorLockViolation,
	ErrUnsupported:      ErrorNotSupported,
	ErrInvalidParameter: ErrorInvalidParameter,
	ErrNoData:           ErrorNoData,
}

// Error records a failed handle operation. Kind is one of the Err* values of
// this package and Err, if set, is the underlying OS error.
type Error struct {
	Op   string
	Name string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Name != "" {
		msg += " " + e.Name
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying OS error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the Windows last-error value of the error. EACCES and EPERM
// refine ErrIo and ErrNotFound to ErrorAccessDenied.
func (e *Error) Code() ErrorCode {
	if e.Err != nil && (e.Kind == ErrIo || e.Kind == ErrNotFound) &&
		(errors.Is(e.Err, unix.EACCES) || errors.Is(e.Err, unix.EPERM)) {
		return ErrorAccessDenied
	}
	if c, ok := kindCodes[e.Kind]; ok {
		return c
	}
	return ErrorIoDevice
}

// Code returns the last-error value for err: ErrorSuccess for nil and
// ErrorIoDevice for errors that did not come from this package.
func Code(err error) ErrorCode {
	if err == nil {
		return ErrorSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ErrorIoDevice
}

func newError(op, name string, kind, err error) error {
	return errors.WithStack(&Error{Op: op, Name: name, Kind: kind, Err: err})
}

// osError classifies an error from the OS into ErrNotFound or ErrIo.
func osError(op, name string, err error) error {
	if os.IsNotExist(err) {
		return newError(op, name, ErrNotFound, err)
	}
	return newError(op, name, ErrIo, err)
}

// errnoString formats err the way the diagnostics log it: the OS text and
// the errno in hex.
func errnoString(err error) string {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return fmt.Sprintf("%s [%08X]", errno.Error(), uint32(errno))
	}
	return err.Error()
}
