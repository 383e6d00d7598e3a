///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/winfile"
	"gitlab.com/elixxir/winfile/portableOS"
)

// Special values of LoggingConfig.Output.
const (
	outputStdout = "stdout"
	outputStderr = "stderr"
)

var levels = map[string]jww.Threshold{
	"TRACE":    jww.LevelTrace,
	"DEBUG":    jww.LevelDebug,
	"INFO":     jww.LevelInfo,
	"WARN":     jww.LevelWarn,
	"ERROR":    jww.LevelError,
	"CRITICAL": jww.LevelCritical,
	"FATAL":    jww.LevelFatal,
}

var accessModes = map[string]winfile.Access{
	"read":      winfile.GenericRead,
	"write":     winfile.GenericWrite,
	"readwrite": winfile.GenericRead | winfile.GenericWrite,
}

var shareModes = map[string]winfile.ShareMode{
	"none":  winfile.FileShareNone,
	"read":  winfile.FileShareRead,
	"write": winfile.FileShareWrite,
}

var dispositions = map[string]winfile.Disposition{
	"create_new":        winfile.CreateNew,
	"create_always":     winfile.CreateAlways,
	"open_existing":     winfile.OpenExisting,
	"open_always":       winfile.OpenAlways,
	"truncate_existing": winfile.TruncateExisting,
}

// logFile is the log file opened by the last Apply, if any.
var logFile *os.File

// Apply points the jww diagnostics at the configured output and sets the
// permission used by winfile.CreateFile for new files.
func Apply(cfg *Config) error {
	level, ok := levels[strings.ToUpper(cfg.Logging.Level)]
	if !ok {
		return errors.Errorf("unknown log level %q", cfg.Logging.Level)
	}

	var f *os.File
	switch cfg.Logging.Output {
	case outputStdout:
		jww.SetLogOutput(io.Discard)
		jww.SetStdoutThreshold(level)
	case outputStderr:
		jww.SetLogOutput(os.Stderr)
		jww.SetStdoutThreshold(jww.LevelFatal)
	default:
		var err error
		f, err = os.OpenFile(cfg.Logging.Output,
			os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			return errors.Wrapf(err, "failed to open log file %s",
				cfg.Logging.Output)
		}
		jww.SetLogOutput(f)
		jww.SetStdoutThreshold(jww.LevelFatal)
	}
	jww.SetLogThreshold(level)

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f

	winfile.CreateMode = portableOS.FileMode(cfg.Files.CreateMode)

	jww.DEBUG.Printf("Logging at %s to %s, creating files with mode %#o",
		cfg.Logging.Level, cfg.Logging.Output, uint32(cfg.Files.CreateMode))

	return nil
}

// OpenOptions are the CreateFile parameters described by a FilesConfig.
type OpenOptions struct {
	Access      winfile.Access
	Share       winfile.ShareMode
	Disposition winfile.Disposition
}

// OpenOptions converts the configured names into CreateFile parameters.
func (f FilesConfig) OpenOptions() (OpenOptions, error) {
	var opts OpenOptions
	var err error
	if opts.Access, err = ParseAccess(f.Access); err != nil {
		return OpenOptions{}, err
	}
	if opts.Share, err = ParseShare(f.Share); err != nil {
		return OpenOptions{}, err
	}
	if opts.Disposition, err = ParseDisposition(f.Disposition); err != nil {
		return OpenOptions{}, err
	}
	return opts, nil
}

// ParseAccess parses read, write or readwrite.
func ParseAccess(s string) (winfile.Access, error) {
	a, ok := accessModes[strings.ToLower(s)]
	if !ok {
		return 0, errors.Errorf("unknown access %q", s)
	}
	return a, nil
}

// ParseShare parses none, read or write.
func ParseShare(s string) (winfile.ShareMode, error) {
	m, ok := shareModes[strings.ToLower(s)]
	if !ok {
		return 0, errors.Errorf("unknown share mode %q", s)
	}
	return m, nil
}

// ParseDisposition parses a creation disposition such as open_existing.
// The Windows spelling (OPEN_EXISTING) is accepted too.
func ParseDisposition(s string) (winfile.Disposition, error) {
	d, ok := dispositions[strings.ToLower(s)]
	if !ok {
		return 0, errors.Errorf("unknown disposition %q", s)
	}
	return d, nil
}
