///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package config

import "strings"

// Default values.
const (
	defaultLevel       = "WARN"
	defaultOutput      = "stderr"
	defaultCreateMode  = Mode(0666)
	defaultAccess      = "readwrite"
	defaultShare       = "none"
	defaultDisposition = "open_always"
)

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{Files: FilesConfig{CreateMode: defaultCreateMode}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in empty values and normalises the case of the
// enumerated settings. CreateMode is left alone since zero is a valid
// permission.
func ApplyDefaults(cfg *Config) {
	cfg.Logging.Level = strings.ToUpper(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLevel
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = defaultOutput
	}

	f := &cfg.Files
	f.Access = normalise(f.Access, defaultAccess)
	f.Share = normalise(f.Share, defaultShare)
	f.Disposition = normalise(f.Disposition, defaultDisposition)
}

func normalise(s, def string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	return s
}
