///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const configHeader = `# winfile configuration file
#
# Every setting can be overridden with an environment variable named after
# its path, e.g. WINFILE_LOGGING_LEVEL=DEBUG or WINFILE_FILES_SHARE=read.
#
# logging.level:       TRACE, DEBUG, INFO, WARN, ERROR, CRITICAL, FATAL
# logging.output:      stdout, stderr or a file path (stdout cannot be
#                      used with cat)
# files.create_mode:   octal permission of new files, before umask
# files.access:        read, write, readwrite
# files.share:         none, read (shared lock), write (exclusive lock)
# files.disposition:   create_new, create_always, open_existing,
#                      open_always, truncate_existing

`

// GenerateYAML renders cfg as a commented YAML document.
func GenerateYAML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}

	return buf.Bytes(), nil
}

// InitConfigToPath writes the default configuration to path. An existing
// file is only replaced when force is set.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("config file already exists at %s "+
			"(use force to overwrite)", path)
	}

	data, err := GenerateYAML(DefaultConfig())
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory")
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write config file")
	}

	return nil
}
