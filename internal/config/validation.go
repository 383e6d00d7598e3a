///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks the configuration against its struct tags and the rules
// that cannot be expressed as tags. It expects ApplyDefaults to have run.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	// A log file must be in an existing directory
	switch out := cfg.Logging.Output; out {
	case outputStdout, outputStderr:
	default:
		if info, err := os.Stat(filepath.Dir(out)); err != nil || !info.IsDir() {
			return errors.Errorf("logging.output: directory of %q does not exist",
				out)
		}
	}

	return nil
}

// formatValidationError converts validator errors into a readable message
// naming the first failing field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return errors.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return errors.WithStack(err)
}
