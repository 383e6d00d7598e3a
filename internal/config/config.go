///////////////////////////////////////////////////////////////////////////////
// Copyright © 2020 xx network SEZC                                          //
//                                                                           //
// Use of this source code is governed by a license that can be found in the //
// LICENSE file                                                              //
///////////////////////////////////////////////////////////////////////////////

// Package config loads the settings of the winfile command line tool.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (WINFILE_*)
//  2. Configuration file (YAML)
//  3. Default values
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the complete winfile configuration.
type Config struct {
	// Logging controls where diagnostics go and how verbose they are
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Files holds the defaults used when the tool opens a file
	Files FilesConfig `mapstructure:"files" yaml:"files"`
}

// LoggingConfig controls the jww diagnostics side channel.
type LoggingConfig struct {
	// Level is the minimum level that is printed
	// Valid values: TRACE, DEBUG, INFO, WARN, ERROR, CRITICAL, FATAL
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=TRACE DEBUG INFO WARN ERROR CRITICAL FATAL"`

	// Output is stdout, stderr or the path of a log file. With stdout the
	// diagnostics share the stream that cat writes file contents to, so cat
	// refuses to run.
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// ToStdout reports whether diagnostics are printed on standard output.
func (l LoggingConfig) ToStdout() bool {
	return l.Output == outputStdout
}

// FilesConfig holds the parameters passed to CreateFile.
type FilesConfig struct {
	// CreateMode is the permission of newly created files before umask
	CreateMode Mode `mapstructure:"create_mode" yaml:"create_mode" validate:"lte=511"` // 511 = 0777

	// Access is one of read, write, readwrite
	Access string `mapstructure:"access" yaml:"access" validate:"required,oneof=read write readwrite"`

	// Share is one of none, read, write
	Share string `mapstructure:"share" yaml:"share" validate:"required,oneof=none read write"`

	// Disposition is the creation disposition used by commands that write
	Disposition string `mapstructure:"disposition" yaml:"disposition" validate:"required,oneof=create_new create_always open_existing open_always truncate_existing"`
}

// Mode is a Unix permission that is written and read in octal.
type Mode uint32

// MarshalYAML renders the mode as an octal string such as "0644".
func (m Mode) MarshalYAML() (interface{}, error) {
	return "0" + strconv.FormatUint(uint64(m), 8), nil
}

// Load reads the configuration from configPath, the environment and the
// defaults, then validates it. An empty configPath searches the default
// location; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := decode(v.AllSettings(), &cfg); err != nil {
		return nil, errors.WithMessage(err, "failed to decode config")
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.WithMessage(err, "configuration validation failed")
	}

	return &cfg, nil
}

// setupViper configures the environment binding and the config file search.
func setupViper(v *viper.Viper, configPath string) {
	// Example: WINFILE_LOGGING_LEVEL=DEBUG
	v.SetEnvPrefix("WINFILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so that environment variables are seen even
	// without a config file
	d := DefaultConfig()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("files.create_mode", d.Files.CreateMode)
	v.SetDefault("files.access", d.Files.Access)
	v.SetDefault("files.share", d.Files.Share)
	v.SetDefault("files.disposition", d.Files.Disposition)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return errors.WithMessage(err, "failed to read config file")
}

// decode copies the merged viper settings into cfg.
func decode(settings map[string]interface{}, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToModeHook,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(decoder.Decode(settings))
}

var modeType = reflect.TypeOf(Mode(0))

// stringToModeHook parses strings such as "0644", "644" or "0o644" as octal
// permissions.
func stringToModeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != modeType || from.Kind() != reflect.String {
		return data, nil
	}

	s := reflect.ValueOf(data).String()
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0o"), "0O")
	m, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return nil, errors.Errorf("invalid permission %q: not an octal number", s)
	}

	return Mode(m), nil
}

// getConfigDir returns $XDG_CONFIG_HOME/winfile, ~/.config/winfile or the
// current directory when no home directory is known.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "winfile")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "winfile")
}

// GetDefaultConfigPath returns the path searched when no file is given.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
