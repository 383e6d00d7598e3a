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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateYAML(t *testing.T) {
	data, err := GenerateYAML(DefaultConfig())
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "# winfile configuration file"))
	for _, section := range []string{"logging:", "files:", "create_mode:", "0666"} {
		assert.Contains(t, content, section)
	}

	var raw map[string]map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "WARN", raw["logging"]["level"])
	assert.Equal(t, "open_always", raw["files"]["disposition"])
	assert.Equal(t, "0666", raw["files"]["create_mode"])
}

func TestInitConfigToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, InitConfigToPath(path, false))

	// The generated file loads back to the defaults
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	// An existing file is kept unless forced
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: INFO\n"), 0644))
	err = InitConfigToPath(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "logging:\n  level: INFO\n", string(content))

	require.NoError(t, InitConfigToPath(path, true))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}
