// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/errorlog/internal/errorlog"
)

func TestLoadConfig(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		envVars, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, &Config{Level: "debug", Output: OutputStderr, ComponentsFile: "components.yaml"}, envVars)
		assert.Equal(t, errorlog.DEBUG, envVars.MinimumLevel())
	})

	t.Run("values from the environment", func(t *testing.T) {
		t.Setenv("ERRORLOG_LEVEL", "Warning")
		t.Setenv("ERRORLOG_OUTPUT", "STDOUT")
		t.Setenv("ERRORLOG_COMPONENTS_FILE", "/etc/errorlog/components.yaml")

		envVars, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, errorlog.WARNING, envVars.MinimumLevel())
		assert.Equal(t, OutputStdout, envVars.Output)
		assert.Equal(t, "/etc/errorlog/components.yaml", envVars.ComponentsFile)
	})

	t.Run("invalid values are all reported", func(t *testing.T) {
		t.Setenv("ERRORLOG_LEVEL", "verbose")
		t.Setenv("ERRORLOG_OUTPUT", "syslog")

		_, err := LoadConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
		assert.Contains(t, err.Error(), "ERRORLOG_LEVEL must be one of")
		assert.Contains(t, err.Error(), "ERRORLOG_OUTPUT must be one of")
	})

	t.Run("env file", func(t *testing.T) {
		unsetForTest(t, "ERRORLOG_LEVEL", "ERRORLOG_OUTPUT")

		envVars, err := LoadConfig(filepath.Join("testdata", "errorlog.env"))
		require.NoError(t, err)
		assert.Equal(t, errorlog.NOTICE, envVars.MinimumLevel())
		assert.Equal(t, OutputHCLog, envVars.Output)
	})

	t.Run("env file does not override the environment", func(t *testing.T) {
		t.Setenv("ERRORLOG_LEVEL", "error")
		unsetForTest(t, "ERRORLOG_OUTPUT")

		envVars, err := LoadConfig(filepath.Join("testdata", "errorlog.env"))
		require.NoError(t, err)
		assert.Equal(t, errorlog.ERROR, envVars.MinimumLevel())
		assert.Equal(t, OutputHCLog, envVars.Output)
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join("testdata", "missing.env"))
		require.ErrorIs(t, err, ErrEnvFile)
	})
}

func TestValidateEnvironmentVariables(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		config        *Config
		expectedError bool
	}{
		"valid configuration": {
			config: &Config{Level: "none", Output: "hclog", ComponentsFile: "c.yaml"},
		},
		"invalid level": {
			config:        &Config{Level: "panic", Output: "stderr", ComponentsFile: "c.yaml"},
			expectedError: true,
		},
		"invalid output": {
			config:        &Config{Level: "info", Output: "file", ComponentsFile: "c.yaml"},
			expectedError: true,
		},
		"empty components file": {
			config:        &Config{Level: "info", Output: "stderr"},
			expectedError: true,
		},
	}

	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := validateEnvironmentVariables(test.config)
			if test.expectedError {
				require.ErrorIs(t, err, ErrEnvVariablesNotValid)
				return
			}
			require.NoError(t, err)
		})
	}
}

// unsetForTest removes keys from the environment and restores them when the test ends.
// godotenv only sets variables that are not already defined.
func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
