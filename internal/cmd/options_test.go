// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/errorlog/internal/config"
	"github.com/mia-platform/errorlog/internal/errorlog"
	"github.com/mia-platform/errorlog/internal/registry"
)

func TestLogOptionsValidate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options          *logOptions
		expectedError    error
		expectedContext  errorlog.Context
		expectedSeverity string
	}{
		"valid options": {
			options: &logOptions{
				argsCount:  2,
				severity:   "Error",
				message:    "boom {code}",
				rawContext: []string{"code=42"},
			},
			expectedContext:  errorlog.Context{"code": "42"},
			expectedSeverity: "error",
		},
		"valid output": {
			options: &logOptions{
				argsCount: 2,
				severity:  "debug",
				output:    config.OutputHCLog,
			},
			expectedContext:  errorlog.Context{},
			expectedSeverity: "debug",
		},
		"no arguments": {
			options:       &logOptions{},
			expectedError: errNoArguments,
		},
		"missing message": {
			options:       &logOptions{argsCount: 1, severity: "error"},
			expectedError: errMissingMessage,
		},
		"too many arguments": {
			options:       &logOptions{argsCount: 3},
			expectedError: errTooManyArguments,
		},
		"none severity": {
			options:       &logOptions{argsCount: 2, severity: "none"},
			expectedError: errorlog.ErrInvalidSeverity,
		},
		"unknown severity": {
			options:       &logOptions{argsCount: 2, severity: "fatal"},
			expectedError: errorlog.ErrInvalidSeverity,
		},
		"invalid output": {
			options:       &logOptions{argsCount: 2, severity: "error", output: "file"},
			expectedError: errInvalidOutput,
		},
		"invalid context": {
			options:       &logOptions{argsCount: 2, severity: "error", rawContext: []string{"code"}},
			expectedError: errInvalidContext,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.options.validate()
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedContext, tc.options.context)
			assert.Equal(t, tc.expectedSeverity, tc.options.severity)
		})
	}
}

func TestLogOptionsMinimumLevel(t *testing.T) {
	t.Parallel()

	componentsFile := filepath.Join("testdata", "components.yaml")

	testCases := map[string]struct {
		options       *logOptions
		config        *config.Config
		expectedLevel errorlog.Level
		expectedError error
		expectAnyErr  bool
	}{
		"level from configuration": {
			options:       &logOptions{},
			config:        &config.Config{Level: "notice"},
			expectedLevel: errorlog.NOTICE,
		},
		"level flag overrides configuration": {
			options:       &logOptions{level: "alert"},
			config:        &config.Config{Level: "notice"},
			expectedLevel: errorlog.ALERT,
		},
		"level flag ignores case": {
			options:       &logOptions{level: "Alert"},
			config:        &config.Config{Level: "notice"},
			expectedLevel: errorlog.ALERT,
		},
		"invalid level flag": {
			options:       &logOptions{level: "verbose"},
			config:        &config.Config{Level: "notice"},
			expectedError: errorlog.ErrInvalidSeverity,
		},
		"level from registered instance": {
			options:       &logOptions{instance: registry.DefaultInstanceName, componentsFile: componentsFile},
			config:        &config.Config{Level: "notice"},
			expectedLevel: errorlog.ERROR,
		},
		"registered instance without level": {
			options:       &logOptions{instance: "audit.logger"},
			config:        &config.Config{Level: "notice", ComponentsFile: componentsFile},
			expectedLevel: errorlog.DefaultLevel,
		},
		"registered instance of another type": {
			options:       &logOptions{instance: "mailer", componentsFile: componentsFile},
			config:        &config.Config{},
			expectAnyErr:  true,
		},
		"missing instance": {
			options:       &logOptions{instance: "missing", componentsFile: componentsFile},
			config:        &config.Config{},
			expectedError: registry.ErrInstanceNotFound,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := tc.options.minimumLevel(tc.config)
			switch {
			case tc.expectAnyErr:
				assert.Error(t, err)
			case tc.expectedError != nil:
				assert.ErrorIs(t, err, tc.expectedError)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expectedLevel, level)
			}
		})
	}
}

func TestInstallOptionsExecute(t *testing.T) {
	t.Parallel()

	componentsFile := filepath.Join(t.TempDir(), "components.yaml")
	opts := &installOptions{componentsFile: componentsFile}

	out := new(bytes.Buffer)
	require.NoError(t, opts.execute(t.Context(), out))
	assert.Equal(t, "logger instance errorlog.errorLogLogger registered in "+componentsFile+"\n", out.String())

	store, err := registry.Open(componentsFile)
	require.NoError(t, err)
	level, err := registry.LoggerLevel(store, registry.DefaultInstanceName)
	require.NoError(t, err)
	assert.Equal(t, registry.InstallLevel, level)
}
