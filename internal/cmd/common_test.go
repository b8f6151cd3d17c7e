// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/errorlog/internal/errorlog"
)

func TestCompletion(t *testing.T) {
	t.Parallel()
	testCases := map[string]struct {
		args               []string
		toComplete         string
		expectedCompletion []string
	}{
		"no args, complete every severity": {
			args: []string{},
			expectedCompletion: []string{
				"emergency\tsystem is unusable",
				"alert\taction must be taken immediately",
				"critical\tcritical conditions",
				"error\truntime errors",
				"warning\texceptional occurrences that are not errors",
				"notice\tnormal but significant events",
				"info\tinteresting events",
				"debug\tdetailed debug information",
			},
		},
		"some args, no completions": {
			args: []string{"error"},
		},
		"no args, partial string, return filtered severities": {
			args:       []string{},
			toComplete: "e",
			expectedCompletion: []string{
				"emergency\tsystem is unusable",
				"error\truntime errors",
			},
		},
		"none is not a valid severity": {
			args:       []string{},
			toComplete: "n",
			expectedCompletion: []string{
				"notice\tnormal but significant events",
			},
		},
		"no args, partial wrong string, return no severity": {
			args:       []string{},
			toComplete: "x",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			args, directive := validArgsFunc(nil, test.args, test.toComplete)
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.ElementsMatch(t, test.expectedCompletion, args)
		})
	}
}

func TestParseContext(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		pairs           []string
		expectedContext errorlog.Context
		expectedErr     error
	}{
		"no pairs": {
			expectedContext: errorlog.Context{},
		},
		"multiple pairs": {
			pairs:           []string{"name=bob", "code=42"},
			expectedContext: errorlog.Context{"name": "bob", "code": "42"},
		},
		"value containing the separator": {
			pairs:           []string{"query=a=b"},
			expectedContext: errorlog.Context{"query": "a=b"},
		},
		"empty value": {
			pairs:           []string{"name="},
			expectedContext: errorlog.Context{"name": ""},
		},
		"last value wins": {
			pairs:           []string{"name=bob", "name=alice"},
			expectedContext: errorlog.Context{"name": "alice"},
		},
		"missing separator": {
			pairs:       []string{"name"},
			expectedErr: errInvalidContext,
		},
		"missing key": {
			pairs:       []string{"=value"},
			expectedErr: errInvalidContext,
		},
		"reserved exception key": {
			pairs:       []string{"exception=boom"},
			expectedErr: errInvalidContext,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			ctx, err := parseContext(test.pairs)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				assert.Nil(t, ctx)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedContext, ctx)
		})
	}
}

func TestSinkForOutput(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		output         string
		expectedStdout string
		expectedStderr string
	}{
		"stdout": {
			output:         "stdout",
			expectedStdout: "line\n",
		},
		"stderr": {
			output:         "stderr",
			expectedStderr: "line\n",
		},
		"unknown output falls back to stderr": {
			output:         "",
			expectedStderr: "line\n",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			stdout := new(bytes.Buffer)
			stderr := new(bytes.Buffer)
			sinkForOutput(test.output, stdout, stderr).WriteLine("line")

			assert.Equal(t, test.expectedStdout, stdout.String())
			assert.Equal(t, test.expectedStderr, stderr.String())
		})
	}

	t.Run("hclog", func(t *testing.T) {
		t.Parallel()

		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		sinkForOutput("hclog", stdout, stderr).WriteLine("line")

		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "[INFO]  errorlog: line\n")
	})
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		err            error
		expectedErr    error
		expectedStderr string
		expectedUsage  bool
	}{
		"no arguments print only usage": {
			err:           errNoArguments,
			expectedUsage: true,
		},
		"validation errors print the error and usage": {
			err:            errMissingMessage,
			expectedErr:    errMissingMessage,
			expectedStderr: "no message provided\n",
			expectedUsage:  true,
		},
		"other errors print only the error": {
			err:            errors.New("disk full"),
			expectedErr:    errors.New("disk full"),
			expectedStderr: "disk full\n",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			cmd := &cobra.Command{Use: "test"}
			outBuffer := new(bytes.Buffer)
			errBuffer := new(bytes.Buffer)
			cmd.SetOut(outBuffer)
			cmd.SetErr(errBuffer)
			cmd.SetUsageTemplate("usage string")

			err := handleError(cmd, test.err)
			assert.Equal(t, test.expectedErr, err)
			assert.Equal(t, test.expectedStderr, errBuffer.String())
			if test.expectedUsage {
				assert.Equal(t, "usage string", outBuffer.String())
			} else {
				assert.Empty(t, outBuffer.String())
			}
		})
	}
}
