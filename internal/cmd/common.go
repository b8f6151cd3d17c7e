// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/errorlog/internal/config"
	"github.com/mia-platform/errorlog/internal/errorlog"
	"github.com/mia-platform/errorlog/internal/info"
)

var (
	errNoArguments      = errors.New("no severity and message provided")
	errMissingMessage   = errors.New("no message provided")
	errTooManyArguments = errors.New("too many arguments")
	errInvalidContext   = errors.New("invalid context value, expected key=value")
	errInvalidOutput    = errors.New("invalid output")

	// severityDescriptions holds the severities accepted by the log command and their
	// description for command completion.
	severityDescriptions = map[string]string{
		errorlog.EMERGENCY.String(): "system is unusable",
		errorlog.ALERT.String():     "action must be taken immediately",
		errorlog.CRITICAL.String():  "critical conditions",
		errorlog.ERROR.String():     "runtime errors",
		errorlog.WARNING.String():   "exceptional occurrences that are not errors",
		errorlog.NOTICE.String():    "normal but significant events",
		errorlog.INFO.String():      "interesting events",
		errorlog.DEBUG.String():     "detailed debug information",
	}
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errNoArguments):
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return nil
	case errors.Is(err, errMissingMessage),
		errors.Is(err, errTooManyArguments),
		errors.Is(err, errInvalidContext),
		errors.Is(err, errInvalidOutput),
		errors.Is(err, errorlog.ErrInvalidSeverity):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

func validArgsFunc(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var comps []string
	if len(args) == 0 {
		for name, description := range severityDescriptions {
			if strings.HasPrefix(name, toComplete) {
				comps = append(comps, cobra.CompletionWithDesc(name, description))
			}
		}
	}

	return comps, cobra.ShellCompDirectiveNoFileComp
}

// parseContext converts key=value pairs into a message context.
func parseContext(pairs []string) (errorlog.Context, error) {
	ctx := make(errorlog.Context, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidContext, pair)
		}
		if key == errorlog.ExceptionKey {
			return nil, fmt.Errorf("%w: use the --%s flag to attach an error", errInvalidContext, exceptionFlagName)
		}
		ctx[key] = value
	}

	return ctx, nil
}

func validOutput(output string) bool {
	switch output {
	case config.OutputStdout, config.OutputStderr, config.OutputHCLog:
		return true
	default:
		return false
	}
}

// sinkForOutput returns the sink writing to the named output.
func sinkForOutput(output string, stdout, stderr io.Writer) errorlog.Sink {
	switch output {
	case config.OutputStdout:
		return errorlog.NewWriterSink(stdout)
	case config.OutputHCLog:
		return errorlog.NewDefaultHCLogSink(stderr, info.AppName)
	default:
		return errorlog.NewWriterSink(stderr)
	}
}
