// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/mia-platform/errorlog/internal/config"
	"github.com/mia-platform/errorlog/internal/errorlog"
	"github.com/mia-platform/errorlog/internal/registry"
)

// installOptions configures the registration of the default logger instance.
type installOptions struct {
	componentsFile string
}

// execute registers the default logger instance and reports the result on out.
func (o *installOptions) execute(ctx context.Context, out io.Writer) error {
	log := errorlog.FromContext(ctx)

	store, err := registry.Open(o.componentsFile)
	if err != nil {
		return err
	}

	created, err := registry.Install(store)
	if err != nil {
		return err
	}
	log.Debug("components file {path} rewritten", errorlog.Context{"path": store.Path()})

	if created {
		fmt.Fprintf(out, "logger instance %s registered in %s\n", registry.DefaultInstanceName, store.Path())
		return nil
	}

	fmt.Fprintf(out, "logger instance %s already registered in %s\n", registry.DefaultInstanceName, store.Path())
	return nil
}

// logOptions configures a single message written by the log command.
type logOptions struct {
	envFiles       []string
	componentsFile string
	rawContext     []string
	exception      string
	instance       string
	level          string
	output         string

	argsCount int
	severity  string
	message   string
	context   errorlog.Context
}

// validate checks the arguments and flags and parses the message context.
func (o *logOptions) validate() error {
	switch {
	case o.argsCount == 0:
		return errNoArguments
	case o.argsCount == 1:
		return errMissingMessage
	case o.argsCount > 2:
		return fmt.Errorf("%w: expected 2, received %d", errTooManyArguments, o.argsCount)
	}

	severity, err := errorlog.ParseLevelIgnoreCase(o.severity)
	if err != nil {
		return err
	}
	if _, err := errorlog.ShouldLog(severity, errorlog.DEBUG); err != nil {
		return err
	}
	o.severity = severity.String()

	if o.output != "" && !validOutput(o.output) {
		return fmt.Errorf("%w: %s", errInvalidOutput, o.output)
	}

	o.context, err = parseContext(o.rawContext)
	return err
}

// execute writes the message with a logger built from the configuration.
func (o *logOptions) execute(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig(o.envFiles...)
	if err != nil {
		return err
	}

	output := cfg.Output
	if o.output != "" {
		output = o.output
	}

	minimum, err := o.minimumLevel(cfg)
	if err != nil {
		return err
	}

	logger, err := errorlog.New(minimum, sinkForOutput(output, stdout, stderr))
	if err != nil {
		return err
	}

	if o.exception != "" {
		o.context[errorlog.ExceptionKey] = errors.New(o.exception)
	}

	errorlog.FromContext(ctx).Debug("writing {severity} message with minimum level {level} to {output}", errorlog.Context{
		"severity": o.severity,
		"level":    minimum,
		"output":   output,
	})
	return logger.Log(o.severity, o.message, o.context)
}

// minimumLevel returns the level from the registered instance, the level flag or the
// configuration, in this order.
func (o *logOptions) minimumLevel(cfg *config.Config) (errorlog.Level, error) {
	switch {
	case o.instance != "":
		componentsFile := cfg.ComponentsFile
		if o.componentsFile != "" {
			componentsFile = o.componentsFile
		}

		store, err := registry.Open(componentsFile)
		if err != nil {
			return errorlog.NONE, err
		}
		return registry.LoggerLevel(store, o.instance)
	case o.level != "":
		return errorlog.ParseLevelIgnoreCase(o.level)
	default:
		return cfg.MinimumLevel(), nil
	}
}
