// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mia-platform/errorlog/internal/config"
	"github.com/mia-platform/errorlog/internal/errorlog"
)

const (
	componentsFileFlagName  = "components-file"
	componentsFileFlagUsage = "Path to the components file, overrides ERRORLOG_COMPONENTS_FILE"

	envFileFlagName  = "env-file"
	envFileFlagUsage = "Path to a dotenv file loaded before reading the environment. Can be specified multiple times."

	contextFlagName  = "context"
	contextFlagShort = "c"
	contextFlagUsage = "A key=value pair used to replace the {key} placeholders of the message. Can be specified multiple times."

	exceptionFlagName  = "exception"
	exceptionFlagUsage = "Attach an error with this message, rendered with its stack trace after the message"

	instanceFlagName  = "instance"
	instanceFlagUsage = "Name of a registered logger instance providing the minimum level"

	levelFlagName  = "level"
	levelFlagShort = "l"

	outputFlagName  = "output"
	outputFlagShort = "o"
)

var (
	levelFlagUsage  = "Minimum level, overrides ERRORLOG_LEVEL (possible values: " + strings.Join(errorlog.AllLevels(), ", ") + ")"
	outputFlagUsage = "Where messages are written, overrides ERRORLOG_OUTPUT (possible values: " + strings.Join([]string{config.OutputStderr, config.OutputStdout, config.OutputHCLog}, ", ") + ")"
)

// configFlags collects the options shared by every command reading the configuration.
type configFlags struct {
	componentsFile string
	envFiles       []string
}

// addFlags registers the configuration flags on cmd.
func (f *configFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.componentsFile, componentsFileFlagName, "", componentsFileFlagUsage)
	cmd.Flags().StringArrayVar(&f.envFiles, envFileFlagName, nil, envFileFlagUsage)
}

// installFlags collects the CLI options of the install command.
type installFlags struct {
	configFlags
}

// toOptions builds the install options from the parsed flags.
func (f *installFlags) toOptions() (*installOptions, error) {
	cfg, err := config.LoadConfig(f.envFiles...)
	if err != nil {
		return nil, err
	}

	componentsFile := cfg.ComponentsFile
	if f.componentsFile != "" {
		componentsFile = f.componentsFile
	}

	return &installOptions{
		componentsFile: componentsFile,
	}, nil
}

// logFlags collects the CLI options of the log command.
type logFlags struct {
	configFlags

	context   []string
	exception string
	instance  string
	level     string
	output    string
}

// addFlags registers the log command flags on cmd.
func (f *logFlags) addFlags(cmd *cobra.Command) {
	f.configFlags.addFlags(cmd)

	cmd.Flags().StringArrayVarP(&f.context, contextFlagName, contextFlagShort, nil, contextFlagUsage)
	cmd.Flags().StringVar(&f.exception, exceptionFlagName, "", exceptionFlagUsage)
	cmd.Flags().StringVar(&f.instance, instanceFlagName, "", instanceFlagUsage)
	cmd.Flags().StringVarP(&f.level, levelFlagName, levelFlagShort, "", levelFlagUsage)
	cmd.Flags().StringVarP(&f.output, outputFlagName, outputFlagShort, "", outputFlagUsage)

	cmd.MarkFlagsMutuallyExclusive(levelFlagName, instanceFlagName)
}

// toOptions builds the log options from the parsed flags and CLI arguments.
func (f *logFlags) toOptions(args []string) *logOptions {
	opts := &logOptions{
		envFiles:       f.envFiles,
		componentsFile: f.componentsFile,
		rawContext:     f.context,
		exception:      f.exception,
		instance:       f.instance,
		level:          f.level,
		output:         strings.ToLower(f.output),
	}

	opts.argsCount = len(args)
	if len(args) > 0 {
		opts.severity = args[0]
	}
	if len(args) > 1 {
		opts.message = args[1]
	}

	return opts
}
