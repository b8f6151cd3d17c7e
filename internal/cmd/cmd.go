// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	installCmdUsage = "install"
	installCmdShort = "register the default logger instance in the components file"
	installCmdLong  = `Register the default logger instance in the components file.
	The instance is called errorlog.errorLogLogger and writes messages with severity
	warning or above. An instance already registered with the same name is left
	untouched, but the components file is always rewritten.`

	installCmdExample = `# Register the logger in the default components file
	errorlog install

	# Register the logger in a specific components file
	errorlog install --components-file /etc/errorlog/components.yaml`

	logCmdUsage = "log SEVERITY MESSAGE"
	logCmdShort = "write a message to the diagnostic output"
	logCmdLong  = `Write a message to the diagnostic output.
	The message is written only if SEVERITY is at least as severe as the minimum level,
	read from the --level flag, from a registered logger instance or from the
	ERRORLOG_LEVEL environment variable. Every {key} placeholder in MESSAGE is
	replaced with the matching --context value.

	The available severities are:
	- emergency, alert, critical, error, warning, notice, info, debug`

	logCmdExample = `# Write an error message
	errorlog log error "user {name} failed to login" --context name=bob

	# Attach an error with its stack trace
	errorlog log critical "payment failed" --exception "connection reset"

	# Use the minimum level of a registered logger instance
	errorlog log info "service started" --instance errorlog.errorLogLogger`
)

// InstallCmd returns the Cobra command that registers the default logger instance.
func InstallCmd() *cobra.Command {
	flags := &installFlags{}
	cmd := &cobra.Command{
		Use:     installCmdUsage,
		Short:   heredoc.Doc(installCmdShort),
		Long:    heredoc.Doc(installCmdLong),
		Example: heredoc.Doc(installCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.toOptions()
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// LogCmd returns the Cobra command that writes a single message.
func LogCmd() *cobra.Command {
	flags := &logFlags{}
	cmd := &cobra.Command{
		Use:     logCmdUsage,
		Short:   heredoc.Doc(logCmdShort),
		Long:    heredoc.Doc(logCmdLong),
		Example: heredoc.Doc(logCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: validArgsFunc,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.toOptions(args)
			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
