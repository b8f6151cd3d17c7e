// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package registry stores named component instances in a YAML file, and installs the
// default errorlog logger instance into it.
package registry
