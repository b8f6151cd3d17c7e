// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config reads the errorlog settings from environment variables and
// optional dotenv files.
package config
