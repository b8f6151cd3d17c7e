// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mia-platform/errorlog/internal/errorlog"
)

const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputHCLog  = "hclog"
)

var (
	ErrEnvVariablesNotValid = errors.New("environment variables not valid")
	ErrEnvFile              = errors.New("error loading env file")

	availableOutputs = []string{OutputStdout, OutputStderr, OutputHCLog}
)

// Config holds the settings read from the environment.
type Config struct {
	Level          string `env:"ERRORLOG_LEVEL" envDefault:"debug"`
	Output         string `env:"ERRORLOG_OUTPUT" envDefault:"stderr"`
	ComponentsFile string `env:"ERRORLOG_COMPONENTS_FILE" envDefault:"components.yaml"`
}

// LoadConfig reads the configuration from the environment. Variables defined in
// envFiles are loaded first, without overriding the ones already set.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEnvFile, err)
		}
	}

	var envVars Config
	if err := env.Parse(&envVars); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, err.Error())
	}

	if err := validateEnvironmentVariables(&envVars); err != nil {
		return nil, err
	}
	return &envVars, nil
}

// MinimumLevel returns the parsed ERRORLOG_LEVEL value.
func (c *Config) MinimumLevel() errorlog.Level {
	level, err := errorlog.ParseLevelIgnoreCase(c.Level)
	if err != nil {
		return errorlog.DefaultLevel
	}
	return level
}

func validateEnvironmentVariables(envVars *Config) error {
	envError := make([]string, 0)

	if _, err := errorlog.ParseLevelIgnoreCase(envVars.Level); err != nil {
		envError = append(envError, "ERRORLOG_LEVEL must be one of: "+strings.Join(errorlog.AllLevels(), ", "))
	}

	envVars.Output = strings.ToLower(envVars.Output)
	if !slices.Contains(availableOutputs, envVars.Output) {
		envError = append(envError, "ERRORLOG_OUTPUT must be one of: "+strings.Join(availableOutputs, ", "))
	}

	if envVars.ComponentsFile == "" {
		envError = append(envError, "ERRORLOG_COMPONENTS_FILE must not be empty")
	}

	if len(envError) > 0 {
		return fmt.Errorf("%w: %s", ErrEnvVariablesNotValid, strings.Join(envError, ", "))
	}
	return nil
}
