// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package registry

import (
	"fmt"

	"github.com/mia-platform/errorlog/internal/errorlog"
)

const (
	// DefaultInstanceName is the name of the logger registered by Install.
	DefaultInstanceName = "errorlog.errorLogLogger"
	// LoggerType is the component type of errorlog loggers.
	LoggerType = "errorlog.Logger"
	// LevelProperty is the property holding the minimum level of a logger instance.
	LevelProperty = "level"
)

// InstallLevel is the minimum level of the logger registered by Install.
const InstallLevel = errorlog.WARNING

// Install registers the default logger instance when it is missing, then rewrites the
// component file. It reports whether the instance has been created.
func Install(store *Store) (bool, error) {
	created := false
	if !store.InstanceExists(DefaultInstanceName) {
		instance, err := store.CreateInstance(DefaultInstanceName, LoggerType)
		if err != nil {
			return false, err
		}

		instance.SetProperty(LevelProperty, InstallLevel.String())
		created = true
	}

	if err := store.Rewrite(); err != nil {
		return created, err
	}

	return created, nil
}

// LoggerLevel returns the minimum level configured for the logger instance called name.
func LoggerLevel(store *Store, name string) (errorlog.Level, error) {
	instance, ok := store.Instance(name)
	if !ok {
		return errorlog.NONE, fmt.Errorf("%w: %s", ErrInstanceNotFound, name)
	}

	if instance.Type != LoggerType {
		return errorlog.NONE, fmt.Errorf("instance %s has type %q, expected %q", name, instance.Type, LoggerType)
	}

	value, ok := instance.Property(LevelProperty)
	if !ok {
		return errorlog.DefaultLevel, nil
	}

	levelName, ok := value.(string)
	if !ok {
		return errorlog.NONE, fmt.Errorf("%w: %v", errorlog.ErrInvalidSeverity, value)
	}

	return errorlog.ParseLevel(levelName)
}
