// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package errorlog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSeverity is returned for severity names that are not recognized, and when
// a message is logged at the NONE level.
var ErrInvalidSeverity = errors.New("invalid severity")

// Level is the severity of a message. Lower values are more critical; NONE is only
// valid as a threshold and disables every message.
type Level int

const (
	NONE Level = iota
	EMERGENCY
	ALERT
	CRITICAL
	ERROR
	WARNING
	NOTICE
	INFO
	DEBUG
)

// DefaultLevel is the threshold used when none is configured.
const DefaultLevel = DEBUG

var levelNames = []string{
	"none",
	"emergency",
	"alert",
	"critical",
	"error",
	"warning",
	"notice",
	"info",
	"debug",
}

func (l Level) String() string {
	if l < NONE || l > DEBUG {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}

	return levelNames[l]
}

// Valid reports whether l is one of the known thresholds, NONE included.
func (l Level) Valid() bool {
	return l >= NONE && l <= DEBUG
}

// AllLevels returns every level name, from NONE to DEBUG.
func AllLevels() []string {
	names := make([]string, len(levelNames))
	copy(names, levelNames)
	return names
}

// ParseLevel returns the level named exactly name.
func ParseLevel(name string) (Level, error) {
	for idx, levelName := range levelNames {
		if levelName == name {
			return Level(idx), nil
		}
	}

	return NONE, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
}

// ParseLevelIgnoreCase is like ParseLevel, ignoring case. It is meant for names typed
// by users, as flags and environment variables.
func ParseLevelIgnoreCase(name string) (Level, error) {
	level, err := ParseLevel(strings.ToLower(name))
	if err != nil {
		return NONE, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
	}

	return level, nil
}

// ShouldLog reports whether a message at severity passes the minimum threshold.
// It returns ErrInvalidSeverity when severity cannot be used to log a message.
func ShouldLog(severity, minimum Level) (bool, error) {
	if severity <= NONE || severity > DEBUG {
		return false, fmt.Errorf("%w: %q", ErrInvalidSeverity, severity.String())
	}

	return severity <= minimum, nil
}
