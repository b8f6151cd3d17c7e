// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package errorlog

import (
	"runtime"
	"strings"

	"github.com/mia-platform/errorlog/internal/trace"
)

// location is where a log call was made and the function containing it.
type location struct {
	file       string
	line       int
	descriptor string
}

// callerLocation returns the location of the frame skip levels above its caller.
func callerLocation(skip int) location {
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+2, pcs) == 0 {
		return location{}
	}

	frame, _ := runtime.CallersFrames(pcs).Next()
	return locationFromFrame(frame)
}

// panicLocation returns the location of the first non runtime function below the
// current panic, falling back to callerLocation(skip) when there is none.
func panicLocation(skip int) location {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	panicking := false
	for {
		frame, more := frames.Next()
		if panicking && !strings.HasPrefix(frame.Function, "runtime.") {
			return locationFromFrame(frame)
		}
		if frame.Function == "runtime.gopanic" {
			panicking = true
		}
		if !more {
			break
		}
	}

	return callerLocation(skip + 1)
}

func locationFromFrame(frame runtime.Frame) location {
	loc := location{file: frame.File, line: frame.Line}
	scope, separator, function := trace.SplitFunction(frame.Function)
	if scope != "" && separator != "" && function != "" {
		loc.descriptor = scope + separator + function
	}

	return loc
}
