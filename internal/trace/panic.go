// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package trace

import (
	"runtime"
	"strings"
)

const maxPanicDepth = 64

// FromPanic builds an Exception for a panic being recovered. It must be called by the
// deferred function handling the panic: File and Line point to the statement that
// panicked and the frames describe the calls leading to it, leaving out the runtime
// and the recovering functions. When no panic is in progress the Exception only
// carries the message.
func FromPanic(message string) *Exception {
	pcs := make([]uintptr, maxPanicDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var callers []caller
	panicking := false
	for {
		frame, more := frames.Next()
		switch {
		case !panicking:
			panicking = frame.Function == "runtime.gopanic"
		case len(callers) > 0 || !strings.HasPrefix(frame.Function, "runtime."):
			callers = append(callers, caller{file: frame.File, line: frame.Line, function: frame.Function})
		}
		if !more {
			break
		}
	}

	return fromCallers(message, callers)
}
