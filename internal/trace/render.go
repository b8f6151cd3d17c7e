// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package trace

import (
	"strconv"
	"strings"
)

// helperFunctions lists the functions that only exist to render or recover errors.
// Frames calling them are left out of the rendered stack.
var helperFunctions = map[string]struct{}{
	"writeFrames": {},
	"handlePanic": {},
	"Recover":     {},
}

// Render returns the text representation of exception. Missing fields are rendered as
// empty values, a nil exception renders every field empty.
func Render(exception *Exception) string {
	if exception == nil {
		exception = &Exception{}
	}

	builder := new(strings.Builder)
	builder.WriteString("Message: " + exception.Message + "\n")
	builder.WriteString("File: " + exception.File + "\n")
	builder.WriteString("Line: " + lineString(exception.Line) + "\n")
	builder.WriteString("Stacktrace:\n")
	writeFrames(builder, exception.Frames)

	return builder.String()
}

// RenderError is a shortcut for Render(FromError(err)).
func RenderError(err error) string {
	return Render(FromError(err))
}

func writeFrames(builder *strings.Builder, frames []Frame) {
	for _, frame := range frames {
		if _, skip := helperFunctions[frame.Function]; skip {
			continue
		}

		if frame.File != "" && frame.Line > 0 {
			builder.WriteString("In " + frame.File + " at line " + strconv.Itoa(frame.Line) + ": ")
		}

		if frame.Scope != "" && frame.Separator != "" && frame.Function != "" {
			builder.WriteString(frame.Scope + frame.Separator + frame.Function + "(")
			for idx, arg := range frame.Args {
				if idx > 0 {
					builder.WriteString(", ")
				}
				builder.WriteString(PrintValue(arg))
			}
			builder.WriteString(")")
		}

		builder.WriteString("\n")
	}
}

func lineString(line int) string {
	if line <= 0 {
		return ""
	}

	return strconv.Itoa(line)
}
