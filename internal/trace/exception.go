// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package trace

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Frame is a single entry of a captured call stack.
// Scope, Separator and Function are printed only when all of them are set.
type Frame struct {
	File      string
	Line      int
	Scope     string
	Separator string
	Function  string
	Args      []any
}

// Exception holds everything needed to render an error as text.
type Exception struct {
	Message string
	File    string
	Line    int
	Frames  []Frame
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type caller struct {
	file     string
	line     int
	function string
}

// FromError builds an Exception from err. When err, or any error it wraps, carries a
// stack trace the deepest one is used: File and Line point to where the error was
// created and every frame names the called function together with its call site.
// A nil error, or a nil pointer implementing error, returns an empty Exception.
func FromError(err error) *Exception {
	if IsNilError(err) {
		return &Exception{}
	}

	exception := &Exception{Message: errorMessage(err)}
	stack := deepestStack(err)
	if len(stack) == 0 {
		return exception
	}

	callers := make([]caller, 0, len(stack))
	for _, frame := range stack {
		callers = append(callers, resolve(frame))
	}

	return fromCallers(exception.Message, callers)
}

// fromCallers builds an Exception located at the innermost caller, where every frame
// names the function called from the call site of the next caller.
func fromCallers(message string, callers []caller) *Exception {
	exception := &Exception{Message: message}
	if len(callers) == 0 {
		return exception
	}

	exception.File = callers[0].file
	exception.Line = callers[0].line
	for idx := 1; idx < len(callers); idx++ {
		frame := Frame{
			File: callers[idx].file,
			Line: callers[idx].line,
		}
		frame.Scope, frame.Separator, frame.Function = SplitFunction(callers[idx-1].function)
		exception.Frames = append(exception.Frames, frame)
	}

	return exception
}

// IsNilError reports whether err is nil or a nil value of a type implementing error.
func IsNilError(err error) bool {
	if err == nil {
		return true
	}

	value := reflect.ValueOf(err)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}

// errorMessage returns err.Error(), or an empty string when Error panics.
func errorMessage(err error) (message string) {
	defer func() {
		if recover() != nil {
			message = ""
		}
	}()

	return err.Error()
}

func deepestStack(err error) (stack errors.StackTrace) {
	defer func() {
		if recover() != nil {
			stack = nil
		}
	}()

	for !IsNilError(err) {
		if tracer, ok := err.(stackTracer); ok {
			stack = tracer.StackTrace()
		}
		err = errors.Unwrap(err)
	}

	return stack
}

func resolve(frame errors.Frame) caller {
	pc := uintptr(frame) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return caller{}
	}

	file, line := fn.FileLine(pc)
	return caller{file: file, line: line, function: fn.Name()}
}

// SplitFunction splits a fully qualified function name as reported by the runtime into
// its enclosing scope, the separator and the bare function name.
// "example.com/pkg.(*Type).Method" becomes "example.com/pkg.(*Type)", "." and "Method".
// Names without a scope return only the function part.
func SplitFunction(name string) (scope, separator, function string) {
	start := strings.LastIndex(name, "/") + 1
	depth := 0
	for idx := len(name) - 1; idx >= start; idx-- {
		switch name[idx] {
		case ']':
			depth++
		case '[':
			depth--
		case '.':
			if depth == 0 {
				return name[:idx], ".", name[idx+1:]
			}
		}
	}

	return "", "", name
}
