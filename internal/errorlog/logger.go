// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package errorlog

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mia-platform/errorlog/internal/trace"
)

// callerSkip is the number of frames between log and the code calling the Logger.
const callerSkip = 2

// nullLogger discards every message.
var nullLogger = &Logger{minimum: NONE, sink: discardSink}

// Logger writes messages at or above its minimum level to a Sink.
type Logger struct {
	minimum Level
	sink    Sink
}

// New returns a Logger writing messages up to minimum to sink. A nil sink writes to
// standard error. It returns ErrInvalidSeverity for unknown levels.
func New(minimum Level, sink Sink) (*Logger, error) {
	if !minimum.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeverity, minimum.String())
	}

	if sink == nil {
		sink = NewWriterSink(os.Stderr)
	}

	return &Logger{
		minimum: minimum,
		sink:    sink,
	}, nil
}

// NewFromName is like New, with the minimum level given by name.
func NewFromName(minimum string, sink Sink) (*Logger, error) {
	level, err := ParseLevel(minimum)
	if err != nil {
		return nil, err
	}

	return New(level, sink)
}

// Level returns the minimum level of the logger.
func (l *Logger) Level() Level {
	return l.minimum
}

// Log writes message at the named severity. It returns ErrInvalidSeverity, without
// writing anything, when severity is unknown or is "none".
func (l *Logger) Log(severity string, message string, ctx Context) error {
	level, err := ParseLevel(severity)
	if err != nil {
		return err
	}

	return l.log(level, message, ctx)
}

// Emergency writes message at the EMERGENCY level.
func (l *Logger) Emergency(message string, ctx Context) {
	_ = l.log(EMERGENCY, message, ctx)
}

// Alert writes message at the ALERT level.
func (l *Logger) Alert(message string, ctx Context) {
	_ = l.log(ALERT, message, ctx)
}

// Critical writes message at the CRITICAL level.
func (l *Logger) Critical(message string, ctx Context) {
	_ = l.log(CRITICAL, message, ctx)
}

// Error writes message at the ERROR level.
func (l *Logger) Error(message string, ctx Context) {
	_ = l.log(ERROR, message, ctx)
}

// Warning writes message at the WARNING level.
func (l *Logger) Warning(message string, ctx Context) {
	_ = l.log(WARNING, message, ctx)
}

// Notice writes message at the NOTICE level.
func (l *Logger) Notice(message string, ctx Context) {
	_ = l.log(NOTICE, message, ctx)
}

// Info writes message at the INFO level.
func (l *Logger) Info(message string, ctx Context) {
	_ = l.log(INFO, message, ctx)
}

// Debug writes message at the DEBUG level.
func (l *Logger) Debug(message string, ctx Context) {
	_ = l.log(DEBUG, message, ctx)
}

// Recover logs a panic at the CRITICAL level, with the stack of the panic, and stops
// it. It must be called directly with defer:
//
//	defer log.Recover()
func (l *Logger) Recover() {
	if value := recover(); value != nil {
		l.handlePanic(value)
	}
}

func (l *Logger) handlePanic(value any) {
	if ok, _ := ShouldLog(CRITICAL, l.minimum); !ok {
		return
	}

	l.emit(CRITICAL, panicLocation(0), "panic: {value}", Context{
		"value":      value,
		ExceptionKey: trace.FromPanic(fmt.Sprint(value)),
	})
}

// log must be called directly by the exported methods for callerSkip to hold.
func (l *Logger) log(severity Level, message string, ctx Context) error {
	ok, err := ShouldLog(severity, l.minimum)
	if err != nil || !ok {
		return err
	}

	l.emit(severity, callerLocation(callerSkip), message, ctx)
	return nil
}

func (l *Logger) emit(severity Level, loc location, message string, ctx Context) {
	text := Interpolate(message, ctx)
	if rendered, ok := renderException(ctx[ExceptionKey]); ok {
		text += "\n" + rendered
	}

	builder := new(strings.Builder)
	builder.WriteString(strings.ToUpper(severity.String()) + ": ")
	builder.WriteString(loc.file + "(" + strconv.Itoa(loc.line) + ") ")
	builder.WriteString(loc.descriptor + " -> ")
	builder.WriteString(text)

	l.sink.WriteLine(builder.String())
}

// renderException returns the text of value when it is an error or an exception.
func renderException(value any) (string, bool) {
	switch exception := value.(type) {
	case *trace.Exception:
		if exception == nil {
			return "", false
		}
		return trace.Render(exception), true
	case error:
		if trace.IsNilError(exception) {
			return "", false
		}
		return trace.RenderError(exception), true
	default:
		return "", false
	}
}
