// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package errorlog

import (
	"io"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Sink receives the formatted log lines. Implementations add their own line terminator.
type Sink interface {
	WriteLine(line string)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(line string)

// WriteLine calls f(line).
func (f SinkFunc) WriteLine(line string) {
	f(line)
}

var (
	_ Sink = &writerSink{}
	_ Sink = &hclogSink{}
)

// discardSink drops every line.
var discardSink = SinkFunc(func(string) {})

type writerSink struct {
	writer io.Writer

	lock sync.Mutex
}

// NewWriterSink returns a Sink writing each line followed by a newline to w.
// Every line is written with a single Write call; write errors are ignored.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{
		writer: w,
	}
}

func (s *writerSink) WriteLine(line string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, _ = io.WriteString(s.writer, line+"\n")
}

type hclogSink struct {
	log hclog.Logger
}

// NewHCLogSink returns a Sink forwarding every line to log.
func NewHCLogSink(log hclog.Logger) Sink {
	return &hclogSink{log: log}
}

// NewDefaultHCLogSink returns a Sink writing to w through a named hclog logger, which
// prefixes every line with a timestamp.
func NewDefaultHCLogSink(w io.Writer, name string) Sink {
	return NewHCLogSink(hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		TimeFn: time.Now,
		Level:  hclog.Info,
	}))
}

func (s *hclogSink) WriteLine(line string) {
	s.log.Info(line)
}
