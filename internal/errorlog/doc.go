// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package errorlog is a small leveled logger that writes one line per call to a
// process wide diagnostic sink.
// Messages can contain {key} placeholders filled from the call context, and an error
// stored under the "exception" key is appended to the line as a rendered stack trace.
// Loggers are immutable after construction and can be shared between goroutines.
package errorlog
