// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package trace turns errors into a plain text block made of the error message, the
// location where it was created and the captured call stack.
// Call arguments attached to a frame are printed with PrintValue, which gives a short,
// deterministic representation of any Go value.
package trace
