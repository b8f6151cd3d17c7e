// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package errorlog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ExceptionKey is the context key holding the error rendered after the message.
const ExceptionKey = "exception"

// Context holds the values available to a message template.
type Context map[string]any

// Interpolate replaces every {key} placeholder of message with the matching value of ctx.
// Placeholders without a value are kept as they are and values are never rescanned.
// The value stored under ExceptionKey is not used for replacements.
func Interpolate(message string, ctx Context) string {
	if len(ctx) == 0 {
		return message
	}

	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		if key == ExceptionKey {
			continue
		}
		keys = append(keys, key)
	}

	// longer placeholders first, so the replacer always picks the longest match
	slices.SortFunc(keys, func(a, b string) int {
		if byLength := cmp.Compare(len(b), len(a)); byLength != 0 {
			return byLength
		}
		return strings.Compare(a, b)
	})

	replacements := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		replacements = append(replacements, "{"+key+"}", fmt.Sprint(ctx[key]))
	}

	return strings.NewReplacer(replacements...).Replace(message)
}
